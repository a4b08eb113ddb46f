package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/jcorbin/objforth/internal/logio"
)

var logs logio.Logger

var errColor = color.New(color.FgRed, color.Bold)

var flags struct {
	config      string
	capacity    int
	stressGC    bool
	maxDepth    int
	noPrelude   bool
	trace       bool
	timeout     time.Duration
	eval        []string
	color       string
	interactive bool
}

var rootCmd = &cobra.Command{
	Use:   "objforth [file...]",
	Short: "A small Forth over a garbage collected object heap",
	Long: `objforth compiles and runs Forth source files, one-liners given with -e,
or an interactive session when standard input is a terminal.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.config, "config", "", "configuration file (default ./"+configFileName+" if present)")
	f.IntVar(&flags.capacity, "capacity", 0, "heap capacity in objects")
	f.BoolVar(&flags.stressGC, "stress-gc", false, "collect garbage before every allocation")
	f.IntVar(&flags.maxDepth, "max-depth", 0, "maximum call depth")
	f.BoolVar(&flags.noPrelude, "no-prelude", false, "do not compile the prelude words")
	f.BoolVar(&flags.trace, "trace", false, "enable trace logging")
	f.DurationVar(&flags.timeout, "timeout", 0, "specify a time limit")
	f.StringArrayVarP(&flags.eval, "eval", "e", nil, "evaluate source before any files")
	f.StringVar(&flags.color, "color", "auto", "colorize errors (auto|on|off)")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "start an interactive session after other inputs")
}

func main() {
	logs.SetOutput(os.Stderr)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logs.Errorf("%s", errColor.Sprint(err))
	}
	os.Exit(logs.ExitCode())
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func runRoot(cmd *cobra.Command, args []string) error {
	color.NoColor = !(flags.color == "on" || flags.color == "auto" && isTerminal(os.Stderr))

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}
	changed := cmd.Flags().Changed
	if changed("capacity") {
		cfg.Heap.Capacity = flags.capacity
	}
	if changed("stress-gc") {
		cfg.Heap.StressGC = flags.stressGC
	}
	if changed("max-depth") {
		cfg.VM.MaxDepth = flags.maxDepth
	}
	if changed("no-prelude") {
		cfg.VM.Prelude = !flags.noPrelude
	}
	if changed("trace") {
		cfg.VM.Trace = flags.trace
	}

	opts := append(cfg.options(), WithOutput(os.Stdout))
	if cfg.VM.Trace {
		opts = append(opts, WithLogf(logs.Leveledf("TRACE")))
	}

	for _, src := range flags.eval {
		opts = append(opts, WithInput("-e", strings.NewReader(src+"\n")))
	}
	for _, arg := range args {
		if arg == "-" {
			opts = append(opts, WithInput("<stdin>", os.Stdin))
			continue
		}
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		opts = append(opts, WithInputs(f))
	}
	interactive := flags.interactive
	if len(args) == 0 && len(flags.eval) == 0 {
		if isTerminal(os.Stdin) {
			interactive = true
		} else {
			opts = append(opts, WithInput("<stdin>", os.Stdin))
		}
	}

	vm, err := New(opts...)
	if err != nil {
		return err
	}
	defer vm.Close()

	ctx := cmd.Context()
	if flags.timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		if err := vm.Run(ctx); err != nil {
			return err
		}
		if !interactive {
			return nil
		}
		return repl{
			vm:      vm,
			prompt:  cfg.REPL.Prompt,
			history: cfg.historyPath(),
			out:     os.Stdout,
			errorf: func(err error) {
				logs.Printf("ERROR", "%s", errColor.Sprint(err))
			},
		}.run(ctx)
	})
	eg.Go(func() error { return watchSignals(ctx) })
	return eg.Wait()
}

var errInterrupted = errors.New("interrupted")

// watchSignals fails once an interrupt arrives, cancelling the group, or
// returns once ctx is done.
func watchSignals(ctx context.Context) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt)
	defer signal.Stop(sigc)
	select {
	case <-ctx.Done():
		return nil
	case sig := <-sigc:
		return fmt.Errorf("%w by %v", errInterrupted, sig)
	}
}
