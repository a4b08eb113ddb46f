package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "objforth.toml"

type config struct {
	Heap heapConfig `toml:"heap"`
	VM   vmConfig   `toml:"vm"`
	REPL replConfig `toml:"repl"`
}

type heapConfig struct {
	Capacity int  `toml:"capacity"`
	StressGC bool `toml:"stress_gc"`
}

type vmConfig struct {
	MaxDepth int  `toml:"max_depth"`
	Prelude  bool `toml:"prelude"`
	Trace    bool `toml:"trace"`
}

type replConfig struct {
	History string `toml:"history"`
	Prompt  string `toml:"prompt"`
}

func defaultConfig() config {
	return config{
		Heap: heapConfig{Capacity: 8192},
		VM:   vmConfig{MaxDepth: defaultMaxDepth, Prelude: true},
		REPL: replConfig{History: "~/.objforth_history", Prompt: "ok> "},
	}
}

// loadConfig reads path over the defaults. An empty path looks for
// objforth.toml in the working directory, which need not exist.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		path = configFileName
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		} else if err != nil {
			return cfg, fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("%s: unknown keys: %v", path, strings.Join(keys, ", "))
	}
	if cfg.Heap.Capacity < 0 {
		return cfg, fmt.Errorf("%s: [heap].capacity must not be negative", path)
	}
	if cfg.VM.MaxDepth < 0 {
		return cfg, fmt.Errorf("%s: [vm].max_depth must not be negative", path)
	}
	return cfg, nil
}

// historyPath expands a leading ~ in the configured history file.
func (cfg config) historyPath() string {
	path := cfg.REPL.History
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, rest)
		}
	}
	return path
}

func (cfg config) options() []VMOption {
	opts := []VMOption{
		WithCapacity(cfg.Heap.Capacity),
		WithStressGC(cfg.Heap.StressGC),
		WithMaxDepth(cfg.VM.MaxDepth),
	}
	if !cfg.VM.Prelude {
		opts = append(opts, WithoutPrelude())
	}
	return opts
}
