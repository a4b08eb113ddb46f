package main

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/objforth/internal/object"
)

func Test_StackWords(t *testing.T) {
	vmTestCases{
		vmTest("dup").withStack(1).withInput(`dup`).expectStack(1, 1),
		vmTest("drop").withStack(1, 2).withInput(`drop`).expectStack(1),
		vmTest("swap").withStack(1, 2).withInput(`swap`).expectStack(2, 1),
		vmTest("over").withStack(1, 2).withInput(`over`).expectStack(1, 2, 1),
		vmTest("nip").withStack(1, 2).withInput(`nip`).expectStack(2),
		vmTest("rot").withStack(1, 2, 3).withInput(`rot`).expectStack(2, 3, 1),
		vmTest("pick").withStack(1, 2, 3).withInput(`2 pick`).expectStack(1, 2, 3, 1),
		vmTest("2drop").withStack(1, 2, 3).withInput(`2drop`).expectStack(1),
		vmTest("2dup").withStack(1, 2).withInput(`2dup`).expectStack(1, 2, 1, 2),
		vmTest("depth").withStack(7, 8).withInput(`depth`).expectStack(7, 8, 2),
		vmTest(".s").withStack(1, 2).withInput(`.s`).
			expectOutput("<2> 1 2 ").
			expectStack(1, 2),
		vmTest("underflow").withInput(`drop`).
			expectError(object.StackUnderflowError{Stack: "data stack"}),
		vmTest("pick underflow").withStack(1).withInput(`3 pick`).
			expectError(object.StackUnderflowError{Stack: "data stack"}),
	}.run(t)
}

func Test_Arithmetic(t *testing.T) {
	vmTestCases{
		vmTest("+").withInput(`2 3 +`).expectStack(5),
		vmTest("-").withInput(`2 3 -`).expectStack(-1),
		vmTest("*").withInput(`4 2.5 *`).expectStack(10),
		vmTest("/").withInput(`7 2 /`).expectStack(3.5),
		vmTest("/ by zero").withInput(`1 0 /`).expectStack(math.Inf(1)),
		vmTest("mod").withInput(`7 3 mod -7 3 mod`).expectStack(1, -1),
		vmTest("mod by zero").withInput(`1 0 mod`).expectError(ErrDivideByZero),
		vmTest("negate abs").withInput(`5 negate dup abs`).expectStack(-5, 5),
		vmTest("min max").withInput(`3 9 min 3 9 max`).expectStack(3, 9),
		vmTest("1+ 1-").withInput(`5 1+ 5 1-`).expectStack(6, 4),
		vmTest("2* 2/").withInput(`5 2* 7 2/ -7 2/`).expectStack(10, 3, -3),
		vmTest("u2/").withInput(`-2 u2/`).expectStack(0x7fffffff),
		vmTest("bitwise").withInput(`12 10 and 12 10 or 12 10 xor 0 invert`).
			expectStack(8, 14, 6, -1),
		vmTest("shifts").withInput(`1 4 << -16 2 >> -1 28 u>>`).expectStack(16, -4, 15),
		vmTest("negative shift").withInput(`1 -1 <<`).expect(func(t *testing.T, vm *VM) {
			assert.Empty(t, vm.Stack())
		}).expectErrorText("number <<: negative shift count"),
		vmTest("fractional bitwise").withInput(`1.5 1 and`).
			expectErrorText("number and: 1.5 is not a whole number"),
		vmTest("string concatenation").withInput(`" foo" " bar" +`).expectStackFormat("foobar"),
		vmTest("type mismatch").withInput(`" foo" 1 +`).
			expectErrorText("string number + not supported"),
		expectErrorAs(vmTest("type error kinds").withInput(`" foo" 1 -`),
			func(t *testing.T, err object.TypeError) {
				assert.Equal(t, "-", err.Op)
				assert.Equal(t, []object.Kind{object.KindString, object.KindNumber}, err.Kinds)
			}),
	}.run(t)
}

func Test_NumberLiterals(t *testing.T) {
	vmTestCases{
		vmTest("integers").withInput(`42 -7 +3`).expectStack(42, -7, 3),
		vmTest("floats").withInput(`1.5 -0.25 1e3`).expectStack(1.5, -0.25, 1000),
		vmTest("prefixed").withInput(`0x1f 0b101 0o17`).expectStack(31, 5, 15),
		vmTest("bare hex").withInput(`deadbeef 0000ffff`).expectStack(0xdeadbeef, 0xffff),
		vmTest("runes").withInput(`'a' '\n' <esc> ^C`).expectStack('a', '\n', 0x1b, 3),
		vmTest("inf is a word").withInput(`inf`).expectError(UndefinedWordError{"inf"}),
	}.run(t)
}

func Test_Comparison(t *testing.T) {
	vmTestCases{
		vmTest("numbers").withInput(`1 2 < 1 2 > 2 2 = 2 3 <>`).expectStack(-1, 0, -1, -1),
		vmTest("strings").withInput(`" abc" " abd" < " x" " x" =`).expectStack(-1, -1),
		vmTest("mixed kinds differ").withInput(`1 " 1" =`).expectStack(0),
		vmTest("identity").withInput(`{} dup = {} {} =`).expectStack(-1, 0),
		vmTest("u<").withInput(`1 -1 u< -1 1 u<`).expectStack(-1, 0),
		vmTest("0= 0<").withInput(`0 0= 5 0= -3 0< 3 0<`).expectStack(-1, 0, -1, 0),
		vmTest("0= of null").withInput(`variable v v @ 0=`).expectStack(-1),
	}.run(t)
}

func Test_Objects(t *testing.T) {
	vmTestCases{
		vmTest("array").withInput(`[] constant a`, `1 a ! 2 a ! 9 a 5 ] !`, `a @ a 1 ] @ a 3 ] @`).
			expectStackFormat("6", "2", "(null)"),
		vmTest("array print").withInput(`[] dup 1 swap ! dup " s" swap ! .`).
			expectOutput(`[ 1 "s" ] `),
		vmTest("table print").withInput(`{} dup 1 swap ! dup 2 swap " k" ] ! .`).
			expectOutput(`{ 1 "k": 2 } `),
		vmTest("hash").withInput(`#{} constant h`, `1 h " a" ] ! 2 h " b" ] ! 3 h " a" ] !`, `h " a" ] @ h @`).
			expectStack(3, 2),
		vmTest("hash print").withInput(`#{} dup 5 swap " x" ] ! .`).
			expectOutput(`#{ "x": 5 } `),
		vmTest("stack object").withInput(`stack constant s`, `1 s ! 2 s !`, `s @ s @`).
			expectStack(2, 1),
		vmTest("stack print").withInput(`stack dup 7 swap ! .`).expectOutput(`<stack 7> `),
		vmTest("string length and bytes").withInput(`" hey" dup @ swap 1 ] @`).expectStack(3, 'e'),
		vmTest("nested tables").withInput(
			`{} constant outer`,
			`{} outer " in" ] !`,
			`42 outer " in" ] @ 0 ] !`,
			`outer " in" ] @ 0 ] @`,
		).expectStack(42),
		vmTest("store index rejected").withInput(`{} dup 0 ] swap 0 ] !`).
			expectErrorText("table index !: an index cannot be stored"),
		vmTest("number not indexable").withInput(`5 0 ] @`).
			expectErrorText("number number @ not supported"),
		vmTest("negative array index").withInput(`[] -1 ] @`).
			expectErrorText("array number @: negative index -1"),
		vmTest("variable word").withInput(`variable v`, `v`).expectStackFormat("<word v>"),
	}.run(t)
}

func Test_Output(t *testing.T) {
	vmTestCases{
		vmTest("dot").withInput(`1 . 2.5 . " s" .`).expectOutput("1 2.5 s "),
		vmTest("emit").withInput(`72 emit 105 emit`).expectOutput("Hi"),
		vmTest("cr space").withInput(`1 . cr space 2 .`).expectOutput("1 \n 2 "),
		vmTest("type").withInput(`" abc" type`).expectOutput("abc"),
		vmTest("type number").withInput(`5 type`).expectErrorText("expected string, got number"),
		vmTest("dot null").withInput(`variable v v @ .`).expectOutput("(null) "),
	}.run(t)
}

func Test_Words(t *testing.T) {
	var out strings.Builder
	vmTestCases{
		vmTest("lists definitions").withoutPrelude().
			withOptions(WithOutput(&out)).
			withInput(`: zzz ; words`).
			expect(func(t *testing.T, vm *VM) {
				words := out.String()
				assert.Contains(t, words, "(lit) (obj) (set)")
				assert.Contains(t, words, " dup ")
				assert.Regexp(t, ` zzz\n$`, words)
			}),
	}.run(t)
}
