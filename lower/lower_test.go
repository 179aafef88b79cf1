package lower_test

import (
	"bufio"
	"strings"
	"testing"

	"toyc/ir"
	"toyc/lower"
	"toyc/syntax"
	"toyc/walk"
)

// lowerSrc runs the front half of the pipeline on src and returns the IR
// module.  Any compile error fails the test.
func lowerSrc(t *testing.T, src string) *ir.Module {
	t.Helper()

	defer func() {
		if x := recover(); x != nil {
			t.Fatalf("unexpected compile error: %s", x)
		}
	}()

	unit := syntax.Parse("test.toy", bufio.NewReader(strings.NewReader(src)))
	walk.Walk(unit)
	return lower.Lower(unit)
}

// checkDump compares the module's textual dump against the expected golden
// text.
func checkDump(t *testing.T, mod *ir.Module, expected string) {
	t.Helper()

	if actual := mod.String(); actual != expected {
		t.Errorf("bad IR dump:\n--- expected ---\n%s\n--- actual ---\n%s", expected, actual)
	}
}

func TestLowerStraightLine(t *testing.T) {
	mod := lowerSrc(t, `
fn add(a, b) {
	return a + b;
}
`)

	checkDump(t, mod, `define @add(%0, %1) {
bb0:
	%2 = alloca
	%3 = alloca
	store %0, %2
	store %1, %3
	%4 = load %2
	%5 = load %3
	%6 = add %4, %5
	return %6
}
`)
}

func TestLowerIfElseBothReturn(t *testing.T) {
	// When both arms return, the join block is unreachable and must not
	// appear in the dump.
	mod := lowerSrc(t, `
fn max(a, b) {
	if a > b {
		return a;
	} else {
		return b;
	}
}
`)

	checkDump(t, mod, `define @max(%0, %1) {
bb0:
	%2 = alloca
	%3 = alloca
	store %0, %2
	store %1, %3
	%4 = load %2
	%5 = load %3
	%6 = gt %4, %5
	cjump %6, bb1, bb2
bb1:
	%7 = load %2
	return %7
bb2:
	%8 = load %3
	return %8
}
`)
}

func TestLowerWhileLoop(t *testing.T) {
	mod := lowerSrc(t, `
fn sum(n) {
	let i = 0;
	let s = 0;
	while i < n {
		s = s + i;
		i = i + 1;
	}
	return s;
}
`)

	checkDump(t, mod, `define @sum(%0) {
bb0:
	%1 = alloca
	%2 = alloca
	%3 = alloca
	store %0, %1
	store $0, %2
	store $0, %3
	jump bb1
bb1:
	%4 = load %2
	%5 = load %1
	%6 = lt %4, %5
	cjump %6, bb2, bb3
bb2:
	%7 = load %3
	%8 = load %2
	%9 = add %7, %8
	store %9, %3
	%10 = load %2
	%11 = add %10, $1
	store %11, %2
	jump bb1
bb3:
	%12 = load %3
	return %12
}
`)
}

func TestLowerIfWithoutElse(t *testing.T) {
	// With no else block, the false edge of the cjump goes straight to the
	// join block.
	mod := lowerSrc(t, `
fn fib(n) {
	if n < 2 {
		return n;
	}
	return fib(n - 1) + fib(n - 2);
}
`)

	checkDump(t, mod, `define @fib(%0) {
bb0:
	%1 = alloca
	store %0, %1
	%2 = load %1
	%3 = lt %2, $2
	cjump %3, bb1, bb2
bb1:
	%4 = load %1
	return %4
bb2:
	%5 = load %1
	%6 = sub %5, $1
	%7 = call @fib(%6)
	%8 = load %1
	%9 = sub %8, $2
	%10 = call @fib(%9)
	%11 = add %7, %10
	return %11
}
`)
}

func TestLowerDropsUnreachableStatements(t *testing.T) {
	mod := lowerSrc(t, `
fn f() {
	return 1;
	return 2;
}
`)

	checkDump(t, mod, `define @f() {
bb0:
	return $1
}
`)
}

func TestLowerImplicitReturn(t *testing.T) {
	mod := lowerSrc(t, "fn f() {}")

	checkDump(t, mod, `define @f() {
bb0:
	return $0
}
`)
}

func TestLowerShortCircuitAnd(t *testing.T) {
	mod := lowerSrc(t, `
fn f(a, b) {
	return a && b;
}
`)

	checkDump(t, mod, `define @f(%0, %1) {
bb0:
	%2 = alloca
	%3 = alloca
	store %0, %2
	store %1, %3
	%4 = alloca
	%5 = load %2
	store $0, %4
	cjump %5, bb1, bb2
bb1:
	%6 = load %3
	%7 = ne %6, $0
	store %7, %4
	jump bb2
bb2:
	%8 = load %4
	return %8
}
`)
}

func TestLowerShortCircuitOrBranches(t *testing.T) {
	// `||` settles to 1 when the left operand is nonzero, so the taken edge
	// of the cjump must be the join block.
	mod := lowerSrc(t, "fn f(a, b) { return a || b; }")

	fn := mod.Funcs[0]
	entry := fn.Blocks[0]

	term := entry.Term()
	if term.Op != ir.OpCJump {
		t.Fatalf("expected the entry block to end in a cjump")
	}

	// The nonzero edge skips the right-operand block.
	if term.Targets[0].ID != 2 || term.Targets[1].ID != 1 {
		t.Errorf("bad cjump edges: bb%d, bb%d", term.Targets[0].ID, term.Targets[1].ID)
	}
}

func TestLowerShortCircuitInLoopCondition(t *testing.T) {
	// The hidden short-circuit slot must be allocated in the entry block, not
	// in the loop header where it would re-execute on every iteration.
	mod := lowerSrc(t, `
fn count(n) {
	let i = 0;
	while i < n && 1 {
		i = i + 1;
	}
	return i;
}
`)

	checkDump(t, mod, `define @count(%0) {
bb0:
	%1 = alloca
	%2 = alloca
	store %0, %1
	store $0, %2
	%3 = alloca
	jump bb1
bb1:
	%4 = load %2
	%5 = load %1
	%6 = lt %4, %5
	store $0, %3
	cjump %6, bb4, bb5
bb2:
	%9 = load %2
	%10 = add %9, $1
	store %10, %2
	jump bb1
bb3:
	%11 = load %2
	return %11
bb4:
	%7 = ne $1, $0
	store %7, %3
	jump bb5
bb5:
	%8 = load %3
	cjump %8, bb2, bb3
}
`)

	for _, block := range mod.Funcs[0].Blocks[1:] {
		for _, inst := range block.Insts {
			if inst.Op == ir.OpAlloca {
				t.Errorf("alloca %s found outside the entry block in %s", inst.Result.Repr(), block.Name())
			}
		}
	}
}

func TestLowerUnaryOps(t *testing.T) {
	mod := lowerSrc(t, "fn f(a) { return -a + !a; }")

	checkDump(t, mod, `define @f(%0) {
bb0:
	%1 = alloca
	store %0, %1
	%2 = load %1
	%3 = sub $0, %2
	%4 = load %1
	%5 = eq %4, $0
	%6 = add %3, %5
	return %6
}
`)
}

func TestLowerExternAndCall(t *testing.T) {
	mod := lowerSrc(t, `
extern fn putd(value);

fn main() {
	putd(42);
	return 0;
}
`)

	checkDump(t, mod, `extern @putd(%0)

define @main() {
bb0:
	%0 = call @putd($42)
	return $0
}
`)
}

func TestLowerIterativeFib(t *testing.T) {
	mod := lowerSrc(t, `
fn fib_iter(n) {
	let a = 0;
	let b = 1;
	let i = 0;
	while i < n {
		let t = a + b;
		a = b;
		b = t;
		i = i + 1;
	}
	return a;
}
`)

	checkDump(t, mod, `define @fib_iter(%0) {
bb0:
	%1 = alloca
	%2 = alloca
	%3 = alloca
	%4 = alloca
	%5 = alloca
	store %0, %1
	store $0, %2
	store $1, %3
	store $0, %4
	jump bb1
bb1:
	%6 = load %4
	%7 = load %1
	%8 = lt %6, %7
	cjump %8, bb2, bb3
bb2:
	%9 = load %2
	%10 = load %3
	%11 = add %9, %10
	store %11, %5
	%12 = load %3
	store %12, %2
	%13 = load %5
	store %13, %3
	%14 = load %4
	%15 = add %14, $1
	store %15, %4
	jump bb1
bb3:
	%16 = load %2
	return %16
}
`)
}

func TestLowerFactorial(t *testing.T) {
	mod := lowerSrc(t, `
fn fact(n) {
	if n <= 1 {
		return 1;
	}
	return n * fact(n - 1);
}
`)

	checkDump(t, mod, `define @fact(%0) {
bb0:
	%1 = alloca
	store %0, %1
	%2 = load %1
	%3 = le %2, $1
	cjump %3, bb1, bb2
bb1:
	return $1
bb2:
	%4 = load %1
	%5 = load %1
	%6 = sub %5, $1
	%7 = call @fact(%6)
	%8 = mul %4, %7
	return %8
}
`)
}

func TestLowerPrimeEnumeration(t *testing.T) {
	// Nested loops with a remainder-based divisibility test and an extern
	// call on the printing path.
	mod := lowerSrc(t, `
extern fn putd(value);

fn main() {
	let n = 2;
	while n < 50 {
		let is_prime = 1;
		let d = 2;
		while d * d <= n {
			if n % d == 0 {
				is_prime = 0;
			}
			d = d + 1;
		}
		if is_prime {
			putd(n);
		}
		n = n + 1;
	}
	return 0;
}
`)

	checkDump(t, mod, `extern @putd(%0)

define @main() {
bb0:
	%0 = alloca
	%1 = alloca
	%2 = alloca
	store $2, %0
	jump bb1
bb1:
	%3 = load %0
	%4 = lt %3, $50
	cjump %4, bb2, bb3
bb2:
	store $1, %1
	store $2, %2
	jump bb4
bb3:
	return $0
bb4:
	%5 = load %2
	%6 = load %2
	%7 = mul %5, %6
	%8 = load %0
	%9 = le %7, %8
	cjump %9, bb5, bb6
bb5:
	%10 = load %0
	%11 = load %2
	%12 = mod %10, %11
	%13 = eq %12, $0
	cjump %13, bb7, bb8
bb6:
	%16 = load %1
	cjump %16, bb9, bb10
bb7:
	store $0, %1
	jump bb8
bb8:
	%14 = load %2
	%15 = add %14, $1
	store %15, %2
	jump bb4
bb9:
	%17 = load %0
	%18 = call @putd(%17)
	jump bb10
bb10:
	%19 = load %0
	%20 = add %19, $1
	store %20, %0
	jump bb1
}
`)
}

func TestLowerGCD(t *testing.T) {
	mod := lowerSrc(t, `
fn gcd(a, b) {
	while b != 0 {
		let t = b;
		b = a % b;
		a = t;
	}
	return a;
}
`)

	checkDump(t, mod, `define @gcd(%0, %1) {
bb0:
	%2 = alloca
	%3 = alloca
	%4 = alloca
	store %0, %2
	store %1, %3
	jump bb1
bb1:
	%5 = load %3
	%6 = ne %5, $0
	cjump %6, bb2, bb3
bb2:
	%7 = load %3
	store %7, %4
	%8 = load %2
	%9 = load %3
	%10 = mod %8, %9
	store %10, %3
	%11 = load %4
	store %11, %2
	jump bb1
bb3:
	%12 = load %2
	return %12
}
`)
}

func TestLowerDeterminism(t *testing.T) {
	src := `
fn fib(n) {
	if n < 2 {
		return n;
	}
	return fib(n - 1) + fib(n - 2);
}
`

	first := lowerSrc(t, src).String()
	second := lowerSrc(t, src).String()

	if first != second {
		t.Errorf("two lowerings of the same source produced different dumps")
	}
}
