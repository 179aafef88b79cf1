package walk_test

import (
	"bufio"
	"strings"
	"testing"

	"toyc/ast"
	"toyc/report"
	"toyc/syntax"
	"toyc/walk"
)

// resolveSrc parses and resolves src, returning the unit or the compile
// error it panicked with.
func resolveSrc(src string) (unit *ast.CompilationUnit, cerr *report.CompileError) {
	defer func() {
		if x := recover(); x != nil {
			cerr = x.(*report.CompileError)
		}
	}()

	unit = syntax.Parse("test.toy", bufio.NewReader(strings.NewReader(src)))
	walk.Walk(unit)
	return
}

// mustResolve parses and resolves src, failing the test on any error.
func mustResolve(t *testing.T, src string) *ast.CompilationUnit {
	t.Helper()

	unit, cerr := resolveSrc(src)
	if cerr != nil {
		t.Fatalf("unexpected %s error: %s", cerr.Kind, cerr.Message)
	}

	return unit
}

func TestResolveSlotAssignment(t *testing.T) {
	unit := mustResolve(t, `
fn f(a, b) {
	let x = a;
	let y = b;
	return x + y;
}
`)

	fd := unit.Decls[0].(*ast.FuncDecl)

	if fd.NumSlots != 4 {
		t.Fatalf("expected 4 slots but got %d", fd.NumSlots)
	}

	// Parameters take the first slots in order, locals follow.
	if fd.Params[0].Slot != 0 || fd.Params[1].Slot != 1 {
		t.Errorf("bad parameter slots: %d, %d", fd.Params[0].Slot, fd.Params[1].Slot)
	}

	x := fd.Body.Stmts[0].(*ast.VarDecl)
	y := fd.Body.Stmts[1].(*ast.VarDecl)
	if x.Sym.Slot != 2 || y.Sym.Slot != 3 {
		t.Errorf("bad local slots: %d, %d", x.Sym.Slot, y.Sym.Slot)
	}
}

func TestResolveBindsIdentifiers(t *testing.T) {
	unit := mustResolve(t, `
fn f(a) {
	let x = a;
	return x;
}
`)

	fd := unit.Decls[0].(*ast.FuncDecl)

	init := fd.Body.Stmts[0].(*ast.VarDecl).Initializer.(*ast.Identifier)
	if init.Sym != fd.Params[0] {
		t.Errorf("expected `a` to bind to the parameter symbol")
	}

	ret := fd.Body.Stmts[1].(*ast.ReturnStmt).Value.(*ast.Identifier)
	if ret.Sym != fd.Body.Stmts[0].(*ast.VarDecl).Sym {
		t.Errorf("expected `x` to bind to the declaration symbol")
	}
}

func TestResolveShadowing(t *testing.T) {
	unit := mustResolve(t, `
fn f() {
	let x = 1;
	if 1 {
		let x = 2;
		x = 3;
	}
	return x;
}
`)

	fd := unit.Decls[0].(*ast.FuncDecl)

	outer := fd.Body.Stmts[0].(*ast.VarDecl)
	innerBlock := fd.Body.Stmts[1].(*ast.IfStmt).Then
	inner := innerBlock.Stmts[0].(*ast.VarDecl)

	// Shadowing declarations get their own slots.
	if outer.Sym.Slot == inner.Sym.Slot {
		t.Errorf("expected the shadowing declaration to get a fresh slot")
	}

	// The inner assignment binds to the inner declaration.
	assign := innerBlock.Stmts[1].(*ast.Assignment)
	if assign.Var.Sym != inner.Sym {
		t.Errorf("expected the inner assignment to bind to the shadowing declaration")
	}

	// The trailing return sees the outer declaration again.
	ret := fd.Body.Stmts[2].(*ast.ReturnStmt).Value.(*ast.Identifier)
	if ret.Sym != outer.Sym {
		t.Errorf("expected the return to bind to the outer declaration")
	}
}

func TestResolveForwardReference(t *testing.T) {
	// Functions may call functions declared later in the file.
	mustResolve(t, `
fn isEven(n) {
	if n == 0 {
		return 1;
	}
	return isOdd(n - 1);
}

fn isOdd(n) {
	if n == 0 {
		return 0;
	}
	return isEven(n - 1);
}
`)
}

func TestResolveExternCall(t *testing.T) {
	unit := mustResolve(t, `
extern fn putd(value);

fn main() {
	putd(42);
	return 0;
}
`)

	fd := unit.Decls[1].(*ast.FuncDecl)
	call := fd.Body.Stmts[0].(*ast.ExprStmt).Expr.(*ast.Call)

	if call.Sig == nil || !call.Sig.Extern {
		t.Errorf("expected the call to bind to the extern symbol")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind report.ErrorKind
	}{
		{"undefined variable", "fn f() { return x; }", report.ErrKindName},
		{"undefined function", "fn f() { return g(); }", report.ErrKindName},
		{"use before declaration", "fn f() { x = 1; let x = 2; }", report.ErrKindName},
		{"own initializer", "fn f() { let x = x; }", report.ErrKindName},
		{"variable out of scope", "fn f() { if 1 { let x = 1; } return x; }", report.ErrKindName},
		{"duplicate variable", "fn f() { let x = 1; let x = 2; }", report.ErrKindName},
		{"duplicate parameter", "fn f(a, a) { return a; }", report.ErrKindName},
		{"duplicate function", "fn f() { return 0; } fn f() { return 1; }", report.ErrKindName},
		{"extern collides with function", "extern fn f(a); fn f(a) { return a; }", report.ErrKindName},
		{"too few arguments", "fn g(a, b) { return a; } fn f() { return g(1); }", report.ErrKindArity},
		{"too many arguments", "fn g(a) { return a; } fn f() { return g(1, 2); }", report.ErrKindArity},
		{"extern arity mismatch", "extern fn putd(v); fn f() { putd(); return 0; }", report.ErrKindArity},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, cerr := resolveSrc(test.src)
			if cerr == nil {
				t.Fatal("expected a resolution error")
			}

			if cerr.Kind != test.kind {
				t.Errorf("expected a %s error but got a %s error", test.kind, cerr.Kind)
			}
		})
	}
}
