package common

import "toyc/report"

// Symbol represents a semantic symbol: a named local value.
type Symbol struct {
	// The name of the symbol.
	Name string

	// Where the symbol was defined.
	DefSpan *report.TextSpan

	// The symbol's slot: the index of its storage location within the
	// enclosing function's flat slot array.  Every variable and parameter
	// gets its own slot; shadowing declarations get fresh slots.
	Slot int
}

// FuncSymbol represents a globally declared function: either a toy function
// definition or an `extern` declaration resolved at link time.
type FuncSymbol struct {
	// The name of the function.  Function symbols are never mangled: the
	// emitted assembly symbol is exactly this name.
	Name string

	// Where the function was declared.
	DefSpan *report.TextSpan

	// The number of parameters the function accepts.
	Arity int

	// Whether the function is an extern declaration (no body).
	Extern bool
}
