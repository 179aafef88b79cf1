package report

import (
	"fmt"
	"os"
)

// ErrorKind classifies a compile error by the pipeline stage that detects it.
type ErrorKind int

// Enumeration of compile error kinds.
const (
	ErrKindLex    ErrorKind = iota // Unrecognized character.
	ErrKindSyntax                  // Unexpected token or missing construct.
	ErrKindName                    // Undeclared or duplicate identifier.
	ErrKindArity                   // Call argument count mismatch.
)

// errorKindStrings maps error kinds to the label printed in diagnostics.
var errorKindStrings = map[ErrorKind]string{
	ErrKindLex:    "lex",
	ErrKindSyntax: "syntax",
	ErrKindName:   "name",
	ErrKindArity:  "arity",
}

func (ek ErrorKind) String() string {
	return errorKindStrings[ek]
}

// CompileError is a compilation error raised within a stage of the pipeline.
// Stages panic with a *CompileError and rely on a deferred Reporter.Catch to
// recover and record it: every detected problem is fatal to the compile, so
// no stage ever continues past its first error.
type CompileError struct {
	// The kind of the error.
	Kind ErrorKind

	// The error message.
	Message string

	// The span over which the error occurs.
	Span *TextSpan
}

func (ce *CompileError) Error() string {
	return ce.Message
}

// Raise creates a new compile error of the given kind over span.
func Raise(kind ErrorKind, span *TextSpan, msg string, args ...interface{}) *CompileError {
	return &CompileError{Kind: kind, Message: fmt.Sprintf(msg, args...), Span: span}
}

// -----------------------------------------------------------------------------

// ReportICE reports an internal compiler error and aborts the process.  These
// result from a bug or unexpected condition inside the compiler: they are not
// intended to ever happen and are always displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	displayICE(fmt.Sprintf(message, args...))

	os.Exit(-1)
}

// ReportFatal reports a fatal error and aborts the process.  These are
// expected errors that make compilation impossible to even begin: an
// unreadable input file, an invalid configuration file, etc.
func ReportFatal(message string, args ...interface{}) {
	displayFatal(fmt.Sprintf(message, args...))

	os.Exit(1)
}
