package report

import (
	"io"
	"os"
	"strings"
	"testing"
)

func TestRaise(t *testing.T) {
	span := &TextSpan{StartLine: 2, StartCol: 4, EndLine: 2, EndCol: 7}

	cerr := Raise(ErrKindName, span, "undefined variable: `%s`", "foo")

	if cerr.Kind != ErrKindName {
		t.Errorf("expected a name error but got a %s error", cerr.Kind)
	}

	if cerr.Error() != "undefined variable: `foo`" {
		t.Errorf("bad error message: %q", cerr.Error())
	}

	if cerr.Span != span {
		t.Errorf("expected the span to be carried through")
	}
}

func TestErrorKindStrings(t *testing.T) {
	tests := map[ErrorKind]string{
		ErrKindLex:    "lex",
		ErrKindSyntax: "syntax",
		ErrKindName:   "name",
		ErrKindArity:  "arity",
	}

	for kind, want := range tests {
		if kind.String() != want {
			t.Errorf("expected %q but got %q", want, kind.String())
		}
	}
}

func TestNewSpanOver(t *testing.T) {
	start := &TextSpan{StartLine: 0, StartCol: 3, EndLine: 0, EndCol: 5}
	end := &TextSpan{StartLine: 2, StartCol: 0, EndLine: 2, EndCol: 9}

	span := NewSpanOver(start, end)

	if span.StartLine != 0 || span.StartCol != 3 || span.EndLine != 2 || span.EndCol != 9 {
		t.Errorf("bad combined span: %+v", span)
	}
}

func TestReporterCatch(t *testing.T) {
	rep := NewReporter(LogLevelSilent)

	func() {
		defer rep.Catch("test.toy")
		panic(Raise(ErrKindSyntax, &TextSpan{}, "expected `;` but found `}`"))
	}()

	if !rep.AnyErrors() {
		t.Errorf("expected the reporter to record the caught error")
	}
}

// captureStreams runs f with both standard streams redirected to pipes and
// returns everything f wrote to each.
func captureStreams(t *testing.T, f func()) (stdout, stderr string) {
	t.Helper()

	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %s", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %s", err)
	}

	savedOut, savedErr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = outW, errW
	defer func() {
		os.Stdout, os.Stderr = savedOut, savedErr
	}()

	f()

	outW.Close()
	errW.Close()

	outBytes, _ := io.ReadAll(outR)
	errBytes, _ := io.ReadAll(errR)
	return string(outBytes), string(errBytes)
}

func TestCompileErrorsGoToErrorStream(t *testing.T) {
	rep := NewReporter(LogLevelError)

	stdout, stderr := captureStreams(t, func() {
		span := &TextSpan{StartLine: 0, StartCol: 4, EndLine: 0, EndCol: 5}
		rep.ReportCompileError("test.toy", Raise(ErrKindSyntax, span, "expected `;` but found `}`"))
	})

	if stdout != "" {
		t.Errorf("diagnostic leaked onto stdout: %q", stdout)
	}

	if !strings.Contains(stderr, "test.toy:1:5:") || !strings.Contains(stderr, "expected `;` but found `}`") {
		t.Errorf("bad diagnostic on stderr: %q", stderr)
	}
}
