package cmd

import (
	"bufio"
	"os"

	"toyc/ast"
	"toyc/codegen"
	"toyc/ir"
	"toyc/llvmgen"
	"toyc/lower"
	"toyc/report"
	"toyc/syntax"
	"toyc/walk"
)

// Enumeration of output modes.
const (
	// OutModeASM emits AArch64 assembly via the built-in generator.
	OutModeASM = iota

	// OutModeLLVM emits LLVM IR for an external toolchain to compile.
	OutModeLLVM
)

// Driver orchestrates a single compile invocation: one source file in, one
// output artifact (or IR dump) out.
type Driver struct {
	// The path to the source file as given by the user.
	path string

	// The reporter for this invocation.
	rep *report.Reporter

	// The selected output mode.
	outMode int

	// The path the output artifact is written to.
	outPath string
}

// NewDriver creates a new driver compiling the file at path.
func NewDriver(path string, rep *report.Reporter, outMode int, outPath string) *Driver {
	if outPath == "" {
		// The default output sits next to the input with a suffix appended.
		outPath = path + ".s"
		if outMode == OutModeLLVM {
			outPath = path + ".ll"
		}
	}

	return &Driver{path: path, rep: rep, outMode: outMode, outPath: outPath}
}

// Compile runs the full pipeline and writes the output artifact.  It returns
// false if any stage failed.
func (d *Driver) Compile() bool {
	mod := d.BuildIR()
	if mod == nil {
		return false
	}

	var text string
	switch d.outMode {
	case OutModeASM:
		text = codegen.Generate(mod)
	case OutModeLLVM:
		text = llvmgen.Generate(mod)
	}

	if err := os.WriteFile(d.outPath, []byte(text), 0644); err != nil {
		report.ReportFatal("error writing output file at `%s`: %s", d.outPath, err.Error())
		return false
	}

	d.rep.ReportInfo("Compiled", d.outPath)
	return true
}

// DumpIR runs the pipeline up to lowering and prints the textual IR to
// standard output.  No output file is written.
func (d *Driver) DumpIR() bool {
	mod := d.BuildIR()
	if mod == nil {
		return false
	}

	os.Stdout.WriteString(mod.String())
	return true
}

// BuildIR runs the front half of the pipeline (lex, parse, resolve, lower)
// and returns the IR module, or nil if the source did not compile.
func (d *Driver) BuildIR() *ir.Module {
	f, err := os.Open(d.path)
	if err != nil {
		report.ReportFatal("error opening source file at `%s`: %s", d.path, err.Error())
		return nil
	}
	defer f.Close()

	unit := d.parse(f)
	if unit == nil {
		return nil
	}

	d.resolve(unit)
	if d.rep.AnyErrors() {
		return nil
	}

	return lower.Lower(unit)
}

// parse lexes and parses the opened source file.
func (d *Driver) parse(f *os.File) (unit *ast.CompilationUnit) {
	defer d.rep.Catch(d.path)

	return syntax.Parse(d.path, bufio.NewReader(f))
}

// resolve binds all names in the parsed unit.
func (d *Driver) resolve(unit *ast.CompilationUnit) {
	defer d.rep.Catch(d.path)

	walk.Walk(unit)
}
