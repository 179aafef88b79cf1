// Package cmd implements the command-line surface of the compiler and the
// driver that runs the compilation pipeline.
package cmd

import (
	"os"

	"github.com/ComedicChimera/olive"

	"toyc/common"
	"toyc/report"
)

// logLevels maps the `--loglevel` selector values to reporter log levels.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"verbose": report.LogLevelVerbose,
}

// outModes maps the `-m` selector values to output modes.
var outModes = map[string]int{
	"asm":  OutModeASM,
	"llvm": OutModeLLVM,
}

// Execute runs the main `toyc` application.  It returns whether the requested
// command succeeded.
func Execute() bool {
	// set up the argument parser and all its commands and arguments
	cli := olive.NewCLI("toyc", "toyc is a compiler for the toy language", true)
	cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "verbose"})

	buildCmd := cli.AddSubcommand("build", "compile a source file", true)
	buildCmd.AddPrimaryArg("file-path", "the path to the source file", true)
	buildCmd.AddSelectorArg("mode", "m", "the output mode", false, []string{"asm", "llvm"})
	buildCmd.AddStringArg("out", "o", "the output file path", false)

	irCmd := cli.AddSubcommand("ir", "print the intermediate representation of a source file", true)
	irCmd.AddPrimaryArg("file-path", "the path to the source file", true)

	cli.AddSubcommand("version", "print the toyc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal("cli usage error: %s", err.Error())
		return false
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "build":
		return execBuildCommand(subResult, result)
	case "ir":
		return execIRCommand(subResult, result)
	case "version":
		rep := report.NewReporter(report.LogLevelVerbose)
		rep.ReportInfo("Toy Version", common.ToyVersion)
	}

	return true
}

// execBuildCommand executes the build subcommand.
func execBuildCommand(result, rootResult *olive.ArgParseResult) bool {
	srcPath, _ := result.PrimaryArg()
	cfg := loadConfig(srcPath)

	rep := report.NewReporter(selectLogLevel(rootResult, cfg))

	outMode := OutModeASM
	if modeName, ok := stringArg(result, "mode"); ok {
		outMode = outModes[modeName]
	} else if cfg.OutMode != "" {
		outMode = outModes[cfg.OutMode]
	}

	outPath, _ := stringArg(result, "out")

	return NewDriver(srcPath, rep, outMode, outPath).Compile()
}

// execIRCommand executes the ir subcommand.
func execIRCommand(result, rootResult *olive.ArgParseResult) bool {
	srcPath, _ := result.PrimaryArg()
	cfg := loadConfig(srcPath)

	rep := report.NewReporter(selectLogLevel(rootResult, cfg))

	return NewDriver(srcPath, rep, OutModeASM, "").DumpIR()
}

// selectLogLevel resolves the effective log level: an explicit command-line
// selector wins over the config file, which wins over the verbose default.
func selectLogLevel(rootResult *olive.ArgParseResult, cfg *tomlBuildConfig) int {
	if name, ok := stringArg(rootResult, "loglevel"); ok {
		return logLevels[name]
	}

	if cfg.LogLevel != "" {
		return logLevels[cfg.LogLevel]
	}

	return report.LogLevelVerbose
}

// stringArg extracts an optional string argument from a parse result.
func stringArg(result *olive.ArgParseResult, name string) (string, bool) {
	if val, ok := result.Arguments[name]; ok {
		return val.(string), true
	}

	return "", false
}
