package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"toyc/common"
	"toyc/report"
)

// tomlConfig represents the optional `toy.toml` build configuration file as
// it is encoded in TOML.
type tomlConfig struct {
	Build tomlBuildConfig `toml:"build"`
}

// tomlBuildConfig represents the `[build]` table of the configuration file.
type tomlBuildConfig struct {
	// The default output mode: `asm` or `llvm`.
	OutMode string `toml:"outmode"`

	// The default log level: `silent`, `error`, or `verbose`.
	LogLevel string `toml:"loglevel"`
}

// loadConfig loads the configuration file next to the given source file if
// one exists.  A missing file simply yields the zero configuration; a file
// that exists but cannot be read or parsed is a fatal error.  Values given on
// the command line always override configuration values.
func loadConfig(srcPath string) *tomlBuildConfig {
	cfgPath := filepath.Join(filepath.Dir(srcPath), common.ConfigFileName)

	buff, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &tomlBuildConfig{}
		}

		report.ReportFatal("error reading config file at `%s`: %s", cfgPath, err.Error())
		return nil
	}

	cfg := &tomlConfig{}
	if err := toml.Unmarshal(buff, cfg); err != nil {
		report.ReportFatal("error parsing config file at `%s`: %s", cfgPath, err.Error())
		return nil
	}

	if err := validateConfig(&cfg.Build); err != nil {
		report.ReportFatal("invalid config file at `%s`: %s", cfgPath, err.Error())
		return nil
	}

	return &cfg.Build
}

// validateConfig checks the configuration's enumerated fields.
func validateConfig(cfg *tomlBuildConfig) error {
	switch cfg.OutMode {
	case "", "asm", "llvm":
	default:
		return errInvalidValue("build.outmode", cfg.OutMode)
	}

	switch cfg.LogLevel {
	case "", "silent", "error", "verbose":
	default:
		return errInvalidValue("build.loglevel", cfg.LogLevel)
	}

	return nil
}

func errInvalidValue(key, value string) error {
	return fmt.Errorf("unsupported value `%s` for `%s`", value, key)
}
