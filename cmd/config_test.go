package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	srcPath := filepath.Join(t.TempDir(), "prog.toy")

	cfg := loadConfig(srcPath)
	if cfg.OutMode != "" || cfg.LogLevel != "" {
		t.Errorf("expected the zero configuration, got %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfgText := "[build]\noutmode = \"llvm\"\nloglevel = \"error\"\n"
	if err := os.WriteFile(filepath.Join(dir, "toy.toml"), []byte(cfgText), 0644); err != nil {
		t.Fatalf("error writing config file: %s", err)
	}

	cfg := loadConfig(filepath.Join(dir, "prog.toy"))
	if cfg.OutMode != "llvm" {
		t.Errorf("expected outmode `llvm` but got %q", cfg.OutMode)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("expected loglevel `error` but got %q", cfg.LogLevel)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	if err := validateConfig(&tomlBuildConfig{OutMode: "wasm"}); err == nil {
		t.Errorf("expected an error for an unsupported outmode")
	}

	if err := validateConfig(&tomlBuildConfig{LogLevel: "debug"}); err == nil {
		t.Errorf("expected an error for an unsupported loglevel")
	}
}
