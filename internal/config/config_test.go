package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faber-lang/faber/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "faber.yaml")
	if err := os.WriteFile(path, []byte("target: zig\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Target != "zig" {
		t.Fatalf("Target = %q, want zig", cfg.Target)
	}
	if cfg.IndentWidth != 0 {
		t.Fatalf("IndentWidth = %d, want 0 (unset, defers to backend default)", cfg.IndentWidth)
	}
}

func TestIndentFor_OverridePrecedence(t *testing.T) {
	cfg := &config.Config{
		IndentWidth: 2,
		Targets: map[string]config.TargetOverride{
			"zig": {IndentWidth: 4},
		},
	}
	if got := cfg.IndentFor("zig"); got != 4 {
		t.Fatalf("IndentFor(zig) = %d, want 4 (target override wins)", got)
	}
	if got := cfg.IndentFor("ts"); got != 2 {
		t.Fatalf("IndentFor(ts) = %d, want 2 (falls back to global)", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
