package faber_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/faber-lang/faber/pkg/faber"
)

func TestCompileBatch_PreservesOrderAndRunsConcurrently(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 8; i++ {
		path := filepath.Join(dir, "f"+string(rune('a'+i))+".fbr")
		if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
			t.Fatalf("write fixture %d: %v", i, err)
		}
		files = append(files, path)
	}

	results := faber.CompileBatch(files, faber.BatchOptions{Target: "ts", Concurrency: 3})
	if len(results) != len(files) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(files))
	}
	for i, res := range results {
		if res.File != files[i] {
			t.Fatalf("results[%d].File = %q, want %q (order not preserved)", i, res.File, files[i])
		}
		if res.ReadErr != nil {
			t.Fatalf("results[%d].ReadErr = %v", i, res.ReadErr)
		}
		if res.Diagnostics.HasErrors() {
			t.Fatalf("results[%d] unexpected diagnostics: %+v", i, res.Diagnostics)
		}
		if res.Text == "" {
			t.Fatalf("results[%d].Text is empty", i)
		}
	}
}

func TestCompileBatch_MissingFile(t *testing.T) {
	results := faber.CompileBatch([]string{"/nonexistent/does-not-exist.fbr"}, faber.BatchOptions{Target: "ts"})
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].ReadErr == nil {
		t.Fatal("expected a ReadErr for a missing file")
	}
}

func TestCompileBatch_EmptyFileList(t *testing.T) {
	results := faber.CompileBatch(nil, faber.BatchOptions{Target: "ts"})
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0 for an empty file list", len(results))
	}
}
