package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFileLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "orffinder.cfg")
	content := `# orffinder configuration
genome-file="~/genomes/ecoli.fa"   # quoted, with a comment
alphabet = ACGT
export log-level=debug
listen: 127.0.0.1:8080
note='keep # this'
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("os.WriteFile(%q) = %v", path, err)
	}

	f := File{Path: path}
	if !f.Exists() {
		t.Fatalf("File{%q}.Exists() = false", path)
	}
	if err := f.Load(); err != nil {
		t.Fatalf("File{%q}.Load() = %v", path, err)
	}

	want := map[string]string{
		"genome-file": "~/genomes/ecoli.fa",
		"alphabet":    "ACGT",
		"log-level":   "debug",
		"listen":      "127.0.0.1:8080",
		"note":        "keep # this",
	}
	if diff := cmp.Diff(want, f.Config); diff != "" {
		t.Errorf("File.Config diff (-want +got):\n%s", diff)
	}
}

func TestParseLineErrors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"no separator here", "=value"} {
		if _, _, err := parseLine(line); err == nil {
			t.Errorf("parseLine(%q) error = nil, want error", line)
		}
	}
}
