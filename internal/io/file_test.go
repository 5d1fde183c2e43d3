package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-layer.png", "normal-layer.png"},
		{"layer:with:colons", "layer_with_colons"},
		{"layer<with>brackets", "layer_with_brackets"},
		{"layer/with\\slashes", "layer_with_slashes"},
		{"layer|with|pipes", "layer_with_pipes"},
		{"layer?with*wildcards", "layer_with_wildcards"},
		{"layer\"with\"quotes", "layer_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	nested := filepath.Join(base, "output", "images")

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Errorf("EnsureDir() created %q, but it is not a directory", nested)
	}

	// Creating an existing directory is not an error.
	if err := EnsureDir(nested); err != nil {
		t.Errorf("EnsureDir() on existing dir error = %v", err)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "7.json")
	content := []byte(`{"name":"Punkz #7"}`)

	if err := WriteFile(context.Background(), path, content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("WriteFile() wrote %q, want %q", got, content)
	}
}
