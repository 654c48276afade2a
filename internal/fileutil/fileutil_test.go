package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTempFile(t *testing.T) {
	path, cleanup, err := WriteTempFile("<html></html>", "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error: %v", err)
	}
	defer cleanup()

	if !strings.HasSuffix(path, ".html") {
		t.Errorf("path %q missing .html suffix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(data) != "<html></html>" {
		t.Errorf("content = %q", string(data))
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup did not remove the file")
	}
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		wantErr error
	}{
		{"valid", "html", nil},
		{"empty", "", ErrExtensionEmpty},
		{"forward slash", "a/b", ErrExtensionPathTraversal},
		{"backslash", `a\b`, ErrExtensionPathTraversal},
		{"null byte", "a\x00b", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateExtension(tt.ext); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) error = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exists.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false, want true")
	}
	if FileExists(filepath.Join(dir, "missing.txt")) {
		t.Error("FileExists(missing) = true, want false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true, want false")
	}
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"config", false},
		{"./config.yaml", true},
		{"/etc/config.yaml", true},
		{`C:\config.yaml`, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
