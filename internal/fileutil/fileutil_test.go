package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-brandpdf/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestWriteTempFile
// ---------------------------------------------------------------------------

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	t.Run("creates file with content and extension", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := fileutil.WriteTempFile("<html></html>", "html")
		if err != nil {
			t.Fatalf("WriteTempFile: %v", err)
		}
		defer cleanup()

		if !strings.HasSuffix(path, ".html") {
			t.Errorf("path %q missing extension", path)
		}
		data, err := os.ReadFile(path) // #nosec G304 -- test-created path
		if err != nil {
			t.Fatalf("reading temp file: %v", err)
		}
		if string(data) != "<html></html>" {
			t.Errorf("content = %q", data)
		}
	})

	t.Run("cleanup removes the file", func(t *testing.T) {
		t.Parallel()

		path, cleanup, err := fileutil.WriteTempFile("x", "md")
		if err != nil {
			t.Fatalf("WriteTempFile: %v", err)
		}
		cleanup()

		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file still exists after cleanup: %v", err)
		}
	})

	t.Run("invalid extensions are rejected", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			ext     string
			wantErr error
		}{
			{ext: "", wantErr: fileutil.ErrExtensionEmpty},
			{ext: "a/b", wantErr: fileutil.ErrExtensionPathTraversal},
			{ext: "a\\b", wantErr: fileutil.ErrExtensionPathTraversal},
			{ext: "a\x00b", wantErr: fileutil.ErrExtensionPathTraversal},
		}
		for _, tt := range tests {
			if _, _, err := fileutil.WriteTempFile("x", tt.ext); !errors.Is(err, tt.wantErr) {
				t.Errorf("ext %q: err = %v, want %v", tt.ext, err, tt.wantErr)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestFileExists
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(path) {
		t.Error("existing file reported missing")
	}
	if fileutil.FileExists(filepath.Join(dir, "nope")) {
		t.Error("missing file reported existing")
	}
	if fileutil.FileExists(dir) {
		t.Error("directory reported as file")
	}
}

// ---------------------------------------------------------------------------
// TestIsURL
// ---------------------------------------------------------------------------

func TestIsURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"https://fonts.example.com/x.css", true},
		{"http://example.com", true},
		{"ftp://example.com", false},
		{"/local/path.css", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := fileutil.IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
