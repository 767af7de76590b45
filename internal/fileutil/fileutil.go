// Package fileutil provides file and path helpers for the rendering
// pipeline: temp HTML handoff to the browser and brand config probing.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// WriteTempFile writes content to a fresh temp file named brandpdf-*.<ext>
// and returns its path with a cleanup func removing it. The extension is
// validated so callers cannot smuggle path components into the name.
func WriteTempFile(content, extension string) (string, func(), error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "brandpdf-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	_, werr := f.WriteString(content)
	cerr := f.Close()
	if werr != nil || cerr != nil {
		cleanup()
		if werr != nil {
			return "", nil, fmt.Errorf("writing temp file: %w", werr)
		}
		return "", nil, fmt.Errorf("closing temp file: %w", cerr)
	}

	return path, cleanup, nil
}

// ValidateExtension rejects extensions that would escape the temp name.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path names an existing non-directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsURL reports whether s is an http(s) URL. Used to gate the font
// stylesheet @import, which only makes sense for remote sheets.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
