package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file discovery.
var (
	ErrTargetNotFound    = errors.New("target path does not exist")
	ErrUnsupportedTarget = errors.New("target is neither a markdown file nor a directory")
	ErrInvalidExtension  = errors.New("file must have .md or .markdown extension")
)

// excludedNameParts marks files that are templates or readmes, never
// documents to publish. Matched case-insensitively as substrings.
var excludedNameParts = []string{"readme", "template"}

// discoverFiles finds the markdown files to process. A file target is
// processed exactly as given; a directory target selects every eligible
// markdown file directly inside it (non-recursive).
func discoverFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
		}
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTarget, target)
		}
		if !isMarkdownFile(target) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(target))
		}
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", target, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isMarkdownFile(name) || isExcludedName(name) {
			continue
		}
		files = append(files, filepath.Join(target, name))
	}
	return files, nil
}

// isMarkdownFile checks for a .md or .markdown extension.
func isMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// isExcludedName reports whether the file name signals a template or readme.
func isExcludedName(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range excludedNameParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

// outputPath builds the output file path: <basename>_<stamp>.<ext> in
// outputDir, or alongside the source when outputDir is empty.
func outputPath(inputPath, outputDir, stamp, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := fmt.Sprintf("%s_%s.%s", base, stamp, ext)
	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	return filepath.Join(outputDir, name)
}
