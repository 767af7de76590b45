package main

import (
	"errors"
	"os"

	brandpdf "github.com/alnah/go-brandpdf"
)

// Exit codes for the brandpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Full or partial batch success (including zero eligible files)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags or arguments
	ExitIO      = 3 // Missing target, permission denied, unsupported target type
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Explicit help request prints usage and succeeds.
	if errors.Is(err, errHelpRequested) {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, brandpdf.ErrBrowserConnect) ||
		errors.Is(err, brandpdf.ErrPageCreate) ||
		errors.Is(err, brandpdf.ErrPageLoad) ||
		errors.Is(err, brandpdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrTargetNotFound) ||
		errors.Is(err, ErrUnsupportedTarget) ||
		errors.Is(err, ErrWritePDF) {
		return ExitIO
	}

	// Usage errors (exit 2)
	if errors.Is(err, ErrNoTarget) ||
		errors.Is(err, ErrInvalidExtension) {
		return ExitUsage
	}

	return ExitGeneral
}
