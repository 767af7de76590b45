package brandpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Brand configuration errors.
	ErrBrandParse = errors.New("failed to parse brand config")

	// Diagram rendering errors.
	ErrDiagramRender    = errors.New("diagram rendering failed")
	ErrDiagramTimeout   = errors.New("diagram rendering timed out")
	ErrRendererNotFound = errors.New("diagram renderer not found")
)
