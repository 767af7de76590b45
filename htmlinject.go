package brandpdf

import (
	"context"
	"strings"
)

// cssInjector abstracts CSS injection into HTML.
type cssInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// cssInjection embeds a stylesheet as a <style> block in HTML content.
type cssInjection struct{}

// InjectCSS places a <style> block at the best available insertion point:
// end of <head>, start of <body>, or the front of the document. The CSS is
// sanitized so it cannot close the style block early.
func (s *cssInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := "<style>" + sanitizeCSS(cssContent) + "</style>"
	at := insertionPoint(htmlContent)
	return htmlContent[:at] + block + htmlContent[at:]
}

// insertionPoint returns the byte offset where a style block belongs.
func insertionPoint(htmlContent string) int {
	lower := strings.ToLower(htmlContent)

	if idx := strings.Index(lower, "</head>"); idx != -1 {
		return idx
	}
	if idx := strings.Index(lower, "<body"); idx != -1 {
		if close := strings.IndexByte(htmlContent[idx:], '>'); close != -1 {
			return idx + close + 1
		}
	}
	return 0
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
