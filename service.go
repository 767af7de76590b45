package brandpdf

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/alnah/go-brandpdf/internal/assets"
)

// Service orchestrates the brand-themed markdown-to-PDF pipeline. The brand
// is an explicit value resolved once and passed in; the service holds no
// ambient configuration, so concurrent services with different brands are
// safe.
type Service struct {
	cfg           serviceConfig
	brand         BrandConfig
	theme         ThemeParameters
	stylesheet    string
	substituter   *DiagramSubstituter
	htmlConverter htmlConverter
	cssInjector   cssInjector
	pdfConverter  PDFConverter
	logger        zerolog.Logger

	ownScratch string // scratch dir created by the service, removed on Close
}

// New creates a Service for the given brand. The diagram theme and
// stylesheet are derived once here and reused for every document.
func New(brand BrandConfig, opts ...Option) (*Service, error) {
	s := &Service{
		cfg:           serviceConfig{timeout: defaultTimeout},
		brand:         brand,
		theme:         DeriveDiagramTheme(brand.Colors),
		stylesheet:    assets.DocumentStyle() + "\n" + BuildStyleSheet(brand),
		htmlConverter: newGoldmarkConverter(),
		cssInjector:   &cssInjection{},
		logger:        zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.scratchDir == "" {
		dir, err := os.MkdirTemp("", "brandpdf-scratch-")
		if err != nil {
			return nil, fmt.Errorf("creating scratch directory: %w", err)
		}
		s.cfg.scratchDir = dir
		s.ownScratch = dir
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.substituter == nil {
		s.substituter = NewDiagramSubstituter(s.cfg.scratchDir, s.cfg.noSandbox,
			WithSubstituterLogger(s.logger))
	}
	if s.pdfConverter == nil {
		s.pdfConverter = newRodConverter(s.cfg.timeout)
	}

	return s, nil
}

// Brand returns the resolved brand the service was built with.
func (s *Service) Brand() BrandConfig {
	return s.brand
}

// Theme returns the derived diagram theme parameters.
func (s *Service) Theme() ThemeParameters {
	return s.theme
}

// Generate runs the full pipeline for one document and returns the PDF and
// intermediate HTML. Diagram failures degrade per block; any other stage
// failure fails the document.
func (s *Service) Generate(ctx context.Context, input Input) (*Result, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	content := normalizeLineEndings(input.Markdown)
	content = s.substituter.Substitute(ctx, content, s.theme)
	content = compressBlankLines(content)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	htmlContent, err := s.htmlConverter.ToHTML(ctx, s.brand.Name, content)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent = s.cssInjector.InjectCSS(ctx, htmlContent, s.stylesheet)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{HTML: htmlContent}
	if input.HTMLOnly {
		return result, nil
	}

	job := s.buildRenderJob(htmlContent)
	pdfBytes, err := s.pdfConverter.ToPDF(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	result.PDF = pdfBytes

	return result, nil
}

// buildRenderJob packs the document and the derived header/footer markup
// into the final render payload. Pure composition: no external calls, safe
// to call repeatedly with the same inputs.
func (s *Service) buildRenderJob(htmlContent string) RenderJob {
	return RenderJob{
		HTML:           htmlContent,
		HeaderTemplate: BuildHeaderTemplate(s.brand),
		FooterTemplate: BuildFooterTemplate(s.brand),
	}
}

// Close releases resources: the headless browser and, when the service
// allocated its own scratch directory, that directory.
func (s *Service) Close() error {
	var err error
	if s.pdfConverter != nil {
		err = s.pdfConverter.Close()
	}
	if s.ownScratch != "" {
		if rmErr := os.RemoveAll(s.ownScratch); rmErr != nil && err == nil {
			err = rmErr
		}
		s.ownScratch = ""
	}
	return err
}
