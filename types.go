package brandpdf

import (
	"time"

	"github.com/rs/zerolog"
)

// Input contains generation parameters for one document.
type Input struct {
	Markdown string // Markdown content (required)
	HTMLOnly bool   // Skip PDF rendering; Result.PDF stays nil
}

// Result contains the generated PDF and the intermediate HTML.
type Result struct {
	PDF  []byte
	HTML string
}

// RenderJob is the complete payload for the page-layout rendering step:
// the diagram-substituted, style-injected document plus header/footer
// markup. Page geometry is fixed (A4, 20 mm side and 25 mm top/bottom
// margins) and lives in the renderer.
type RenderJob struct {
	HTML           string
	HeaderTemplate string
	FooterTemplate string
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout    time.Duration
	scratchDir string
	noSandbox  bool
}

// defaultTimeout bounds the page-rendering step when the caller's context
// carries no deadline.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the page-rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("brandpdf: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithScratchDir sets the directory for intermediate diagram artifacts.
// The caller owns its lifetime; when unset the service allocates one and
// removes it on Close.
func WithScratchDir(dir string) Option {
	return func(s *Service) {
		s.cfg.scratchDir = dir
	}
}

// WithNoSandbox disables browser sandboxing for the diagram renderer.
// Required when running inside containers without privileged namespaces.
func WithNoSandbox(noSandbox bool) Option {
	return func(s *Service) {
		s.cfg.noSandbox = noSandbox
	}
}

// WithLogger sets the progress logger. Defaults to zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDiagramSubstituter overrides the diagram substituter (e.g., by tests).
func WithDiagramSubstituter(sub *DiagramSubstituter) Option {
	return func(s *Service) {
		s.substituter = sub
	}
}

// WithPDFConverter overrides the PDF backend (e.g., by tests).
func WithPDFConverter(conv PDFConverter) Option {
	return func(s *Service) {
		s.pdfConverter = conv
	}
}
