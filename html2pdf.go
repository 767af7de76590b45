package brandpdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-brandpdf/internal/fileutil"
)

// PDFConverter abstracts HTML to PDF conversion to allow different backends.
type PDFConverter interface {
	ToPDF(ctx context.Context, job RenderJob) ([]byte, error)
	Close() error
}

// Compile-time interface check.
var _ PDFConverter = (*rodConverter)(nil)

// A4 page geometry. Chrome takes inches; margins are 20 mm sides and
// 25 mm top/bottom.
const (
	paperWidthInches      = 8.27
	paperHeightInches     = 11.69
	marginSideInches      = 0.79
	marginTopBottomInches = 0.98
)

// rodRenderer renders an HTML file to PDF using go-rod. Rod automatically
// downloads Chromium on first run if not found.
type rodRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") != "" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// renderFromFile opens a local HTML file in headless Chrome and renders it
// to PDF with the job's header/footer templates.
func (r *rodRenderer) renderFromFile(ctx context.Context, filePath string, job RenderJob) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPDFOptions(job))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPDFOptions constructs the Chrome print request: fixed A4 geometry,
// background printing, and the job's header/footer markup.
func buildPDFOptions(job RenderJob) *proto.PagePrintToPDF {
	header := job.HeaderTemplate
	if header == "" {
		header = "<span></span>"
	}
	footer := job.FooterTemplate
	if footer == "" {
		footer = "<span></span>"
	}

	return &proto.PagePrintToPDF{
		PaperWidth:          floatPtr(paperWidthInches),
		PaperHeight:         floatPtr(paperHeightInches),
		MarginTop:           floatPtr(marginTopBottomInches),
		MarginBottom:        floatPtr(marginTopBottomInches),
		MarginLeft:          floatPtr(marginSideInches),
		MarginRight:         floatPtr(marginSideInches),
		PrintBackground:     true,
		DisplayHeaderFooter: true,
		HeaderTemplate:      header,
		FooterTemplate:      footer,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer *rodRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout),
	}
}

// ToPDF converts the job's HTML to PDF bytes using headless Chrome.
func (c *rodConverter) ToPDF(ctx context.Context, job RenderJob) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(job.HTML, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.renderFromFile(ctx, tmpPath, job)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
