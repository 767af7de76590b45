// Package brandpdf converts Markdown documents into branded PDF files,
// rendering embedded diagram notation to vector images and applying a
// configurable visual theme before producing paginated output.
//
// # Quick Start
//
// Resolve a brand, create a service, and generate:
//
//	brand := brandpdf.ResolveBrand("brand.yaml", logger)
//	svc, err := brandpdf.New(brand)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, brandpdf.Input{
//	    Markdown: "# Quarterly Report\n\n```mermaid\ngraph TD; A-->B\n```",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", result.PDF, 0644)
//
// The result carries both the PDF bytes (result.PDF) and the intermediate
// HTML (result.HTML) for debugging.
//
// # Pipeline
//
// Generation follows these stages:
//
//  1. Brand resolution (user config merged field-by-field over defaults)
//  2. Theme derivation (6 brand colors fanned out to diagram roles and CSS)
//  3. Diagram substitution (fenced mermaid/dot blocks replaced by SVG refs)
//  4. Markdown to HTML via Goldmark (GFM, syntax highlighting)
//  5. PDF rendering via headless Chrome (go-rod), A4 with branded
//     header/footer templates
//
// Diagram substitution degrades gracefully: a block that fails to render is
// left as its original fenced source and the document continues.
//
// # Brand Configuration
//
// The brand file is YAML (JSON content parses too):
//
//	name: Acme Corp
//	header: Acme Engineering
//	footer: Confidential
//	colors:
//	  primary: "#1a365d"
//	  accent: "#2b6cb0"
//	font:
//	  family: "Inter, Helvetica, sans-serif"
//	  url: https://fonts.example.com/inter.css
//
// Every field has a default; a missing or malformed file degrades to the
// built-in brand with a warning, never an error.
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
// Mermaid diagram rendering additionally requires the mermaid CLI (mmdc)
// on PATH; DOT diagrams render in-process and have no external dependency.
package brandpdf
