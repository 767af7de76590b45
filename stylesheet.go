package brandpdf

import (
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-brandpdf/internal/fileutil"
)

// BuildStyleSheet derives the brand stylesheet: an optional remote font
// import, CSS custom properties for each brand color (kebab-cased), a body
// font rule using the first font face, and layout rules constraining
// embedded diagram images. Pure function of its input.
func BuildStyleSheet(brand BrandConfig) string {
	var buf strings.Builder

	if fileutil.IsURL(brand.Font.URL) {
		fmt.Fprintf(&buf, "@import url(%q);\n\n", brand.Font.URL)
	}

	buf.WriteString(":root {\n")
	fmt.Fprintf(&buf, "  --brand-primary: %s;\n", brand.Colors.Primary)
	fmt.Fprintf(&buf, "  --brand-accent: %s;\n", brand.Colors.Accent)
	fmt.Fprintf(&buf, "  --brand-secondary: %s;\n", brand.Colors.Secondary)
	fmt.Fprintf(&buf, "  --brand-warning: %s;\n", brand.Colors.Warning)
	fmt.Fprintf(&buf, "  --brand-light-background: %s;\n", brand.Colors.LightBackground)
	fmt.Fprintf(&buf, "  --brand-border-color: %s;\n", brand.Colors.BorderColor)
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "body {\n  font-family: %s;\n  color: %s;\n}\n\n",
		brand.Font.Family, brand.Colors.Primary)

	fmt.Fprintf(&buf, "h1, h2, h3, h4, h5, h6 {\n  font-family: '%s', %s;\n  color: %s;\n}\n\n",
		firstFontFace(brand.Font.Family), brand.Font.Family, brand.Colors.Primary)

	// Embedded diagram images: block display, centered, capped at container
	// width. Diagrams are the only SVG references the pipeline emits.
	buf.WriteString("img[src$=\".svg\"] {\n  display: block;\n  margin: 1em auto;\n  max-width: 100%;\n}\n")

	return buf.String()
}

// firstFontFace returns the first comma-separated face of a font-family
// list, stripped of quotes and whitespace.
func firstFontFace(family string) string {
	first, _, _ := strings.Cut(family, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// BuildHeaderTemplate returns the Chrome header fragment: the configured
// header text (or the brand name when empty), right-aligned, in the
// primary brand color.
func BuildHeaderTemplate(brand BrandConfig) string {
	text := brand.Header
	if text == "" {
		text = brand.Name
	}
	return fmt.Sprintf(
		`<div style="font-size: 9px; font-family: %s; color: %s; width: 100%%; text-align: right; padding: 0 20mm;">%s</div>`,
		brand.Font.Family, brand.Colors.Primary, html.EscapeString(text))
}

// BuildFooterTemplate returns the Chrome footer fragment: footer text on
// the left, page number / total pages on the right. Chrome substitutes the
// pageNumber and totalPages spans at print time.
func BuildFooterTemplate(brand BrandConfig) string {
	return fmt.Sprintf(
		`<div style="font-size: 9px; font-family: %s; color: %s; width: 100%%; padding: 0 20mm; display: flex; justify-content: space-between;"><span>%s</span><span><span class="pageNumber"></span>/<span class="totalPages"></span></span></div>`,
		brand.Font.Family, brand.Colors.Secondary, html.EscapeString(brand.Footer))
}
