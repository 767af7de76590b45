package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: brandpdf [flags] <target>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to branded PDFs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  target    Markdown file, or directory of markdown files (non-recursive;")
	fmt.Fprintln(w, "            names containing \"readme\" or \"template\" are skipped)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>    Output directory (default: alongside source)")
	fmt.Fprintln(w, "  -b, --brand <path>    Brand config file (default: ./brand.yaml)")
	fmt.Fprintln(w, "      --html            Also write the intermediate HTML")
	fmt.Fprintln(w, "      --no-sandbox      Run the diagram renderer without a browser sandbox")
	fmt.Fprintln(w, "  -q, --quiet           Only show errors")
	fmt.Fprintln(w, "  -v, --verbose         Show per-block detail")
	fmt.Fprintln(w, "  -h, --help            Show this help")
	fmt.Fprintln(w, "      --version         Show version")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  BRANDPDF_OUTPUT_DIR      Output directory override")
	fmt.Fprintln(w, "  BRANDPDF_BRAND_CONFIG    Brand config path override")
	fmt.Fprintln(w, "  BRANDPDF_NO_SANDBOX      Disable the diagram renderer sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outputs are named <basename>_<YYYYMMDD-HHmm>.pdf; the timestamp is")
	fmt.Fprintln(w, "shared by every file in one invocation.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Mermaid diagrams need mermaid-cli on PATH: npm install -g @mermaid-js/mermaid-cli")
}
