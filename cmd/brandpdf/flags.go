package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var (
	ErrNoTarget = errors.New("no target specified")
	// errHelpRequested signals that usage was printed on explicit request;
	// it maps to the success exit code, not an error.
	errHelpRequested = errors.New("help requested")
	// errVersionRequested signals an explicit --version; exits zero.
	errVersionRequested = errors.New("version requested")
)

// cliFlags holds all command-line flags.
type cliFlags struct {
	output    string
	brand     string
	html      bool
	noSandbox bool
	quiet     bool
	verbose   bool
	help      bool
	version   bool
}

// parseFlags parses command-line arguments. It returns the flags, the
// target path, and an error. A missing target is a usage error; an explicit
// --help is reported as errHelpRequested so main can exit zero.
func parseFlags(args []string) (*cliFlags, string, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("brandpdf", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: alongside source)")
	fs.StringVarP(&f.brand, "brand", "b", "", "brand config file (default: ./brand.yaml)")
	fs.BoolVar(&f.html, "html", false, "also write the intermediate HTML")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "run the diagram renderer without a browser sandbox")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-block detail")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.Usage = func() {} // usage is printed by the caller

	if err := fs.Parse(args[1:]); err != nil {
		return nil, "", fmt.Errorf("parsing flags: %w", err)
	}

	if f.help {
		return f, "", errHelpRequested
	}
	if f.version {
		return f, "", errVersionRequested
	}

	if fs.NArg() < 1 {
		return f, "", ErrNoTarget
	}

	return f, fs.Arg(0), nil
}
