// Package assets provides the base document stylesheet embedded at compile
// time. The brand stylesheet is appended after it, so brand rules win.
package assets

import (
	_ "embed"
)

//go:embed styles/document.css
var documentStyle string

// DocumentStyle returns the base page-styling asset consumed as-is by the
// rendering service.
func DocumentStyle() string {
	return documentStyle
}
