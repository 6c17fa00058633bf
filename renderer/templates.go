// Package renderer turns book data into markdown reports.
//
// Each report has a view model (a plain struct of display-ready strings,
// built from the domain types) and a template stored under templates/. The
// separation keeps layout tweaks out of the domain package.
package renderer

import "embed"

//go:embed templates/*.md
var templates embed.FS
