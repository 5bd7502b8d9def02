// Package web embeds the static assets shipped inside the binary: the page
// shell used to wrap generated body markup and the website template catalog.
package web

import _ "embed"

// PageTemplate is the HTML shell for assembled documents. It contains the
// substitution points {colors}, {title}, {meta} and {bodyContent}.
//
//go:embed templates/page.html
var PageTemplate string

// CatalogYAML lists the starter website templates served by /templates.
//
//go:embed data/templates.yaml
var CatalogYAML []byte
