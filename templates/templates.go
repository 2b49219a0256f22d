// Package templates embeds the HTML views so the binary runs from any
// working directory.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
