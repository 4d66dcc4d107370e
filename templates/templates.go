// Package templates embeds the HTML views into the binary.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
