// Package web holds the HTML templates compiled into the binary.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
