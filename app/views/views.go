// Package views holds the HTML templates compiled into the binary.
package views

import "embed"

//go:embed layout.html feed/*.html shared/*.html
var Files embed.FS
