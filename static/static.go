// Package static holds the stylesheet and script served under /static/.
package static

import "embed"

//go:embed style.css feed.js
var Files embed.FS
