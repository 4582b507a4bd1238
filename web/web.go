// Package web embeds the landing page served under /static.
package web

import "embed"

//go:embed static
var Static embed.FS
