// Package web embeds the static front end served at the root of the API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Assets is the static site rooted at its index.html.
var Assets fs.FS

func init() {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	Assets = sub
}
