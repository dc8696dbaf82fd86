// Package web serves the console's embedded static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

//go:embed static/*
var content embed.FS

// Handler returns an http.Handler serving the embedded static assets.
// Mount it under /static/.
func Handler() (http.Handler, error) {
	fsys, err := fs.Sub(content, "static")
	if err != nil {
		return nil, fmt.Errorf("loading embedded static assets: %w", err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(fsys))), nil
}
