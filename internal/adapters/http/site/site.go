// Package site serves the embedded stylesheet of the form page.
package site

import (
	"context"
	"embed"
	"io/fs"
	"net/http"
)

// Prefix is the URL path the assets are mounted under.
const Prefix = "/static/"

//go:embed static/*
var staticFS embed.FS

// FS returns an http.FileSystem for the embedded assets.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

// Register attaches the static asset routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	files := http.StripPrefix(Prefix, http.FileServer(FS()))
	mux.Handle("GET "+Prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	}))
}
