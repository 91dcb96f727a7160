package main

import (
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"cpipulse/internal/app"
)

// Embedded dashboard page
//
//go:embed all:web
var webFiles embed.FS

func main() {
	var staticFS fs.FS
	if sub, err := fs.Sub(webFiles, "web"); err == nil {
		staticFS = sub
	} else {
		slog.Warn("static page embedding failed", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(staticFS)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
