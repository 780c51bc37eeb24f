package app

import "go.trai.ch/srcset/internal/core/ports"

// Components are the initialized pieces the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}
