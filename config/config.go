// Package config holds client configuration. Values here are presentation
// and connection settings only; anything that must agree with the server's
// simulation lives in shared/physics instead.
package config

import "github.com/yohamta/donburi/ecs"

// Default is the render layer all renderers draw on.
const Default ecs.LayerID = 0

// Config contains the client's runtime settings.
type Config struct {
	// Window size in pixels. The arena is rendered scaled to fit.
	Width  int
	Height int

	// ServerAddress is the host:port of the game server.
	ServerAddress string

	// RenderScale maps arena coordinates to screen coordinates.
	RenderScale float64

	// CorrectionTweenSeconds is how long a smooth reconciliation correction
	// takes to converge visually.
	CorrectionTweenSeconds float64
}

// C is the active configuration, overridable from flags in main.
var C = Config{
	Width:                  960,
	Height:                 540,
	ServerAddress:          "localhost:8080",
	RenderScale:            0.5,
	CorrectionTweenSeconds: 0.1,
}
