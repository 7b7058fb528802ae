package ebiten

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"homebound/pkg/game/config"
	"homebound/pkg/game/renderer"
)

// faceKey identifies a cached font face.
type faceKey struct {
	source *text.GoTextFaceSource
	size   float64
}

// menuHighlight animates the selection bar between menu items.
type menuHighlight struct {
	title     string
	fromY     float64
	toY       float64
	startedAt time.Time
	valid     bool
}

// EbitenRenderer is the Ebiten window host. It owns the Ebiten loop and
// drives a renderer.Driver once per tick.
type EbitenRenderer struct {
	cfg *config.Config
	log *slog.Logger

	// Logical scene size; Ebiten scales it to the window.
	width  int
	height int
	tick   time.Duration

	driver renderer.Driver
	view   renderer.View

	// Font sources for text rendering
	sansFontSource     *text.GoTextFaceSource // Sans-serif font for UI text
	sansBoldFontSource *text.GoTextFaceSource // Sans-serif bold for titles
	monoFontSource     *text.GoTextFaceSource // Monospace for the version line

	faces map[faceKey]*text.GoTextFace

	images *ImageCache
	audio  *ClipPlayer

	// Analog stick state per gamepad (for edge detection)
	stickState map[ebiten.GamepadID]int

	highlight menuHighlight

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}
