package renderer

import (
	"time"

	"homebound/pkg/engine/input"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleTitle
	StyleItem
	StyleHover
	StyleSelected
	StyleDenied
	StyleSubtle
	StyleDialogue
	StyleExit
	StyleOverlay
)

// Driver is the game as seen by a host: advanced once per tick and drawn
// from an immutable snapshot.
type Driver interface {
	// Update advances the game by dt with the input gathered this tick.
	Update(dt time.Duration, frame input.Frame)
	// View returns a snapshot of everything a host needs to draw.
	View() View
	// QuitRequested reports whether the player asked to leave.
	QuitRequested() bool
	// Shutdown drops running sequences before the host exits.
	Shutdown()
}

// Renderer defines the interface for game hosts.
// Implementations own the loop that calls Driver.Update once per tick.
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init() error

	// Run drives d until the player quits or the window closes.
	Run(d Driver) error

	// StyleText applies a style to text and returns the styled string
	// For TUI this applies ANSI colors, for GUI it may return the text as is
	StyleText(text string, style TextStyle) string
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() error {
	if Current != nil {
		return Current.Init()
	}
	return nil
}

// Run drives d with the current renderer
func Run(d Driver) error {
	if Current != nil {
		return Current.Run(d)
	}
	return nil
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}
