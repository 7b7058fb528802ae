package renderer

import (
	"homebound/pkg/game/hotspot"
	"homebound/pkg/game/state"
)

// View is an immutable snapshot of the game for one frame.
type View struct {
	Phase     state.Phase
	SessionID string
	Width     float64
	Height    float64

	Room     RoomView
	Hotspots []HotspotView
	Surfaces []SurfaceView
	Dialogue DialogueView
	Menu     *MenuView

	Blocked   bool
	Overlay   string
	Collected []string
	Messages  []string
	// Hint is a short usage tip for the hovered or selected hotspot.
	Hint string

	// Developer dump only.
	Interacted  []string
	Transitions int
	GateChanges int
}

// RoomView is the active room.
type RoomView struct {
	ID         string
	SceneName  string
	Background string
}

// HotspotView is one hotspot on screen.
type HotspotView struct {
	ID           string
	Label        string
	Exit         bool
	Rect         hotspot.Rect
	Interactable bool
	Hovered      bool
	Selected     bool
}

// SurfaceView is one active overlay surface.
type SurfaceView struct {
	ID    string
	Image string
	Alpha float64
}

// DialogueView is the dialogue panel.
type DialogueView struct {
	Visible bool
	Text    string
}

// MenuView is a menu on screen.
type MenuView struct {
	Title        string
	Instructions string
	HelpText     string
	Items        []MenuItemView

	// Loading is shown under the items while the game starts.
	Loading     bool
	LoadingText string
}

// MenuItemView is one menu entry.
type MenuItemView struct {
	Label    string
	Rect     hotspot.Rect
	Enabled  bool
	Selected bool
	Hovered  bool
}

// HotspotAt returns the topmost interactable hotspot under (x, y).
func (v View) HotspotAt(x, y float64) (HotspotView, bool) {
	for i := len(v.Hotspots) - 1; i >= 0; i-- {
		h := v.Hotspots[i]
		if h.Interactable && x >= h.Rect.X && x < h.Rect.X+h.Rect.W && y >= h.Rect.Y && y < h.Rect.Y+h.Rect.H {
			return h, true
		}
	}
	return HotspotView{}, false
}
