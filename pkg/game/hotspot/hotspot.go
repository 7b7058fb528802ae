// Package hotspot binds clickable regions to manifest items and room exits,
// and decides every tick which of them may be used.
package hotspot

import (
	"homebound/pkg/engine/input"
	"homebound/pkg/game/manifest"
)

// Kind distinguishes item hotspots from exits.
type Kind int

const (
	KindItem Kind = iota
	KindExit
)

// Default exit button size.
const (
	ExitWidth  = 220
	ExitHeight = 64
	exitMargin = 24
)

// ExitPrefix starts the id of every exit hotspot.
const ExitPrefix = "exit:"

// DefaultExitLabel is the catalogue key for exits without an authored label.
const DefaultExitLabel = "EXIT_LABEL"

// Rect is an axis aligned region in scene coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p input.Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the middle of the rect.
func (r Rect) Center() input.Point {
	return input.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Hotspot is one clickable region.
type Hotspot struct {
	ID     string
	Kind   Kind
	Label  string
	RoomID string
	Rect   Rect

	// OneShot hotspots ignore clicks once interacted with.
	OneShot bool
	// Overlay hotspots live on the persistent overlay layer and ignore which
	// room is active.
	Overlay bool

	DialogueID  string
	CinematicID string
	// TargetRoomID is the explicit exit destination, or "" for the next room.
	TargetRoomID string

	// Refreshed every tick.
	Interactable bool
	Hovered      bool
	Selected     bool
}

func itemRect(it manifest.Item) Rect {
	size := it.Bounds()
	return Rect{
		X: it.Position.X - size.W/2,
		Y: it.Position.Y - size.H/2,
		W: size.W,
		H: size.H,
	}
}

func exitRect(ex *manifest.Exit, sceneW, sceneH float64) Rect {
	if ex != nil && ex.Size != nil && ex.Size.W > 0 && ex.Size.H > 0 {
		return Rect{
			X: ex.Position.X - ex.Size.W/2,
			Y: ex.Position.Y - ex.Size.H/2,
			W: ex.Size.W,
			H: ex.Size.H,
		}
	}
	// Bottom-centre button.
	return Rect{
		X: sceneW/2 - ExitWidth/2,
		Y: sceneH - ExitHeight - exitMargin,
		W: ExitWidth,
		H: ExitHeight,
	}
}

func fromItem(m *manifest.Manifest, room *manifest.Room, it manifest.Item) *Hotspot {
	return &Hotspot{
		ID:          it.ID,
		Kind:        KindItem,
		Label:       it.DisplayName,
		RoomID:      room.ID,
		Rect:        itemRect(it),
		OneShot:     m.ItemOneShot(&it),
		Overlay:     it.OnOverlayLayer(),
		DialogueID:  it.DialogueID,
		CinematicID: it.CinematicID,
	}
}

func fromExit(room *manifest.Room, sceneW, sceneH float64) *Hotspot {
	h := &Hotspot{
		ID:     ExitPrefix + room.ID,
		Kind:   KindExit,
		Label:  DefaultExitLabel,
		RoomID: room.ID,
		Rect:   exitRect(room.Exit, sceneW, sceneH),
	}
	if room.Exit != nil {
		if room.Exit.Label != "" {
			h.Label = room.Exit.Label
		}
		h.TargetRoomID = room.Exit.TargetRoomID
	}
	return h
}
