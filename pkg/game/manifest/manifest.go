// Package manifest describes the static game content: rooms, the items in
// them, dialogues, cinematics, and the overlay surfaces cinematics draw on.
// A Manifest is immutable once loaded.
package manifest

// Cinematic types.
const (
	TypeSpriteFrames       = "sprite_frames"
	TypeFixedImageSequence = "fixed_image_sequence"
)

// Item layers.
const (
	LayerRoom    = "room"
	LayerOverlay = "overlay"
)

// When a fixed image sequence collects its item.
const (
	CollectAtShown = "shown"
	CollectAtEnd   = "end"
)

// CinematicSurface is the surface sprite_frames cinematics play on.
const CinematicSurface = "cinematic"

// Default hotspot size when an item doesn't declare one.
const (
	DefaultItemWidth  = 96
	DefaultItemHeight = 96
)

// Vec2 is a 2D position in scene coordinates.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Size is a width/height pair in scene units.
type Size struct {
	W float64 `json:"w" yaml:"w"`
	H float64 `json:"h" yaml:"h"`
}

// Item is a clickable thing in a room.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Position    Vec2   `json:"position" yaml:"position"`
	Size        *Size  `json:"size,omitempty" yaml:"size,omitempty"`
	DialogueID  string `json:"dialogueId,omitempty" yaml:"dialogueId,omitempty"`
	CinematicID string `json:"cinematicId,omitempty" yaml:"cinematicId,omitempty"`
	// Repeatable only applies to items without a cinematic; an item with a
	// cinematic takes its classification from the cinematic's OneShot flag.
	Repeatable bool   `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Layer      string `json:"layer,omitempty" yaml:"layer,omitempty"`
}

// Bounds returns the item's hotspot size, applying the default.
func (it Item) Bounds() Size {
	if it.Size == nil || it.Size.W <= 0 || it.Size.H <= 0 {
		return Size{W: DefaultItemWidth, H: DefaultItemHeight}
	}
	return *it.Size
}

// OnOverlayLayer reports whether the item belongs to the persistent overlay
// layer rather than to its room.
func (it Item) OnOverlayLayer() bool {
	return it.Layer == LayerOverlay
}

// Exit is a room's exit hotspot.
type Exit struct {
	Position Vec2   `json:"position" yaml:"position"`
	Size     *Size  `json:"size,omitempty" yaml:"size,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	// TargetRoomID selects an explicit destination; empty means the next
	// room in manifest order.
	TargetRoomID string `json:"targetRoomId,omitempty" yaml:"targetRoomId,omitempty"`
}

// Room is a play area backed by one additively loaded scene.
type Room struct {
	ID         string `json:"id" yaml:"id"`
	SceneName  string `json:"sceneName" yaml:"sceneName"`
	Background string `json:"background,omitempty" yaml:"background,omitempty"`
	Items      []Item `json:"items" yaml:"items"`
	Exit       *Exit  `json:"exit,omitempty" yaml:"exit,omitempty"`
}

// Line is one line of dialogue.
type Line struct {
	Text      string `json:"text" yaml:"text"`
	AudioClip string `json:"audioClip,omitempty" yaml:"audioClip,omitempty"`
}

// Dialogue is a flat list of lines played in order.
type Dialogue struct {
	ID    string `json:"id" yaml:"id"`
	Lines []Line `json:"lines" yaml:"lines"`
}

// OverlayStep opens one surface with an image.
type OverlayStep struct {
	Slot  string `json:"slot" yaml:"slot"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Variant swaps the image shown on a slot once an item has been collected,
// e.g. a wardrobe that is shown emptied after the jacket was taken.
type Variant struct {
	Slot          string `json:"slot" yaml:"slot"`
	WhenCollected string `json:"whenCollected" yaml:"whenCollected"`
	Image         string `json:"image" yaml:"image"`
}

// Cinematic is a tagged variant selected by Type.
type Cinematic struct {
	ID   string `json:"id" yaml:"id"`
	Type string `json:"type" yaml:"type"`

	// OneShot is decided once at authoring time. One-shot cinematics refuse
	// to run again; repeatable ones run every time they are triggered.
	OneShot bool `json:"oneShot,omitempty" yaml:"oneShot,omitempty"`

	// sprite_frames
	FramePaths []string `json:"framePaths,omitempty" yaml:"framePaths,omitempty"`
	FPS        int      `json:"fps,omitempty" yaml:"fps,omitempty"`
	Duration   float64  `json:"duration,omitempty" yaml:"duration,omitempty"`

	// fixed_image_sequence
	Overlays      []OverlayStep `json:"overlays,omitempty" yaml:"overlays,omitempty"`
	Variants      []Variant     `json:"variants,omitempty" yaml:"variants,omitempty"`
	BaseSlot      string        `json:"baseSlot,omitempty" yaml:"baseSlot,omitempty"`
	Hold          float64       `json:"hold,omitempty" yaml:"hold,omitempty"`
	AwaitClick    bool          `json:"awaitClick,omitempty" yaml:"awaitClick,omitempty"`
	DialogueID    string        `json:"dialogueId,omitempty" yaml:"dialogueId,omitempty"`
	Collects      string        `json:"collects,omitempty" yaml:"collects,omitempty"`
	CollectAt     string        `json:"collectAt,omitempty" yaml:"collectAt,omitempty"`
	RemoveHotspot string        `json:"removeHotspot,omitempty" yaml:"removeHotspot,omitempty"`
}

// FrameRate returns the sprite frame rate, defaulting to 6 fps.
func (c Cinematic) FrameRate() int {
	if c.FPS > 0 {
		return c.FPS
	}
	return 6
}

// HotspotToRemove returns the item whose hotspot is retired by this
// cinematic, defaulting to the collected item.
func (c Cinematic) HotspotToRemove() string {
	if c.RemoveHotspot != "" {
		return c.RemoveHotspot
	}
	return c.Collects
}

// CollectPoint returns when the collected item is recorded.
func (c Cinematic) CollectPoint() string {
	if c.CollectAt == CollectAtShown {
		return CollectAtShown
	}
	return CollectAtEnd
}

// Surface is one of the fixed, parallel overlay surfaces.
type Surface struct {
	ID    string `json:"id" yaml:"id"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Manifest is the whole static content description.
type Manifest struct {
	Rooms      []Room      `json:"rooms" yaml:"rooms"`
	Dialogues  []Dialogue  `json:"dialogues" yaml:"dialogues"`
	Cinematics []Cinematic `json:"cinematics" yaml:"cinematics"`
	Surfaces   []Surface   `json:"surfaces,omitempty" yaml:"surfaces,omitempty"`
}

// FindItem looks an item up across all rooms and returns its room too.
func (m *Manifest) FindItem(itemID string) (*Item, *Room, bool) {
	if m == nil || itemID == "" {
		return nil, nil, false
	}
	for ri := range m.Rooms {
		r := &m.Rooms[ri]
		for ii := range r.Items {
			if r.Items[ii].ID == itemID {
				return &r.Items[ii], r, true
			}
		}
	}
	return nil, nil, false
}

// FindDialogue looks up a dialogue by id.
func (m *Manifest) FindDialogue(id string) (*Dialogue, bool) {
	if m == nil || id == "" {
		return nil, false
	}
	for i := range m.Dialogues {
		if m.Dialogues[i].ID == id {
			return &m.Dialogues[i], true
		}
	}
	return nil, false
}

// FindCinematic looks up a cinematic by id.
func (m *Manifest) FindCinematic(id string) (*Cinematic, bool) {
	if m == nil || id == "" {
		return nil, false
	}
	for i := range m.Cinematics {
		if m.Cinematics[i].ID == id {
			return &m.Cinematics[i], true
		}
	}
	return nil, false
}

// RoomIndex returns the position of a room in manifest order, or -1.
func (m *Manifest) RoomIndex(roomID string) int {
	if m == nil {
		return -1
	}
	for i, r := range m.Rooms {
		if r.ID == roomID {
			return i
		}
	}
	return -1
}

// SceneNames returns every room's scene name in manifest order.
func (m *Manifest) SceneNames() []string {
	if m == nil {
		return nil
	}
	names := make([]string, 0, len(m.Rooms))
	for _, r := range m.Rooms {
		names = append(names, r.SceneName)
	}
	return names
}

// ItemOneShot reports whether interacting with the item may only happen
// once. Items with a cinematic inherit its classification.
func (m *Manifest) ItemOneShot(it *Item) bool {
	if it == nil {
		return true
	}
	if it.CinematicID != "" {
		if c, ok := m.FindCinematic(it.CinematicID); ok {
			return c.OneShot
		}
	}
	return !it.Repeatable
}
