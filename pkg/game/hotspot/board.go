package hotspot

import (
	"log/slog"

	"github.com/zyedidia/generic/mapset"

	"homebound/pkg/engine/input"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

// Navigator is the part of the room navigator exits use.
type Navigator interface {
	Next() bool
	TransitionToRoom(roomID string) bool
	IsActive(roomID string) bool
}

// Player runs a cinematic or dialogue by id.
type Player interface {
	Play(id string) task.Task
}

// Interceptor reports whether an overlay is swallowing room clicks.
type Interceptor interface {
	Intercepting() bool
}

// Board holds every hotspot of the game.
type Board struct {
	session    *state.Session
	sched      *task.Scheduler
	nav        Navigator
	cinematics Player
	dialogue   Player
	overlays   Interceptor
	log        *slog.Logger

	hotspots    []*Hotspot
	byID        map[string]*Hotspot
	removed     mapset.Set[string]
	activations map[string]int
	selected    string
}

// NewBoard creates hotspots for every item and one exit per room. Scene size
// places default exits.
func NewBoard(m *manifest.Manifest, session *state.Session, sched *task.Scheduler, sceneW, sceneH float64, log *slog.Logger) *Board {
	if log == nil {
		log = slog.Default()
	}
	b := &Board{
		session:     session,
		sched:       sched,
		log:         log,
		byID:        make(map[string]*Hotspot),
		removed:     mapset.New[string](),
		activations: make(map[string]int),
	}
	if m == nil {
		return b
	}
	for ri := range m.Rooms {
		room := &m.Rooms[ri]
		for _, it := range room.Items {
			b.add(fromItem(m, room, it))
		}
		b.add(fromExit(room, sceneW, sceneH))
	}
	return b
}

func (b *Board) add(h *Hotspot) {
	if _, dup := b.byID[h.ID]; dup {
		b.log.Warn("duplicate hotspot", "id", h.ID)
		return
	}
	b.hotspots = append(b.hotspots, h)
	b.byID[h.ID] = h
}

// SetNavigator sets where exits send the player.
func (b *Board) SetNavigator(n Navigator) { b.nav = n }

// SetCinematics sets the cinematic player.
func (b *Board) SetCinematics(p Player) { b.cinematics = p }

// SetDialogue sets the dialogue player.
func (b *Board) SetDialogue(p Player) { b.dialogue = p }

// SetOverlays sets the overlay surfaces that can block room hotspots.
func (b *Board) SetOverlays(o Interceptor) { b.overlays = o }

// Get returns a hotspot by id.
func (b *Board) Get(id string) (*Hotspot, bool) {
	h, ok := b.byID[id]
	return h, ok
}

// Activations returns how many interactions the hotspot started.
func (b *Board) Activations(id string) int {
	return b.activations[id]
}

// Remove retires an item's hotspot for the rest of the session.
func (b *Board) Remove(itemID string) {
	if itemID == "" || b.removed.Has(itemID) {
		return
	}
	b.removed.Put(itemID)
	if h, ok := b.byID[itemID]; ok {
		h.Interactable = false
		h.Hovered = false
		h.Selected = false
	}
	b.log.Debug("hotspot removed", "item", itemID)
}

// Removed reports whether an item's hotspot was retired.
func (b *Board) Removed(itemID string) bool {
	return b.removed.Has(itemID)
}

// ClearFocus drops hover and keyboard selection on every hotspot.
func (b *Board) ClearFocus() {
	for _, h := range b.hotspots {
		h.Hovered = false
		h.Selected = false
	}
	b.selected = ""
}

// inScene reports whether the hotspot belongs to what is on screen, ignoring
// the gate.
func (b *Board) inScene(h *Hotspot) bool {
	if b.removed.Has(h.ID) {
		return false
	}
	if h.Kind == KindItem && b.session.HasCollected(h.ID) {
		return false
	}
	if h.Overlay {
		return true
	}
	return b.nav != nil && b.nav.IsActive(h.RoomID)
}

func (b *Board) interactable(h *Hotspot) bool {
	if b.session.Phase != state.PhasePlaying || b.session.IsBlocked() {
		return false
	}
	if !b.inScene(h) {
		return false
	}
	if !h.Overlay && b.overlays != nil && b.overlays.Intercepting() {
		return false
	}
	return true
}

// Refresh recomputes which hotspots are usable and which one the pointer is
// over. Hover only ever lands on an interactable hotspot.
func (b *Board) Refresh(pointer input.Point, hasPointer bool) {
	var top *Hotspot
	for _, h := range b.hotspots {
		h.Interactable = b.interactable(h)
		h.Hovered = false
		if !h.Interactable {
			h.Selected = false
			continue
		}
		if hasPointer && h.Rect.Contains(pointer) {
			top = h
		}
	}
	if top != nil {
		top.Hovered = true
	}
	if sel, ok := b.byID[b.selected]; !ok || !sel.Interactable {
		b.selected = ""
	}
}

// Visible returns the hotspots that belong on screen, in draw order.
func (b *Board) Visible() []*Hotspot {
	var out []*Hotspot
	for _, h := range b.hotspots {
		if b.inScene(h) {
			out = append(out, h)
		}
	}
	return out
}

// Interactable returns the hotspots usable right now, in draw order.
func (b *Board) Interactable() []*Hotspot {
	var out []*Hotspot
	for _, h := range b.hotspots {
		if h.Interactable {
			out = append(out, h)
		}
	}
	return out
}

// At returns the topmost interactable hotspot under p.
func (b *Board) At(p input.Point) (*Hotspot, bool) {
	for i := len(b.hotspots) - 1; i >= 0; i-- {
		h := b.hotspots[i]
		if h.Interactable && h.Rect.Contains(p) {
			return h, true
		}
	}
	return nil, false
}

// Click activates the hotspot under p, if any.
func (b *Board) Click(p input.Point) bool {
	h, ok := b.At(p)
	if !ok {
		return false
	}
	return b.activate(h)
}

// Activate activates a hotspot by id.
func (b *Board) Activate(id string) bool {
	h, ok := b.byID[id]
	if !ok {
		b.log.Warn("unknown hotspot", "id", id)
		return false
	}
	if !b.interactable(h) {
		return false
	}
	return b.activate(h)
}

// Select moves the keyboard selection by delta through the interactable
// hotspots, wrapping around.
func (b *Board) Select(delta int) {
	list := b.Interactable()
	if len(list) == 0 {
		b.selected = ""
		return
	}
	idx := -1
	for i, h := range list {
		h.Selected = false
		if h.ID == b.selected {
			idx = i
		}
	}
	if idx < 0 {
		if delta < 0 {
			idx = 0
		} else {
			idx = -1
		}
	}
	idx = ((idx+delta)%len(list) + len(list)) % len(list)
	list[idx].Selected = true
	b.selected = list[idx].ID
}

// Selected returns the keyboard-selected hotspot id, or "".
func (b *Board) Selected() string {
	return b.selected
}

// ActivateSelected activates the keyboard-selected hotspot.
func (b *Board) ActivateSelected() bool {
	if b.selected == "" {
		return false
	}
	return b.Activate(b.selected)
}

func (b *Board) activate(h *Hotspot) bool {
	if h.Kind == KindExit {
		if b.nav == nil {
			return false
		}
		var ok bool
		if h.TargetRoomID != "" {
			ok = b.nav.TransitionToRoom(h.TargetRoomID)
		} else {
			ok = b.nav.Next()
		}
		if ok {
			b.activations[h.ID]++
		}
		return ok
	}

	if h.OneShot && b.session.HasInteracted(h.ID) {
		b.log.Debug("one-shot hotspot already used", "item", h.ID)
		return false
	}
	release, ok := b.session.TryAcquire()
	if !ok {
		return false
	}
	if h.OneShot {
		b.session.RegisterInteraction(h.ID)
	}
	b.activations[h.ID]++
	b.log.Info("hotspot activated", "item", h.ID, "room", h.RoomID)

	var steps []task.Task
	if h.CinematicID != "" && b.cinematics != nil {
		steps = append(steps, b.cinematics.Play(h.CinematicID))
	}
	if h.DialogueID != "" && b.dialogue != nil {
		steps = append(steps, b.dialogue.Play(h.DialogueID))
	}
	b.sched.Spawn(task.Scoped(release, task.Sequence(steps...)))
	return true
}
