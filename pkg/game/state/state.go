// Package state holds the mutable play session: which items were interacted
// with or collected, which room is active, and the input gate that serializes
// every gameplay sequence.
package state

import (
	"sort"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Phase is the coarse game phase.
type Phase int

// Game phases
const (
	PhaseMenu Phase = iota
	PhaseLoading
	PhasePlaying
	PhasePaused
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// NoRoom is the active room index before gameplay has started.
const NoRoom = -1

const maxMessages = 5

// Session is the state of one play session. It is created once by the
// top-level loop and passed by pointer to every component that needs it.
// It is not safe for concurrent use.
type Session struct {
	ID    uuid.UUID
	Phase Phase

	// ActiveRoom indexes the manifest's room list, or NoRoom.
	ActiveRoom int

	// Messages is a short log of recent events shown by the hosts.
	Messages []string

	interacted mapset.Set[string]
	collected  mapset.Set[string]

	blocked  bool
	overlay  string
	onGate   []func(blocked bool)
	gateFlip int
}

// NewSession creates a session in the menu phase with no active room.
func NewSession() *Session {
	return &Session{
		ID:         uuid.New(),
		Phase:      PhaseMenu,
		ActiveRoom: NoRoom,
		Messages:   make([]string, 0),
		interacted: mapset.New[string](),
		collected:  mapset.New[string](),
	}
}

// IsBlocked reports whether the input gate is closed.
func (s *Session) IsBlocked() bool {
	return s.blocked
}

// Block closes the input gate.
func (s *Session) Block() {
	s.setBlocked(true)
}

// Unblock opens the input gate.
func (s *Session) Unblock() {
	s.setBlocked(false)
}

// TryAcquire closes the gate if it is open. The returned release opens it
// again; calling release more than once has no further effect.
// If the gate is already closed, ok is false and release is nil.
func (s *Session) TryAcquire() (release func(), ok bool) {
	if s.blocked {
		return nil, false
	}
	s.Block()
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.Unblock()
	}, true
}

// OnGateChange registers fn to be called whenever the gate opens or closes.
func (s *Session) OnGateChange(fn func(blocked bool)) {
	if fn != nil {
		s.onGate = append(s.onGate, fn)
	}
}

// GateChanges returns how many times the gate has flipped.
func (s *Session) GateChanges() int {
	return s.gateFlip
}

func (s *Session) setBlocked(blocked bool) {
	if s.blocked == blocked {
		return
	}
	s.blocked = blocked
	s.gateFlip++
	for _, fn := range s.onGate {
		fn(blocked)
	}
}

// HasInteracted reports whether id was registered as interacted.
func (s *Session) HasInteracted(id string) bool {
	return s.interacted.Has(id)
}

// RegisterInteraction records an interaction with id.
func (s *Session) RegisterInteraction(id string) {
	if id == "" {
		return
	}
	s.interacted.Put(id)
}

// HasCollected reports whether itemID was collected.
func (s *Session) HasCollected(itemID string) bool {
	return s.collected.Has(itemID)
}

// Collect permanently records itemID as collected. It reports whether the
// item was newly collected. There is no way to un-collect.
func (s *Session) Collect(itemID string) bool {
	if itemID == "" || s.collected.Has(itemID) {
		return false
	}
	s.collected.Put(itemID)
	return true
}

// CollectedCount returns the number of collected items.
func (s *Session) CollectedCount() int {
	return s.collected.Size()
}

// Collected returns the collected item ids, sorted.
func (s *Session) Collected() []string {
	return sortedKeys(s.collected)
}

// Interacted returns the interacted ids, sorted.
func (s *Session) Interacted() []string {
	return sortedKeys(s.interacted)
}

// Overlay returns the current overlay context, or "" when none is showing.
func (s *Session) Overlay() string {
	return s.overlay
}

// SetOverlay sets the current overlay context.
func (s *Session) SetOverlay(id string) {
	s.overlay = id
}

// Started reports whether gameplay has picked a room.
func (s *Session) Started() bool {
	return s.ActiveRoom != NoRoom
}

// AddMessage adds a message to the session's message log
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}

func sortedKeys(set mapset.Set[string]) []string {
	out := make([]string, 0, set.Size())
	set.Each(func(k string) {
		out = append(out, k)
	})
	sort.Strings(out)
	return out
}
