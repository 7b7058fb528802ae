// Package rooms cycles the active room through the manifest's room order.
package rooms

import (
	"log/slog"
	"strings"
	"time"

	"homebound/pkg/engine/scene"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

// FocusClearer drops any hover/pressed UI state so nothing on the room being
// left can receive a click meant for the next one.
type FocusClearer interface {
	ClearFocus()
}

// Navigator owns the active room index of the session.
type Navigator struct {
	// SettleDelay is how long input stays blocked after a room switch.
	SettleDelay time.Duration

	m       *manifest.Manifest
	session *state.Session
	scenes  scene.Loader
	sched   *task.Scheduler
	focus   FocusClearer
	log     *slog.Logger

	transitions int
}

// NewNavigator creates a navigator over the manifest's rooms.
func NewNavigator(m *manifest.Manifest, session *state.Session, scenes scene.Loader, sched *task.Scheduler, log *slog.Logger) *Navigator {
	if log == nil {
		log = slog.Default()
	}
	return &Navigator{
		SettleDelay: 200 * time.Millisecond,
		m:           m,
		session:     session,
		scenes:      scenes,
		sched:       sched,
		log:         log,
	}
}

// SetFocusClearer sets what is cleared after every switch.
func (n *Navigator) SetFocusClearer(f FocusClearer) {
	n.focus = f
}

// Len returns the number of rooms.
func (n *Navigator) Len() int {
	if n.m == nil {
		return 0
	}
	return len(n.m.Rooms)
}

// Index returns the active room index, or state.NoRoom.
func (n *Navigator) Index() int {
	return n.session.ActiveRoom
}

// Current returns the active room, or nil before Start.
func (n *Navigator) Current() *manifest.Room {
	i := n.session.ActiveRoom
	if i < 0 || i >= n.Len() {
		return nil
	}
	return &n.m.Rooms[i]
}

// IsActive reports whether roomID is the active room.
func (n *Navigator) IsActive(roomID string) bool {
	r := n.Current()
	return r != nil && r.ID == roomID
}

// Transitions returns how many room switches have started.
func (n *Navigator) Transitions() int {
	return n.transitions
}

// Start deactivates every room's content and activates the start room: the
// room with id startRoomID, else the first whose scene name contains it, else
// the first room.
func (n *Navigator) Start(startRoomID string) bool {
	if n.Len() == 0 {
		n.log.Warn("no rooms to start in")
		return false
	}
	for _, r := range n.m.Rooms {
		n.scenes.SetActive(r.SceneName, false)
	}

	start := n.startIndex(startRoomID)
	n.session.ActiveRoom = start
	room := n.Current()
	n.scenes.SetActive(room.SceneName, true)
	n.log.Info("entered room", "room", room.ID, "index", start)
	return true
}

func (n *Navigator) startIndex(startRoomID string) int {
	if startRoomID == "" {
		return 0
	}
	if i := n.m.RoomIndex(startRoomID); i >= 0 {
		return i
	}
	needle := strings.ToLower(startRoomID)
	for i, r := range n.m.Rooms {
		if strings.Contains(strings.ToLower(r.SceneName), needle) {
			return i
		}
	}
	return 0
}

// Next switches to the following room, wrapping around after the last one.
func (n *Navigator) Next() bool {
	if n.Len() == 0 {
		n.log.Warn("next room requested with no rooms")
		return false
	}
	cur := n.session.ActiveRoom
	if cur < 0 {
		cur = 0
	}
	return n.TransitionTo((cur + 1) % n.Len())
}

// TransitionTo switches to the room at index. It reports whether a switch
// started; it refuses while the input gate is closed or the game isn't in
// play, and ignores invalid indexes.
//
// The switch itself happens immediately. The gate then stays closed for
// SettleDelay, released by a scheduled task.
func (n *Navigator) TransitionTo(index int) bool {
	if n.session.Phase != state.PhasePlaying {
		n.log.Debug("room switch outside play ignored", "phase", n.session.Phase)
		return false
	}
	if index < 0 || index >= n.Len() {
		n.log.Warn("invalid room index", "index", index, "rooms", n.Len())
		return false
	}
	release, ok := n.session.TryAcquire()
	if !ok {
		n.log.Debug("room switch refused, input blocked")
		return false
	}
	n.transitions++

	if prev := n.Current(); prev != nil {
		n.scenes.SetActive(prev.SceneName, false)
	}
	n.session.ActiveRoom = index
	next := n.Current()
	n.scenes.SetActive(next.SceneName, true)

	if n.focus != nil {
		n.focus.ClearFocus()
	}
	n.log.Info("entered room", "room", next.ID, "index", index)

	n.sched.Spawn(task.Scoped(release, task.Wait(n.SettleDelay)))
	return true
}

// TransitionToRoom switches to the room with the given id.
func (n *Navigator) TransitionToRoom(roomID string) bool {
	i := n.m.RoomIndex(roomID)
	if i < 0 {
		n.log.Warn("unknown room", "room", roomID)
		return false
	}
	return n.TransitionTo(i)
}
