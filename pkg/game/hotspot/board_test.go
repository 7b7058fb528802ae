package hotspot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebound/pkg/engine/input"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

const tick = 100 * time.Millisecond

type fakeNav struct {
	active  string
	next    int
	targets []string
}

func (n *fakeNav) Next() bool                      { n.next++; return true }
func (n *fakeNav) TransitionToRoom(id string) bool { n.targets = append(n.targets, id); return true }
func (n *fakeNav) IsActive(id string) bool         { return n.active == id }

// playerSpy records plays and keeps each one running for a few ticks.
type playerSpy struct{ played []string }

func (p *playerSpy) Play(id string) task.Task {
	return task.Sequence(
		task.Do(func() { p.played = append(p.played, id) }),
		task.Wait(3*tick),
	)
}

type interceptor bool

func (i interceptor) Intercepting() bool { return bool(i) }

type fixture struct {
	m          *manifest.Manifest
	session    *state.Session
	sched      *task.Scheduler
	nav        *fakeNav
	cinematics *playerSpy
	dialogue   *playerSpy
	board      *Board
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, err := manifest.Load(filepath.Join("..", "manifest", "testdata", "game_manifest.json"))
	require.NoError(t, err)

	f := &fixture{
		m:          m,
		session:    state.NewSession(),
		sched:      task.NewScheduler(),
		nav:        &fakeNav{active: "kitchen"},
		cinematics: &playerSpy{},
		dialogue:   &playerSpy{},
	}
	f.session.Phase = state.PhasePlaying
	f.board = NewBoard(m, f.session, f.sched, 1280, 720, logger.Discard())
	f.board.SetNavigator(f.nav)
	f.board.SetCinematics(f.cinematics)
	f.board.SetDialogue(f.dialogue)
	f.board.Refresh(input.Point{}, false)
	return f
}

// drain ticks until the gate opens again.
func (f *fixture) drain(t *testing.T) {
	t.Helper()
	for i := 0; i < 100 && f.session.IsBlocked(); i++ {
		f.sched.Tick(tick)
	}
	require.False(t, f.session.IsBlocked(), "gate never reopened")
	f.board.Refresh(input.Point{}, false)
}

func (f *fixture) center(t *testing.T, id string) input.Point {
	t.Helper()
	h, ok := f.board.Get(id)
	require.True(t, ok, id)
	return h.Rect.Center()
}

func TestNewBoard_BuildsItemsAndExits(t *testing.T) {
	f := newFixture(t)

	fridge, ok := f.board.Get("kitchen_fridge")
	require.True(t, ok)
	assert.Equal(t, Rect{X: 272, Y: 252, W: 96, H: 96}, fridge.Rect)
	assert.True(t, fridge.OneShot)

	note, _ := f.board.Get("kitchen_note")
	assert.False(t, note.OneShot)

	exit, ok := f.board.Get("exit:kitchen")
	require.True(t, ok)
	assert.Equal(t, KindExit, exit.Kind)
	assert.Equal(t, Rect{X: 530, Y: 632, W: ExitWidth, H: ExitHeight}, exit.Rect)
	_, ok = f.board.Get("exit:bedroom")
	assert.True(t, ok)
}

func TestClick_OneShotRunsOnce(t *testing.T) {
	f := newFixture(t)
	p := f.center(t, "kitchen_fridge")

	assert.True(t, f.board.Click(p))
	f.drain(t)
	assert.False(t, f.board.Click(p))
	f.drain(t)

	assert.Equal(t, []string{"dialogue_fridge"}, f.dialogue.played)
	assert.Equal(t, 1, f.board.Activations("kitchen_fridge"))
	assert.True(t, f.session.HasInteracted("kitchen_fridge"))
}

func TestClick_RepeatableRunsEveryTime(t *testing.T) {
	f := newFixture(t)
	p := f.center(t, "kitchen_note")

	const n = 5
	for i := 0; i < n; i++ {
		require.True(t, f.board.Click(p), "click %d", i)
		f.drain(t)
	}
	assert.Len(t, f.dialogue.played, n)
	assert.Equal(t, n, f.board.Activations("kitchen_note"))
	assert.False(t, f.session.HasInteracted("kitchen_note"))
}

func TestClick_GateOpenClosedOpen(t *testing.T) {
	f := newFixture(t)
	var gate []bool
	f.session.OnGateChange(func(b bool) { gate = append(gate, b) })

	require.True(t, f.board.Click(f.center(t, "kitchen_note")))
	assert.True(t, f.session.IsBlocked())

	// A second click while the sequence runs is refused and doesn't touch the gate.
	assert.False(t, f.board.Activate("kitchen_fridge"))
	f.drain(t)

	assert.Equal(t, []bool{true, false}, gate)
}

func TestClick_CinematicThenDialogue(t *testing.T) {
	f := newFixture(t)
	f.m.Rooms[0].Items = append(f.m.Rooms[0].Items, manifest.Item{
		ID: "kitchen_radio", Position: manifest.Vec2{X: 100, Y: 100},
		CinematicID: "cinematic_nightstand_left", DialogueID: "dialogue_note",
	})
	f.board = NewBoard(f.m, f.session, f.sched, 1280, 720, logger.Discard())
	f.board.SetNavigator(f.nav)
	f.board.SetCinematics(f.cinematics)
	f.board.SetDialogue(f.dialogue)
	f.board.Refresh(input.Point{}, false)

	require.True(t, f.board.Activate("kitchen_radio"))
	f.sched.Tick(tick)
	assert.Equal(t, []string{"cinematic_nightstand_left"}, f.cinematics.played)
	assert.Empty(t, f.dialogue.played, "dialogue must wait for the cinematic")
	f.drain(t)
	assert.Equal(t, []string{"dialogue_note"}, f.dialogue.played)
}

func TestRefresh_OnlyActiveRoom(t *testing.T) {
	f := newFixture(t)

	jacket, _ := f.board.Get("parents_jacket")
	fridge, _ := f.board.Get("kitchen_fridge")
	assert.False(t, jacket.Interactable)
	assert.True(t, fridge.Interactable)
	assert.False(t, f.board.Activate("parents_jacket"))

	f.nav.active = "bedroom"
	f.board.Refresh(input.Point{}, false)
	assert.True(t, jacket.Interactable)
	assert.False(t, fridge.Interactable)
}

func TestRefresh_OverlayLayerIgnoresRoomAndInterception(t *testing.T) {
	f := newFixture(t)
	f.m.Rooms[1].Items = append(f.m.Rooms[1].Items, manifest.Item{
		ID: "wardrobe_close", Position: manifest.Vec2{X: 1200, Y: 80}, Layer: manifest.LayerOverlay,
	})
	f.board = NewBoard(f.m, f.session, f.sched, 1280, 720, logger.Discard())
	f.board.SetNavigator(f.nav)
	f.board.SetOverlays(interceptor(true))
	f.board.Refresh(input.Point{}, false)

	closeBtn, _ := f.board.Get("wardrobe_close")
	fridge, _ := f.board.Get("kitchen_fridge")
	assert.True(t, closeBtn.Interactable, "overlay hotspot in an inactive room")
	assert.False(t, fridge.Interactable, "room hotspot under an intercepting overlay")
}

func TestRefresh_BlockedOrNotPlaying(t *testing.T) {
	f := newFixture(t)

	f.session.Block()
	f.board.Refresh(input.Point{}, false)
	assert.Empty(t, f.board.Interactable())
	f.session.Unblock()

	f.session.Phase = state.PhasePaused
	f.board.Refresh(input.Point{}, false)
	assert.Empty(t, f.board.Interactable())
}

func TestRemove_RetiresHotspot(t *testing.T) {
	f := newFixture(t)
	f.nav.active = "bedroom"
	f.board.Remove("parents_jacket")
	f.board.Refresh(input.Point{}, false)

	jacket, _ := f.board.Get("parents_jacket")
	assert.False(t, jacket.Interactable)
	assert.True(t, f.board.Removed("parents_jacket"))
	assert.False(t, f.board.Activate("parents_jacket"))
	for _, h := range f.board.Visible() {
		assert.NotEqual(t, "parents_jacket", h.ID)
	}
}

func TestRefresh_CollectedItemHidden(t *testing.T) {
	f := newFixture(t)
	f.nav.active = "bedroom"
	f.session.Collect("parents_jacket")
	f.board.Refresh(input.Point{}, false)

	jacket, _ := f.board.Get("parents_jacket")
	assert.False(t, jacket.Interactable)
}

func TestHover_OnlyWhenInteractable(t *testing.T) {
	f := newFixture(t)
	p := f.center(t, "kitchen_fridge")
	fridge, _ := f.board.Get("kitchen_fridge")

	f.board.Refresh(p, true)
	assert.True(t, fridge.Hovered)

	f.session.Block()
	f.board.Refresh(p, true)
	assert.False(t, fridge.Hovered)
	f.session.Unblock()

	f.board.Refresh(p, true)
	f.board.ClearFocus()
	assert.False(t, fridge.Hovered)
}

func TestSelect_WrapsAndClears(t *testing.T) {
	f := newFixture(t)
	list := f.board.Interactable()
	require.Len(t, list, 3) // fridge, note, exit

	f.board.Select(1)
	assert.Equal(t, "kitchen_fridge", f.board.Selected())
	f.board.Select(-1)
	assert.Equal(t, "exit:kitchen", f.board.Selected())
	f.board.Select(1)
	assert.Equal(t, "kitchen_fridge", f.board.Selected())

	f.board.ClearFocus()
	assert.Equal(t, "", f.board.Selected())
	assert.False(t, f.board.ActivateSelected())

	f.board.Select(1)
	f.board.Select(1)
	require.True(t, f.board.ActivateSelected())
	f.drain(t)
	assert.Equal(t, []string{"dialogue_note"}, f.dialogue.played)
}

func TestExit_NextOrTarget(t *testing.T) {
	f := newFixture(t)
	require.True(t, f.board.Click(f.center(t, "exit:kitchen")))
	assert.Equal(t, 1, f.nav.next)
	assert.Equal(t, 1, f.board.Activations("exit:kitchen"))

	f.m.Rooms[0].Exit = &manifest.Exit{TargetRoomID: "bedroom"}
	f.board = NewBoard(f.m, f.session, f.sched, 1280, 720, logger.Discard())
	f.board.SetNavigator(f.nav)
	f.board.Refresh(input.Point{}, false)
	require.True(t, f.board.Activate("exit:kitchen"))
	assert.Equal(t, []string{"bedroom"}, f.nav.targets)
}
