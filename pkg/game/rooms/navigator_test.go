package rooms

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebound/pkg/engine/scene"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

const frame = 50 * time.Millisecond

type fixture struct {
	m       *manifest.Manifest
	session *state.Session
	scenes  *scene.Registry
	sched   *task.Scheduler
	nav     *Navigator
}

func newFixture(t *testing.T, roomIDs ...string) *fixture {
	t.Helper()
	m := &manifest.Manifest{}
	for _, id := range roomIDs {
		m.Rooms = append(m.Rooms, manifest.Room{ID: id, SceneName: "Scene_" + id})
	}

	f := &fixture{
		m:       m,
		session: state.NewSession(),
		scenes:  scene.NewRegistry(logger.Discard()),
		sched:   task.NewScheduler(),
	}
	for _, name := range m.SceneNames() {
		require.Equal(t, task.Done, f.scenes.LoadAdditive(name).Resume(0))
	}
	f.nav = NewNavigator(m, f.session, f.scenes, f.sched, logger.Discard())
	f.nav.SettleDelay = 200 * time.Millisecond
	f.session.Phase = state.PhasePlaying
	return f
}

// settle ticks until the gate opens, failing after a generous bound.
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	for i := 0; i < 100 && f.session.IsBlocked(); i++ {
		f.sched.Tick(frame)
	}
	require.False(t, f.session.IsBlocked(), "gate never reopened")
}

type focusCounter struct{ n int }

func (c *focusCounter) ClearFocus() { c.n++ }

func TestNext_CyclesBackToStart(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d rooms", n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("room_%d", i)
			}
			f := newFixture(t, ids...)
			require.True(t, f.nav.Start(""))
			start := f.nav.Index()

			for i := 0; i < n; i++ {
				require.True(t, f.nav.Next(), "Next() #%d refused", i)
				f.settle(t)
			}
			assert.Equal(t, start, f.nav.Index())
			assert.Equal(t, n, f.nav.Transitions())
		})
	}
}

func TestNext_TwoRoomsAlternate(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	require.True(t, f.nav.Start("kitchen"))

	want := []string{"bedroom", "kitchen", "bedroom", "kitchen"}
	for _, id := range want {
		require.True(t, f.nav.Next())
		assert.Equal(t, id, f.nav.Current().ID)
		assert.Equal(t, []string{"Scene_" + id}, f.scenes.ActiveScenes())
		f.settle(t)
	}
}

func TestTransitionTo_RejectsWhileBlocked(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	require.True(t, f.nav.Start("kitchen"))

	require.True(t, f.nav.Next())
	assert.False(t, f.nav.Next(), "second switch must be refused while settling")
	assert.Equal(t, "bedroom", f.nav.Current().ID)
	assert.Equal(t, 1, f.nav.Transitions())

	f.session.Unblock()
	f.session.Block()
	assert.False(t, f.nav.TransitionTo(0))
}

func TestTransitionTo_InvalidIndexIsNoop(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	require.True(t, f.nav.Start("kitchen"))

	for _, idx := range []int{-1, 2, 99} {
		assert.False(t, f.nav.TransitionTo(idx), "TransitionTo(%d)", idx)
	}
	assert.Equal(t, "kitchen", f.nav.Current().ID)
	assert.False(t, f.session.IsBlocked())
	assert.Zero(t, f.session.GateChanges())
}

func TestTransitionTo_EmptyManifest(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.nav.Start("kitchen"))
	assert.False(t, f.nav.Next())
	assert.Nil(t, f.nav.Current())
}

func TestTransitionTo_OutsidePlayIgnored(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	require.True(t, f.nav.Start("kitchen"))
	f.session.Phase = state.PhasePaused

	assert.False(t, f.nav.Next())
	assert.Equal(t, "kitchen", f.nav.Current().ID)
}

func TestTransitionTo_HoldsSettleDelay(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	require.True(t, f.nav.Start("kitchen"))

	var gate []bool
	f.session.OnGateChange(func(b bool) { gate = append(gate, b) })

	require.True(t, f.nav.Next())
	assert.True(t, f.session.IsBlocked())

	// The first tick arms the wait; four more frames of 50ms cover 200ms.
	for i := 0; i < 4; i++ {
		f.sched.Tick(frame)
		assert.True(t, f.session.IsBlocked(), "gate opened early on tick %d", i)
	}
	f.sched.Tick(frame)
	assert.False(t, f.session.IsBlocked())
	assert.Equal(t, []bool{true, false}, gate)
}

func TestTransitionTo_ClearsFocus(t *testing.T) {
	f := newFixture(t, "kitchen", "bedroom")
	focus := &focusCounter{}
	f.nav.SetFocusClearer(focus)
	require.True(t, f.nav.Start("kitchen"))

	require.True(t, f.nav.Next())
	assert.Equal(t, 1, focus.n)
}

func TestTransitionToRoom(t *testing.T) {
	f := newFixture(t, "kitchen", "hallway", "bedroom")
	require.True(t, f.nav.Start("kitchen"))

	assert.False(t, f.nav.TransitionToRoom("attic"))
	require.True(t, f.nav.TransitionToRoom("bedroom"))
	assert.True(t, f.nav.IsActive("bedroom"))
}

func TestStart_PicksRoom(t *testing.T) {
	tests := []struct {
		name  string
		rooms []string
		start string
		want  string
	}{
		{"by id", []string{"bedroom", "kitchen"}, "kitchen", "kitchen"},
		{"by scene name", []string{"bedroom", "big_kitchen"}, "kitchen", "big_kitchen"},
		{"fallback to first", []string{"bedroom", "attic"}, "kitchen", "bedroom"},
		{"empty id", []string{"bedroom", "attic"}, "", "bedroom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.rooms...)
			require.True(t, f.nav.Start(tt.start))
			assert.Equal(t, tt.want, f.nav.Current().ID)
			assert.Equal(t, []string{"Scene_" + tt.want}, f.scenes.ActiveScenes())
			assert.True(t, f.session.Started())
		})
	}
}
