package menu

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/engine/task"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/state"
)

const frame = 100 * time.Millisecond

type fakeStarter struct {
	session *state.Session
	play    bool
	loading bool
	err     error
	calls   int
}

func (f *fakeStarter) StartGame() error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	switch {
	case f.play:
		f.session.Phase = state.PhasePlaying
	case f.loading:
		f.session.Phase = state.PhaseLoading
	}
	return nil
}

func newMainMenu(t *testing.T, starter *fakeStarter) (*MainMenu, *task.Scheduler) {
	t.Helper()
	sched := task.NewScheduler()
	mm := NewMainMenu(starter, starter.session, sched, DefaultLayout(1280, 720), logger.Discard())
	require.True(t, mm.IsOpen())
	return mm, sched
}

func TestMainMenu_StartHidesMenuAfterMinimumShow(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession(), play: true}
	mm, sched := newMainMenu(t, starter)

	mm.Update(engineinput.Frame{Confirm: true})
	assert.Equal(t, 1, starter.calls)
	assert.True(t, mm.Loading())
	assert.True(t, mm.View().Loading)

	for i := 0; i < 4; i++ {
		sched.Tick(frame)
		assert.True(t, mm.IsOpen(), "menu closed early on tick %d", i+1)
	}
	sched.Tick(frame)
	assert.False(t, mm.IsOpen())
	assert.False(t, mm.Loading())
	assert.Empty(t, mm.LoadingText())
}

func TestMainMenu_ItemsDisabledWhileLoading(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession()}
	mm, _ := newMainMenu(t, starter)

	mm.Update(engineinput.Frame{Confirm: true})
	mm.Update(engineinput.Frame{Confirm: true})
	assert.Equal(t, 1, starter.calls, "second confirm while loading must not start again")

	for _, item := range mm.View().Items {
		assert.False(t, item.Enabled, item.Label)
	}
}

func TestMainMenu_TimeoutShowsRetryAndReenables(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession()}
	mm, sched := newMainMenu(t, starter)
	mm.LoadingTimeout = 300 * time.Millisecond
	mm.MinLoadingShow = 0

	mm.Update(engineinput.Frame{Confirm: true})
	sched.Tick(frame)
	sched.Tick(frame)
	assert.True(t, mm.Loading())
	sched.Tick(frame)

	assert.False(t, mm.Loading())
	assert.True(t, mm.IsOpen())
	assert.Equal(t, "Loading failed. Try again.", mm.LoadingText())
	for _, item := range mm.View().Items {
		assert.True(t, item.Enabled, item.Label)
	}

	starter.play = true
	mm.Update(engineinput.Frame{Confirm: true})
	assert.Equal(t, 2, starter.calls)
}

func TestMainMenu_PlayingDuringMinimumShowCloses(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession(), loading: true}
	mm, sched := newMainMenu(t, starter)
	mm.LoadingTimeout = 300 * time.Millisecond
	mm.MinLoadingShow = 500 * time.Millisecond

	mm.Update(engineinput.Frame{Confirm: true})
	for i := 0; i < 3; i++ {
		sched.Tick(frame)
	}
	starter.session.Phase = state.PhasePlaying
	for i := 0; i < 5; i++ {
		sched.Tick(frame)
	}

	assert.False(t, mm.IsOpen())
	assert.Empty(t, mm.LoadingText())
}

func TestMainMenu_LoadingFinishedAfterTimeoutCloses(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession(), loading: true}
	mm, sched := newMainMenu(t, starter)
	mm.LoadingTimeout = 300 * time.Millisecond
	mm.MinLoadingShow = 0

	mm.Update(engineinput.Frame{Confirm: true})
	for i := 0; i < 4; i++ {
		sched.Tick(frame)
	}
	require.True(t, mm.IsOpen())
	require.Equal(t, "Loading failed. Try again.", mm.LoadingText())

	starter.session.Phase = state.PhasePlaying
	sched.Tick(frame)
	sched.Tick(frame)

	assert.False(t, mm.IsOpen())
	assert.Empty(t, mm.LoadingText())
	assert.Equal(t, 1, starter.calls)
}

func TestMainMenu_StartErrorFailsFast(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession(), err: errors.New("manifest missing")}
	mm, sched := newMainMenu(t, starter)
	mm.MinLoadingShow = 0

	mm.Update(engineinput.Frame{Confirm: true})
	sched.Tick(frame)

	assert.False(t, mm.Loading())
	assert.Equal(t, "Loading failed. Try again.", mm.LoadingText())
	assert.Equal(t, state.PhaseMenu, starter.session.Phase)
}

func TestMainMenu_Quit(t *testing.T) {
	mm, _ := newMainMenu(t, &fakeStarter{session: state.NewSession()})

	mm.Update(engineinput.Frame{Up: true})
	assert.Equal(t, 2, mm.Selected(), "up from the first item wraps to Quit")
	mm.Update(engineinput.Frame{Confirm: true})
	assert.True(t, mm.ShouldQuit())
}

func TestMainMenu_OptionsShowsControls(t *testing.T) {
	mm, _ := newMainMenu(t, &fakeStarter{session: state.NewSession()})

	mm.Update(engineinput.Frame{Down: true})
	mm.Update(engineinput.Frame{Confirm: true})
	assert.Equal(t, "Controls", mm.View().Title)
	assert.Len(t, mm.View().Items, len(controlActions))

	mm.Update(engineinput.Frame{Cancel: true})
	assert.Equal(t, "Homebound", mm.View().Title)
	assert.True(t, mm.IsOpen())
}

func TestMainMenu_ClickOnItem(t *testing.T) {
	starter := &fakeStarter{session: state.NewSession()}
	mm, _ := newMainMenu(t, starter)

	quitRect := mm.View().Items[2].Rect
	mm.Update(engineinput.Frame{
		Pointer:    quitRect.Center(),
		HasPointer: true,
		Click:      true,
	})
	assert.True(t, mm.ShouldQuit())
	assert.Zero(t, starter.calls)
}

func TestMenu_SelectionWraps(t *testing.T) {
	m := New(&ControlsMenuHandler{}, ControlItems(), DefaultLayout(1280, 720))
	m.Open()

	for i := 0; i < len(controlActions); i++ {
		m.MoveDown()
	}
	assert.Equal(t, 0, m.Selected())
	m.MoveUp()
	assert.Equal(t, len(controlActions)-1, m.Selected())
}

func TestMenu_EmptyDoesNotPanic(t *testing.T) {
	m := New(&ControlsMenuHandler{}, nil, DefaultLayout(1280, 720))
	m.Open()
	m.MoveDown()
	m.MoveUp()
	assert.True(t, m.Update(engineinput.Frame{Confirm: true}))
}

func TestPauseMenu_CancelResumes(t *testing.T) {
	resumed := 0
	pm := NewPauseMenu(DefaultLayout(1280, 720), func() { resumed++ })
	pm.Open()

	pm.Update(engineinput.Frame{Cancel: true})
	assert.False(t, pm.IsOpen())
	assert.Equal(t, 1, resumed)

	pm.Open()
	pm.Update(engineinput.Frame{Confirm: true})
	assert.Equal(t, 2, resumed)
}

func TestBindingMenuItem_Label(t *testing.T) {
	item := &BindingMenuItem{Action: engineinput.ActionCancel}
	assert.Contains(t, item.GetLabel(), "Cancel: ")
	assert.Contains(t, item.GetLabel(), "escape")
}
