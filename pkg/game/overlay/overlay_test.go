package overlay

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

const tick = 100 * time.Millisecond

type dialogueSpy struct{ played []string }

func (d *dialogueSpy) Play(id string) task.Task {
	return task.Do(func() { d.played = append(d.played, id) })
}

type removerSpy struct{ removed []string }

func (r *removerSpy) Remove(id string) { r.removed = append(r.removed, id) }

type assetSet map[string]bool

func (a assetSet) HasImage(key string) bool { return a[key] }

type fixture struct {
	m        *manifest.Manifest
	session  *state.Session
	sched    *task.Scheduler
	seq      *Sequencer
	dialogue *dialogueSpy
	remover  *removerSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, err := manifest.Load(filepath.Join("..", "manifest", "testdata", "game_manifest.json"))
	require.NoError(t, err)

	f := &fixture{
		m:        m,
		session:  state.NewSession(),
		sched:    task.NewScheduler(),
		dialogue: &dialogueSpy{},
		remover:  &removerSpy{},
	}
	f.seq = NewSequencer(m, f.session, NewSurfaces(m), f.sched, logger.Discard())
	f.seq.FadeSpeed = 2
	f.seq.SetDialogue(f.dialogue)
	f.seq.SetRemover(f.remover)
	return f
}

func (f *fixture) surface(t *testing.T, id string) *Surface {
	t.Helper()
	sf, ok := f.seq.Surfaces().Get(id)
	require.True(t, ok, "surface %s", id)
	return sf
}

// run resumes tk until it is done, calling each before every resume.
func run(t *testing.T, tk task.Task, each func()) int {
	t.Helper()
	for i := 1; i <= 1000; i++ {
		if each != nil {
			each()
		}
		if tk.Resume(tick) == task.Done {
			return i
		}
	}
	t.Fatal("task never finished")
	return 0
}

func TestStep_FadeInClampsToOne(t *testing.T) {
	speeds := []float64{0.3, 1, 2, 3, 7.5, 60}
	frames := []time.Duration{time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 250 * time.Millisecond, 2 * time.Second}
	for _, speed := range speeds {
		for _, dt := range frames {
			alpha := 0.0
			for i := 0; alpha != 1; i++ {
				require.Less(t, i, 100000, "fade in never reached 1 (speed %v, dt %v)", speed, dt)
				next := Step(alpha, 1, speed, dt)
				require.LessOrEqual(t, next, 1.0)
				require.GreaterOrEqual(t, next, alpha)
				alpha = next
			}
			for i := 0; alpha != 0; i++ {
				require.Less(t, i, 100000, "fade out never reached 0 (speed %v, dt %v)", speed, dt)
				next := Step(alpha, 0, speed, dt)
				require.GreaterOrEqual(t, next, 0.0)
				require.LessOrEqual(t, next, alpha)
				alpha = next
			}
		}
	}
}

func TestStep_ZeroDtHolds(t *testing.T) {
	assert.Equal(t, 0.25, Step(0.25, 1, 2, 0))
	assert.Equal(t, 1.0, Step(0.25, 1, 0, tick))
}

func TestFade_Duration(t *testing.T) {
	sf := &Surface{ID: "wardrobe"}
	// 1 / fadeSpeed seconds: at speed 2, 0.5s, which is five 100ms ticks.
	n := run(t, Fade(sf, 1, 2), nil)
	assert.Equal(t, 5, n)
	assert.Equal(t, 1.0, sf.Alpha)
}

func TestPlay_JacketCollectsOnceAndLeavesWardrobeOpen(t *testing.T) {
	f := newFixture(t)
	wardrobe := f.surface(t, "wardrobe")
	jacket := f.surface(t, "jacket")

	tk := f.seq.Play("cinematic_jacket_first")
	sawOverlay := false
	run(t, tk, func() {
		if f.session.Overlay() == "cinematic_jacket_first" {
			sawOverlay = true
		}
	})
	assert.True(t, sawOverlay, "overlay context not set while running")

	assert.True(t, f.session.HasCollected("parents_jacket"))
	assert.Equal(t, []string{"parents_jacket"}, f.remover.removed)
	assert.Equal(t, []string{"dialogue_jacket"}, f.dialogue.played)
	assert.Equal(t, 1, f.seq.Plays("cinematic_jacket_first"))

	assert.True(t, wardrobe.Active)
	assert.True(t, wardrobe.Intercept)
	assert.Equal(t, 1.0, wardrobe.Alpha)
	assert.Equal(t, "overlays/wardrobe_empty", wardrobe.Image)
	assert.False(t, jacket.Active)
	assert.False(t, jacket.Intercept)
	assert.Equal(t, 0.0, jacket.Alpha)

	assert.Equal(t, "wardrobe", f.seq.BaseOpen())
	assert.Equal(t, "wardrobe", f.session.Overlay())
	assert.True(t, f.seq.Surfaces().Intercepting())

	// One-shot: the second play is a no-op.
	assert.Equal(t, task.Done, f.seq.Play("cinematic_jacket_first").Resume(tick))
	assert.Equal(t, 1, f.seq.Plays("cinematic_jacket_first"))
	assert.Len(t, f.dialogue.played, 1)
	assert.Equal(t, 1, f.session.CollectedCount())
}

func TestPlay_OneShotSkippedWhenItemAlreadyCollected(t *testing.T) {
	f := newFixture(t)
	f.session.Collect("parents_jacket")

	assert.Equal(t, task.Done, f.seq.Play("cinematic_jacket_first").Resume(tick))
	assert.Zero(t, f.seq.Plays("cinematic_jacket_first"))
	assert.False(t, f.session.HasInteracted("cinematic_jacket_first"))
}

func TestPlay_RepeatableRunsEveryTime(t *testing.T) {
	f := newFixture(t)
	nightstand := f.surface(t, "nightstand_left")

	const n = 4
	for i := 0; i < n; i++ {
		maxAlpha := 0.0
		run(t, f.seq.Play("cinematic_nightstand_left"), func() {
			maxAlpha = max(maxAlpha, nightstand.Alpha)
		})
		assert.Equal(t, 1.0, maxAlpha, "run %d never fully showed the overlay", i)
		assert.False(t, nightstand.Active)
		assert.Equal(t, "", f.session.Overlay())
	}
	assert.Equal(t, n, f.seq.Plays("cinematic_nightstand_left"))
	assert.Zero(t, f.session.CollectedCount())
}

func TestPlay_VariantPickedFromCollectedState(t *testing.T) {
	f := newFixture(t)
	wardrobe := f.surface(t, "wardrobe")

	var images []string
	record := func() {
		if wardrobe.Active && (len(images) == 0 || images[len(images)-1] != wardrobe.Image) {
			images = append(images, wardrobe.Image)
		}
	}
	run(t, f.seq.Play("cinematic_wardrobe_look"), record)
	f.session.Collect("parents_jacket")
	run(t, f.seq.Play("cinematic_wardrobe_look"), record)

	assert.Equal(t, []string{"overlays/wardrobe_full", "overlays/wardrobe_empty"}, images)
}

func TestPlay_UnknownIDsAreNoops(t *testing.T) {
	f := newFixture(t)
	f.m.Cinematics = append(f.m.Cinematics, manifest.Cinematic{ID: "cinematic_hologram", Type: "hologram"})

	for _, id := range []string{"cinematic_missing", "", "cinematic_hologram"} {
		assert.Equal(t, task.Done, f.seq.Play(id).Resume(tick), id)
	}
	assert.Equal(t, "", f.session.Overlay())
	assert.False(t, f.seq.Surfaces().Intercepting())
}

func TestPlay_MissingImageSkipsStep(t *testing.T) {
	f := newFixture(t)
	f.seq.SetAssets(assetSet{"overlays/wardrobe_full": true})
	jacket := f.surface(t, "jacket")

	run(t, f.seq.Play("cinematic_jacket_first"), func() {
		assert.False(t, jacket.Active, "missing jacket image must not be shown")
	})
	assert.True(t, f.session.HasCollected("parents_jacket"))
	assert.Equal(t, "wardrobe", f.seq.BaseOpen())
}

func TestPlay_NothingToShowStillCollects(t *testing.T) {
	f := newFixture(t)
	f.seq.SetAssets(assetSet{})

	run(t, f.seq.Play("cinematic_jacket_first"), nil)
	assert.True(t, f.session.HasCollected("parents_jacket"))
	assert.Equal(t, []string{"parents_jacket"}, f.remover.removed)
	assert.Len(t, f.dialogue.played, 1)
	assert.Equal(t, "", f.session.Overlay())
	assert.Empty(t, f.seq.BaseOpen())
	assert.False(t, f.seq.Surfaces().Intercepting())
}

func TestPlay_SpriteFrames(t *testing.T) {
	f := newFixture(t)
	cine := f.surface(t, manifest.CinematicSurface)

	seen := map[string]bool{}
	n := run(t, f.seq.Play("cinematic_intro"), func() {
		if cine.Active {
			seen[cine.Image] = true
		}
	})
	assert.Len(t, seen, 3)
	assert.GreaterOrEqual(t, time.Duration(n-1)*tick, time.Second)
	assert.False(t, cine.Active)
	assert.False(t, f.seq.Surfaces().Intercepting())
}

func TestPlay_SpriteFramesWithoutFramesIsNoop(t *testing.T) {
	f := newFixture(t)
	f.seq.SetAssets(assetSet{})
	assert.Equal(t, task.Done, f.seq.Play("cinematic_intro").Resume(tick))
	assert.Zero(t, f.seq.Plays("cinematic_intro"))
}

func TestPlay_AwaitClick(t *testing.T) {
	f := newFixture(t)
	f.m.Cinematics = append(f.m.Cinematics, manifest.Cinematic{
		ID:         "cinematic_photo",
		Type:       manifest.TypeFixedImageSequence,
		Overlays:   []manifest.OverlayStep{{Slot: "nightstand_right"}},
		AwaitClick: true,
	})
	tk := f.seq.Play("cinematic_photo")
	for i := 0; i < 50; i++ {
		require.Equal(t, task.Suspended, tk.Resume(tick), "finished without a click")
	}
	f.seq.Click()
	run(t, tk, nil)
	assert.False(t, f.surface(t, "nightstand_right").Active)
}

func TestDismiss_FadesBaseAndReleasesGate(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.seq.Dismiss(), "nothing open to dismiss")

	run(t, f.seq.Play("cinematic_jacket_first"), nil)
	wardrobe := f.surface(t, "wardrobe")

	f.session.Block()
	assert.False(t, f.seq.Dismiss(), "dismiss while gate closed")
	f.session.Unblock()

	require.True(t, f.seq.Dismiss())
	assert.True(t, f.session.IsBlocked())
	for i := 0; i < 100 && f.session.IsBlocked(); i++ {
		f.sched.Tick(tick)
	}
	assert.False(t, f.session.IsBlocked())
	assert.False(t, wardrobe.Active)
	assert.Equal(t, 0.0, wardrobe.Alpha)
	assert.Equal(t, "", f.session.Overlay())
	assert.False(t, f.seq.Dismiss())
}

func TestClose_DropsEverything(t *testing.T) {
	f := newFixture(t)
	run(t, f.seq.Play("cinematic_jacket_first"), nil)
	f.seq.Close()
	assert.False(t, f.seq.Surfaces().Intercepting())
	assert.Equal(t, "", f.seq.BaseOpen())
}
