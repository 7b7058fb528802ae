package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/manifest"
)

const tick = 100 * time.Millisecond

type clipRecorder struct{ clips []string }

func (r *clipRecorder) PlayClip(key string) { r.clips = append(r.clips, key) }

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Dialogues: []manifest.Dialogue{
			{ID: "dialogue_fridge", Lines: []manifest.Line{
				{Text: "Nothing but old milk."},
				{Text: "Mum always kept it full.", AudioClip: "audio/fridge_sigh"},
			}},
			{ID: "dialogue_short", Lines: []manifest.Line{{Text: "Hm."}}},
		},
	}
}

func newPlayer(t *testing.T) (*Player, *Panel, *clipRecorder) {
	t.Helper()
	panel := &Panel{}
	audio := &clipRecorder{}
	p := NewPlayer(testManifest(), panel, audio, logger.Discard())
	p.TypewriterInterval = 0
	p.Timeout = time.Second
	return p, panel, audio
}

// run resumes tk until it finishes and returns how many resumes it took.
func run(t *testing.T, tk task.Task, each func(i int)) int {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if each != nil {
			each(i)
		}
		if tk.Resume(tick) == task.Done {
			return i + 1
		}
	}
	t.Fatal("task never finished")
	return 0
}

func TestPlay_AdvancesOnTimeout(t *testing.T) {
	p, _, _ := newPlayer(t)
	tk := p.Play("dialogue_short")

	// One resume reveals the line, then the timeout is counted in ticks.
	resumes := run(t, tk, nil)
	waited := time.Duration(resumes-1) * tick
	assert.GreaterOrEqual(t, waited, p.Timeout)
	assert.Equal(t, 11, resumes)
}

func TestPlay_AdvancesOnClickBeforeTimeout(t *testing.T) {
	p, _, _ := newPlayer(t)
	tk := p.Play("dialogue_short")

	// Click after three ticks of waiting (300ms < 1s).
	resumes := run(t, tk, func(i int) {
		if i == 4 {
			p.Click()
		}
	})
	assert.Equal(t, 5, resumes)
}

func TestPlay_ClickDuringRevealIgnored(t *testing.T) {
	p, panel, _ := newPlayer(t)
	p.TypewriterInterval = tick
	tk := p.Play("dialogue_short") // "Hm." takes three ticks to reveal

	require.Equal(t, task.Suspended, tk.Resume(tick))
	p.Click()
	require.Equal(t, task.Suspended, tk.Resume(tick))
	assert.Equal(t, "H", panel.Text)
	assert.True(t, p.Active())

	p.Click()
	require.Equal(t, task.Suspended, tk.Resume(tick))
	assert.Equal(t, "Hm", panel.Text)
	require.Equal(t, task.Suspended, tk.Resume(tick))
	assert.Equal(t, "Hm.", panel.Text)

	p.Click()
	assert.Equal(t, task.Done, tk.Resume(tick))
}

func TestPlay_AllLinesInOrderWithAudio(t *testing.T) {
	p, panel, audio := newPlayer(t)
	tk := p.Play("dialogue_fridge")

	var texts []string
	run(t, tk, func(int) {
		if panel.Visible && (len(texts) == 0 || texts[len(texts)-1] != panel.Text) && panel.Text != "" {
			texts = append(texts, panel.Text)
		}
		p.Click()
	})

	assert.Equal(t, []string{"Nothing but old milk.", "Mum always kept it full."}, texts)
	assert.Equal(t, []string{"audio/fridge_sigh"}, audio.clips)
	assert.Equal(t, 2, p.LinesShown())
	assert.False(t, p.Active())
	assert.False(t, panel.Visible, "panel must be hidden after the last line")
}

func TestPlay_MissingDialogueIsNoop(t *testing.T) {
	p, panel, _ := newPlayer(t)
	assert.Equal(t, task.Done, p.Play("dialogue_missing").Resume(tick))
	assert.Equal(t, task.Done, p.Play("").Resume(tick))
	assert.False(t, panel.Visible)
	assert.Zero(t, p.LinesShown())
}

func TestPlay_AbortHidesPanel(t *testing.T) {
	p, panel, _ := newPlayer(t)
	sched := task.NewScheduler()
	sched.Spawn(p.Play("dialogue_fridge"))
	sched.Tick(tick)
	require.True(t, p.Active())
	require.True(t, panel.Visible)

	sched.Abort()
	assert.False(t, p.Active())
	assert.False(t, panel.Visible)
}
