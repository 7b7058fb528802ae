// Package dialogue plays flat lists of dialogue lines with a typewriter
// reveal, advancing on a click or after a timeout.
package dialogue

import (
	"log/slog"
	"time"

	"github.com/leonelquinteros/gotext"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/manifest"
)

// translate is used for runtime lookups of authored line text. Lines without
// a catalogue entry come back unchanged.
var translate = gotext.Get

// AudioPlayer plays one-shot voice or sound cues.
type AudioPlayer interface {
	PlayClip(key string)
}

// TextView is the dialogue panel.
type TextView interface {
	ShowText(text string)
	Hide()
}

// Panel is a TextView that just remembers what it was told. Hosts read it
// when they draw.
type Panel struct {
	Visible bool
	Text    string
}

// ShowText implements TextView.
func (p *Panel) ShowText(text string) {
	p.Visible = true
	p.Text = text
}

// Hide implements TextView.
func (p *Panel) Hide() {
	p.Visible = false
	p.Text = ""
}

// Player runs dialogues. It is Idle until Play's task starts, Showing a line
// while it runs, and Idle again once the last line is done.
type Player struct {
	TypewriterInterval time.Duration
	Timeout            time.Duration

	m     *manifest.Manifest
	view  TextView
	audio AudioPlayer
	log   *slog.Logger

	clicked bool
	current string
	line    int
	shown   int
}

// NewPlayer creates a player. audio may be nil.
func NewPlayer(m *manifest.Manifest, view TextView, audio AudioPlayer, log *slog.Logger) *Player {
	if log == nil {
		log = slog.Default()
	}
	if view == nil {
		view = &Panel{}
	}
	return &Player{
		TypewriterInterval: 20 * time.Millisecond,
		Timeout:            time.Second,
		m:                  m,
		view:               view,
		audio:              audio,
		log:                log,
		line:               -1,
	}
}

// Click is the advance signal. It only counts once the current line is
// fully revealed.
func (p *Player) Click() {
	p.clicked = true
}

// Active reports whether a dialogue is showing.
func (p *Player) Active() bool {
	return p.current != ""
}

// Current returns the playing dialogue id and line index, or "" and -1.
func (p *Player) Current() (string, int) {
	return p.current, p.line
}

// LinesShown returns how many lines have started since the player was made.
func (p *Player) LinesShown() int {
	return p.shown
}

// Play returns a task that shows every line of the dialogue in order.
// A missing dialogue id logs a warning and finishes immediately.
func (p *Player) Play(dialogueID string) task.Task {
	return task.Lazy(func() task.Task {
		d, ok := p.m.FindDialogue(dialogueID)
		if !ok {
			p.log.Warn("unknown dialogue", "dialogue", dialogueID)
			return nil
		}
		if len(d.Lines) == 0 {
			return nil
		}

		steps := make([]task.Task, 0, len(d.Lines)+2)
		steps = append(steps, task.Do(func() {
			p.current = d.ID
			p.log.Debug("dialogue started", "dialogue", d.ID, "lines", len(d.Lines))
		}))
		for i, ln := range d.Lines {
			steps = append(steps, &lineTask{p: p, index: i, line: ln})
		}
		steps = append(steps, task.Do(p.finish))
		return &playback{Task: task.Sequence(steps...), p: p}
	})
}

func (p *Player) finish() {
	p.view.Hide()
	p.log.Debug("dialogue finished", "dialogue", p.current)
	p.current = ""
	p.line = -1
	p.clicked = false
}

// playback hides the panel if the dialogue is dropped mid-line.
type playback struct {
	task.Task
	p *Player
}

func (pb *playback) Abort() {
	if a, ok := pb.Task.(task.Aborter); ok {
		a.Abort()
	}
	if pb.p.current != "" {
		pb.p.finish()
	}
}

// lineTask reveals one line and then waits for the advance signal.
type lineTask struct {
	p     *Player
	index int
	line  manifest.Line

	started  bool
	text     []rune
	revealed int
	elapsed  time.Duration
	waiting  bool
	waited   time.Duration
}

func (lt *lineTask) Resume(dt time.Duration) task.Status {
	p := lt.p
	if !lt.started {
		lt.start()
		dt = 0
	}

	if !lt.waiting {
		lt.elapsed += dt
		n := len(lt.text)
		if p.TypewriterInterval > 0 {
			n = min(n, int(lt.elapsed/p.TypewriterInterval))
		}
		if n != lt.revealed {
			lt.revealed = n
			p.view.ShowText(string(lt.text[:n]))
		}
		// Clicks during the reveal don't skip ahead.
		p.clicked = false
		if lt.revealed < len(lt.text) {
			return task.Suspended
		}
		lt.waiting = true
		return task.Suspended
	}

	if p.clicked {
		p.clicked = false
		return task.Done
	}
	lt.waited += dt
	if lt.waited >= p.Timeout {
		return task.Done
	}
	return task.Suspended
}

func (lt *lineTask) start() {
	p := lt.p
	lt.started = true
	lt.text = []rune(translate(lt.line.Text))
	p.line = lt.index
	p.shown++
	p.clicked = false
	p.view.ShowText("")
	if lt.line.AudioClip != "" && p.audio != nil {
		p.audio.PlayClip(lt.line.AudioClip)
	}
}
