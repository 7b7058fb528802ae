package overlay

import (
	"log/slog"
	"time"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/manifest"
	"homebound/pkg/game/state"
)

// DialoguePlayer plays a dialogue by id.
type DialoguePlayer interface {
	Play(dialogueID string) task.Task
}

// HotspotRemover permanently retires the hotspot bound to an item.
type HotspotRemover interface {
	Remove(itemID string)
}

// Assets answers whether an image can be drawn.
type Assets interface {
	HasImage(key string) bool
}

// Sequencer turns manifest cinematics into tasks. It does not take the input
// gate itself; callers run its tasks while holding it.
type Sequencer struct {
	FadeSpeed float64

	m        *manifest.Manifest
	session  *state.Session
	surfaces *Surfaces
	sched    *task.Scheduler
	dialogue DialoguePlayer
	remover  HotspotRemover
	assets   Assets
	log      *slog.Logger

	clicked bool
	base    *Surface
	plays   map[string]int
}

// NewSequencer creates a sequencer. dialogue, remover and assets may be nil.
func NewSequencer(m *manifest.Manifest, session *state.Session, surfaces *Surfaces, sched *task.Scheduler, log *slog.Logger) *Sequencer {
	if log == nil {
		log = slog.Default()
	}
	return &Sequencer{
		FadeSpeed: 2,
		m:         m,
		session:   session,
		surfaces:  surfaces,
		sched:     sched,
		log:       log,
		plays:     make(map[string]int),
	}
}

// SetDialogue sets the dialogue player cinematics delegate to.
func (q *Sequencer) SetDialogue(d DialoguePlayer) { q.dialogue = d }

// SetRemover sets where collected items' hotspots are retired.
func (q *Sequencer) SetRemover(r HotspotRemover) { q.remover = r }

// SetAssets sets the image lookup used to skip missing visuals.
func (q *Sequencer) SetAssets(a Assets) { q.assets = a }

// Surfaces returns the overlay surfaces.
func (q *Sequencer) Surfaces() *Surfaces { return q.surfaces }

// Click is the advance signal for cinematics that wait for the player.
func (q *Sequencer) Click() { q.clicked = true }

// Plays returns how many times the cinematic actually ran.
func (q *Sequencer) Plays(cinematicID string) int { return q.plays[cinematicID] }

// BaseOpen returns the id of the base surface left open by the last
// cinematic, or "".
func (q *Sequencer) BaseOpen() string {
	if q.base == nil || !q.base.Active {
		return ""
	}
	return q.base.ID
}

// Play returns a task running the cinematic. Unknown ids and types log a
// warning and finish immediately; one-shot cinematics that already ran, or
// whose item is already collected, finish immediately too.
func (q *Sequencer) Play(cinematicID string) task.Task {
	return task.Lazy(func() task.Task {
		c, ok := q.m.FindCinematic(cinematicID)
		if !ok {
			q.log.Warn("unknown cinematic", "cinematic", cinematicID)
			return nil
		}
		if c.OneShot {
			if c.Collects != "" && q.session.HasCollected(c.Collects) {
				q.log.Debug("cinematic skipped, already collected", "cinematic", c.ID, "item", c.Collects)
				return nil
			}
			if q.session.HasInteracted(c.ID) {
				q.log.Debug("cinematic skipped, already played", "cinematic", c.ID)
				return nil
			}
		}

		var body task.Task
		switch c.Type {
		case manifest.TypeFixedImageSequence:
			body = q.fixedSequence(c)
		case manifest.TypeSpriteFrames:
			body = q.spriteFrames(c)
		default:
			q.log.Warn("unknown cinematic type", "cinematic", c.ID, "type", c.Type)
			return nil
		}
		if body == nil {
			return nil
		}

		return task.Sequence(
			task.Do(func() {
				if c.OneShot {
					q.session.RegisterInteraction(c.ID)
				}
				q.plays[c.ID]++
				q.session.SetOverlay(c.ID)
				q.log.Info("cinematic started", "cinematic", c.ID, "type", c.Type)
			}),
			body,
			task.Do(func() {
				q.session.SetOverlay(q.BaseOpen())
				q.log.Debug("cinematic finished", "cinematic", c.ID)
			}),
		)
	})
}

// imageFor picks the image for a step, preferring a variant whose item was
// collected.
func (q *Sequencer) imageFor(c *manifest.Cinematic, step manifest.OverlayStep, sf *Surface) string {
	for _, v := range c.Variants {
		if v.Slot == step.Slot && q.session.HasCollected(v.WhenCollected) {
			return v.Image
		}
	}
	if step.Image != "" {
		return step.Image
	}
	return sf.DefaultImage
}

func (q *Sequencer) hasImage(key string) bool {
	if q.assets == nil {
		return true
	}
	return key != "" && q.assets.HasImage(key)
}

func (q *Sequencer) fixedSequence(c *manifest.Cinematic) task.Task {
	var opened []*Surface

	steps := []task.Task{
		// A base surface left open by an earlier cinematic is closed first.
		task.Lazy(func() task.Task {
			if q.base == nil || !q.base.Active {
				return nil
			}
			prev := q.base
			q.base = nil
			return Hide(prev, q.FadeSpeed)
		}),
	}

	for _, step := range c.Overlays {
		steps = append(steps, task.Lazy(func() task.Task {
			sf, ok := q.surfaces.Get(step.Slot)
			if !ok {
				q.log.Warn("unknown overlay surface", "cinematic", c.ID, "slot", step.Slot)
				return nil
			}
			image := q.imageFor(c, step, sf)
			if !q.hasImage(image) {
				q.log.Warn("missing overlay image", "cinematic", c.ID, "slot", step.Slot, "image", image)
				return nil
			}
			opened = append(opened, sf)
			return Show(sf, image, q.FadeSpeed)
		}))
	}

	collect := func() {
		if c.Collects == "" {
			return
		}
		if q.session.Collect(c.Collects) {
			q.log.Info("item collected", "item", c.Collects, "cinematic", c.ID)
		}
		if id := c.HotspotToRemove(); id != "" && q.remover != nil {
			q.remover.Remove(id)
		}
	}

	// Dialogue and collection still run when every image was missing.
	steps = append(steps, task.Lazy(func() task.Task {
		if len(opened) == 0 {
			q.log.Warn("cinematic showed nothing", "cinematic", c.ID)
		}

		var rest []task.Task
		if c.CollectPoint() == manifest.CollectAtShown {
			rest = append(rest, task.Do(collect))
		}
		if c.DialogueID != "" && q.dialogue != nil {
			rest = append(rest, q.dialogue.Play(c.DialogueID))
		}
		if c.Hold > 0 {
			rest = append(rest, task.Wait(seconds(c.Hold)))
		}
		if c.AwaitClick {
			rest = append(rest,
				task.Do(func() { q.clicked = false }),
				task.WaitUntil(func() bool {
					if q.clicked {
						q.clicked = false
						return true
					}
					return false
				}),
			)
		}

		var hides []task.Task
		var base *Surface
		for i := len(opened) - 1; i >= 0; i-- {
			sf := opened[i]
			if sf.ID == c.BaseSlot {
				base = sf
				continue
			}
			hides = append(hides, Hide(sf, q.FadeSpeed))
		}
		rest = append(rest, task.All(hides...))

		if c.CollectPoint() == manifest.CollectAtEnd {
			rest = append(rest, task.Do(collect))
		}
		rest = append(rest, task.Do(func() {
			q.base = base
			if base == nil {
				return
			}
			// The base may now qualify for a variant, e.g. the wardrobe
			// emptied by this very cinematic.
			for _, step := range c.Overlays {
				if step.Slot != base.ID {
					continue
				}
				if img := q.imageFor(c, step, base); img != base.Image && q.hasImage(img) {
					base.Image = img
				}
			}
		}))
		return task.Sequence(rest...)
	}))

	return task.Sequence(steps...)
}

// frames flips a surface through images at a fixed rate for a duration.
type frames struct {
	sf       *Surface
	images   []string
	interval time.Duration
	duration time.Duration
	elapsed  time.Duration
}

func (f *frames) Resume(dt time.Duration) task.Status {
	f.elapsed += dt
	if f.elapsed >= f.duration {
		return task.Done
	}
	idx := int(f.elapsed/f.interval) % len(f.images)
	f.sf.Image = f.images[idx]
	return task.Suspended
}

func (q *Sequencer) spriteFrames(c *manifest.Cinematic) task.Task {
	sf, ok := q.surfaces.Get(manifest.CinematicSurface)
	if !ok {
		return nil
	}
	var images []string
	for _, p := range c.FramePaths {
		if q.hasImage(p) {
			images = append(images, p)
		}
	}
	if len(images) == 0 {
		q.log.Warn("cinematic frames not found", "cinematic", c.ID)
		return nil
	}
	duration := seconds(c.Duration)
	if duration <= 0 {
		q.log.Warn("cinematic has no duration", "cinematic", c.ID)
		return nil
	}

	f := &frames{
		sf:       sf,
		images:   images,
		interval: time.Second / time.Duration(c.FrameRate()),
		duration: duration,
	}
	return task.Sequence(
		task.Do(func() {
			sf.Image = images[0]
			sf.Alpha = 1
			sf.Active = true
			sf.Intercept = true
		}),
		f,
		task.Do(func() {
			sf.Active = false
			sf.Intercept = false
			sf.Alpha = 0
			sf.Image = ""
			if c.Collects != "" {
				q.session.Collect(c.Collects)
				if id := c.HotspotToRemove(); id != "" && q.remover != nil {
					q.remover.Remove(id)
				}
			}
		}),
	)
}

// Dismiss fades out the base surface left open by a cinematic. It takes the
// input gate for the fade and refuses when the gate is closed or nothing is
// open.
func (q *Sequencer) Dismiss() bool {
	if q.BaseOpen() == "" {
		return false
	}
	release, ok := q.session.TryAcquire()
	if !ok {
		return false
	}
	sf := q.base
	q.base = nil
	q.sched.Spawn(task.Scoped(release, task.Sequence(
		Hide(sf, q.FadeSpeed),
		task.Do(func() { q.session.SetOverlay("") }),
	)))
	q.log.Debug("overlay dismissed", "surface", sf.ID)
	return true
}

// Close drops every overlay immediately, without fading.
func (q *Sequencer) Close() {
	for _, sf := range q.surfaces.All() {
		sf.Active = false
		sf.Intercept = false
		sf.Alpha = 0
		sf.Image = sf.DefaultImage
	}
	q.base = nil
	q.session.SetOverlay("")
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
