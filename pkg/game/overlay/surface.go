// Package overlay runs cinematics: timed sequences that fade still images in
// on a fixed set of parallel overlay surfaces, optionally play dialogue, and
// record item collection.
package overlay

import (
	"time"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/manifest"
)

// Surface is one overlay surface. Hosts draw every active surface with its
// image at Alpha.
type Surface struct {
	ID string
	// DefaultImage is the still the surface was authored with.
	DefaultImage string
	Image        string
	Alpha        float64
	Active       bool
	// Intercept means the surface swallows clicks meant for the room below.
	Intercept bool
}

// Surfaces is the fixed set of overlay surfaces, in manifest order, followed
// by the dedicated cinematic surface.
type Surfaces struct {
	order []*Surface
	byID  map[string]*Surface
}

// NewSurfaces builds the surfaces declared by the manifest.
func NewSurfaces(m *manifest.Manifest) *Surfaces {
	s := &Surfaces{byID: make(map[string]*Surface)}
	if m != nil {
		for _, decl := range m.Surfaces {
			s.add(decl.ID, decl.Image)
		}
	}
	s.add(manifest.CinematicSurface, "")
	return s
}

func (s *Surfaces) add(id, image string) {
	if id == "" {
		return
	}
	if _, dup := s.byID[id]; dup {
		return
	}
	sf := &Surface{ID: id, DefaultImage: image, Image: image}
	s.order = append(s.order, sf)
	s.byID[id] = sf
}

// Get returns the surface with the given id.
func (s *Surfaces) Get(id string) (*Surface, bool) {
	sf, ok := s.byID[id]
	return sf, ok
}

// All returns every surface in draw order.
func (s *Surfaces) All() []*Surface {
	return s.order
}

// Intercepting reports whether any surface is swallowing clicks.
func (s *Surfaces) Intercepting() bool {
	for _, sf := range s.order {
		if sf.Active && sf.Intercept {
			return true
		}
	}
	return false
}

// Step moves alpha towards target by dt*speed, never overshooting.
// A non-positive speed jumps straight to target.
func Step(alpha, target, speed float64, dt time.Duration) float64 {
	if speed <= 0 {
		return target
	}
	delta := dt.Seconds() * speed
	if alpha < target {
		alpha += delta
		if alpha > target {
			alpha = target
		}
	} else if alpha > target {
		alpha -= delta
		if alpha < target {
			alpha = target
		}
	}
	return alpha
}

// Fade returns a task that ramps the surface's alpha linearly to target at
// speed per second and finishes on the tick it gets there.
func Fade(sf *Surface, target, speed float64) task.Task {
	return task.Func(func(dt time.Duration) task.Status {
		sf.Alpha = Step(sf.Alpha, target, speed, dt)
		if sf.Alpha == target {
			return task.Done
		}
		return task.Suspended
	})
}

// Show activates the surface with image, makes it intercept clicks and fades
// it in from transparent.
func Show(sf *Surface, image string, speed float64) task.Task {
	return task.Sequence(
		task.Do(func() {
			sf.Image = image
			sf.Alpha = 0
			sf.Active = true
			sf.Intercept = true
		}),
		Fade(sf, 1, speed),
	)
}

// Hide fades the surface out, then stops it intercepting and deactivates it.
func Hide(sf *Surface, speed float64) task.Task {
	return task.Sequence(
		Fade(sf, 0, speed),
		task.Do(func() {
			sf.Intercept = false
			sf.Active = false
			sf.Image = sf.DefaultImage
		}),
	)
}
