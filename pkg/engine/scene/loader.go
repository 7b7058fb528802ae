// Package scene provides the scene loading collaborator: additive loading of
// named scenes and toggling a scene's root content on and off.
package scene

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"homebound/pkg/engine/task"
)

// Loader is what the game core needs from the host's scene system.
type Loader interface {
	// LoadAdditive loads a named scene alongside the ones already loaded.
	// Loading a scene that is already loaded finishes immediately.
	LoadAdditive(name string) task.Task
	// SetActive enables or disables all root content of a loaded scene.
	// Unknown or unloaded scenes are ignored.
	SetActive(name string, active bool)
	// IsLoaded reports whether the named scene finished loading.
	IsLoaded(name string) bool
}

// Scene is a loaded scene and its activation state.
type Scene struct {
	Name   string
	Loaded bool
	Active bool
}

// Registry is an in-memory Loader. Hosts use it to track which room scene
// is visible; LoadDelay simulates asynchronous loading.
type Registry struct {
	LoadDelay time.Duration

	mu     sync.RWMutex
	scenes map[string]*Scene
	log    *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		scenes: make(map[string]*Scene),
		log:    log,
	}
}

// LoadAdditive implements Loader.
func (r *Registry) LoadAdditive(name string) task.Task {
	r.mu.Lock()
	sc, ok := r.scenes[name]
	if ok && sc.Loaded {
		r.mu.Unlock()
		return task.Nop()
	}
	if !ok {
		sc = &Scene{Name: name}
		r.scenes[name] = sc
	}
	r.mu.Unlock()

	return task.Sequence(
		task.Wait(r.LoadDelay),
		task.Do(func() {
			r.mu.Lock()
			sc.Loaded = true
			// Freshly loaded scenes come up active, like the host engine does.
			sc.Active = true
			r.mu.Unlock()
			r.log.Debug("scene loaded", "scene", name)
		}),
	)
}

// SetActive implements Loader.
func (r *Registry) SetActive(name string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sc, ok := r.scenes[name]
	if !ok || !sc.Loaded {
		return
	}
	sc.Active = active
}

// IsLoaded implements Loader.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, ok := r.scenes[name]
	return ok && sc.Loaded
}

// IsActive reports whether a loaded scene's content is enabled.
func (r *Registry) IsActive(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sc, ok := r.scenes[name]
	return ok && sc.Loaded && sc.Active
}

// ActiveScenes returns the names of every active scene, sorted.
func (r *Registry) ActiveScenes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, sc := range r.scenes {
		if sc.Loaded && sc.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
