package scene

import (
	"testing"
	"time"

	"homebound/pkg/engine/task"
)

func runToCompletion(t *testing.T, tk task.Task) int {
	t.Helper()
	for i := 1; i <= 1000; i++ {
		if tk.Resume(10*time.Millisecond) == task.Done {
			return i
		}
	}
	t.Fatal("task did not finish")
	return 0
}

func TestRegistry_LoadAdditiveIsIdempotent(t *testing.T) {
	r := NewRegistry(nil)
	r.LoadDelay = 50 * time.Millisecond

	if r.IsLoaded("Kitchen") {
		t.Fatal("scene loaded before LoadAdditive")
	}
	if n := runToCompletion(t, r.LoadAdditive("Kitchen")); n < 2 {
		t.Errorf("first load finished in %d resumes, want it to take time", n)
	}
	if !r.IsLoaded("Kitchen") || !r.IsActive("Kitchen") {
		t.Fatal("scene not loaded and active after load")
	}
	if n := runToCompletion(t, r.LoadAdditive("Kitchen")); n != 1 {
		t.Errorf("second load took %d resumes, want 1", n)
	}
}

func TestRegistry_SetActive(t *testing.T) {
	r := NewRegistry(nil)
	runToCompletion(t, r.LoadAdditive("Kitchen"))
	runToCompletion(t, r.LoadAdditive("Bedroom"))

	r.SetActive("Kitchen", false)
	if r.IsActive("Kitchen") {
		t.Error("Kitchen still active after SetActive(false)")
	}
	if got := r.ActiveScenes(); len(got) != 1 || got[0] != "Bedroom" {
		t.Errorf("ActiveScenes() = %v, want [Bedroom]", got)
	}

	// Unloaded scenes are ignored.
	r.SetActive("Attic", true)
	if r.IsActive("Attic") {
		t.Error("unloaded scene became active")
	}
}
