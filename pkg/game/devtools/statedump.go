// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"homebound/pkg/game/renderer"
)

const stateDumpFilename = "state.txt"

// DumpStateToFile writes a full debug dump of v to state.txt in dir and
// returns the absolute path. Format is human- and LLM-readable (sections,
// key: value, consistent structure).
func DumpStateToFile(dir string, v renderer.View) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, stateDumpFilename))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("create state dump: %w", err)
	}
	defer f.Close()

	if err := WriteState(f, v); err != nil {
		return "", fmt.Errorf("write state dump: %w", err)
	}
	return absPath, nil
}

// WriteState writes the debug dump of v to w.
func WriteState(w io.Writer, v renderer.View) error {
	var b strings.Builder

	// --- Metadata (session, phase, gate) ---
	fmt.Fprintln(&b, "=== STATE DUMP DEBUG (session, rooms, overlays, hotspots) ===")
	fmt.Fprintln(&b, "")
	fmt.Fprintln(&b, "--- Metadata ---")
	fmt.Fprintf(&b, "session_id: %s\n", v.SessionID)
	fmt.Fprintf(&b, "phase: %s\n", v.Phase)
	fmt.Fprintf(&b, "scene_size: %.0fx%.0f\n", v.Width, v.Height)
	fmt.Fprintf(&b, "input_blocked: %v\n", v.Blocked)
	fmt.Fprintf(&b, "gate_changes: %d\n", v.GateChanges)
	fmt.Fprintf(&b, "room_transitions: %d\n", v.Transitions)
	fmt.Fprintf(&b, "overlay_context: %q\n", v.Overlay)
	fmt.Fprintln(&b, "")

	// --- Room ---
	fmt.Fprintln(&b, "--- Room ---")
	fmt.Fprintf(&b, "room_id: %q\n", v.Room.ID)
	fmt.Fprintf(&b, "scene_name: %q\n", v.Room.SceneName)
	fmt.Fprintf(&b, "background: %q\n", v.Room.Background)
	fmt.Fprintln(&b, "")

	// --- Progress ---
	fmt.Fprintln(&b, "--- Progress ---")
	fmt.Fprintf(&b, "collected: %s\n", joinOrNone(v.Collected))
	fmt.Fprintf(&b, "interacted: %s\n", joinOrNone(v.Interacted))
	fmt.Fprintln(&b, "")

	// --- Hotspots ---
	fmt.Fprintln(&b, "--- Hotspots (visible, draw order) ---")
	if len(v.Hotspots) == 0 {
		fmt.Fprintln(&b, "  (none)")
	}
	for _, h := range v.Hotspots {
		fmt.Fprintf(&b, "  id: %q exit: %v rect: %.0f,%.0f %.0fx%.0f interactable: %v hovered: %v selected: %v\n",
			h.ID, h.Exit, h.Rect.X, h.Rect.Y, h.Rect.W, h.Rect.H, h.Interactable, h.Hovered, h.Selected)
	}
	fmt.Fprintln(&b, "")

	// --- Surfaces ---
	fmt.Fprintln(&b, "--- Overlay surfaces (active) ---")
	if len(v.Surfaces) == 0 {
		fmt.Fprintln(&b, "  (none)")
	}
	for _, sf := range v.Surfaces {
		fmt.Fprintf(&b, "  id: %q image: %q alpha: %.2f\n", sf.ID, sf.Image, sf.Alpha)
	}
	fmt.Fprintln(&b, "")

	// --- Dialogue ---
	fmt.Fprintln(&b, "--- Dialogue ---")
	fmt.Fprintf(&b, "visible: %v\n", v.Dialogue.Visible)
	fmt.Fprintf(&b, "text: %q\n", v.Dialogue.Text)
	fmt.Fprintln(&b, "")

	// --- Messages ---
	fmt.Fprintln(&b, "--- Messages (oldest first) ---")
	for _, m := range v.Messages {
		fmt.Fprintf(&b, "  %s\n", renderer.PlainMarkup(m))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}
