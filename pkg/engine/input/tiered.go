package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceMouse
	DeviceKeyboard
	DeviceGamepad
	DeviceTouch
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Pointer
	ActionClick  // Primary click / tap / gamepad south
	ActionCancel // Escape / gamepad east

	// Menu navigation
	ActionMenuUp
	ActionMenuDown
	ActionConfirm

	// Meta
	ActionDump // Developer state dump (F9)
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// Point is a pointer position in scene coordinates.
type Point struct {
	X, Y float64
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "mouse_left", "escape", "gamepad_a").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Key repeat is already handled by the host libraries; click debouncing is
// time based and lives in ClickFilter because it needs the game clock.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Click: mouse left, primary touch, gamepad south (A / Cross)
	"mouse_left": ActionClick,
	"touch":      ActionClick,
	"gamepad_a":  ActionClick,
	"space":      ActionClick,

	// Cancel / back: escape, gamepad east (B / Circle)
	"escape":    ActionCancel,
	"x":         ActionCancel,
	"gamepad_b": ActionCancel,

	// Menu navigation
	"arrow_up":          ActionMenuUp,
	"w":                 ActionMenuUp,
	"gamepad_dpad_up":   ActionMenuUp,
	"arrow_down":        ActionMenuDown,
	"s":                 ActionMenuDown,
	"gamepad_dpad_down": ActionMenuDown,
	"enter":             ActionConfirm,
	"gamepad_start":     ActionConfirm,

	"f9": ActionDump,
	"q":  ActionQuit,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionClick:
		return "Click"
	case ActionCancel:
		return "Cancel"
	case ActionMenuUp:
		return "Menu Up"
	case ActionMenuDown:
		return "Menu Down"
	case ActionConfirm:
		return "Confirm"
	case ActionDump:
		return "Dump State"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// Frame is the per-tick input snapshot handed to the game. Every flag is
// edge-triggered: it is true only for the tick in which the event happened.
type Frame struct {
	Pointer    Point
	HasPointer bool

	Click   bool
	Cancel  bool
	Up      bool
	Down    bool
	Confirm bool
	Dump    bool
	Quit    bool
}

// Apply folds an intent into the frame.
func (f *Frame) Apply(in Intent) {
	switch in.Action {
	case ActionClick:
		f.Click = true
	case ActionCancel:
		f.Cancel = true
	case ActionMenuUp:
		f.Up = true
	case ActionMenuDown:
		f.Down = true
	case ActionConfirm:
		f.Confirm = true
	case ActionDump:
		f.Dump = true
	case ActionQuit:
		f.Quit = true
	}
}

// FrameFromRaw runs raw events through all four layers and folds the
// resulting intents into a single frame.
func FrameFromRaw(pointer *Point, events []RawInput) Frame {
	var f Frame
	if pointer != nil {
		f.Pointer = *pointer
		f.HasPointer = true
	}
	for _, raw := range events {
		f.Apply(MapToIntent(NewDebouncedInput(raw)))
	}
	return f
}

// ClickFilter suppresses clicks that arrive sooner than Interval after the
// previously accepted click. It protects against a double click landing in
// the single frame before the input gate closes.
type ClickFilter struct {
	Interval time.Duration

	lastAccepted time.Duration
	accepted     bool
}

// NewClickFilter creates a filter with the given minimum interval.
func NewClickFilter(interval time.Duration) *ClickFilter {
	return &ClickFilter{Interval: interval}
}

// Accept reports whether a click at game time now should be let through,
// recording it if so.
func (c *ClickFilter) Accept(now time.Duration) bool {
	if c.accepted && now-c.lastAccepted < c.Interval {
		return false
	}
	c.accepted = true
	c.lastAccepted = now
	return true
}

// Filter clears f.Click when the click is too close to the previous one.
func (c *ClickFilter) Filter(now time.Duration, f Frame) Frame {
	if f.Click && !c.Accept(now) {
		f.Click = false
	}
	return f
}
