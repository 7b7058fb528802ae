// Package tui is the terminal host: it draws the game as text and turns key
// presses into input frames. Hotspots and menu items are picked by number.
package tui

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"homebound/pkg/engine/input"
	"homebound/pkg/engine/terminal"
	"homebound/pkg/game/config"
	"homebound/pkg/game/logger"
	"homebound/pkg/game/renderer"
	"homebound/pkg/game/state"
)

// ErrNotTerminal is returned by Init when stdin is not interactive.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// TUIRenderer is the terminal-based host.
type TUIRenderer struct {
	cfg *config.Config
	log *slog.Logger
	out io.Writer

	lastScreen string
}

// New creates a new TUI renderer
func New(cfg *config.Config, log *slog.Logger) *TUIRenderer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &TUIRenderer{
		cfg: cfg,
		log: logger.Component(log, "tui"),
		out: os.Stdout,
	}
}

// Init checks that the terminal can be driven.
func (t *TUIRenderer) Init() error {
	if !input.IsTerminal() {
		return ErrNotTerminal
	}
	renderer.InitColors()
	return nil
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	return renderer.Style(style).Sprint(text)
}

// Run puts the terminal in raw mode and drives d at the configured tick
// rate until the player quits.
func (t *TUIRenderer) Run(d renderer.Driver) error {
	restore, err := input.RawTerminal()
	if err != nil {
		return err
	}
	fmt.Fprint(t.out, terminal.HideCursor)
	defer func() {
		fmt.Fprint(t.out, terminal.ShowCursor+"\r\n")
		restore()
	}()

	keys := make(chan input.RawInput, 32)
	go func() {
		if err := input.ReadKeys(os.Stdin, keys); err != nil {
			t.log.Debug("key reader stopped", "error", err)
		}
	}()

	dt := t.cfg.TickDuration()
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	view := d.View()
	t.draw(view)
	for range ticker.C {
		events := drain(keys)
		if hasCode(events, "ctrl_c") {
			t.log.Info("interrupted")
			return nil
		}

		pointer, events := pickByNumber(view, events)
		d.Update(dt, input.FrameFromRaw(pointer, events))
		if d.QuitRequested() {
			return nil
		}
		view = d.View()
		t.draw(view)
	}
	return nil
}

func (t *TUIRenderer) draw(v renderer.View) {
	width, _ := terminal.GetSize()
	screen := strings.Join(Render(v, width), "\r\n")
	if screen == t.lastScreen {
		return
	}
	t.lastScreen = screen
	fmt.Fprint(t.out, terminal.ClearScreen+screen)
}

func drain(keys <-chan input.RawInput) []input.RawInput {
	var events []input.RawInput
	for {
		select {
		case ev := <-keys:
			events = append(events, ev)
		default:
			return events
		}
	}
}

func hasCode(events []input.RawInput, code string) bool {
	for _, ev := range events {
		if ev.Code == code {
			return true
		}
	}
	return false
}

// pickByNumber turns a digit key into a click on the numbered hotspot or
// menu item. The returned pointer is nil when no digit picked anything.
func pickByNumber(v renderer.View, events []input.RawInput) (*input.Point, []input.RawInput) {
	var pointer *input.Point
	out := make([]input.RawInput, 0, len(events))
	for _, ev := range events {
		if len(ev.Code) != 1 || ev.Code[0] < '1' || ev.Code[0] > '9' {
			out = append(out, ev)
			continue
		}
		p, ok := Target(v, int(ev.Code[0]-'0'))
		if !ok {
			continue
		}
		pointer = &p
		out = append(out, input.RawInput{Device: ev.Device, Code: "space", Timestamp: ev.Timestamp})
	}
	return pointer, out
}

// Target returns the centre of the n-th (1-based) numbered entry: a menu
// item when a menu is up, otherwise an interactable hotspot.
func Target(v renderer.View, n int) (input.Point, bool) {
	if n < 1 {
		return input.Point{}, false
	}
	if v.Menu != nil {
		if n > len(v.Menu.Items) {
			return input.Point{}, false
		}
		return v.Menu.Items[n-1].Rect.Center(), true
	}
	i := 0
	for _, h := range v.Hotspots {
		if !h.Interactable {
			continue
		}
		i++
		if i == n {
			return h.Rect.Center(), true
		}
	}
	return input.Point{}, false
}

// Render lays the view out as styled lines for a terminal width columns wide.
func Render(v renderer.View, width int) []string {
	if v.Menu != nil {
		return renderMenu(v, width)
	}

	var lines []string
	title := renderer.ColorTitle.Sprint(renderer.Text("GAME_TITLE", "Homebound"))
	if v.Room.ID != "" {
		title += renderer.StyledSubtle(" ─ ") + renderer.FormatString("ROOM{%s}", v.Room.SceneName)
	}
	lines = append(lines, title, renderer.StyledSubtle(terminal.Rule(width)), "")

	n := 0
	for _, h := range v.Hotspots {
		if !h.Interactable {
			continue
		}
		n++
		label := h.Label
		style := renderer.ColorItem
		if h.Exit {
			style = renderer.ColorExit
		}
		entry := fmt.Sprintf("  [%d] %s", n, style.Sprint(label))
		switch {
		case h.Selected:
			entry = renderer.ColorSelected.Sprintf("  [%d] %s", n, label)
		case h.Hovered:
			entry = renderer.ColorHover.Sprintf("  [%d] %s", n, label)
		}
		lines = append(lines, entry)
	}
	if n == 0 && v.Phase == state.PhasePlaying {
		lines = append(lines, renderer.StyledSubtle("  (nothing to do here)"))
	}

	for _, s := range v.Surfaces {
		lines = append(lines, renderer.ColorOverlay.Sprintf("  ▒ %s", s.Image)+
			renderer.StyledSubtle(fmt.Sprintf(" (%.0f%%)", s.Alpha*100)))
	}

	if v.Dialogue.Visible {
		lines = append(lines, "")
		for _, l := range terminal.Wrap(v.Dialogue.Text, width-4) {
			lines = append(lines, renderer.ColorDialogue.Sprint("  "+l))
		}
	}

	if len(v.Messages) > 0 {
		lines = append(lines, "", renderer.StyledSubtle(terminal.Rule(width)))
		for _, m := range v.Messages {
			lines = append(lines, renderer.FormatString("%s", m))
		}
	}

	lines = append(lines, "")
	if v.Hint != "" {
		lines = append(lines, renderer.StyledSubtle(v.Hint))
	}
	lines = append(lines, renderer.StyledSubtle(renderer.Text("TUI_KEYS",
		"1-9 pick, up/down select, enter activate, esc back, q quit")))
	return lines
}

func renderMenu(v renderer.View, width int) []string {
	m := v.Menu
	lines := []string{
		"",
		terminal.Center(renderer.ColorTitle.Sprint(m.Title), width),
		"",
	}
	for i, item := range m.Items {
		entry := fmt.Sprintf("[%d] %s", i+1, item.Label)
		switch {
		case !item.Enabled:
			entry = renderer.StyledSubtle(entry)
		case item.Selected:
			entry = renderer.ColorSelected.Sprint(entry)
		}
		lines = append(lines, terminal.Center(entry, width))
	}
	lines = append(lines, "")
	if m.HelpText != "" {
		lines = append(lines, terminal.Center(renderer.StyledSubtle(m.HelpText), width))
	}
	if m.LoadingText != "" {
		lines = append(lines, terminal.Center(renderer.ColorHover.Sprint(m.LoadingText), width))
	}
	lines = append(lines, "", terminal.Center(renderer.StyledSubtle(m.Instructions), width))
	if v.Phase == state.PhaseMenu {
		lines = append(lines, terminal.Center(renderer.StyledSubtle(renderer.VersionString()), width))
	}
	return lines
}
