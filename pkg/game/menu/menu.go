// Package menu provides a generic tick-driven menu and the game's menus built
// on it: the main menu with its loading sequence, the pause menu and the
// controls listing.
package menu

import (
	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/game/hotspot"
	"homebound/pkg/game/renderer"
)

// MenuItem represents a single item in a menu.
type MenuItem interface {
	// GetLabel returns the display label for this menu item.
	GetLabel() string
	// IsSelectable returns whether this item can be selected.
	IsSelectable() bool
	// GetHelpText returns optional help text for this item.
	GetHelpText() string
}

// MenuHandler handles menu item activation.
type MenuHandler interface {
	// OnActivate is called when an item is activated (Enter or click).
	// Returns true if the menu should close, and any help text to display.
	OnActivate(item MenuItem, index int) (shouldClose bool, helpText string)
	// OnExit is called when the menu is closed.
	OnExit()
	// GetTitle returns the menu title.
	GetTitle() string
	// GetInstructions returns the menu instructions.
	GetInstructions(selected MenuItem) string
	// ShouldCloseOnCancel returns true if cancel closes the menu.
	ShouldCloseOnCancel() bool
}

// Layout places menu items as a centred column of buttons.
type Layout struct {
	CenterX float64
	Top     float64
	ItemW   float64
	ItemH   float64
	Gap     float64
}

// DefaultLayout centres a column on a scene of the given size.
func DefaultLayout(sceneW, sceneH float64) Layout {
	return Layout{
		CenterX: sceneW / 2,
		Top:     sceneH * 0.4,
		ItemW:   280,
		ItemH:   56,
		Gap:     16,
	}
}

// ItemRect returns the bounds of item i.
func (l Layout) ItemRect(i int) hotspot.Rect {
	return hotspot.Rect{
		X: l.CenterX - l.ItemW/2,
		Y: l.Top + float64(i)*(l.ItemH+l.Gap),
		W: l.ItemW,
		H: l.ItemH,
	}
}

// Menu is a list of items with a keyboard selection and pointer hover.
type Menu struct {
	handler  MenuHandler
	items    []MenuItem
	layout   Layout
	selected int
	hovered  int
	helpText string
	open     bool
}

// New creates a closed menu.
func New(handler MenuHandler, items []MenuItem, layout Layout) *Menu {
	return &Menu{
		handler: handler,
		items:   items,
		layout:  layout,
		hovered: -1,
	}
}

// Open shows the menu with the first selectable item selected.
func (m *Menu) Open() {
	m.open = true
	m.helpText = ""
	m.hovered = -1
	m.selected = m.firstSelectable()
}

// Close hides the menu and tells the handler.
func (m *Menu) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.hovered = -1
	m.handler.OnExit()
}

// IsOpen reports whether the menu is showing.
func (m *Menu) IsOpen() bool {
	return m.open
}

// Selected returns the selected index.
func (m *Menu) Selected() int {
	return m.selected
}

// SetHelpText replaces the help line.
func (m *Menu) SetHelpText(s string) {
	m.helpText = s
}

func (m *Menu) firstSelectable() int {
	for i, item := range m.items {
		if item.IsSelectable() {
			return i
		}
	}
	return 0
}

// MoveUp moves the selection to the previous selectable item, wrapping.
func (m *Menu) MoveUp() {
	m.move(-1)
}

// MoveDown moves the selection to the next selectable item, wrapping.
func (m *Menu) MoveDown() {
	m.move(1)
}

func (m *Menu) move(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	for step := 1; step <= n; step++ {
		i := ((m.selected+delta*step)%n + n) % n
		if m.items[i].IsSelectable() {
			if i != m.selected {
				m.helpText = "" // Clear help text when navigating
			}
			m.selected = i
			return
		}
	}
}

// itemAt returns the selectable item under p, or -1.
func (m *Menu) itemAt(p engineinput.Point) int {
	for i, item := range m.items {
		if item.IsSelectable() && m.layout.ItemRect(i).Contains(p) {
			return i
		}
	}
	return -1
}

// Update applies one tick of input. It reports whether the menu consumed
// the frame.
func (m *Menu) Update(f engineinput.Frame) bool {
	if !m.open {
		return false
	}

	m.hovered = -1
	if f.HasPointer {
		m.hovered = m.itemAt(f.Pointer)
	}

	switch {
	case f.Up:
		m.MoveUp()
	case f.Down:
		m.MoveDown()
	case f.Confirm:
		m.activate(m.selected)
	case f.Click && m.hovered >= 0:
		m.selected = m.hovered
		m.activate(m.selected)
	case f.Cancel && m.handler.ShouldCloseOnCancel():
		m.Close()
	}
	return true
}

func (m *Menu) activate(i int) {
	if i < 0 || i >= len(m.items) || !m.items[i].IsSelectable() {
		return
	}
	shouldClose, help := m.handler.OnActivate(m.items[i], i)
	m.helpText = help
	if shouldClose {
		m.Close()
	}
}

// View returns the menu for drawing.
func (m *Menu) View() *renderer.MenuView {
	var selected MenuItem
	if m.selected >= 0 && m.selected < len(m.items) {
		selected = m.items[m.selected]
	}
	help := m.helpText
	if help == "" && selected != nil {
		help = selected.GetHelpText()
	}
	v := &renderer.MenuView{
		Title:        m.handler.GetTitle(),
		Instructions: m.handler.GetInstructions(selected),
		HelpText:     help,
	}
	for i, item := range m.items {
		v.Items = append(v.Items, renderer.MenuItemView{
			Label:    item.GetLabel(),
			Rect:     m.layout.ItemRect(i),
			Enabled:  item.IsSelectable(),
			Selected: i == m.selected,
			Hovered:  i == m.hovered,
		})
	}
	return v
}
