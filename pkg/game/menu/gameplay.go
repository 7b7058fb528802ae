package menu

import (
	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/game/renderer"
)

// PauseMenuAction represents the action type for pause menu items.
type PauseMenuAction int

const (
	PauseMenuActionResume PauseMenuAction = iota
	PauseMenuActionControls
	PauseMenuActionQuit
)

// PauseMenuItem represents a menu item in the pause menu.
type PauseMenuItem struct {
	Label  string
	Action PauseMenuAction
}

// GetLabel returns the display label for this menu item.
func (m *PauseMenuItem) GetLabel() string {
	return m.Label
}

// IsSelectable returns whether this item can be selected.
func (m *PauseMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this menu item.
func (m *PauseMenuItem) GetHelpText() string {
	switch m.Action {
	case PauseMenuActionResume:
		return renderer.Text("PAUSE_RESUME_HELP", "Back to the game")
	case PauseMenuActionControls:
		return renderer.Text("MENU_OPTIONS_HELP", "Show the controls")
	case PauseMenuActionQuit:
		return renderer.Text("MENU_QUIT_HELP", "Exit the game")
	default:
		return ""
	}
}

// PauseMenu is shown while the game is paused. Closing it resumes.
type PauseMenu struct {
	*Menu

	controls *Menu
	onResume func()
	quit     bool
}

// NewPauseMenu creates the pause menu, closed. onResume runs whenever the
// menu closes.
func NewPauseMenu(layout Layout, onResume func()) *PauseMenu {
	pm := &PauseMenu{onResume: onResume}
	items := []MenuItem{
		&PauseMenuItem{Label: renderer.Text("PAUSE_RESUME", "Resume"), Action: PauseMenuActionResume},
		&PauseMenuItem{Label: renderer.Text("MENU_OPTIONS", "Options"), Action: PauseMenuActionControls},
		&PauseMenuItem{Label: renderer.Text("MENU_QUIT", "Quit"), Action: PauseMenuActionQuit},
	}
	pm.Menu = New(pm, items, layout)
	pm.controls = NewControlsMenu(layout)
	return pm
}

// GetTitle returns the menu title.
func (pm *PauseMenu) GetTitle() string {
	return renderer.Text("PAUSE_TITLE", "Paused")
}

// GetInstructions returns the menu instructions.
func (pm *PauseMenu) GetInstructions(selected MenuItem) string {
	return renderer.Text("PAUSE_INSTRUCTIONS", "Use up/down to select, Enter to activate, Esc to resume")
}

// ShouldCloseOnCancel returns true; cancel resumes.
func (pm *PauseMenu) ShouldCloseOnCancel() bool {
	return true
}

// OnActivate is called when an item is activated.
func (pm *PauseMenu) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	pauseItem, ok := item.(*PauseMenuItem)
	if !ok {
		return false, ""
	}
	switch pauseItem.Action {
	case PauseMenuActionResume:
		return true, ""
	case PauseMenuActionControls:
		pm.controls.Open()
	case PauseMenuActionQuit:
		pm.quit = true
	}
	return false, ""
}

// OnExit resumes the game.
func (pm *PauseMenu) OnExit() {
	if pm.onResume != nil {
		pm.onResume()
	}
}

// ShouldQuit returns true if the player selected Quit.
func (pm *PauseMenu) ShouldQuit() bool {
	return pm.quit
}

// Update applies one tick of input to the menu or the controls listing.
func (pm *PauseMenu) Update(f engineinput.Frame) bool {
	if pm.controls.IsOpen() {
		return pm.controls.Update(f)
	}
	return pm.Menu.Update(f)
}

// View returns whichever menu is in front.
func (pm *PauseMenu) View() *renderer.MenuView {
	if pm.controls.IsOpen() {
		return pm.controls.View()
	}
	return pm.Menu.View()
}
