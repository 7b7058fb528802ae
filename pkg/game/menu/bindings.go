package menu

import (
	"fmt"
	"strings"

	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/game/renderer"
)

// BindingMenuItem shows the codes bound to one action.
type BindingMenuItem struct {
	Action engineinput.Action
}

// GetLabel returns the display label for this binding menu item.
func (b *BindingMenuItem) GetLabel() string {
	name := engineinput.ActionName(b.Action)
	codes := engineinput.GetBindingsByAction()[b.Action]
	codeText := strings.Join(codes, ", ")
	if codeText == "" {
		codeText = "(unbound)"
	}
	return fmt.Sprintf("%s: %s", name, codeText)
}

// IsSelectable returns whether this binding can be selected.
func (b *BindingMenuItem) IsSelectable() bool {
	return true
}

// GetHelpText returns help text for this binding.
func (b *BindingMenuItem) GetHelpText() string {
	return ""
}

// ControlsMenuHandler lists the controls. Activating any entry or pressing
// cancel closes it.
type ControlsMenuHandler struct{}

// GetTitle returns the menu title.
func (h *ControlsMenuHandler) GetTitle() string {
	return renderer.Text("CONTROLS_TITLE", "Controls")
}

// GetInstructions returns the menu instructions.
func (h *ControlsMenuHandler) GetInstructions(selected MenuItem) string {
	return renderer.Text("CONTROLS_INSTRUCTIONS", "Enter, click or Esc to go back")
}

// OnActivate closes the listing.
func (h *ControlsMenuHandler) OnActivate(item MenuItem, index int) (shouldClose bool, helpText string) {
	return true, ""
}

// OnExit is called when the menu is exited.
func (h *ControlsMenuHandler) OnExit() {
	// Nothing to do on exit
}

// ShouldCloseOnCancel returns true.
func (h *ControlsMenuHandler) ShouldCloseOnCancel() bool {
	return true
}

// controlActions is the order actions are listed in.
var controlActions = []engineinput.Action{
	engineinput.ActionClick,
	engineinput.ActionCancel,
	engineinput.ActionMenuUp,
	engineinput.ActionMenuDown,
	engineinput.ActionConfirm,
	engineinput.ActionDump,
	engineinput.ActionQuit,
}

// ControlItems returns one item per bound action.
func ControlItems() []MenuItem {
	items := make([]MenuItem, len(controlActions))
	for i, action := range controlActions {
		items[i] = &BindingMenuItem{Action: action}
	}
	return items
}

// NewControlsMenu creates the controls listing, closed.
func NewControlsMenu(layout Layout) *Menu {
	// Bindings are listed more tightly than buttons.
	layout.ItemH = 36
	layout.Gap = 6
	layout.ItemW = 520
	return New(&ControlsMenuHandler{}, ControlItems(), layout)
}
