package gameplay

import (
	"homebound/pkg/game/hotspot"
	"homebound/pkg/game/renderer"
)

// hintLimit is how many interactions the player makes before hints stop.
const hintLimit = 3

// hint returns a usage tip for the hovered or selected hotspot. Tips only
// show for the first few interactions.
func (g *Game) hint() string {
	if g.interactions >= hintLimit {
		return ""
	}
	var target *hotspot.Hotspot
	for _, h := range g.Board.Interactable() {
		if h.Hovered || h.Selected {
			target = h
			break
		}
	}
	if target == nil {
		return ""
	}
	if target.Kind == hotspot.KindExit {
		return renderer.Text("HINT_EXIT", "Click to go to the next room")
	}
	return renderer.Text("HINT_ITEM", "Click to take a closer look")
}
