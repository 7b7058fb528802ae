package gameplay

import (
	"fmt"
)

// collector retires a collected item's hotspot and tells the player.
type collector struct {
	g *Game
}

func (c *collector) Remove(itemID string) {
	c.g.Board.Remove(itemID)
	if !c.g.Session.HasCollected(itemID) {
		return
	}
	name := itemID
	if it, _, ok := c.g.m.FindItem(itemID); ok && it.DisplayName != "" {
		name = it.DisplayName
	}
	logMessage(c.g, "Took the ITEM{%s}.", name)
}

// roomEntry runs after every room switch, once the new room is active.
type roomEntry struct {
	g *Game
}

func (r *roomEntry) ClearFocus() {
	r.g.Board.ClearFocus()
	if room := r.g.Nav.Current(); room != nil {
		logMessage(r.g, "You are in the ROOM{%s}.", room.SceneName)
	}
}

// logMessage keeps the markup; each host renders it in its own colours.
func logMessage(g *Game, msg string, a ...any) {
	g.Session.AddMessage(fmt.Sprintf(msg, a...))
}
