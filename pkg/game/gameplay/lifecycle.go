package gameplay

import (
	"errors"
	"fmt"

	"homebound/pkg/engine/task"
	"homebound/pkg/game/state"
)

// ErrNoManifest is returned by StartGame when there is no content to play.
var ErrNoManifest = errors.New("no game manifest loaded")

// StartGame loads every room scene additively, enters the start room and
// switches to play. Loading runs on the scheduler; the phase reports when
// it is done. Without a manifest the game stays on the menu.
func (g *Game) StartGame() error {
	if g.m == nil {
		g.log.Error("cannot start, manifest missing")
		return ErrNoManifest
	}
	if len(g.m.Rooms) == 0 {
		return fmt.Errorf("start game: %w", errors.New("manifest has no rooms"))
	}
	switch g.Session.Phase {
	case state.PhaseLoading, state.PhasePlaying:
		return nil
	}

	g.Session.Phase = state.PhaseLoading
	g.log.Info("loading game", "rooms", len(g.m.Rooms))

	names := g.m.SceneNames()
	loads := make([]task.Task, 0, len(names))
	for _, name := range names {
		loads = append(loads, g.Scenes.LoadAdditive(name))
	}

	g.Sched.Spawn(task.Sequence(
		task.All(loads...),
		task.Do(g.enterPlay),
	))
	return nil
}

func (g *Game) enterPlay() {
	if !g.Nav.Start(g.cfg.StartRoomID) {
		g.log.Error("no start room, back to menu")
		g.Session.Phase = state.PhaseMenu
		return
	}
	g.Session.Phase = state.PhasePlaying
	g.Session.ClearMessages()
	if room := g.Nav.Current(); room != nil {
		logMessage(g, "You are in the ROOM{%s}.", room.SceneName)
	}
	g.log.Info("game started", "room", g.Session.ActiveRoom)
}

// Shutdown drops every running sequence, which releases the input gate, and
// clears the overlays and the dialogue panel.
func (g *Game) Shutdown() {
	g.Sched.Abort()
	g.Seq.Close()
	g.Panel.Hide()
	g.log.Info("game shut down", "collected", g.Session.CollectedCount())
}
