package gameplay

import (
	"path/filepath"
	"time"

	engineinput "homebound/pkg/engine/input"
	"homebound/pkg/game/devtools"
	"homebound/pkg/game/state"
)

// Update advances the game by one tick: input is routed by phase, then every
// running sequence is resumed, then hotspot hover is recomputed.
func (g *Game) Update(dt time.Duration, f engineinput.Frame) {
	g.clock += dt
	f = g.clicks.Filter(g.clock, f)
	if f.HasPointer {
		g.pointer = f.Pointer
		g.hasPointer = true
	}

	if f.Quit {
		g.log.Info("quit requested")
		g.quit = true
	}
	if f.Dump {
		g.dump()
	}

	g.Board.Refresh(g.pointer, g.hasPointer)
	g.processFrame(f)

	g.Sched.Tick(dt)
	g.Board.Refresh(g.pointer, g.hasPointer)
}

func (g *Game) processFrame(f engineinput.Frame) {
	// The title screen stays in front until its loading panel is done.
	if g.Menu.IsOpen() {
		g.Menu.Update(f)
		if g.Menu.ShouldQuit() {
			g.quit = true
		}
		return
	}

	switch g.Session.Phase {
	case state.PhasePaused:
		g.Pause.Update(f)
		if g.Pause.ShouldQuit() {
			g.quit = true
		}
	case state.PhasePlaying:
		g.processPlaying(f)
	}
}

func (g *Game) processPlaying(f engineinput.Frame) {
	switch {
	case f.Click:
		g.click()
	case f.Cancel:
		g.cancel()
	case f.Up:
		g.Board.Select(-1)
	case f.Down:
		g.Board.Select(1)
	case f.Confirm:
		if g.Board.ActivateSelected() {
			g.interactions++
		}
	}
}

func (g *Game) click() {
	// While a sequence holds the gate a click is only an advance signal.
	if g.Session.IsBlocked() {
		g.Dialogue.Click()
		g.Seq.Click()
		return
	}
	if g.hasPointer && g.Board.Click(g.pointer) {
		g.interactions++
		return
	}
	// A click that hits nothing while a base overlay is up dismisses it.
	if g.Seq.BaseOpen() != "" {
		g.Seq.Dismiss()
	}
}

func (g *Game) cancel() {
	if g.Session.IsBlocked() {
		return
	}
	if g.Seq.BaseOpen() != "" {
		g.Seq.Dismiss()
		return
	}
	g.pause()
}

func (g *Game) pause() {
	if g.Session.Phase != state.PhasePlaying {
		return
	}
	g.Session.Phase = state.PhasePaused
	g.Board.ClearFocus()
	g.Pause.Open()
	g.log.Info("game paused")
}

func (g *Game) resume() {
	if g.Session.Phase != state.PhasePaused {
		return
	}
	g.Session.Phase = state.PhasePlaying
	g.log.Info("game resumed")
}

// dump writes the developer state dump and an HTML snapshot of the screen.
func (g *Game) dump() {
	v := g.View()
	path, err := devtools.DumpStateToFile(g.dumpDir, v)
	if err != nil {
		g.log.Error("state dump failed", "error", err)
		logMessage(g, "State dump failed: %v", err)
		return
	}
	logMessage(g, "State dumped to ITEM{%s}", filepath.Base(path))

	shot, err := devtools.SaveScreenshotHTML(g.dumpDir, v)
	if err != nil {
		g.log.Error("screenshot failed", "error", err)
		return
	}
	g.log.Info("developer dump written", "state", path, "screenshot", shot)
}
