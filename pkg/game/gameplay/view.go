package gameplay

import (
	"homebound/pkg/game/hotspot"
	"homebound/pkg/game/renderer"
	"homebound/pkg/game/state"
)

// View returns a snapshot of everything the hosts draw. Nothing in it
// aliases game state.
func (g *Game) View() renderer.View {
	s := g.Session
	v := renderer.View{
		Phase:       s.Phase,
		SessionID:   s.ID.String(),
		Width:       float64(g.cfg.WindowWidth),
		Height:      float64(g.cfg.WindowHeight),
		Blocked:     s.IsBlocked(),
		Overlay:     s.Overlay(),
		Collected:   s.Collected(),
		Interacted:  s.Interacted(),
		Messages:    append([]string(nil), s.Messages...),
		Transitions: g.Nav.Transitions(),
		GateChanges: s.GateChanges(),
		Dialogue: renderer.DialogueView{
			Visible: g.Panel.Visible,
			Text:    g.Panel.Text,
		},
	}

	if room := g.Nav.Current(); room != nil {
		v.Room = renderer.RoomView{
			ID:         room.ID,
			SceneName:  room.SceneName,
			Background: room.Background,
		}
	}

	if s.Phase == state.PhasePlaying || s.Phase == state.PhasePaused {
		for _, h := range g.Board.Visible() {
			v.Hotspots = append(v.Hotspots, renderer.HotspotView{
				ID:           h.ID,
				Label:        hotspotLabel(h),
				Exit:         h.Kind == hotspot.KindExit,
				Rect:         h.Rect,
				Interactable: h.Interactable,
				Hovered:      h.Hovered,
				Selected:     h.Selected,
			})
		}
		v.Hint = g.hint()
	}

	for _, sf := range g.Surfaces.All() {
		if !sf.Active {
			continue
		}
		v.Surfaces = append(v.Surfaces, renderer.SurfaceView{
			ID:    sf.ID,
			Image: sf.Image,
			Alpha: sf.Alpha,
		})
	}

	switch {
	case g.Menu.IsOpen():
		v.Menu = g.Menu.View()
	case s.Phase == state.PhasePaused && g.Pause.IsOpen():
		v.Menu = g.Pause.View()
	}
	return v
}

func hotspotLabel(h *hotspot.Hotspot) string {
	if h.Label == hotspot.DefaultExitLabel {
		return renderer.Text(h.Label, "Next room")
	}
	return renderer.Text(h.Label, h.Label)
}
