package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"homebound/pkg/game/renderer"
)

const maxVisibleMessages = 4

// Draw renders the latest view (Ebiten interface).
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	v := e.view

	e.drawRoom(screen, v)
	e.drawHotspots(screen, v)
	e.drawSurfaces(screen, v)
	e.drawDialogue(screen, v)
	e.drawMessages(screen, v)
	e.drawHint(screen, v)

	if v.Menu != nil {
		e.drawMenu(screen, v.Menu, v.Phase)
	}
}

// drawRoom draws the room background, or the room name when there is no
// image for it.
func (e *EbitenRenderer) drawRoom(screen *ebiten.Image, v renderer.View) {
	if v.Room.ID == "" {
		return
	}
	if img := e.images.Image(v.Room.Background); img != nil {
		drawFullscreen(screen, img, 1)
		return
	}
	name := renderer.PlainMarkup("ROOM{" + v.Room.SceneName + "}")
	drawCenteredText(screen, name, float64(screen.Bounds().Dx())/2, screenMargin, colorRoom, e.getTitleFontFace())
}

// drawHotspots outlines every clickable area; hovered and selected ones are
// filled.
func (e *EbitenRenderer) drawHotspots(screen *ebiten.Image, v renderer.View) {
	now := time.Now()
	face := e.getSansFontFace()
	for _, h := range v.Hotspots {
		if !h.Interactable {
			continue
		}
		r := h.Rect
		x, y, w, hh := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

		border := colorHotspotBorder
		switch {
		case h.Exit:
			drawRoundedRectWithShadow(screen, x, y, w, hh, cornerRadius, 2, colorPanelBackground, getPulsingExitColor(now), 0.6)
		case h.Hovered || h.Selected:
			drawRoundedRectWithShadow(screen, x, y, w, hh, cornerRadius, 2, colorHoverBackground, colorAction, 1)
		default:
			var path vector.Path
			appendRoundedRect(&path, x, y, w, hh, cornerRadius)
			opts := &vector.DrawPathOptions{AntiAlias: true}
			opts.ColorScale.ScaleWithColor(border)
			vector.StrokePath(screen, &path, &vector.StrokeOptions{Width: 1, MiterLimit: 10}, opts)
		}

		if h.Hovered || h.Selected || h.Exit {
			col := colorText
			if h.Exit {
				col = colorExit
			}
			drawCenteredText(screen, h.Label, r.X+r.W/2, r.Y+(r.H-face.Size*lineSpacing)/2, col, face)
		}
	}
}

// drawSurfaces composites overlay surfaces in declaration order at their
// current opacity.
func (e *EbitenRenderer) drawSurfaces(screen *ebiten.Image, v renderer.View) {
	for _, s := range v.Surfaces {
		if s.Alpha <= 0 {
			continue
		}
		img := e.images.Image(s.Image)
		if img == nil {
			continue
		}
		drawFullscreen(screen, img, float32(s.Alpha))
	}
}

func (e *EbitenRenderer) drawDialogue(screen *ebiten.Image, v renderer.View) {
	if !v.Dialogue.Visible {
		return
	}
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	x := screenMargin
	y := sh - screenMargin - dialogueHeight
	w := sw - 2*screenMargin
	drawRoundedRectWithShadow(screen, float32(x), float32(y), float32(w), dialogueHeight,
		cornerRadius, 1, colorPanelBackground, colorPanelBorder, 1)

	face := e.getDialogueFontFace()
	lineY := y + panelPadding
	for _, line := range wrapText(v.Dialogue.Text, face, w-2*panelPadding) {
		if lineY+face.Size > y+dialogueHeight-panelPadding {
			break
		}
		drawText(screen, line, x+panelPadding, lineY, colorText, face)
		lineY += face.Size * lineSpacing
	}
}

// drawMessages shows the most recent messages in the top-left corner, older
// lines fainter.
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, v renderer.View) {
	if v.Menu != nil || len(v.Messages) == 0 {
		return
	}
	msgs := v.Messages
	if len(msgs) > maxVisibleMessages {
		msgs = msgs[len(msgs)-maxVisibleMessages:]
	}

	face := e.getSansFontFace()
	y := screenMargin
	if v.Room.Background == "" || e.images.Image(v.Room.Background) == nil {
		// Leave room for the room name.
		y += titleFontSize * lineSpacing
	}
	for i, msg := range msgs {
		alpha := 1 - float32(len(msgs)-1-i)*0.2
		drawMarkup(screen, msg, screenMargin, y, face, alpha)
		y += face.Size * lineSpacing
	}
}

func (e *EbitenRenderer) drawHint(screen *ebiten.Image, v renderer.View) {
	if v.Hint == "" || v.Dialogue.Visible || v.Menu != nil {
		return
	}
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	face := e.getSmallFontFace()
	drawCenteredText(screen, v.Hint, sw/2, sh-screenMargin-face.Size*lineSpacing, colorSubtle, face)
}

// drawFullscreen stretches img over the whole screen.
func drawFullscreen(screen, img *ebiten.Image, alpha float32) {
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(iw), float64(sh)/float64(ih))
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
