package ebiten

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"homebound/pkg/game/renderer"
	"homebound/pkg/game/state"
)

// appendRoundedRect adds a rounded rectangle to the path. (x, y) is top-left; w, h are size; r is corner radius.
// Uses clockwise arcs so the path winds correctly for fill.
func appendRoundedRect(p *vector.Path, x, y, w, h, r float32) {
	appendRoundedRectDir(p, x, y, w, h, r, vector.Clockwise)
}

// appendRoundedRectDir adds a rounded rectangle with the given winding direction.
// CounterClockwise creates a hole when combined with an outer clockwise rect.
func appendRoundedRectDir(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, 3*halfPi, 0, dir)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, halfPi, dir)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, halfPi, pi, dir)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, pi, 3*halfPi, dir)
	p.Close()
}

// drawRoundedRectWithShadow draws a rounded rectangle with drop shadow, fill and border.
// Menu items, hotspot outlines and the dialogue panel use it; alpha scales the
// shadow opacity (1.0 = full, lower for hotspots that are not hovered).
// Shadow color is derived from borderColor (darkened to ~15% brightness).
func drawRoundedRectWithShadow(screen *ebiten.Image, x, y, w, h, cornerRadius, borderWidth float32, bgColor, borderColor color.Color, alpha float32) {
	const shadowSpread = 8
	// Derive shadow from border color (darkened)
	bor, bog, bob, _ := borderColor.RGBA()
	shadowR := uint8((bor >> 8) * 15 / 255)
	shadowG := uint8((bog >> 8) * 15 / 255)
	shadowB := uint8((bob >> 8) * 15 / 255)
	if shadowR < 8 {
		shadowR = 8
	}
	if shadowG < 8 {
		shadowG = 8
	}
	if shadowB < 8 {
		shadowB = 8
	}

	var path vector.Path
	for i := shadowSpread; i >= 1; i-- {
		ringAlpha := uint8(12 + i*8)
		if ringAlpha > 55 {
			ringAlpha = 55
		}
		ringAlpha = uint8(float32(ringAlpha) * alpha)
		path.Reset()
		appendRoundedRect(&path,
			x-float32(i), y-float32(i),
			w+float32(i*2), h+float32(i*2),
			cornerRadius+float32(i))
		appendRoundedRectDir(&path,
			x-float32(i-1), y-float32(i-1),
			w+float32((i-1)*2), h+float32((i-1)*2),
			cornerRadius+float32(i-1), vector.CounterClockwise)
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(color.RGBA{shadowR, shadowG, shadowB, ringAlpha})
		vector.FillPath(screen, &path, nil, drawOpts)
	}

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(bgColor)
	vector.FillPath(screen, &path, nil, drawOpts)

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	strokeOpts := &vector.StrokeOptions{Width: borderWidth, MiterLimit: 10}
	drawOpts = &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(borderColor)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}

// drawMenu draws a menu over a dimmed screen. Items are drawn at the
// rectangles the menu laid out, so clicks land where the player sees them.
func (e *EbitenRenderer) drawMenu(screen *ebiten.Image, m *renderer.MenuView, phase state.Phase) {
	sw, sh := float32(screen.Bounds().Dx()), float32(screen.Bounds().Dy())
	vector.DrawFilledRect(screen, 0, 0, sw, sh, colorDim, false)

	cx := float64(sw) / 2
	titleY := float64(sh) * 0.18
	if len(m.Items) > 0 {
		titleY = m.Items[0].Rect.Y - titleFontSize*2.5
	}
	drawCenteredText(screen, m.Title, cx, titleY, colorAction, e.getTitleFontFace())

	now := time.Now()
	var lastY float64
	for i, item := range m.Items {
		r := item.Rect
		if item.Selected {
			y := e.highlightY(m.Title, r.Y, now)
			drawRoundedRectWithShadow(screen, float32(r.X), float32(y), float32(r.W), float32(r.H),
				cornerRadius, 2, colorHoverBackground, colorAction, 1)
		} else {
			bg := colorPanelBackground
			border := colorPanelBorder
			if item.Hovered && item.Enabled {
				border = colorAction
			}
			drawRoundedRectWithShadow(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H),
				cornerRadius, 1, bg, border, 0.5)
		}

		col := colorText
		switch {
		case !item.Enabled:
			col = colorDisabled
		case item.Selected:
			col = colorItem
		}
		face := e.getSansBoldFontFace()
		drawCenteredText(screen, item.Label, r.X+r.W/2, r.Y+(r.H-face.Size*lineSpacing)/2, col, face)

		if i == len(m.Items)-1 {
			lastY = r.Y + r.H
		}
	}

	y := lastY + panelPadding*1.5
	if m.HelpText != "" {
		drawCenteredText(screen, m.HelpText, cx, y, colorSubtle, e.getSansFontFace())
		y += uiFontSize * lineSpacing * 1.5
	}
	if m.LoadingText != "" {
		var col color.Color = colorText
		if m.Loading {
			col = getPulsingExitColor(now)
		}
		drawCenteredText(screen, m.LoadingText, cx, y, col, e.getSansFontFace())
	}

	bottom := float64(sh) - screenMargin - smallFontSize*lineSpacing
	if m.Instructions != "" {
		drawCenteredText(screen, m.Instructions, cx, bottom, colorSubtle, e.getSmallFontFace())
	}
	if phase == state.PhaseMenu {
		drawText(screen, renderer.VersionString(), screenMargin, bottom, colorSubtle, e.getMonoFontFace())
	}
}
