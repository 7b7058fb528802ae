package ebiten

import (
	"image/color"
	"math"
	"time"
)

const highlightAnimDuration = 150 * time.Millisecond

// getPulsingExitColor returns a pulsing color for exit hotspot borders
// Uses a sine wave to create a smooth pulsing effect
func getPulsingExitColor(now time.Time) color.Color {
	// Pulse period: 2 seconds (2000ms)
	const pulsePeriod = 2000.0

	pulsePhase := float64(now.UnixMilli()%int64(pulsePeriod)) / pulsePeriod
	pulseValue := (math.Sin(pulsePhase*2*math.Pi) + 1.0) / 2.0 // 0.0 to 1.0

	// Pulse between 50% and 100% brightness
	brightness := 0.5 + 0.5*pulseValue

	baseR, baseG, baseB, baseA := colorExit.RGBA()
	return color.RGBA{
		uint8(float64(baseR>>8) * brightness),
		uint8(float64(baseG>>8) * brightness),
		uint8(float64(baseB>>8) * brightness),
		uint8(baseA >> 8),
	}
}

// highlightY returns where the menu selection bar should be drawn this
// frame, easing from the previously selected item to targetY.
func (e *EbitenRenderer) highlightY(title string, targetY float64, now time.Time) float64 {
	h := &e.highlight
	if !h.valid || h.title != title {
		*h = menuHighlight{title: title, fromY: targetY, toY: targetY, startedAt: now, valid: true}
		return targetY
	}
	if targetY != h.toY {
		h.fromY = h.current(now)
		h.toY = targetY
		h.startedAt = now
	}
	return h.current(now)
}

func (h *menuHighlight) current(now time.Time) float64 {
	t := float64(now.Sub(h.startedAt)) / float64(highlightAnimDuration)
	if t >= 1 {
		return h.toY
	}
	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)
	return h.fromY + (h.toY-h.fromY)*t
}
