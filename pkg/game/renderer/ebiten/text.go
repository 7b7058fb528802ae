package ebiten

import (
	"image/color"
	"regexp"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/leonelquinteros/gotext"
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

var markupRegex = regexp.MustCompile(`([A-Z][A-Z0-9_]*)\{([^}]*)\}`)

// textSegment represents a segment of text with a specific color
type textSegment struct {
	text  string
	color color.Color
}

// parseMarkup parses a message string with markup (ITEM{}, ROOM{}, ACTION{}, GT{}) and returns colored segments
func parseMarkup(msg string) []textSegment {
	var segments []textSegment

	lastIndex := 0
	for _, match := range markupRegex.FindAllStringSubmatchIndex(msg, -1) {
		// Add text before the markup
		if match[0] > lastIndex {
			segments = append(segments, textSegment{text: msg[lastIndex:match[0]], color: colorText})
		}

		function := msg[match[2]:match[3]]
		content := msg[match[4]:match[5]]

		var segColor color.Color
		switch function {
		case "ITEM":
			segColor = colorItem
		case "ROOM":
			content = dynamicGet(content)
			segColor = colorRoom
		case "ACTION":
			segColor = colorAction
		case "GT":
			content = dynamicGet(content)
			segColor = colorText
		default:
			// Unknown markup is drawn verbatim
			content = msg[match[0]:match[1]]
			segColor = colorText
		}

		if content != "" {
			segments = append(segments, textSegment{text: content, color: segColor})
		}
		lastIndex = match[1]
	}

	if lastIndex < len(msg) {
		segments = append(segments, textSegment{text: msg[lastIndex:], color: colorText})
	}
	return segments
}

// drawText draws str with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// drawCenteredText draws str horizontally centred on cx.
func drawCenteredText(screen *ebiten.Image, str string, cx, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(col)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}

// drawMarkup draws a marked-up line segment by segment and returns its width.
func drawMarkup(screen *ebiten.Image, msg string, x, y float64, face *text.GoTextFace, alpha float32) float64 {
	cx := x
	for _, seg := range parseMarkup(msg) {
		op := &text.DrawOptions{}
		op.GeoM.Translate(cx, y)
		op.ColorScale.ScaleWithColor(seg.color)
		op.ColorScale.ScaleAlpha(alpha)
		text.Draw(screen, seg.text, face, op)
		cx += text.Advance(seg.text, face)
	}
	return cx - x
}

// wrapText breaks str into lines no wider than maxWidth. Words longer than
// a line are left whole.
func wrapText(str string, face *text.GoTextFace, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(str, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if text.Advance(candidate, face) > maxWidth {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
