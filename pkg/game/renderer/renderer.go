package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
)

// Version and Commit are set at build time.
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	ColorTitle    color.Style
	ColorItem     color.Style
	ColorHover    color.Style
	ColorSelected color.Style
	ColorDenied   color.Style
	ColorSubtle   color.Style
	ColorDialogue color.Style
	ColorExit     color.Style
	ColorOverlay  color.Style

	regexpStringFunctions = regexp.MustCompile(`([A-Z_]*){([a-z A-Z0-9_,:.'!?-]+)}`)
)

// translate is used for runtime translation key lookups.
var translate = gotext.Get

func init() {
	InitColors()
}

// InitColors initializes the color styles
func InitColors() {
	ColorTitle = color.Style{color.FgCyan, color.OpBold}
	ColorItem = color.Style{color.FgGreen, color.OpBold}
	ColorHover = color.Style{color.FgYellow, color.OpBold}
	ColorSelected = color.Style{color.FgBlack, color.BgYellow}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}
	ColorDialogue = color.Style{color.FgWhite, color.OpItalic}
	ColorExit = color.Style{color.FgMagenta}
	ColorOverlay = color.Style{color.FgBlue, color.OpBold}
}

// Style returns the terminal style for a TextStyle.
func Style(style TextStyle) color.Style {
	switch style {
	case StyleTitle:
		return ColorTitle
	case StyleItem:
		return ColorItem
	case StyleHover:
		return ColorHover
	case StyleSelected:
		return ColorSelected
	case StyleDenied:
		return ColorDenied
	case StyleSubtle:
		return ColorSubtle
	case StyleDialogue:
		return ColorDialogue
	case StyleExit:
		return ColorExit
	case StyleOverlay:
		return ColorOverlay
	default:
		return color.Style{}
	}
}

// FormatString formats a string with special markup:
// GT{KEY} translates, ITEM{..}, ROOM{..} and ACTION{..} colour their operand.
func FormatString(msg string, a ...any) string {
	ret := msg
	if len(a) > 0 {
		ret = fmt.Sprintf(msg, a...)
	}

	for _, match := range regexpStringFunctions.FindAllStringSubmatch(ret, -1) {
		function := match[1]
		operand := match[2]

		var val string
		switch function {
		case "GT":
			val = translate(operand)
		case "ITEM":
			val = ColorItem.Sprint(operand)
		case "ROOM":
			val = ColorTitle.Sprint(translate(operand))
		case "ACTION":
			val = ColorHover.Sprint(operand[0:1]) + ColorSubtle.Sprint(operand[1:])
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, 1)
	}

	return ret
}

// PlainMarkup replaces markup with its operand and translates GT{} keys,
// giving the text a reader sees without any colour.
func PlainMarkup(s string) string {
	return regexpStringFunctions.ReplaceAllStringFunc(s, func(m string) string {
		sub := regexpStringFunctions.FindStringSubmatch(m)
		switch sub[1] {
		case "GT", "ROOM":
			return translate(sub[2])
		case "ITEM", "ACTION":
			return sub[2]
		}
		return m
	})
}

// StripMarkup removes colour codes, for width calculations.
func StripMarkup(s string) string {
	return color.ClearCode(s)
}

// StyledSubtle returns text in the subtle style.
func StyledSubtle(text string) string {
	return ColorSubtle.Sprint(text)
}

// Text looks up a UI string by key, falling back when the catalogue has no
// entry for it.
func Text(key, fallback string) string {
	if s := translate(key); s != "" && s != key {
		return s
	}
	return fallback
}

// VersionString is the version line shown on the title screen.
func VersionString() string {
	v := fmt.Sprintf(Text("VERSION", "Version %s"), Version)
	if Commit != "unknown" && len(Commit) >= 7 {
		v += fmt.Sprintf(" (%s)", Commit[:7])
	}
	return v
}
