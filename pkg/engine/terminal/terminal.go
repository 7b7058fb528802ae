// Package terminal measures the terminal and fits styled text to it.
package terminal

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"
	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ClearScreen moves the cursor home and clears the screen.
const ClearScreen = "\033[H\033[2J"

// Cursor visibility sequences.
const (
	HideCursor = "\033[?25l"
	ShowCursor = "\033[?25h"
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the current terminal width.
// Falls back to DefaultWidth if the width cannot be determined.
func GetWidth() int {
	width, _ := GetSize()
	return width
}

// VisibleLen returns the number of runes s occupies on screen, ignoring
// colour codes.
func VisibleLen(s string) int {
	return utf8.RuneCountInString(color.ClearCode(s))
}

// Center pads s on the left so it sits in the middle of width columns.
func Center(s string, width int) string {
	pad := (width - VisibleLen(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Rule returns a horizontal line width columns wide.
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("─", width)
}

// Wrap breaks plain text into lines of at most width runes. Words longer
// than a line are left whole.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line += " " + w
		}
		lines = append(lines, line)
	}
	return lines
}
