package devtools

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"homebound/pkg/game/renderer"
)

// SaveScreenshotHTML saves the current scene layout as an HTML file in dir
// and returns its path. Hotspots are drawn as boxes at their scene
// coordinates; active overlays are listed with their opacity.
func SaveScreenshotHTML(dir string, v renderer.View) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("screenshot-%s.html", timestamp))

	if err := os.WriteFile(filename, []byte(ScreenshotHTML(v)), 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return filename, nil
}

// ScreenshotHTML renders v as a standalone HTML page.
func ScreenshotHTML(v renderer.View) string {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Homebound - Screenshot</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .room-name {
            color: #888;
            margin-bottom: 20px;
        }
        .scene {
            position: relative;
            background-color: #0f0f1a;
            border-radius: 8px;
            margin: 20px 0;
        }
        .hotspot {
            position: absolute;
            box-sizing: border-box;
            border: 1px dashed #666;
            color: #888;
            font-size: 12px;
            overflow: hidden;
        }
        .hotspot.interactable { border-color: #00aa00; color: #00aa00; }
        .hotspot.hovered { border: 2px solid #ffff00; color: #ffff00; }
        .hotspot.selected { background-color: rgba(255, 255, 0, 0.15); }
        .hotspot.exit { border-color: #ff66ff; color: #ff66ff; }
        .surface { color: #4444ff; }
        .dialogue {
            color: #fff;
            font-style: italic;
            margin-top: 10px;
        }
        .inventory {
            margin-top: 20px;
            color: #888;
        }
        .inventory-item { color: #bb86fc; }
        .messages {
            margin-top: 20px;
            border-top: 1px solid #333;
            padding-top: 10px;
        }
        .message { color: #ccc; margin: 5px 0; }
    </style>
</head>
<body>
`)

	// Header
	fmt.Fprintf(&b, `    <div class="header">%s</div>`+"\n", html.EscapeString(v.Phase.String()))
	fmt.Fprintf(&b, `    <div class="room-name">In: %s</div>`+"\n", html.EscapeString(v.Room.SceneName))

	// Scene
	fmt.Fprintf(&b, `    <div class="scene" style="width:%.0fpx;height:%.0fpx">`+"\n", v.Width, v.Height)
	for _, h := range v.Hotspots {
		classes := []string{"hotspot"}
		if h.Interactable {
			classes = append(classes, "interactable")
		}
		if h.Exit {
			classes = append(classes, "exit")
		}
		if h.Hovered {
			classes = append(classes, "hovered")
		}
		if h.Selected {
			classes = append(classes, "selected")
		}
		fmt.Fprintf(&b, `        <div class="%s" style="left:%.0fpx;top:%.0fpx;width:%.0fpx;height:%.0fpx">%s</div>`+"\n",
			strings.Join(classes, " "), h.Rect.X, h.Rect.Y, h.Rect.W, h.Rect.H, html.EscapeString(h.Label))
	}
	b.WriteString(`    </div>` + "\n")

	// Overlays
	for _, sf := range v.Surfaces {
		fmt.Fprintf(&b, `    <div class="surface">Overlay %s: %s (%.0f%%)</div>`+"\n",
			html.EscapeString(sf.ID), html.EscapeString(sf.Image), sf.Alpha*100)
	}
	if v.Dialogue.Visible {
		fmt.Fprintf(&b, `    <div class="dialogue">%s</div>`+"\n", html.EscapeString(v.Dialogue.Text))
	}

	// Inventory
	b.WriteString(`    <div class="inventory">Collected: `)
	if len(v.Collected) == 0 {
		b.WriteString(`<span style="color:#666">(empty)</span>`)
	}
	for i, id := range v.Collected {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `<span class="inventory-item">%s</span>`, html.EscapeString(id))
	}
	b.WriteString(`</div>` + "\n")

	// Messages
	if len(v.Messages) > 0 {
		b.WriteString(`    <div class="messages">` + "\n")
		for _, msg := range v.Messages {
			// Strip ANSI codes for HTML output
			clean := renderer.PlainMarkup(msg)
			fmt.Fprintf(&b, `        <div class="message">%s</div>`+"\n", html.EscapeString(clean))
		}
		b.WriteString(`    </div>` + "\n")
	}

	b.WriteString(`</body>
</html>
`)
	return b.String()
}
