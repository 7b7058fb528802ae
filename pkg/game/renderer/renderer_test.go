package renderer

import (
	"testing"

	"homebound/pkg/game/hotspot"
)

func TestText_FallsBackWithoutCatalogue(t *testing.T) {
	if got := Text("MENU_START_NOT_A_KEY", "Start"); got != "Start" {
		t.Errorf("Text() = %q, want %q", got, "Start")
	}
}

func TestFormatString_Markup(t *testing.T) {
	got := StripMarkup(FormatString("Took ITEM{Jacket} in ROOM{Bedroom}"))
	if got != "Took Jacket in Bedroom" {
		t.Errorf("FormatString() = %q", got)
	}
	got = StripMarkup(FormatString("%d items", 3))
	if got != "3 items" {
		t.Errorf("FormatString() = %q, want %q", got, "3 items")
	}
}

func TestPlainMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Took the ITEM{Jacket}.", "Took the Jacket."},
		{"You are in the ROOM{Kitchen}.", "You are in the Kitchen."},
		{"Press ACTION{Enter}", "Press Enter"},
		{"no markup", "no markup"},
		{"LOUD{kept}", "LOUD{kept}"},
	}
	for _, tt := range tests {
		if got := PlainMarkup(tt.in); got != tt.want {
			t.Errorf("PlainMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestView_HotspotAt(t *testing.T) {
	v := View{Hotspots: []HotspotView{
		{ID: "below", Rect: hotspot.Rect{X: 0, Y: 0, W: 100, H: 100}, Interactable: true},
		{ID: "above", Rect: hotspot.Rect{X: 50, Y: 50, W: 100, H: 100}, Interactable: true},
		{ID: "disabled", Rect: hotspot.Rect{X: 0, Y: 0, W: 200, H: 200}},
	}}

	tests := []struct {
		x, y float64
		want string
		ok   bool
	}{
		{10, 10, "below", true},
		{60, 60, "above", true},
		{180, 180, "", false},
	}
	for _, tt := range tests {
		h, ok := v.HotspotAt(tt.x, tt.y)
		if ok != tt.ok || h.ID != tt.want {
			t.Errorf("HotspotAt(%v, %v) = %q, %v, want %q, %v", tt.x, tt.y, h.ID, ok, tt.want, tt.ok)
		}
	}
}
