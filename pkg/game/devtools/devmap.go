package devtools

import (
	"strings"

	"homebound/pkg/game/manifest"
)

// DevRoomID is the id of the developer room.
const DevRoomID = "dev_room"

// ContainsSubstring checks if s contains substr (case-insensitive)
func ContainsSubstring(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// DevManifest returns a copy of m with a developer room placed first: one
// repeatable item per cinematic, then one per dialogue, laid out in rows with
// a margin between them. Only ids containing filter are included; an empty
// filter includes everything. m itself is not modified.
func DevManifest(m *manifest.Manifest, filter string, sceneW, sceneH float64) *manifest.Manifest {
	if m == nil {
		return nil
	}
	const (
		margin = 48
		cell   = manifest.DefaultItemWidth + margin
	)

	room := manifest.Room{
		ID:        DevRoomID,
		SceneName: "DevTest",
	}

	col, row := 0, 0
	perRow := max(1, int((sceneW-margin)/cell))
	place := func(it manifest.Item) {
		it.Position = manifest.Vec2{
			X: margin + cell/2 + float64(col)*cell,
			Y: margin + cell/2 + float64(row)*cell,
		}
		it.Repeatable = true
		room.Items = append(room.Items, it)
		col++
		if col >= perRow {
			col = 0
			row++
		}
	}

	// Row block 1: cinematics
	for _, c := range m.Cinematics {
		if filter != "" && !ContainsSubstring(c.ID, filter) {
			continue
		}
		place(manifest.Item{ID: "dev_" + c.ID, DisplayName: c.ID, CinematicID: c.ID})
	}
	if col > 0 {
		col = 0
		row++
	}

	// Row block 2: dialogues
	for _, d := range m.Dialogues {
		if filter != "" && !ContainsSubstring(d.ID, filter) {
			continue
		}
		place(manifest.Item{ID: "dev_" + d.ID, DisplayName: d.ID, DialogueID: d.ID})
	}

	// Items that would run off the bottom would overlap the exit button.
	limit := sceneH - manifest.DefaultItemHeight - margin
	kept := room.Items[:0]
	for _, it := range room.Items {
		if it.Position.Y <= limit {
			kept = append(kept, it)
		}
	}
	room.Items = kept

	out := *m
	out.Rooms = append([]manifest.Room{room}, m.Rooms...)
	return &out
}
