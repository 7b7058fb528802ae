package manifest

import (
	"fmt"
	"regexp"

	"github.com/zyedidia/generic/mapset"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

// IsValidID reports whether id is lowercase snake_case.
func IsValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

// Validate returns the structural problems that make a manifest unusable.
// A manifest with problems is rejected at load time.
func Validate(m *Manifest) []string {
	var problems []string
	add := func(format string, a ...any) {
		problems = append(problems, fmt.Sprintf(format, a...))
	}

	if len(m.Rooms) == 0 {
		add("manifest has no rooms")
	}

	roomIDs := mapset.New[string]()
	sceneNames := mapset.New[string]()
	itemIDs := mapset.New[string]()
	for ri, r := range m.Rooms {
		if r.ID == "" {
			add("room #%d has no id", ri)
		} else if roomIDs.Has(r.ID) {
			add("duplicate room id '%s'", r.ID)
		}
		roomIDs.Put(r.ID)

		if r.SceneName == "" {
			add("room '%s' has no sceneName", r.ID)
		} else if sceneNames.Has(r.SceneName) {
			add("scene '%s' is used by more than one room", r.SceneName)
		}
		sceneNames.Put(r.SceneName)

		for ii, it := range r.Items {
			if it.ID == "" {
				add("item #%d in room '%s' has no id", ii, r.ID)
				continue
			}
			if itemIDs.Has(it.ID) {
				add("duplicate item id '%s'", it.ID)
			}
			itemIDs.Put(it.ID)
			if it.Layer != "" && it.Layer != LayerRoom && it.Layer != LayerOverlay {
				add("item '%s' has unknown layer '%s'", it.ID, it.Layer)
			}
		}
	}

	dialogueIDs := mapset.New[string]()
	for di, d := range m.Dialogues {
		if d.ID == "" {
			add("dialogue #%d has no id", di)
		} else if dialogueIDs.Has(d.ID) {
			add("duplicate dialogue id '%s'", d.ID)
		}
		dialogueIDs.Put(d.ID)
	}

	cinematicIDs := mapset.New[string]()
	for ci, c := range m.Cinematics {
		if c.ID == "" {
			add("cinematic #%d has no id", ci)
		} else if cinematicIDs.Has(c.ID) {
			add("duplicate cinematic id '%s'", c.ID)
		}
		cinematicIDs.Put(c.ID)
	}

	surfaceIDs := mapset.New[string]()
	for si, s := range m.Surfaces {
		if s.ID == "" {
			add("surface #%d has no id", si)
		} else if surfaceIDs.Has(s.ID) || s.ID == CinematicSurface {
			add("duplicate surface id '%s'", s.ID)
		}
		surfaceIDs.Put(s.ID)
	}

	return problems
}

// Lint returns problems that don't stop the game from running. Dangling
// references are absorbed at the point of use (logged, then skipped), but
// content authors should still fix them.
func Lint(m *Manifest) []string {
	var warnings []string
	add := func(format string, a ...any) {
		warnings = append(warnings, fmt.Sprintf(format, a...))
	}
	checkID := func(kind, id string) {
		if id != "" && !IsValidID(id) {
			add("%s '%s' should be lowercase snake_case", kind, id)
		}
	}

	slots := mapset.New[string]()
	slots.Put(CinematicSurface)
	for _, s := range m.Surfaces {
		slots.Put(s.ID)
		checkID("surface id", s.ID)
	}

	for _, r := range m.Rooms {
		checkID("room id", r.ID)
		if r.Exit != nil && r.Exit.TargetRoomID != "" && m.RoomIndex(r.Exit.TargetRoomID) < 0 {
			add("room '%s' exit targets unknown room '%s'", r.ID, r.Exit.TargetRoomID)
		}
		for _, it := range r.Items {
			checkID("item id", it.ID)
			if it.DialogueID != "" {
				if _, ok := m.FindDialogue(it.DialogueID); !ok {
					add("item '%s' references unknown dialogue '%s'", it.ID, it.DialogueID)
				}
			}
			if it.CinematicID != "" {
				c, ok := m.FindCinematic(it.CinematicID)
				if !ok {
					add("item '%s' references unknown cinematic '%s'", it.ID, it.CinematicID)
				} else if it.Repeatable && c.OneShot {
					add("item '%s' is marked repeatable but its cinematic '%s' is one-shot", it.ID, c.ID)
				}
			}
		}
	}

	for _, d := range m.Dialogues {
		checkID("dialogue id", d.ID)
		if len(d.Lines) == 0 {
			add("dialogue '%s' has no lines", d.ID)
		}
	}

	for _, c := range m.Cinematics {
		checkID("cinematic id", c.ID)
		switch c.Type {
		case TypeSpriteFrames:
			if len(c.FramePaths) == 0 {
				add("cinematic '%s' has no framePaths", c.ID)
			}
			if c.Duration <= 0 {
				add("cinematic '%s' has no duration", c.ID)
			}
		case TypeFixedImageSequence:
			if len(c.Overlays) == 0 {
				add("cinematic '%s' opens no overlays", c.ID)
			}
			opened := mapset.New[string]()
			for _, step := range c.Overlays {
				opened.Put(step.Slot)
				if !slots.Has(step.Slot) {
					add("cinematic '%s' uses undeclared surface '%s'", c.ID, step.Slot)
				}
			}
			if c.BaseSlot != "" && !opened.Has(c.BaseSlot) {
				add("cinematic '%s' base slot '%s' is never opened", c.ID, c.BaseSlot)
			}
			for _, v := range c.Variants {
				if !opened.Has(v.Slot) {
					add("cinematic '%s' variant targets slot '%s' it never opens", c.ID, v.Slot)
				}
				if _, _, ok := m.FindItem(v.WhenCollected); !ok {
					add("cinematic '%s' variant depends on unknown item '%s'", c.ID, v.WhenCollected)
				}
			}
			if c.DialogueID != "" {
				if _, ok := m.FindDialogue(c.DialogueID); !ok {
					add("cinematic '%s' references unknown dialogue '%s'", c.ID, c.DialogueID)
				}
			}
			if c.CollectAt != "" && c.CollectAt != CollectAtShown && c.CollectAt != CollectAtEnd {
				add("cinematic '%s' has unknown collectAt '%s'", c.ID, c.CollectAt)
			}
		default:
			add("cinematic '%s' has unknown type '%s'", c.ID, c.Type)
		}
		if c.Collects != "" {
			if _, _, ok := m.FindItem(c.Collects); !ok {
				add("cinematic '%s' collects unknown item '%s'", c.ID, c.Collects)
			}
			if !c.OneShot {
				add("cinematic '%s' collects '%s' but is not one-shot", c.ID, c.Collects)
			}
		}
	}

	return warnings
}
