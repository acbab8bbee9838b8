package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeDeck(t *testing.T, dir, name, payload string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(payload), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
}

const validDeck = `[
  {
    "id": "tavern_brawl",
    "title": "Tavern Brawl",
    "body": "Two of yours started it. The innkeeper wants coin or blood.",
    "tags": ["archetype:general"],
    "weights": {"base": 2},
    "left": {"label": "Pay damages", "effects": {"funds": -1, "reputation": 1}},
    "right": {
      "label": "Deny everything",
      "effects": {"reputation": -2},
      "hooks": [{"when": "trait:bard", "effect": {"reputation": 1}}]
    }
  }
]`

func TestLoadCatalogValid(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "events.json", validDeck)
	cat, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	card := cat.ByID("tavern_brawl")
	if card == nil {
		t.Fatalf("card not indexed")
	}
	if card.BaseWeight() != 2 {
		t.Fatalf("base weight = %f, want 2", card.BaseWeight())
	}
	if len(card.Left.Effects) != 2 || len(card.Right.Hooks) != 1 {
		t.Fatalf("effects/hooks not built: %+v", card)
	}
}

func TestLoadCatalogEmptyDir(t *testing.T) {
	if _, err := LoadCatalog(t.TempDir()); err == nil {
		t.Fatal("expected error for empty deck directory")
	}
}

func TestLoadCatalogRejectsBadDecks(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `[
  {"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l"}, "right": {"label": "r"}},
  {"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l"}, "right": {"label": "r"}}
]`,
		"empty id":     `[{"id": "", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l"}, "right": {"label": "r"}}]`,
		"long title":   `[{"id": "a_one", "title": "` + strings.Repeat("x", 51) + `", "body": "b", "tags": ["x"], "left": {"label": "l"}, "right": {"label": "r"}}]`,
		"long body":    `[{"id": "a_one", "title": "t", "body": "` + strings.Repeat("x", 121) + `", "tags": ["x"], "left": {"label": "l"}, "right": {"label": "r"}}]`,
		"no tags":      `[{"id": "a_one", "title": "t", "body": "b", "tags": [], "left": {"label": "l"}, "right": {"label": "r"}}]`,
		"missing side": `[{"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l"}}]`,
		"no label":     `[{"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": ""}, "right": {"label": "r"}}]`,
		"bad key":      `[{"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l", "effects": {"mana": 1}}, "right": {"label": "r"}}]`,
		"big value":    `[{"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l", "effects": {"funds": 4}}, "right": {"label": "r"}}]`,
		"bad hook key": `[{"id": "a_one", "title": "t", "body": "b", "tags": ["x"], "left": {"label": "l", "hooks": [{"when": "trait:bard", "effect": {"mana": 1}}]}, "right": {"label": "r"}}]`,
	}
	for name, payload := range cases {
		dir := t.TempDir()
		writeDeck(t, dir, "events.json", payload)
		if _, err := LoadCatalog(dir); err == nil {
			t.Fatalf("%s: expected load error", name)
		}
	}
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.json")
	payload := `[
  {"id": "ash", "name": "Ash", "traitId": "general"},
  {"id": "brie", "name": "Brie", "traitId": "witch"},
  {"id": "cole", "name": "Cole", "traitId": "priest"},
  {"id": "dara", "name": "Dara", "traitId": "rogue"},
  {"id": "edda", "name": "Edda", "traitId": "bard"},
  {"id": "finn", "name": "Finn", "traitId": "general"}
]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	pool, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if len(pool) != 6 {
		t.Fatalf("pool size = %d, want 6", len(pool))
	}
	for _, c := range pool {
		if c.Morale != 0 {
			t.Fatalf("file must not assign morale, got %d", c.Morale)
		}
	}
}

func TestLoadRosterTooSmall(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.json")
	payload := `[{"id": "ash", "name": "Ash", "traitId": "general"}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	if _, err := LoadRoster(path); err == nil {
		t.Fatal("expected error for undersized roster")
	}
}

func TestLoadBarks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "barks.json")
	payload := `{"bard": ["A song for that!", "I shall write a ballad."], "witch": ["The omens agree."]}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write barks: %v", err)
	}
	set, err := LoadBarks(path)
	if err != nil {
		t.Fatalf("load barks: %v", err)
	}
	if len(set["bard"]) != 2 || len(set["witch"]) != 1 {
		t.Fatalf("unexpected bark set: %+v", set)
	}
}

func TestBuiltinSpecialsShape(t *testing.T) {
	decks := BuiltinSpecials()
	if len(decks.Offers) == 0 || len(decks.Glitches) == 0 || len(decks.Chaos) == 0 {
		t.Fatalf("builtin decks must not be empty")
	}
	for _, o := range decks.Offers {
		if o.Phase < 1 || o.Phase > 4 {
			t.Fatalf("%s: offer phase %d out of range", o.ID, o.Phase)
		}
		if len(o.Left.Hidden) == 0 && len(o.Right.Hidden) == 0 {
			t.Fatalf("%s: an offer needs hidden effects", o.ID)
		}
	}
	for _, c := range decks.Chaos {
		if c.Trigger == "" {
			t.Fatalf("%s: chaos card without trigger", c.ID)
		}
	}
}
