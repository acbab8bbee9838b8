// Package content loads and validates the static game data: the event
// deck, the character pool, and the bark line pools. Validation is
// strict and happens once at startup; the engine assumes a clean
// catalog and never re-validates mid-run.
package content

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"guildhall/internal/engine"
)

const (
	maxTitleLen  = 50
	maxBodyLen   = 120
	maxEffectMag = 3
	moralePrefix = "morale_"
	moraleAllKey = "morale_all"
)

type choiceFile struct {
	Label    string         `json:"label"`
	Effects  map[string]int `json:"effects"`
	Hooks    []hookFile     `json:"hooks,omitempty"`
	NextStep string         `json:"nextStep,omitempty"`
}

type hookFile struct {
	When   string         `json:"when"`
	Effect map[string]int `json:"effect"`
}

type weightsFile struct {
	Base    float64 `json:"base,omitempty"`
	RepLow  float64 `json:"repLow,omitempty"`
	RepHigh float64 `json:"repHigh,omitempty"`
}

type cardFile struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Body     string      `json:"body"`
	Speaker  string      `json:"speaker,omitempty"`
	Portrait string      `json:"portrait,omitempty"`
	Tags     []string    `json:"tags"`
	Weights  weightsFile `json:"weights,omitempty"`
	Left     *choiceFile `json:"left"`
	Right    *choiceFile `json:"right"`
}

type rosterEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TraitID  string `json:"traitId"`
	Portrait string `json:"portrait,omitempty"`
}

// LoadCatalog reads every *.json file under dir (each holding an array
// of cards), validates the merged deck, and builds the catalog. Any
// violation is a fatal load error.
func LoadCatalog(dir string) (*engine.Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "content: list event files")
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("content: no event files under %s", dir)
	}
	sort.Strings(paths)

	var files []cardFile
	for _, path := range paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "content: read %s", path)
		}
		var batch []cardFile
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, errors.Wrapf(err, "content: parse %s", path)
		}
		files = append(files, batch...)
	}

	cards := make([]engine.EventCard, 0, len(files))
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if err := validateCard(f, seen); err != nil {
			return nil, err
		}
		seen[f.ID] = true
		cards = append(cards, buildCard(f))
	}
	return engine.NewCatalog(cards), nil
}

func validateCard(f cardFile, seen map[string]bool) error {
	if f.ID == "" {
		return errors.New("content: card with empty id")
	}
	if seen[f.ID] {
		return errors.Errorf("content: duplicate card id %q", f.ID)
	}
	if len(f.Title) > maxTitleLen {
		return errors.Errorf("content: %s: title exceeds %d chars", f.ID, maxTitleLen)
	}
	if len(f.Body) > maxBodyLen {
		return errors.Errorf("content: %s: body exceeds %d chars", f.ID, maxBodyLen)
	}
	if len(f.Tags) == 0 {
		return errors.Errorf("content: %s: empty tag list", f.ID)
	}
	for side, ch := range map[string]*choiceFile{"left": f.Left, "right": f.Right} {
		if ch == nil {
			return errors.Errorf("content: %s: missing %s choice", f.ID, side)
		}
		if ch.Label == "" {
			return errors.Errorf("content: %s: %s choice has no label", f.ID, side)
		}
		if err := validateEffects(f.ID, side, ch.Effects); err != nil {
			return err
		}
		for _, h := range ch.Hooks {
			if err := validateEffects(f.ID, side+" hook", h.Effect); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEffects(cardID, where string, effects map[string]int) error {
	for key, value := range effects {
		if !validEffectKey(key) {
			return errors.Errorf("content: %s: %s has unknown effect key %q", cardID, where, key)
		}
		if value < -maxEffectMag || value > maxEffectMag {
			return errors.Errorf("content: %s: %s effect %q=%d outside [-%d,%d]", cardID, where, key, value, maxEffectMag, maxEffectMag)
		}
	}
	return nil
}

func validEffectKey(key string) bool {
	if engine.MeterKey(key).Validate() || key == moraleAllKey {
		return true
	}
	return strings.HasPrefix(key, moralePrefix) && len(key) > len(moralePrefix)
}

func buildCard(f cardFile) engine.EventCard {
	return engine.EventCard{
		ID:       f.ID,
		Title:    f.Title,
		Body:     f.Body,
		Speaker:  f.Speaker,
		Portrait: f.Portrait,
		Tags:     f.Tags,
		Weights: engine.WeightHints{
			Base:    f.Weights.Base,
			RepLow:  f.Weights.RepLow,
			RepHigh: f.Weights.RepHigh,
		},
		Left:  buildChoice(f.Left),
		Right: buildChoice(f.Right),
	}
}

func buildChoice(ch *choiceFile) engine.Choice {
	out := engine.Choice{
		Label:    ch.Label,
		Effects:  engine.ParseEffects(ch.Effects),
		NextStep: ch.NextStep,
	}
	for _, h := range ch.Hooks {
		out.Hooks = append(out.Hooks, engine.NewHook(h.When, h.Effect))
	}
	return out
}

// LoadRoster reads the character pool. Morale is assigned by the engine
// at run start, not by the file.
func LoadRoster(path string) ([]engine.Character, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "content: read roster %s", path)
	}
	var entries []rosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Wrapf(err, "content: parse roster %s", path)
	}
	if len(entries) < engine.ActiveRosterSize {
		return nil, errors.Errorf("content: roster has %d members, need at least %d", len(entries), engine.ActiveRosterSize)
	}
	seen := make(map[string]bool, len(entries))
	pool := make([]engine.Character, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Name == "" {
			return nil, errors.Errorf("content: roster entry missing id or name (%q/%q)", e.ID, e.Name)
		}
		if seen[e.ID] {
			return nil, errors.Errorf("content: duplicate roster id %q", e.ID)
		}
		seen[e.ID] = true
		pool = append(pool, engine.Character{
			ID:       e.ID,
			Name:     e.Name,
			TraitID:  e.TraitID,
			Portrait: e.Portrait,
		})
	}
	return pool, nil
}

// LoadBarks reads the trait-to-lines mapping. Traits without lines are
// allowed; the engine just stays quiet for them.
func LoadBarks(path string) (engine.BarkSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "content: read barks %s", path)
	}
	var set engine.BarkSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return nil, errors.Wrapf(err, "content: parse barks %s", path)
	}
	return set, nil
}
