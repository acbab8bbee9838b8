package engine

import (
	"sort"
	"strings"
)

// Tag vocabulary. Tags drive selection eligibility and priority
// classification; anything else is free-form flavor for the deck authors.
const (
	TagIntro       = "run:intro"
	TagOutro       = "run:outro"
	TagMilestone   = "meta:milestone"
	TagCouncil     = "meta:council"
	TagRival       = "meta:rival"
	TagCollapse    = "meta:collapse"
	TagMaintenance = "meta:maintenance"
	TagPR          = "meta:pr"
	TagRaidCheck   = "raid_night_check"
	TagDisabled    = "disabled"

	archetypePrefix = "archetype:"
	causePrefix     = "cause:"
)

// Side selects one of the two choices on a card.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// EffectKind discriminates the parsed effect variants.
type EffectKind int

const (
	EffectMeter EffectKind = iota
	EffectMoraleAll
	EffectMoraleOne
)

// Effect is one parsed entry of a choice's effect map. The string-keyed
// duck typing of the deck format ("funds", "morale_all", "morale_<id>") is
// resolved once at load time so resolution never re-parses keys.
type Effect struct {
	Kind   EffectKind
	Meter  MeterKey
	Member string
	Delta  int
}

// ParseEffects converts a raw effect map into parsed effects in canonical
// order: meters first (funds, reputation, readiness), then morale_all, then
// per-member morale alphabetically. Unknown keys are dropped silently.
func ParseEffects(raw map[string]int) []Effect {
	if len(raw) == 0 {
		return nil
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := effectRank(keys[i]), effectRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	out := make([]Effect, 0, len(keys))
	for _, k := range keys {
		v := raw[k]
		switch {
		case MeterKey(k).Validate():
			out = append(out, Effect{Kind: EffectMeter, Meter: MeterKey(k), Delta: v})
		case k == "morale_all":
			out = append(out, Effect{Kind: EffectMoraleAll, Delta: v})
		case strings.HasPrefix(k, "morale_"):
			out = append(out, Effect{Kind: EffectMoraleOne, Member: strings.TrimPrefix(k, "morale_"), Delta: v})
		}
	}
	return out
}

func effectRank(key string) int {
	switch key {
	case string(MeterFunds):
		return 0
	case string(MeterReputation):
		return 1
	case string(MeterReadiness):
		return 2
	case "morale_all":
		return 3
	default:
		return 4
	}
}

// Hook is a conditional bonus effect attached to a choice. The predicate is
// parsed once at load; a hook whose predicate failed to parse never matches.
type Hook struct {
	When    string
	Effects []Effect
	pred    *predicate
}

// NewHook parses the predicate and effect map into a hook.
func NewHook(when string, effects map[string]int) Hook {
	return Hook{When: when, Effects: ParseEffects(effects), pred: parsePredicate(when)}
}

// Choice is one side of a card. Hidden carries the concealed second
// effect set of a Game-Master offer, applied after Effects without ever
// being shown to the player.
type Choice struct {
	Label    string
	Effects  []Effect
	Hidden   []Effect
	Hooks    []Hook
	NextStep string
}

// WeightHints are the optional author-supplied weights on a card. Base
// defaults to 1; RepLow and RepHigh adjust the pool weight when reputation
// sits at the low or high end of its domain.
type WeightHints struct {
	Base    float64
	RepLow  float64
	RepHigh float64
}

// EventCard is one immutable entry of the deck. The special-layer
// fields (Kind, Rarity, Phase, Glitch, Trigger) are zero for ordinary
// deck cards and only meaningful for the injected decks.
type EventCard struct {
	ID       string
	Title    string
	Body     string
	Speaker  string
	Portrait string
	Tags     []string
	Weights  WeightHints
	Left     Choice
	Right    Choice

	Kind    CardKind
	Rarity  Rarity
	Phase   int
	Glitch  GlitchKind
	Trigger ChaosTrigger
}

// HasTag reports tag membership.
func (e *EventCard) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ArchetypeTag returns the archetype id when the card carries one.
func (e *EventCard) ArchetypeTag() (string, bool) {
	for _, t := range e.Tags {
		if strings.HasPrefix(t, archetypePrefix) {
			return strings.TrimPrefix(t, archetypePrefix), true
		}
	}
	return "", false
}

// CauseTag returns the collapse cause meter when the card carries one.
func (e *EventCard) CauseTag() (MeterKey, bool) {
	for _, t := range e.Tags {
		if strings.HasPrefix(t, causePrefix) {
			return MeterKey(strings.TrimPrefix(t, causePrefix)), true
		}
	}
	return "", false
}

// Choice returns the card's choice for a side.
func (e *EventCard) Choice(side Side) Choice {
	if side == SideRight {
		return e.Right
	}
	return e.Left
}

// BaseWeight is the declared base weight, defaulting to 1.
func (e *EventCard) BaseWeight() float64 {
	if e.Weights.Base > 0 {
		return e.Weights.Base
	}
	return 1
}

// idPrefix groups thematically-related cards for the anti-repetition
// penalty: everything before the first underscore.
func idPrefix(id string) string {
	if i := strings.IndexByte(id, '_'); i >= 0 {
		return id[:i]
	}
	return id
}

// canLowerMeter reports whether either side of the card carries a negative
// delta for the given meter. The pool bias steers the deck toward cards
// that can pull down the currently-dominant meter.
func (e *EventCard) canLowerMeter(k MeterKey) bool {
	for _, ch := range []Choice{e.Left, e.Right} {
		for _, eff := range ch.Effects {
			if eff.Kind == EffectMeter && eff.Meter == k && eff.Delta < 0 {
				return true
			}
		}
	}
	return false
}

// Catalog is the immutable event deck loaded once per process.
type Catalog struct {
	cards []EventCard
	byID  map[string]*EventCard
}

// NewCatalog indexes a validated deck. The slice is owned by the catalog
// afterwards; callers must not mutate it.
func NewCatalog(cards []EventCard) *Catalog {
	c := &Catalog{cards: cards, byID: make(map[string]*EventCard, len(cards))}
	for i := range cards {
		c.byID[cards[i].ID] = &c.cards[i]
	}
	return c
}

// Len returns the deck size.
func (c *Catalog) Len() int { return len(c.cards) }

// ByID returns the card with the given id, or nil.
func (c *Catalog) ByID(id string) *EventCard {
	return c.byID[id]
}

// All returns the full deck in load order.
func (c *Catalog) All() []EventCard { return c.cards }

// WithTag returns the cards carrying the tag, in load order.
func (c *Catalog) WithTag(tag string) []*EventCard {
	var out []*EventCard
	for i := range c.cards {
		if c.cards[i].HasTag(tag) {
			out = append(out, &c.cards[i])
		}
	}
	return out
}

// Intro returns the run-intro card, or nil when the deck has none.
func (c *Catalog) Intro() *EventCard {
	if cards := c.WithTag(TagIntro); len(cards) > 0 {
		return cards[0]
	}
	return nil
}

// CollapseCard returns the collapse card matching the cause meter,
// falling back to any collapse card, then nil.
func (c *Catalog) CollapseCard(cause MeterKey) *EventCard {
	collapse := c.WithTag(TagCollapse)
	for _, card := range collapse {
		if k, ok := card.CauseTag(); ok && k == cause {
			return card
		}
	}
	if len(collapse) > 0 {
		return collapse[0]
	}
	return nil
}
