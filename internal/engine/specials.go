package engine

// CardKind discriminates normal deck cards from the injected special
// layers, which replace the normal draw for a turn and resolve through
// their own effect path.
type CardKind int

const (
	KindStandard CardKind = iota
	KindOffer
	KindGlitch
	KindChaos
)

// Rarity controls the draw weight within a special deck.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Weight() float64 {
	switch r {
	case RarityCommon:
		return 10
	case RarityUncommon:
		return 5
	case RarityRare:
		return 2
	case RarityLegendary:
		return 1
	}
	return 1
}

// GlitchKind orders glitch cards by how overtly they break the fiction.
// Lower phases only surface the subtle kinds.
type GlitchKind string

const (
	GlitchRepetition    GlitchKind = "repetition"
	GlitchTextCorrupt   GlitchKind = "text_corruption"
	GlitchCharConfusion GlitchKind = "character_confusion"
	GlitchSystemError   GlitchKind = "system_error"
)

// ChaosTrigger gates chaos cards on run conditions.
type ChaosTrigger string

const (
	ChaosHighStakes      ChaosTrigger = "high_stakes"
	ChaosLowStakes       ChaosTrigger = "low_stakes"
	ChaosLegacyMilestone ChaosTrigger = "legacy_milestone"
	ChaosRandom          ChaosTrigger = "random"
)

// SpecialDecks holds the three injected layers. Offer cards carry
// hidden choice effects; glitch and chaos cards resolve like normal
// cards minus hooks.
type SpecialDecks struct {
	Offers   []EventCard
	Glitches []EventCard
	Chaos    []EventCard
}

// OfferChance is the per-turn probability of a Game-Master offer
// replacing the normal draw. Offers stay dormant until enough legacy has
// accumulated, scale with desperation, and cap at 15%.
func OfferChance(m Meters, legacy, day int) float64 {
	if legacy < 5 {
		return 0
	}
	chance := 0.03
	switch {
	case legacy >= 50:
		chance = 0.1
	case legacy >= 20:
		chance = 0.08
	case legacy >= 10:
		chance = 0.05
	}
	if m.Total() <= 9 {
		chance += 0.05
	}
	if day > 15 {
		chance += 0.02
	}
	return minFloat(0.15, chance)
}

// GlitchChance caps at 8%; glitches stay rare even deep into the meta.
func GlitchChance(m Meters, legacy, day int) float64 {
	chance := 0.01
	if legacy > 0 {
		chance += minFloat(0.05, float64(legacy)*0.005)
	}
	if day > 15 {
		chance += 0.01
	}
	if t := m.Total(); t >= 24 || t <= 6 {
		chance += 0.02
	}
	return minFloat(0.08, chance)
}

// ChaosChance rises with meter extremes and accumulated legacy, cap 30%.
func ChaosChance(m Meters, legacy, day int) float64 {
	chance := 0.05
	if m.Total() >= 24 {
		chance += 0.1
	}
	if m.Total() <= 6 {
		chance += 0.1
	}
	if legacy > 0 {
		chance += minFloat(0.2, float64(legacy)*0.02)
	}
	if day > 10 {
		chance += 0.05
	}
	return minFloat(0.3, chance)
}

// AvailableOffers filters the offer deck to the current meta phase and
// every phase before it.
func (d SpecialDecks) AvailableOffers(legacy int) []*EventCard {
	phase := PhaseForLegacy(legacy)
	var out []*EventCard
	for i := range d.Offers {
		if d.Offers[i].Phase <= phase {
			out = append(out, &d.Offers[i])
		}
	}
	return out
}

// AvailableGlitches gates glitch kinds on accumulated legacy so the
// fiction only cracks gradually.
func (d SpecialDecks) AvailableGlitches(legacy int) []*EventCard {
	var out []*EventCard
	for i := range d.Glitches {
		g := &d.Glitches[i]
		switch {
		case legacy < 5:
			if g.Glitch == GlitchRepetition || g.Glitch == GlitchTextCorrupt {
				out = append(out, g)
			}
		case legacy < 10:
			if g.Glitch != GlitchSystemError {
				out = append(out, g)
			}
		default:
			out = append(out, g)
		}
	}
	return out
}

// AvailableChaos filters the chaos deck by trigger eligibility.
func (d SpecialDecks) AvailableChaos(m Meters, legacy int) []*EventCard {
	var out []*EventCard
	for i := range d.Chaos {
		c := &d.Chaos[i]
		eligible := false
		switch c.Trigger {
		case ChaosHighStakes:
			eligible = m.Total() >= 24
		case ChaosLowStakes:
			eligible = m.Total() <= 6
		case ChaosLegacyMilestone:
			eligible = legacy > 0 && legacy%5 == 0
		case ChaosRandom:
			eligible = true
		}
		if eligible {
			out = append(out, c)
		}
	}
	return out
}

// DrawByRarity draws one card from a special subset, rarity-weighted.
func DrawByRarity(cards []*EventCard, stream *Stream) *EventCard {
	if len(cards) == 0 {
		return nil
	}
	weights := make([]float64, len(cards))
	for i, c := range cards {
		weights[i] = c.Rarity.Weight()
	}
	idx := stream.WeightedIndex(weights)
	if idx < 0 {
		return cards[0]
	}
	return cards[idx]
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
