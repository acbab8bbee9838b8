package engine

import (
	"math"
	"testing"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestOfferChanceGatedOnLegacy(t *testing.T) {
	m := NewMeters()
	if got := OfferChance(m, 4, 10); got != 0 {
		t.Fatalf("offers must stay dormant below 5 legacy, got %f", got)
	}
	if got := OfferChance(m, 5, 10); !almost(got, 0.03) {
		t.Fatalf("phase 1 base = %f, want 0.03", got)
	}
	if got := OfferChance(m, 25, 10); !almost(got, 0.08) {
		t.Fatalf("phase 3 base = %f, want 0.08", got)
	}
}

func TestOfferChanceDesperationAndCap(t *testing.T) {
	low := Meters{Funds: 3, Reputation: 3, Readiness: 3}
	if got := OfferChance(low, 10, 20); !almost(got, 0.12) {
		t.Fatalf("0.05 + desperation 0.05 + late 0.02 = %f, want 0.12", got)
	}
	if got := OfferChance(low, 60, 20); got != 0.15 {
		t.Fatalf("chance must cap at 0.15, got %f", got)
	}
}

func TestGlitchChanceCurve(t *testing.T) {
	m := NewMeters()
	if got := GlitchChance(m, 0, 5); !almost(got, 0.01) {
		t.Fatalf("base glitch chance = %f, want 0.01", got)
	}
	extreme := Meters{Funds: 10, Reputation: 10, Readiness: 10}
	if got := GlitchChance(extreme, 100, 20); got != 0.08 {
		t.Fatalf("glitch chance must cap at 0.08, got %f", got)
	}
}

func TestChaosChanceCurve(t *testing.T) {
	m := NewMeters()
	if got := ChaosChance(m, 0, 5); !almost(got, 0.05) {
		t.Fatalf("base chaos chance = %f, want 0.05", got)
	}
	low := Meters{Funds: 2, Reputation: 2, Readiness: 2}
	if got := ChaosChance(low, 0, 5); !almost(got, 0.15) {
		t.Fatalf("low-stakes chaos = %f, want 0.15", got)
	}
	if got := ChaosChance(low, 100, 20); got != 0.3 {
		t.Fatalf("chaos chance must cap at 0.3, got %f", got)
	}
}

func specialCard(id string, kind CardKind, rarity Rarity) EventCard {
	c := makeCard(id, nil, nil, nil)
	c.Kind = kind
	c.Rarity = rarity
	return c
}

func TestAvailableOffersPhaseFilter(t *testing.T) {
	p1 := specialCard("gm_one", KindOffer, RarityCommon)
	p1.Phase = 1
	p3 := specialCard("gm_three", KindOffer, RarityRare)
	p3.Phase = 3
	decks := SpecialDecks{Offers: []EventCard{p1, p3}}

	if got := decks.AvailableOffers(6); len(got) != 1 || got[0].ID != "gm_one" {
		t.Fatalf("phase 1 should only see phase-1 offers: %v", got)
	}
	if got := decks.AvailableOffers(25); len(got) != 2 {
		t.Fatalf("phase 3 should see both offers, got %d", len(got))
	}
}

func TestAvailableGlitchesKindGating(t *testing.T) {
	mk := func(id string, kind GlitchKind) EventCard {
		c := specialCard(id, KindGlitch, RarityCommon)
		c.Glitch = kind
		return c
	}
	decks := SpecialDecks{Glitches: []EventCard{
		mk("g_rep", GlitchRepetition),
		mk("g_txt", GlitchTextCorrupt),
		mk("g_chr", GlitchCharConfusion),
		mk("g_sys", GlitchSystemError),
	}}
	if got := decks.AvailableGlitches(0); len(got) != 2 {
		t.Fatalf("low legacy should only see subtle glitches, got %d", len(got))
	}
	if got := decks.AvailableGlitches(7); len(got) != 3 {
		t.Fatalf("mid legacy should exclude system errors, got %d", len(got))
	}
	if got := decks.AvailableGlitches(15); len(got) != 4 {
		t.Fatalf("high legacy should see everything, got %d", len(got))
	}
}

func TestAvailableChaosTriggerFilter(t *testing.T) {
	mk := func(id string, trig ChaosTrigger) EventCard {
		c := specialCard(id, KindChaos, RarityCommon)
		c.Trigger = trig
		return c
	}
	decks := SpecialDecks{Chaos: []EventCard{
		mk("c_high", ChaosHighStakes),
		mk("c_low", ChaosLowStakes),
		mk("c_leg", ChaosLegacyMilestone),
		mk("c_any", ChaosRandom),
	}}

	mid := NewMeters()
	if got := decks.AvailableChaos(mid, 3); len(got) != 1 || got[0].ID != "c_any" {
		t.Fatalf("mid meters off-milestone should only allow random chaos: %v", got)
	}
	high := Meters{Funds: 8, Reputation: 8, Readiness: 8}
	if got := decks.AvailableChaos(high, 10); len(got) != 3 {
		t.Fatalf("high stakes on a legacy milestone: want 3, got %d", len(got))
	}
}

func TestDrawByRarityFavorsCommon(t *testing.T) {
	common := specialCard("s_common", KindChaos, RarityCommon)
	legendary := specialCard("s_legend", KindChaos, RarityLegendary)
	cards := []*EventCard{&common, &legendary}
	seed, _ := NewRunSeed("rarity-draw")
	stream := seed.Stream("r")
	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		counts[DrawByRarity(cards, stream).ID]++
	}
	if counts["s_common"] <= counts["s_legend"]*5 {
		t.Fatalf("rarity weights 10:1 not respected: %v", counts)
	}
}
