package engine

// recentWindow is the hard anti-repetition horizon: ids drawn within the
// last recentWindow turns get weight zero in the general pool.
const recentWindow = 5

// milestoneDays is the fixed ascending checkpoint sequence. Each
// checkpoint consumes one unused milestone card.
var milestoneDays = map[int]bool{3: true, 6: true, 9: true, 12: true, 15: true, 18: true}

const (
	councilEvery    = 5
	councilCooldown = 2
	rivalMinDay     = 8
)

// Selector implements the priority cascade that decides which card the
// player sees next. It never mutates meters or roster; the only state it
// touches is the draw bookkeeping on RunState (pending continuation,
// rival flag).
type Selector struct {
	catalog  *Catalog
	specials SpecialDecks
	profile  *Profile
}

func NewSelector(catalog *Catalog, specials SpecialDecks, profile *Profile) *Selector {
	return &Selector{catalog: catalog, specials: specials, profile: profile}
}

// Next returns the card for the coming turn, or nil when the general
// pool is exhausted. The cascade is strict: the first applicable layer
// wins and fully replaces everything below it.
func (s *Selector) Next(st *RunState, stream *Stream) *EventCard {
	if card := s.continuation(st); card != nil {
		return card
	}
	legacy := s.profile.TotalLegacy()
	if stream.Child("offer").Float64() < OfferChance(st.Meters, legacy, st.Day) {
		if card := DrawByRarity(s.specials.AvailableOffers(legacy), stream.Child("offer-draw")); card != nil {
			return card
		}
	}
	if stream.Child("glitch").Float64() < GlitchChance(st.Meters, legacy, st.Day) {
		if card := DrawByRarity(s.specials.AvailableGlitches(legacy), stream.Child("glitch-draw")); card != nil {
			return card
		}
	}
	if stream.Child("chaos").Float64() < ChaosChance(st.Meters, legacy, st.Day) {
		if card := DrawByRarity(s.specials.AvailableChaos(st.Meters, legacy), stream.Child("chaos-draw")); card != nil {
			return card
		}
	}
	if card := s.raidCheck(st, stream.Child("raid")); card != nil {
		return card
	}
	if card := s.milestone(st); card != nil {
		return card
	}
	if card := s.council(st, stream.Child("council")); card != nil {
		return card
	}
	if card := s.rival(st); card != nil {
		return card
	}
	return s.pool(st, stream.Child("pool"))
}

// continuation honors a pending nextStep pointer. A pointer at a missing
// id is dropped and the cascade proceeds.
func (s *Selector) continuation(st *RunState) *EventCard {
	if st.PendingNext == "" {
		return nil
	}
	id := st.PendingNext
	st.PendingNext = ""
	return s.catalog.ByID(id)
}

// raidCheck fires on the scheduled special-check day, drawing weighted
// from the raid-tagged subset. Rescheduling happens at resolve time.
func (s *Selector) raidCheck(st *RunState, stream *Stream) *EventCard {
	if st.Day != st.NextSpecialCheckDay {
		return nil
	}
	candidates := s.catalog.WithTag(TagRaidCheck)
	return s.drawWeighted(candidates, st, stream)
}

func (s *Selector) milestone(st *RunState) *EventCard {
	if !milestoneDays[st.Day] {
		return nil
	}
	for _, card := range s.catalog.WithTag(TagMilestone) {
		if !st.wasDrawn(card.ID) {
			return card
		}
	}
	return nil
}

// council fires every councilEvery days unless a council card appeared
// within the cooldown window, picking uniformly among unused ones.
func (s *Selector) council(st *RunState, stream *Stream) *EventCard {
	if st.Day%councilEvery != 0 || s.councilOnCooldown(st) {
		return nil
	}
	var unused []*EventCard
	for _, card := range s.catalog.WithTag(TagCouncil) {
		if !st.wasDrawn(card.ID) {
			unused = append(unused, card)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	return unused[stream.Intn(len(unused))]
}

func (s *Selector) councilOnCooldown(st *RunState) bool {
	for _, id := range st.recent(councilCooldown) {
		if card := s.catalog.ByID(id); card != nil && card.HasTag(TagCouncil) {
			return true
		}
	}
	return false
}

func (s *Selector) rival(st *RunState) *EventCard {
	if st.SawRival || st.Day < rivalMinDay {
		return nil
	}
	cards := s.catalog.WithTag(TagRival)
	if len(cards) == 0 {
		return nil
	}
	st.SawRival = true
	return cards[0]
}

// pool is the general weighted draw over everything the priority layers
// did not claim.
func (s *Selector) pool(st *RunState, stream *Stream) *EventCard {
	unlocked := s.profile.UnlockedArchetypes()
	var candidates []*EventCard
	for i := range s.catalog.cards {
		card := &s.catalog.cards[i]
		if !s.poolEligible(card, unlocked) {
			continue
		}
		candidates = append(candidates, card)
	}
	return s.drawWeighted(candidates, st, stream)
}

func (s *Selector) poolEligible(card *EventCard, unlocked map[string]bool) bool {
	for _, tag := range []string{TagIntro, TagOutro, TagMilestone, TagCollapse, TagRaidCheck, TagDisabled} {
		if card.HasTag(tag) {
			return false
		}
	}
	if id, ok := card.ArchetypeTag(); ok && !unlocked[id] {
		return false
	}
	return true
}

func (s *Selector) drawWeighted(candidates []*EventCard, st *RunState, stream *Stream) *EventCard {
	if len(candidates) == 0 {
		return nil
	}
	weights := make([]float64, len(candidates))
	for i, card := range candidates {
		weights[i] = s.bias(card, st)
	}
	idx := stream.WeightedIndex(weights)
	if idx < 0 {
		return nil
	}
	return candidates[idx]
}

// bias computes the pool weight for one candidate: declared base weight,
// hard anti-repetition inside the recent window, a geometric penalty for
// same-prefix thematic repeats, narrative-phase multipliers, reputation
// hints, and a flat bonus for cards that can pull down the dominant
// meter.
func (s *Selector) bias(card *EventCard, st *RunState) float64 {
	recent := st.recent(recentWindow)
	for _, id := range recent {
		if id == card.ID {
			return 0
		}
	}
	if card.HasTag(TagCouncil) && s.councilOnCooldown(st) {
		return 0
	}

	w := card.BaseWeight()

	prefix := idPrefix(card.ID)
	similar := 0
	for _, id := range recent {
		if idPrefix(id) == prefix {
			similar++
		}
	}
	for i := 0; i < similar; i++ {
		w *= 0.1
	}
	if similar > 0 && w < 0.01 {
		w = 0.01
	}

	isCouncil := card.HasTag(TagCouncil)
	isRival := card.HasTag(TagRival)
	isMaintenance := card.HasTag(TagMaintenance) || card.HasTag(TagPR)
	_, isArchetype := card.ArchetypeTag()

	switch {
	case st.Day <= 4:
		if isArchetype {
			w += 1
		}
		if isCouncil {
			w *= 0.3
		}
		if isRival {
			w *= 0.5
		}
		if isMaintenance {
			w *= 0.6
		}
	case st.Day <= 10:
		if isRival {
			w += 0.5
		}
		if isCouncil {
			w += 0.3
		}
	default:
		if isMaintenance {
			w += 0.7
		}
		if isCouncil {
			w += 0.5
		}
	}

	if st.Meters.Reputation <= 3 {
		w += card.Weights.RepLow
	} else if st.Meters.Reputation >= 8 {
		w += card.Weights.RepHigh
	}

	if card.canLowerMeter(st.Meters.Highest()) {
		w += 1
	}

	if w < 0 {
		return 0
	}
	return w
}
