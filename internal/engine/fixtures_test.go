package engine

// Shared deck and roster builders for the engine tests.

func makeCard(id string, tags []string, leftEffects, rightEffects map[string]int) EventCard {
	return EventCard{
		ID:    id,
		Title: id,
		Body:  "body of " + id,
		Tags:  tags,
		Left:  Choice{Label: "Left", Effects: ParseEffects(leftEffects)},
		Right: Choice{Label: "Right", Effects: ParseEffects(rightEffects)},
	}
}

func makeRoster(morale ...int) Roster {
	var r Roster
	names := []string{"ash", "brie", "cole", "dara", "edda", "finn", "gwen"}
	for i, m := range morale {
		r.Active = append(r.Active, Character{
			ID:      names[i%len(names)],
			Name:    names[i%len(names)],
			TraitID: "general",
			Morale:  m,
		})
	}
	return r
}

func makePool(n int) []Character {
	names := []string{"ash", "brie", "cole", "dara", "edda", "finn", "gwen", "hale", "iris", "jory"}
	traits := []string{"general", "witch", "priest", "rogue", "bard"}
	pool := make([]Character, n)
	for i := 0; i < n; i++ {
		pool[i] = Character{ID: names[i%len(names)], Name: names[i%len(names)], TraitID: traits[i%len(traits)]}
	}
	return pool
}

// testDeck is a deck wide enough that the general pool never drains in
// the session tests: an intro, a collapse card per cause, and a block of
// plain cards with distinct prefixes.
func testDeck() []EventCard {
	cards := []EventCard{
		makeCard("intro_hall", []string{TagIntro}, map[string]int{}, map[string]int{}),
		makeCard("collapse_funds", []string{TagCollapse, "cause:funds"}, nil, nil),
		makeCard("collapse_rep", []string{TagCollapse, "cause:reputation"}, nil, nil),
		makeCard("collapse_ready", []string{TagCollapse, "cause:readiness"}, nil, nil),
	}
	prefixes := []string{"ledger", "tavern", "raidprep", "rumor", "patrol", "feast", "ally", "debt", "storm", "festival", "wager", "harvest"}
	for _, p := range prefixes {
		cards = append(cards,
			makeCard(p+"_one", []string{"archetype:general"}, map[string]int{"funds": -1, "reputation": 1}, map[string]int{"readiness": -1}),
			makeCard(p+"_two", []string{"archetype:general"}, map[string]int{"reputation": -1}, map[string]int{"funds": 1, "readiness": 1}),
		)
	}
	return cards
}

func newTestSession(seedText string) *Session {
	seed, _ := NewRunSeed(seedText)
	s := NewSession(NewCatalog(testDeck()), SpecialDecks{}, NewProfile(), seed)
	if err := s.Start(makePool(10)); err != nil {
		panic(err)
	}
	return s
}
