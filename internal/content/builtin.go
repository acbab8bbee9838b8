package content

import "guildhall/internal/engine"

// BuiltinSpecials returns the compiled-in injected decks: Game-Master
// offers, glitches, and chaos cards. These are code, not resource
// files, because their gating fields (phase, glitch kind, trigger) are
// coupled to engine constants.
func BuiltinSpecials() engine.SpecialDecks {
	return engine.SpecialDecks{
		Offers:   builtinOffers(),
		Glitches: builtinGlitches(),
		Chaos:    builtinChaos(),
	}
}

func fx(m map[string]int) []engine.Effect { return engine.ParseEffects(m) }

func builtinOffers() []engine.EventCard {
	return []engine.EventCard{
		{
			ID:      "gm_arsenal",
			Title:   "Legendary Arsenal",
			Body:    "A stranger offers weapons that would make your raiders unstoppable. No price is named.",
			Speaker: "Mysterious Benefactor",
			Kind:    engine.KindOffer,
			Rarity:  engine.RarityCommon,
			Phase:   1,
			Left: engine.Choice{
				Label:   "Accept the weapons",
				Effects: fx(map[string]int{"reputation": 2, "readiness": 2}),
				Hidden:  fx(map[string]int{"funds": -3}),
			},
			Right: engine.Choice{
				Label:  "Decline politely",
				Hidden: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
		},
		{
			ID:      "gm_warchest",
			Title:   "Overflowing Warchest",
			Body:    "Coffers filled overnight, they promise. Your name spoken in every tavern.",
			Speaker: "Shadowy Figure",
			Kind:    engine.KindOffer,
			Rarity:  engine.RarityUncommon,
			Phase:   2,
			Left: engine.Choice{
				Label:   "Take the gold",
				Effects: fx(map[string]int{"funds": 3, "reputation": 3}),
				Hidden:  fx(map[string]int{"reputation": -3}),
			},
			Right: engine.Choice{
				Label:  "Refuse the offer",
				Hidden: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
		},
		{
			ID:      "gm_secrets",
			Title:   "Hidden Knowledge",
			Body:    "Secrets of this world no other guildmaster knows. An edge nobody could match.",
			Speaker: "Whispering Voice",
			Kind:    engine.KindOffer,
			Rarity:  engine.RarityRare,
			Phase:   3,
			Left: engine.Choice{
				Label:   "Learn the secrets",
				Effects: fx(map[string]int{"funds": 2, "reputation": 2, "readiness": 2}),
				Hidden:  fx(map[string]int{"readiness": -3}),
			},
			Right: engine.Choice{
				Label:  "Stay ignorant",
				Hidden: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
		},
		{
			ID:      "gm_threshold",
			Title:   "Break the Cycle",
			Body:    "You have failed here before, it says. It can end the repetition, if you let it.",
			Speaker: "The Voice of Reason",
			Kind:    engine.KindOffer,
			Rarity:  engine.RarityLegendary,
			Phase:   4,
			Left: engine.Choice{
				Label:   "Accept escape",
				Effects: fx(map[string]int{"funds": 3, "reputation": 3, "readiness": 3}),
				Hidden:  fx(map[string]int{"funds": -3, "reputation": -3, "readiness": -3}),
			},
			Right: engine.Choice{
				Label:  "Embrace the cycle",
				Hidden: fx(map[string]int{"funds": 2, "reputation": 2, "readiness": 2}),
			},
		},
	}
}

func builtinGlitches() []engine.EventCard {
	return []engine.EventCard{
		{
			ID:      "glitch_deja_vu",
			Title:   "Deja Vu",
			Body:    "Haven't we settled this exact dispute before? The hall feels a day out of step.",
			Speaker: "Guild Member",
			Kind:    engine.KindGlitch,
			Rarity:  engine.RarityCommon,
			Glitch:  engine.GlitchRepetition,
			Left:    engine.Choice{Label: "This feels familiar..."},
			Right:   engine.Choice{Label: "Just a coincidence"},
		},
		{
			ID:      "glitch_ledger",
			Title:   "System Message",
			Body:    "The quartermaster's report reads: reputation is... stable? The ink seems to shift.",
			Speaker: "System Administrator",
			Kind:    engine.KindGlitch,
			Rarity:  engine.RarityCommon,
			Glitch:  engine.GlitchTextCorrupt,
			Left:    engine.Choice{Label: "Something's not right..."},
			Right:   engine.Choice{Label: "Must be a typo"},
		},
		{
			ID:      "glitch_twin",
			Title:   "Scheduling Conflict",
			Body:    "Back from my patrol, says the scout you spoke with a moment ago, in the same doorway.",
			Speaker: "Guild Member",
			Kind:    engine.KindGlitch,
			Rarity:  engine.RarityUncommon,
			Glitch:  engine.GlitchCharConfusion,
			Left: engine.Choice{
				Label:   "Ask for clarification",
				Effects: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
			Right: engine.Choice{
				Label:   "Pretend not to notice",
				Effects: fx(map[string]int{"funds": -1, "reputation": -1, "readiness": -1}),
			},
		},
		{
			ID:      "glitch_fault",
			Title:   "Fault Report",
			Body:    "ERROR: guild instance desynchronized. Retrying. The words hang in the air, then fade.",
			Speaker: "System Administrator",
			Kind:    engine.KindGlitch,
			Rarity:  engine.RarityRare,
			Glitch:  engine.GlitchSystemError,
			Left: engine.Choice{
				Label:   "Report the fault",
				Effects: fx(map[string]int{"reputation": 1}),
			},
			Right: engine.Choice{
				Label:   "Look away",
				Effects: fx(map[string]int{"readiness": -1}),
			},
		},
	}
}

func builtinChaos() []engine.EventCard {
	return []engine.EventCard{
		{
			ID:      "chaos_echo",
			Title:   "Echo from the Past",
			Body:    "A letter arrives in a dead guildmaster's hand. We faced this same crisis, it begins.",
			Speaker: "Echo of the Past",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityUncommon,
			Trigger: engine.ChaosRandom,
			Left: engine.Choice{
				Label:   "Listen to wisdom",
				Effects: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
			Right: engine.Choice{
				Label:   "Ignore the past",
				Effects: fx(map[string]int{"funds": -1, "reputation": -1, "readiness": -1}),
			},
		},
		{
			ID:      "chaos_prophecy",
			Title:   "The Prophecy",
			Body:    "An old scroll names a guild fated to save or ruin the realm. The seal looks like yours.",
			Speaker: "Mystic Seer",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityRare,
			Trigger: engine.ChaosLegacyMilestone,
			Left: engine.Choice{
				Label:   "Embrace destiny",
				Effects: fx(map[string]int{"funds": 2, "reputation": 2, "readiness": 2}),
			},
			Right: engine.Choice{
				Label:   "Reject fate",
				Effects: fx(map[string]int{"funds": -2, "reputation": -2, "readiness": -2}),
			},
		},
		{
			ID:      "chaos_wildcard",
			Title:   "The Wildcard",
			Body:    "A stranger asks to join, claiming powers beyond comprehension. Nobody recalls opening the gate.",
			Speaker: "Mysterious Stranger",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityLegendary,
			Trigger: engine.ChaosRandom,
			Left: engine.Choice{
				Label:   "Accept the wildcard",
				Effects: fx(map[string]int{"funds": -3, "reputation": 3, "readiness": -3}),
			},
			Right: engine.Choice{
				Label:   "Send them away",
				Effects: fx(map[string]int{"funds": 1, "reputation": -1, "readiness": 1}),
			},
		},
		{
			ID:      "chaos_flicker",
			Title:   "Reality Flicker",
			Body:    "For a heartbeat you see other halls, other versions of you, choosing differently.",
			Speaker: "Reality",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityLegendary,
			Trigger: engine.ChaosHighStakes,
			Left:    engine.Choice{Label: "Embrace the flicker"},
			Right:   engine.Choice{Label: "Fight the flicker"},
		},
		{
			ID:      "chaos_ghost",
			Title:   "Guild Ghost",
			Body:    "The shade of a legendary guildmaster drifts the hall. I have watched your progress, it says.",
			Speaker: "Guild Ghost",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityCommon,
			Trigger: engine.ChaosLowStakes,
			Left: engine.Choice{
				Label:   "Seek guidance",
				Effects: fx(map[string]int{"reputation": 1, "readiness": 1}),
			},
			Right: engine.Choice{
				Label:   "Dismiss the ghost",
				Effects: fx(map[string]int{"reputation": -1, "readiness": -1}),
			},
		},
		{
			ID:      "chaos_loop",
			Title:   "Time Loop",
			Body:    "The same choices, the same outcomes. You are certain you have lived this morning already.",
			Speaker: "Time Itself",
			Kind:    engine.KindChaos,
			Rarity:  engine.RarityRare,
			Trigger: engine.ChaosRandom,
			Left: engine.Choice{
				Label:   "Break the loop",
				Effects: fx(map[string]int{"funds": 1, "reputation": 1, "readiness": 1}),
			},
			Right: engine.Choice{
				Label:   "Accept the loop",
				Effects: fx(map[string]int{"funds": -1, "reputation": -1, "readiness": -1}),
			},
		},
	}
}
