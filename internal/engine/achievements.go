package engine

// Achievement is a cross-run progression goal: a title earned from the
// collapse ledger. Unlocks are recomputed from the profile and the best
// survived day, never stored, so the set can grow without a migration.
type Achievement struct {
	ID     string
	Name   string
	Title  string
	Rarity Rarity
}

type achievementRule struct {
	Achievement
	unlocked func(p *Profile, bestDay int) bool
}

func kindAtLeast(kind CollapseKind, n int) func(*Profile, int) bool {
	return func(p *Profile, _ int) bool { return p.KindCount(kind) >= n }
}

func daysAtLeast(n int) func(*Profile, int) bool {
	return func(_ *Profile, bestDay int) bool { return bestDay >= n }
}

var achievementRules = []achievementRule{
	{
		Achievement: Achievement{ID: "first_collapse", Name: "First Steps", Title: "Novice Guildmaster", Rarity: RarityCommon},
		unlocked:    func(p *Profile, _ int) bool { return p.TotalLegacy() >= 1 },
	},
	{
		Achievement: Achievement{ID: "martyr_legend", Name: "The Martyr", Title: "The Martyr", Rarity: RarityUncommon},
		unlocked:    kindAtLeast(CollapseMartyr, 5),
	},
	{
		Achievement: Achievement{ID: "pragmatist_master", Name: "The Pragmatist", Title: "The Pragmatist", Rarity: RarityUncommon},
		unlocked:    kindAtLeast(CollapsePragmatist, 5),
	},
	{
		Achievement: Achievement{ID: "dreamer_visionary", Name: "The Dreamer", Title: "The Dreamer", Rarity: RarityUncommon},
		unlocked:    kindAtLeast(CollapseDreamer, 5),
	},
	{
		Achievement: Achievement{ID: "survivor_endurance", Name: "The Survivor", Title: "The Survivor", Rarity: RarityUncommon},
		unlocked:    kindAtLeast(CollapseSurvivor, 5),
	},
	{
		Achievement: Achievement{ID: "legend_ascended", Name: "The Legend", Title: "The Legend", Rarity: RarityRare},
		unlocked:    kindAtLeast(CollapseLegend, 5),
	},
	{
		Achievement: Achievement{ID: "legacy_master", Name: "Legacy Master", Title: "Legacy Master", Rarity: RarityRare},
		unlocked:    func(p *Profile, _ int) bool { return p.TotalLegacy() >= 50 },
	},
	{
		Achievement: Achievement{ID: "survivor_week", Name: "Week Warrior", Title: "Week Warrior", Rarity: RarityCommon},
		unlocked:    daysAtLeast(7),
	},
	{
		Achievement: Achievement{ID: "survivor_month", Name: "Month Master", Title: "Month Master", Rarity: RarityRare},
		unlocked:    daysAtLeast(30),
	},
	{
		Achievement: Achievement{ID: "survivor_legend", Name: "Survival Legend", Title: "Survival Legend", Rarity: RarityLegendary},
		unlocked:    daysAtLeast(50),
	},
}

// UnlockedAchievements evaluates every rule against the profile and the
// longest run on record, in table order.
func UnlockedAchievements(p *Profile, bestDay int) []Achievement {
	var out []Achievement
	for _, rule := range achievementRules {
		if rule.unlocked(p, bestDay) {
			out = append(out, rule.Achievement)
		}
	}
	return out
}
