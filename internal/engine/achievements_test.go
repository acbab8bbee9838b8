package engine

import "testing"

func achievementIDs(list []Achievement) map[string]bool {
	got := make(map[string]bool, len(list))
	for _, a := range list {
		got[a.ID] = true
	}
	return got
}

func TestAchievementsEmptyProfile(t *testing.T) {
	if got := UnlockedAchievements(NewProfile(), 0); len(got) != 0 {
		t.Fatalf("fresh profile should have no titles, got %v", got)
	}
}

func TestAchievementFirstCollapse(t *testing.T) {
	p := NewProfile()
	p.Record(CollapsePragmatist)
	ids := achievementIDs(UnlockedAchievements(p, 3))
	if !ids["first_collapse"] {
		t.Fatalf("one collapse should unlock first_collapse")
	}
	if ids["pragmatist_master"] || ids["survivor_week"] {
		t.Fatalf("unearned titles unlocked: %v", ids)
	}
}

func TestAchievementKindCounts(t *testing.T) {
	p := NewProfile()
	for i := 0; i < 5; i++ {
		p.Record(CollapseMartyr)
	}
	for i := 0; i < 4; i++ {
		p.Record(CollapseLegend)
	}
	ids := achievementIDs(UnlockedAchievements(p, 0))
	if !ids["martyr_legend"] {
		t.Fatalf("five martyr collapses should unlock the title")
	}
	if ids["legend_ascended"] {
		t.Fatalf("four legend collapses must not unlock a five-collapse title")
	}
}

func TestAchievementLegacyMaster(t *testing.T) {
	p := NewProfile()
	for i := 0; i < 10; i++ {
		p.Record(CollapseLegend)
	}
	if p.TotalLegacy() < 50 {
		t.Fatalf("setup: legacy = %d", p.TotalLegacy())
	}
	if ids := achievementIDs(UnlockedAchievements(p, 0)); !ids["legacy_master"] {
		t.Fatalf("50 legacy points should unlock legacy_master")
	}
}

func TestAchievementSurvivalThresholds(t *testing.T) {
	p := NewProfile()
	cases := []struct {
		bestDay int
		want    []string
	}{
		{6, nil},
		{7, []string{"survivor_week"}},
		{30, []string{"survivor_week", "survivor_month"}},
		{50, []string{"survivor_week", "survivor_month", "survivor_legend"}},
	}
	for _, tc := range cases {
		ids := achievementIDs(UnlockedAchievements(p, tc.bestDay))
		for _, id := range tc.want {
			if !ids[id] {
				t.Fatalf("best day %d should unlock %s, got %v", tc.bestDay, id, ids)
			}
		}
		if len(ids) != len(tc.want) {
			t.Fatalf("best day %d unlocked extras: %v", tc.bestDay, ids)
		}
	}
}

func TestProfileKindCount(t *testing.T) {
	p := NewProfile()
	p.Record(CollapseSurvivor)
	p.Record(CollapseSurvivor)
	p.Record(CollapseMartyr)
	if got := p.KindCount(CollapseSurvivor); got != 2 {
		t.Fatalf("survivor count = %d, want 2", got)
	}
	if got := p.KindCount(CollapseLegend); got != 0 {
		t.Fatalf("legend count = %d, want 0", got)
	}
}
