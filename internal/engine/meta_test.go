package engine

import "testing"

func TestClassifyCollapse(t *testing.T) {
	cases := []struct {
		name    string
		m       Meters
		day     int
		victory bool
		cause   string
		want    CollapseKind
	}{
		{"streak win", Meters{9, 9, 9}, 12, true, VictoryPerfectionist, CollapseLegend},
		{"legend win", Meters{5, 10, 5}, 12, true, VictoryLegend, CollapseLegend},
		{"survivor win", Meters{4, 4, 4}, 40, true, VictorySurvivor, CollapseSurvivor},
		{"deck exhausted", Meters{5, 5, 5}, 12, false, CauseExhausted, CollapseSurvivor},
		{"long run loss", Meters{0, 5, 5}, 31, false, CauseBankrupt, CollapseSurvivor},
		{"martyr", Meters{0, 8, 4}, 12, false, CauseBankrupt, CollapseMartyr},
		{"dreamer", Meters{4, 0, 8}, 12, false, CauseForgotten, CollapseDreamer},
		{"pragmatist", Meters{4, 4, 0}, 12, false, CauseUnready, CollapsePragmatist},
	}
	for _, tc := range cases {
		if got := ClassifyCollapse(tc.m, tc.day, tc.victory, tc.cause); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestProfileRecordAccumulatesLegacy(t *testing.T) {
	p := NewProfile()
	p.Record(CollapsePragmatist)
	p.Record(CollapseMartyr)
	p.Record(CollapseLegend)
	if p.Collapses != 3 || p.Runs != 3 {
		t.Fatalf("counts = %d/%d, want 3/3", p.Collapses, p.Runs)
	}
	if got := p.TotalLegacy(); got != 1+2+5 {
		t.Fatalf("total legacy = %d, want 8", got)
	}
}

func TestPhaseForLegacy(t *testing.T) {
	cases := map[int]int{0: 1, 4: 1, 9: 1, 10: 2, 19: 2, 20: 3, 49: 3, 50: 4, 120: 4}
	for legacy, want := range cases {
		if got := PhaseForLegacy(legacy); got != want {
			t.Fatalf("legacy %d: phase %d, want %d", legacy, got, want)
		}
	}
}

func TestUnlockedArchetypes(t *testing.T) {
	p := NewProfile()
	base := p.UnlockedArchetypes()
	for _, id := range []string{"general", "witch", "priest", "rogue"} {
		if !base[id] {
			t.Fatalf("%s should be unlocked from the start", id)
		}
	}
	if base["merchant"] || base["bard"] || base["recruiter"] {
		t.Fatalf("gated archetypes unlocked too early: %v", base)
	}

	p.Collapses = 3
	if !p.UnlockedArchetypes()["merchant"] {
		t.Fatalf("merchant should unlock at 3 collapses")
	}
	p.Collapses = 7
	if !p.UnlockedArchetypes()["bard"] {
		t.Fatalf("bard should unlock at 7 collapses")
	}
	p.Collapses = 10
	if !p.UnlockedArchetypes()["recruiter"] {
		t.Fatalf("recruiter should unlock at 10 collapses")
	}
}
