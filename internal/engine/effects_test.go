package engine

import "testing"

func TestApplyEffectsClamps(t *testing.T) {
	m := NewMeters()
	r := makeRoster(5, 5)
	ApplyEffects(ParseEffects(map[string]int{"funds": -6}), &m, &r, true)
	if m.Funds != 0 {
		t.Fatalf("funds should clamp to 0, got %d", m.Funds)
	}
	ApplyEffects(ParseEffects(map[string]int{"reputation": 9}), &m, &r, true)
	if m.Reputation != 10 {
		t.Fatalf("reputation should clamp to 10, got %d", m.Reputation)
	}
}

func TestApplyEffectsPositiveGate(t *testing.T) {
	m := NewMeters()
	r := makeRoster(5)
	res := ApplyEffects(ParseEffects(map[string]int{"funds": 2, "reputation": -1}), &m, &r, false)
	if m.Funds != 5 {
		t.Fatalf("positive delta should be skipped, funds=%d", m.Funds)
	}
	if m.Reputation != 4 {
		t.Fatalf("negative delta should still apply, reputation=%d", m.Reputation)
	}
	if got := res.Summary(); got != "Reputation -1" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestApplyEffectsMoraleAll(t *testing.T) {
	m := NewMeters()
	r := makeRoster(5, 9, 0)
	ApplyEffects(ParseEffects(map[string]int{"morale_all": 2}), &m, &r, true)
	want := []int{7, 10, 2}
	for i, c := range r.Active {
		if c.Morale != want[i] {
			t.Fatalf("member %d morale = %d, want %d", i, c.Morale, want[i])
		}
	}
}

func TestApplyEffectsMoraleUnknownMemberNoop(t *testing.T) {
	m := NewMeters()
	r := makeRoster(5)
	res := ApplyEffects(ParseEffects(map[string]int{"morale_nobody": -3}), &m, &r, true)
	if r.Active[0].Morale != 5 {
		t.Fatalf("unknown member should be a no-op, morale=%d", r.Active[0].Morale)
	}
	if got := res.Summary(); got != "No change" {
		t.Fatalf("expected No change, got %q", got)
	}
}

func TestApplyEffectsMoraleSingleMember(t *testing.T) {
	m := NewMeters()
	r := makeRoster(5, 5)
	ApplyEffects(ParseEffects(map[string]int{"morale_brie": -2}), &m, &r, true)
	if r.Active[0].Morale != 5 || r.Active[1].Morale != 3 {
		t.Fatalf("only brie should move: %d, %d", r.Active[0].Morale, r.Active[1].Morale)
	}
}

func TestApplyEffectsMoraleAllPinnedReportsNoChange(t *testing.T) {
	m := NewMeters()
	r := makeRoster(10, 10, 10)
	res := ApplyEffects(ParseEffects(map[string]int{"morale_all": 1}), &m, &r, true)
	if got := res.Summary(); got != "No change" {
		t.Fatalf("fully pinned roster should report no change, got %q", got)
	}

	r = makeRoster(10, 9)
	res = ApplyEffects(ParseEffects(map[string]int{"morale_all": 1}), &m, &r, true)
	if got := res.Summary(); got != "Morale (all) +1" {
		t.Fatalf("one member moved, got %q", got)
	}
}

func TestResolutionSummaryNoChangeAtBound(t *testing.T) {
	m := Meters{Funds: 0, Reputation: 5, Readiness: 5}
	r := makeRoster()
	res := ApplyEffects(ParseEffects(map[string]int{"funds": -2}), &m, &r, true)
	if got := res.Summary(); got != "No change" {
		t.Fatalf("pinned meter should report no change, got %q", got)
	}
}

func TestParseEffectsCanonicalOrder(t *testing.T) {
	effs := ParseEffects(map[string]int{
		"morale_zed":  1,
		"readiness":   1,
		"morale_all":  1,
		"funds":       1,
		"morale_abe":  1,
		"reputation":  1,
		"mystery_key": 1,
	})
	if len(effs) != 6 {
		t.Fatalf("unknown key should be dropped, got %d effects", len(effs))
	}
	wantKinds := []EffectKind{EffectMeter, EffectMeter, EffectMeter, EffectMoraleAll, EffectMoraleOne, EffectMoraleOne}
	for i, k := range wantKinds {
		if effs[i].Kind != k {
			t.Fatalf("effect %d kind = %v, want %v", i, effs[i].Kind, k)
		}
	}
	if effs[0].Meter != MeterFunds || effs[1].Meter != MeterReputation || effs[2].Meter != MeterReadiness {
		t.Fatalf("meters out of canonical order: %v %v %v", effs[0].Meter, effs[1].Meter, effs[2].Meter)
	}
	if effs[4].Member != "abe" || effs[5].Member != "zed" {
		t.Fatalf("morale members out of order: %s, %s", effs[4].Member, effs[5].Member)
	}
}
