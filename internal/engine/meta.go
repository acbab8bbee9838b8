package engine

// CollapseKind classifies how a run ended. Each kind is worth a fixed
// number of legacy points; the cumulative total drives the meta phases
// that gate offers and glitches across runs.
type CollapseKind string

const (
	CollapseMartyr     CollapseKind = "martyr"
	CollapsePragmatist CollapseKind = "pragmatist"
	CollapseDreamer    CollapseKind = "dreamer"
	CollapseSurvivor   CollapseKind = "survivor"
	CollapseLegend     CollapseKind = "legend"
)

// LegacyValue is the legacy points a collapse of this kind awards.
func (k CollapseKind) LegacyValue() int {
	switch k {
	case CollapseMartyr, CollapseDreamer:
		return 2
	case CollapseSurvivor:
		return 3
	case CollapseLegend:
		return 5
	}
	return 1
}

// Profile is the cross-run meta state: accumulated legacy by collapse
// kind, total collapse count, total runs. Persisted by the store and
// loaded before each session.
type Profile struct {
	Legacy    map[CollapseKind]int
	Collapses int
	Runs      int
}

// NewProfile returns an empty profile for a first-time player.
func NewProfile() *Profile {
	return &Profile{Legacy: make(map[CollapseKind]int)}
}

// TotalLegacy sums legacy points across all collapse kinds.
func (p *Profile) TotalLegacy() int {
	total := 0
	for _, v := range p.Legacy {
		total += v
	}
	return total
}

// KindCount recovers how many collapses of a kind the profile has
// folded in. Legacy per kind is count times the kind's fixed value, so
// the division is exact.
func (p *Profile) KindCount(k CollapseKind) int {
	return p.Legacy[k] / k.LegacyValue()
}

// Record folds one finished run into the profile.
func (p *Profile) Record(kind CollapseKind) {
	if p.Legacy == nil {
		p.Legacy = make(map[CollapseKind]int)
	}
	p.Legacy[kind] += kind.LegacyValue()
	p.Collapses++
	p.Runs++
}

// PhaseForLegacy maps cumulative legacy points to the meta phase 1-4.
func PhaseForLegacy(legacy int) int {
	switch {
	case legacy >= 50:
		return 4
	case legacy >= 20:
		return 3
	case legacy >= 10:
		return 2
	}
	return 1
}

// Phase is the profile's current meta phase.
func (p *Profile) Phase() int { return PhaseForLegacy(p.TotalLegacy()) }

// UnlockedArchetypes returns the archetype ids the player may draw from
// the general pool, gated on lifetime collapse count.
func (p *Profile) UnlockedArchetypes() map[string]bool {
	unlocked := map[string]bool{
		"general": true,
		"witch":   true,
		"priest":  true,
		"rogue":   true,
	}
	if p.Collapses >= 3 {
		unlocked["merchant"] = true
	}
	if p.Collapses >= 7 {
		unlocked["bard"] = true
	}
	if p.Collapses >= 10 {
		unlocked["recruiter"] = true
	}
	return unlocked
}

// ClassifyCollapse buckets a finished run. Victories map to legend
// (streak wins) or survivor (outlasting the deck or the calendar);
// losses split on which meter was protected while another bled out.
func ClassifyCollapse(m Meters, day int, victory bool, cause string) CollapseKind {
	if victory {
		switch cause {
		case VictoryPerfectionist, VictoryLegend:
			return CollapseLegend
		default:
			return CollapseSurvivor
		}
	}
	switch {
	case cause == CauseExhausted || day >= 30:
		return CollapseSurvivor
	case m.Funds <= MeterMin && m.Reputation >= 7:
		return CollapseMartyr
	case m.Reputation <= MeterMin && m.Readiness >= 7:
		return CollapseDreamer
	}
	return CollapsePragmatist
}
