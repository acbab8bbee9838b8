package engine

import (
	"fmt"
	"strings"
)

// Resolution records what a batch of effects actually changed after
// clamping, for the outcome line shown to the player.
type Resolution struct {
	Applied []AppliedEffect
}

// AppliedEffect is one effect together with the delta that survived
// clamping. Actual may be zero when the target was already pinned at a
// bound, or differ from the requested delta when clamping truncated it.
type AppliedEffect struct {
	Effect Effect
	Actual int
}

// ApplyEffects walks the effects in order, mutating meters and roster.
// When allowPositive is false every positive delta is skipped outright;
// failure cards use that to stay punishing even when a hook would have
// rewarded the player. Effects targeting unknown members are no-ops.
func ApplyEffects(effects []Effect, m *Meters, roster *Roster, allowPositive bool) Resolution {
	var res Resolution
	for _, eff := range effects {
		if !allowPositive && eff.Delta > 0 {
			continue
		}
		switch eff.Kind {
		case EffectMeter:
			before := m.Get(eff.Meter)
			m.Add(eff.Meter, eff.Delta)
			res.Applied = append(res.Applied, AppliedEffect{Effect: eff, Actual: m.Get(eff.Meter) - before})
		case EffectMoraleAll:
			actual := eff.Delta
			if roster.AddMoraleAll(eff.Delta) == 0 {
				actual = 0
			}
			res.Applied = append(res.Applied, AppliedEffect{Effect: eff, Actual: actual})
		case EffectMoraleOne:
			if roster.AddMorale(eff.Member, eff.Delta) {
				res.Applied = append(res.Applied, AppliedEffect{Effect: eff, Actual: eff.Delta})
			}
		}
	}
	return res
}

// Summary renders the resolution as a short human line, e.g.
// "Funds -2, Reputation +1, Morale (all) -1". A resolution where nothing
// moved renders as "No change".
func (r Resolution) Summary() string {
	var parts []string
	for _, a := range r.Applied {
		if a.Actual == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %+d", effectLabel(a.Effect), a.Actual))
	}
	if len(parts) == 0 {
		return "No change"
	}
	return strings.Join(parts, ", ")
}

func effectLabel(eff Effect) string {
	switch eff.Kind {
	case EffectMoraleAll:
		return "Morale (all)"
	case EffectMoraleOne:
		return "Morale (" + eff.Member + ")"
	default:
		return capitalize(string(eff.Meter))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
