package engine

import (
	"strconv"
	"strings"
)

type predicateKind int

const (
	predTrait predicateKind = iota
	predMorale
)

// predicate is a parsed hook condition. Two forms exist:
//
//	trait:<id>        some active member carries the trait
//	morale:<op><n>    some active member's morale satisfies the comparison
//
// The morale form is existential, not universal.
type predicate struct {
	kind    predicateKind
	traitID string
	op      string
	value   int
}

// parsePredicate returns nil for anything it cannot parse. Hooks with a
// nil predicate are carried but never fire, so a typo in the deck degrades
// to a missing bonus instead of a crash.
func parsePredicate(when string) *predicate {
	switch {
	case strings.HasPrefix(when, "trait:"):
		id := strings.TrimPrefix(when, "trait:")
		if id == "" {
			return nil
		}
		return &predicate{kind: predTrait, traitID: id}
	case strings.HasPrefix(when, "morale:"):
		expr := strings.TrimPrefix(when, "morale:")
		for _, op := range []string{"<=", ">=", "==", "<", ">"} {
			if !strings.HasPrefix(expr, op) {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(expr, op)))
			if err != nil {
				return nil
			}
			return &predicate{kind: predMorale, op: op, value: n}
		}
	}
	return nil
}

func (p *predicate) matches(r *Roster) bool {
	if p == nil {
		return false
	}
	switch p.kind {
	case predTrait:
		return r.HasTrait(p.traitID)
	case predMorale:
		for _, c := range r.Active {
			if compareInt(c.Morale, p.op, p.value) {
				return true
			}
		}
	}
	return false
}

func compareInt(v int, op string, n int) bool {
	switch op {
	case "<":
		return v < n
	case "<=":
		return v <= n
	case ">":
		return v > n
	case ">=":
		return v >= n
	case "==":
		return v == n
	}
	return false
}

// EvaluateHooks returns the extra effects of every matching hook in
// declaration order, plus the trait ids that matched (for bark lines).
func EvaluateHooks(hooks []Hook, r *Roster) ([]Effect, []string) {
	var effects []Effect
	var traits []string
	for _, h := range hooks {
		if !h.pred.matches(r) {
			continue
		}
		effects = append(effects, h.Effects...)
		if h.pred.kind == predTrait {
			traits = append(traits, h.pred.traitID)
		}
	}
	return effects, traits
}
