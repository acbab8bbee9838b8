package engine

// Morale domain for roster members.
const (
	MoraleMin = 0
	MoraleMax = 10
)

// Morale band assigned at session start.
const (
	startMoraleLow  = 4
	startMoraleHigh = 7
)

// ActiveRosterSize is how many members are sampled from the pool at run start.
const ActiveRosterSize = 5

// MinRosterSize is the floor below which the guild hall empties and the run
// collapses.
const MinRosterSize = 3

// soursThreshold gates positive effects: if any active member's morale sits
// below it, good news stops landing until spirits recover.
const soursThreshold = 2

// Character is one guild member. TraitID drives hook matching and bark
// lookup; Morale is engine-assigned, never part of the static roster file.
type Character struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TraitID  string `json:"traitId"`
	Portrait string `json:"portrait,omitempty"`
	Morale   int    `json:"morale"`
}

// ClampMorale restricts morale into its domain.
func ClampMorale(v int) int {
	if v < MoraleMin {
		return MoraleMin
	}
	if v > MoraleMax {
		return MoraleMax
	}
	return v
}

// Roster is the active subset of the character pool for the current run.
// Members removed by departures are never mutated again.
type Roster struct {
	Active   []Character `json:"active"`
	Departed []Character `json:"departed,omitempty"`
}

// SampleRoster draws the active roster from the static pool, assigning each
// member a starting morale inside the configured band.
func SampleRoster(pool []Character, stream *Stream) Roster {
	picks := stream.Child("sample").SampleIndices(len(pool), ActiveRosterSize)
	moraleStream := stream.Child("morale")
	active := make([]Character, 0, len(picks))
	for _, i := range picks {
		c := pool[i]
		c.Morale = moraleStream.IntBetween(startMoraleLow, startMoraleHigh)
		active = append(active, c)
	}
	return Roster{Active: active}
}

// HasTrait reports whether any active member carries the trait.
func (r *Roster) HasTrait(traitID string) bool {
	for _, c := range r.Active {
		if c.TraitID == traitID {
			return true
		}
	}
	return false
}

// AddMoraleAll applies a clamped morale delta to every active member and
// reports how many actually moved. A member pinned at a bound does not count.
func (r *Roster) AddMoraleAll(delta int) int {
	moved := 0
	for i := range r.Active {
		before := r.Active[i].Morale
		r.Active[i].Morale = ClampMorale(before + delta)
		if r.Active[i].Morale != before {
			moved++
		}
	}
	return moved
}

// RestoreMorale overlays persisted morale onto the active roster. Members
// absent from the map had departed before the snapshot was taken and move
// to the departed list; an empty map leaves the roster as sampled.
func (r *Roster) RestoreMorale(moraleByID map[string]int) {
	if len(moraleByID) == 0 {
		return
	}
	remaining := r.Active[:0]
	for _, c := range r.Active {
		morale, ok := moraleByID[c.ID]
		if !ok {
			r.Departed = append(r.Departed, c)
			continue
		}
		c.Morale = ClampMorale(morale)
		remaining = append(remaining, c)
	}
	r.Active = remaining
}

// AddMorale applies a clamped morale delta to the member with the given id.
// Unknown ids are a no-op, not an error.
func (r *Roster) AddMorale(id string, delta int) bool {
	for i := range r.Active {
		if r.Active[i].ID == id {
			r.Active[i].Morale = ClampMorale(r.Active[i].Morale + delta)
			return true
		}
	}
	return false
}

// Soured reports whether any active member's morale is low enough to block
// positive effects.
func (r *Roster) Soured() bool {
	for _, c := range r.Active {
		if c.Morale < soursThreshold {
			return true
		}
	}
	return false
}

// MoraleByID snapshots morale for persistence.
func (r *Roster) MoraleByID() map[string]int {
	out := make(map[string]int, len(r.Active))
	for _, c := range r.Active {
		out[c.ID] = c.Morale
	}
	return out
}

// departureChance maps morale to a probability of leaving the guild.
// Morale 0 is deterministic: the member walks out.
func departureChance(morale int) float64 {
	switch {
	case morale >= 3:
		return 0
	case morale == 2:
		return 0.25
	case morale == 1:
		return 0.35
	default:
		return 1
	}
}

// CheckDepartures samples each active member independently against their
// morale-derived departure chance, moving leavers to the departed list.
// Returns the members who left this turn.
func (r *Roster) CheckDepartures(stream *Stream) []Character {
	var departed []Character
	remaining := r.Active[:0]
	for _, c := range r.Active {
		p := departureChance(c.Morale)
		if p >= 1 || (p > 0 && stream.Child("member:"+c.ID).Float64() < p) {
			departed = append(departed, c)
			continue
		}
		remaining = append(remaining, c)
	}
	r.Active = remaining
	r.Departed = append(r.Departed, departed...)
	return departed
}
