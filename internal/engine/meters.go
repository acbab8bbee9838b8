package engine

// Meter domain bounds. Every mutation clamps back into [MeterMin, MeterMax].
const (
	MeterMin = 0
	MeterMax = 10
)

// MeterKey identifies one of the three guild resources.
type MeterKey string

const (
	MeterFunds      MeterKey = "funds"
	MeterReputation MeterKey = "reputation"
	MeterReadiness  MeterKey = "readiness"
)

var AllMeterKeys = []MeterKey{MeterFunds, MeterReputation, MeterReadiness}

func (k MeterKey) Validate() bool {
	return k == MeterFunds || k == MeterReputation || k == MeterReadiness
}

// Meters holds the three bounded guild resources.
type Meters struct {
	Funds      int `json:"funds"`
	Reputation int `json:"reputation"`
	Readiness  int `json:"readiness"`
}

// NewMeters returns the run-start meters.
func NewMeters() Meters { return Meters{Funds: 5, Reputation: 5, Readiness: 5} }

// Clamp restricts a meter value into [MeterMin, MeterMax].
func Clamp(v int) int {
	if v < MeterMin {
		return MeterMin
	}
	if v > MeterMax {
		return MeterMax
	}
	return v
}

// Clamp restores all three meters into the domain, for values coming
// from outside the engine (persisted snapshots).
func (m *Meters) Clamp() {
	m.Funds = Clamp(m.Funds)
	m.Reputation = Clamp(m.Reputation)
	m.Readiness = Clamp(m.Readiness)
}

// Get returns a meter value by key; unknown keys read as 0.
func (m Meters) Get(k MeterKey) int {
	switch k {
	case MeterFunds:
		return m.Funds
	case MeterReputation:
		return m.Reputation
	case MeterReadiness:
		return m.Readiness
	}
	return 0
}

// Add applies a clamped delta to a meter in place. Unknown keys are a no-op.
func (m *Meters) Add(k MeterKey, delta int) {
	switch k {
	case MeterFunds:
		m.Funds = Clamp(m.Funds + delta)
	case MeterReputation:
		m.Reputation = Clamp(m.Reputation + delta)
	case MeterReadiness:
		m.Readiness = Clamp(m.Readiness + delta)
	}
}

// Total sums the three meters; the special-event layers key their trigger
// curves off this.
func (m Meters) Total() int { return m.Funds + m.Reputation + m.Readiness }

// Highest returns the key of the currently-highest meter. Ties resolve in
// funds, reputation, readiness order, matching the pool-bias checks which
// consider every meter equal to the maximum.
func (m Meters) Highest() MeterKey {
	best := MeterFunds
	if m.Reputation > m.Get(best) {
		best = MeterReputation
	}
	if m.Readiness > m.Get(best) {
		best = MeterReadiness
	}
	return best
}

// Depleted returns the key of the first meter at or below zero, or "" when
// all meters are above the floor.
func (m Meters) Depleted() MeterKey {
	if m.Funds <= MeterMin {
		return MeterFunds
	}
	if m.Reputation <= MeterMin {
		return MeterReputation
	}
	if m.Readiness <= MeterMin {
		return MeterReadiness
	}
	return ""
}

// collapseCause maps a depleted meter to its player-facing loss line.
func collapseCause(k MeterKey) string {
	switch k {
	case MeterFunds:
		return CauseBankrupt
	case MeterReputation:
		return CauseForgotten
	case MeterReadiness:
		return CauseUnready
	}
	return "Collapse"
}
