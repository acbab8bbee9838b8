package engine

import (
	"encoding/json"
)

// Snapshot is the persisted shape of a run, written after every turn.
// Unmarshalling tolerates missing fields; each falls back to its run
// default so an old or truncated payload still restores.
type Snapshot struct {
	Meters              *Meters        `json:"meters,omitempty"`
	Day                 int            `json:"day"`
	NextSpecialCheckDay int            `json:"nextSpecialCheckDay"`
	MoraleByID          map[string]int `json:"moraleById,omitempty"`
	RecentLog           []string       `json:"recentLog,omitempty"`
	UsedEventIDs        []string       `json:"usedEventIds,omitempty"`
	SawRival            bool           `json:"sawRival"`
	PerfectStreak       int            `json:"perfectStreak"`
	LegendStreak        int            `json:"legendStreak"`
	MilestonesReached   int            `json:"milestonesReached"`
	PendingNext         string         `json:"pendingNext,omitempty"`
}

// SnapshotOf captures the persistable slice of a run state.
func SnapshotOf(st *RunState) Snapshot {
	m := st.Meters
	return Snapshot{
		Meters:              &m,
		Day:                 st.Day,
		NextSpecialCheckDay: st.NextSpecialCheckDay,
		MoraleByID:          st.Roster.MoraleByID(),
		RecentLog:           append([]string(nil), st.recent(recentWindow)...),
		UsedEventIDs:        append([]string(nil), st.Drawn...),
		SawRival:            st.SawRival,
		PerfectStreak:       st.PerfectStreak,
		LegendStreak:        st.LegendStreak,
		MilestonesReached:   st.MilestonesReached,
		PendingNext:         st.PendingNext,
	}
}

// MarshalSnapshot serializes a run state for the persistence layer.
func MarshalSnapshot(st *RunState) ([]byte, error) {
	return json.Marshal(SnapshotOf(st))
}

// UnmarshalSnapshot parses a snapshot payload. Partial payloads are
// fine; absent fields keep zero values and applyTo fills in defaults.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// applyTo overlays the snapshot onto a freshly-started run state.
// Morale is overlaid separately by the session because it needs the
// sampled roster.
func (s Snapshot) applyTo(st *RunState) {
	if s.Meters != nil {
		st.Meters = *s.Meters
		st.Meters.Clamp()
	}
	if s.Day > 0 {
		st.Day = s.Day
	}
	if s.NextSpecialCheckDay > 0 {
		st.NextSpecialCheckDay = s.NextSpecialCheckDay
	}
	if len(s.UsedEventIDs) > 0 {
		st.Drawn = append([]string(nil), s.UsedEventIDs...)
	} else if len(s.RecentLog) > 0 {
		st.Drawn = append([]string(nil), s.RecentLog...)
	}
	st.SawRival = s.SawRival
	st.PerfectStreak = s.PerfectStreak
	st.LegendStreak = s.LegendStreak
	st.MilestonesReached = s.MilestonesReached
	st.PendingNext = s.PendingNext
}
