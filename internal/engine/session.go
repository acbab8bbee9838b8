package engine

import (
	"github.com/pkg/errors"
)

// Terminal cause strings shown on the summary screen. The collapse
// variants match the deck's collapse-card flavor.
const (
	CauseBankrupt  = "Collapse — Bankrupt Guild"
	CauseForgotten = "Collapse — Forgotten Name"
	CauseUnready   = "Collapse — Unready Roster"
	CauseEmptyHall = "Collapse — Empty Hall"
	CauseExhausted = "Collapse — Deck Exhausted"

	VictoryPerfectionist = "Perfectionist"
	VictoryLegend        = "Legend"
	VictorySurvivor      = "Survivor"
)

// Win-condition thresholds.
const (
	perfectionistMeterFloor = 8
	perfectionistStreak     = 5
	legendStreak            = 3
	survivorDay             = 40
)

// SessionState is the controller's coarse state.
type SessionState int

const (
	StateInit SessionState = iota
	StateAwaitingChoice
	StateTerminal
)

// ErrRunOver is returned by Choose once the session is terminal.
var ErrRunOver = errors.New("engine: run is over")

// RunState is the mutable per-run state threaded through the selector
// and the session controller. One value per live run; reset wholesale on
// a new-run request.
type RunState struct {
	Day                 int
	Meters              Meters
	Roster              Roster
	NextSpecialCheckDay int
	PendingNext         string
	Drawn               []string
	SawRival            bool
	PerfectStreak       int
	LegendStreak        int
	MilestonesReached   int
}

func (st *RunState) wasDrawn(id string) bool {
	for _, d := range st.Drawn {
		if d == id {
			return true
		}
	}
	return false
}

// recent returns the last n drawn ids, oldest first.
func (st *RunState) recent(n int) []string {
	if len(st.Drawn) <= n {
		return st.Drawn
	}
	return st.Drawn[len(st.Drawn)-n:]
}

// TurnRecord is one entry of the run's history log.
type TurnRecord struct {
	Day     int
	CardID  string
	Title   string
	Choice  string
	Outcome string
}

// TurnResult is what one Choose call produced, for the presentation
// layer to render.
type TurnResult struct {
	Outcome       string
	MatchedTraits []string
	Departed      []Character
	Terminal      bool
	Victory       bool
	Cause         string
}

// Summary is the end-of-run recap.
type Summary struct {
	Day        int
	Meters     Meters
	Milestones int
	Cause      string
	Victory    bool
	Kind       CollapseKind
}

// Session orchestrates a single run: draw, present, resolve, check
// terminal conditions, advance. Not safe for concurrent use; one session
// is live at a time and every mutation happens inside Choose.
type Session struct {
	catalog  *Catalog
	selector *Selector
	profile  *Profile
	stream   *Stream

	st      RunState
	state   SessionState
	current *EventCard
	log     []TurnRecord

	terminalCause string
	victory       bool
}

// NewSession builds a session over a validated catalog. Start or Resume
// must be called before the first Choose.
func NewSession(catalog *Catalog, specials SpecialDecks, profile *Profile, seed RunSeed) *Session {
	return &Session{
		catalog:  catalog,
		selector: NewSelector(catalog, specials, profile),
		profile:  profile,
		stream:   seed.Stream("run"),
	}
}

// Start begins a fresh run: sample the active roster, reset meters and
// counters, schedule the first raid check, and present the intro card.
func (s *Session) Start(pool []Character) error {
	if len(pool) < ActiveRosterSize {
		return errors.Errorf("engine: roster pool has %d members, need %d", len(pool), ActiveRosterSize)
	}
	s.st = RunState{
		Day:    1,
		Meters: NewMeters(),
		Roster: SampleRoster(pool, s.stream.Child("roster")),
	}
	s.st.NextSpecialCheckDay = 1 + s.stream.Child("raid-schedule").IntBetween(5, 7)
	s.log = nil
	s.terminalCause = ""
	s.victory = false

	card := s.catalog.Intro()
	if card == nil {
		card = s.selector.Next(&s.st, s.dayStream())
	}
	if card == nil {
		s.terminate(CauseExhausted, false)
		return nil
	}
	s.present(card)
	return nil
}

// Resume restores a run from a snapshot, re-sampling the roster from
// the pool and restricting it to the persisted members, then draws the
// next card. Snapshots without morale keep the fresh sample.
func (s *Session) Resume(pool []Character, snap Snapshot) error {
	if err := s.Start(pool); err != nil {
		return err
	}
	snap.applyTo(&s.st)
	s.st.Roster.RestoreMorale(snap.MoraleByID)
	card := s.selector.Next(&s.st, s.dayStream())
	if card == nil {
		s.terminate(CauseExhausted, false)
		return nil
	}
	s.present(card)
	return nil
}

// State reports the controller state.
func (s *Session) State() SessionState { return s.state }

// Current is the card awaiting a choice, nil when terminal.
func (s *Session) Current() *EventCard { return s.current }

// Meters exposes the live meters for the header bar.
func (s *Session) Meters() Meters { return s.st.Meters }

// Day is the current turn counter.
func (s *Session) Day() int { return s.st.Day }

// Roster exposes the active roster.
func (s *Session) Roster() *Roster { return &s.st.Roster }

// Log returns the turn history, most recent last.
func (s *Session) Log() []TurnRecord { return s.log }

// TerminalCause is the loss or victory string once terminal.
func (s *Session) TerminalCause() string { return s.terminalCause }

// Summary builds the end-of-run recap. Valid only once terminal.
func (s *Session) Summary() Summary {
	return Summary{
		Day:        s.st.Day,
		Meters:     s.st.Meters,
		Milestones: s.st.MilestonesReached,
		Cause:      s.terminalCause,
		Victory:    s.victory,
		Kind:       ClassifyCollapse(s.st.Meters, s.st.Day, s.victory, s.terminalCause),
	}
}

// Choose resolves the player's pick for the current card and advances
// the run by one turn.
func (s *Session) Choose(side Side) (TurnResult, error) {
	if s.state != StateAwaitingChoice || s.current == nil {
		return TurnResult{}, ErrRunOver
	}
	card := s.current
	choice := card.Choice(side)

	var res TurnResult
	if card.Kind == KindOffer {
		// Offers bypass hooks and the sours gate: the visible set
		// applies first, then the hidden set the player never saw.
		visible := ApplyEffects(choice.Effects, &s.st.Meters, &s.st.Roster, true)
		ApplyEffects(choice.Hidden, &s.st.Meters, &s.st.Roster, true)
		res.Outcome = visible.Summary()
	} else {
		extra, traits := EvaluateHooks(choice.Hooks, &s.st.Roster)
		allowPositive := !s.st.Roster.Soured()
		base := ApplyEffects(choice.Effects, &s.st.Meters, &s.st.Roster, allowPositive)
		bonus := ApplyEffects(extra, &s.st.Meters, &s.st.Roster, allowPositive)
		base.Applied = append(base.Applied, bonus.Applied...)
		res.Outcome = base.Summary()
		res.MatchedTraits = traits
	}

	res.Departed = s.st.Roster.CheckDepartures(s.stream.Child(childLabel("depart", s.st.Day)))

	s.log = append(s.log, TurnRecord{
		Day:     s.st.Day,
		CardID:  card.ID,
		Title:   card.Title,
		Choice:  choice.Label,
		Outcome: res.Outcome,
	})

	if cause := s.lossCause(); cause != "" {
		s.terminate(cause, false)
		return s.terminalResult(res), nil
	}

	s.updateStreaks()
	if cause := s.victoryCause(); cause != "" {
		s.terminate(cause, true)
		return s.terminalResult(res), nil
	}

	if card.HasTag(TagRaidCheck) {
		s.st.NextSpecialCheckDay = s.st.Day + s.stream.Child(childLabel("raid-schedule", s.st.Day)).IntBetween(5, 7)
	}
	if card.HasTag(TagMilestone) {
		s.st.MilestonesReached++
	}
	if choice.NextStep != "" {
		s.st.PendingNext = choice.NextStep
	}

	s.st.Day++
	next := s.selector.Next(&s.st, s.dayStream())
	if next == nil {
		s.terminate(CauseExhausted, false)
		return s.terminalResult(res), nil
	}
	s.present(next)
	return res, nil
}

func (s *Session) present(card *EventCard) {
	s.current = card
	s.st.Drawn = append(s.st.Drawn, card.ID)
	s.state = StateAwaitingChoice
}

func (s *Session) terminate(cause string, victory bool) {
	s.state = StateTerminal
	s.terminalCause = cause
	s.victory = victory
	if !victory {
		if c := s.st.Meters.Depleted(); c != "" {
			s.current = s.catalog.CollapseCard(c)
		} else {
			s.current = s.catalog.CollapseCard("")
		}
	} else {
		s.current = nil
	}
}

func (s *Session) terminalResult(res TurnResult) TurnResult {
	res.Terminal = true
	res.Victory = s.victory
	res.Cause = s.terminalCause
	return res
}

func (s *Session) lossCause() string {
	if k := s.st.Meters.Depleted(); k != "" {
		return collapseCause(k)
	}
	if len(s.st.Roster.Active) < MinRosterSize {
		return CauseEmptyHall
	}
	return ""
}

func (s *Session) updateStreaks() {
	m := s.st.Meters
	if m.Funds >= perfectionistMeterFloor && m.Reputation >= perfectionistMeterFloor && m.Readiness >= perfectionistMeterFloor {
		s.st.PerfectStreak++
	} else {
		s.st.PerfectStreak = 0
	}
	if m.Reputation == MeterMax {
		s.st.LegendStreak++
	} else {
		s.st.LegendStreak = 0
	}
}

func (s *Session) victoryCause() string {
	switch {
	case s.st.PerfectStreak >= perfectionistStreak:
		return VictoryPerfectionist
	case s.st.LegendStreak >= legendStreak:
		return VictoryLegend
	case s.st.Day >= survivorDay:
		return VictorySurvivor
	}
	return ""
}

// dayStream derives the per-turn draw stream so replays with the same
// seed walk the same sequence regardless of how often intermediate
// streams were consumed.
func (s *Session) dayStream() *Stream {
	return s.stream.Child(childLabel("draw", s.st.Day))
}

// Snapshot serializes the live run for the persistence layer.
func (s *Session) Snapshot() ([]byte, error) {
	return MarshalSnapshot(&s.st)
}
