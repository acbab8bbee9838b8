package ui

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"guildhall/internal/engine"
	"guildhall/internal/store"
	"guildhall/internal/text"
	"guildhall/internal/util"
)

const (
	viewMainMenu = "main_menu"
	viewCard     = "card"
	viewLog      = "log"
	viewHistory  = "history"
	viewSummary  = "summary"
	viewHelp     = "help"
)

var seedEncoding = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

type model struct {
	ctx      context.Context
	db       *store.DB
	catalog  *engine.Catalog
	specials engine.SpecialDecks
	pool     []engine.Character
	barks    engine.BarkSet
	profile  *engine.Profile

	session  *engine.Session
	runSeed  engine.RunSeed
	seedText string
	runID    uuid.UUID

	view      string
	theme     string
	density   string
	st        styles
	outcomeMD string
	summaryMD string
	status    string

	history []engine.Summary
	titles  []engine.Achievement

	width     int
	height    int
	logScroll int
}

func randomSeedText() string {
	buf := make([]byte, 15)
	if _, err := rand.Read(buf); err != nil {
		return "fallback-seed"
	}
	return strings.ToLower(seedEncoding.EncodeToString(buf))
}

func initialModel(ctx context.Context, db *store.DB, catalog *engine.Catalog, specials engine.SpecialDecks, pool []engine.Character, barks engine.BarkSet, profile *engine.Profile, cfg util.Config) model {
	seedText := strings.TrimSpace(cfg.SeedText)
	if seedText == "" {
		seedText = randomSeedText()
	}
	m := model{
		ctx:      ctx,
		db:       db,
		catalog:  catalog,
		specials: specials,
		pool:     pool,
		barks:    barks,
		profile:  profile,
		seedText: seedText,
		view:     viewMainMenu,
		theme:    cfg.Theme,
		density:  cfg.TextDensity,
	}
	if theme, density, err := store.NewSettingsRepo(db).Get(ctx); err == nil {
		m.theme = theme
		m.density = density
	}
	m.st = stylesFor(m.theme)
	return m
}

// startNewRun persists a run row, mixes the run id into the seed, and
// deals the opening card.
func (m *model) startNewRun() {
	run, err := store.NewRunRepo(m.db).Create(m.ctx, m.seedText)
	if err != nil {
		m.status = "Failed to start run: " + err.Error()
		return
	}
	seed, err := engine.NewRunSeed(m.seedText)
	if err != nil {
		m.status = "Invalid seed: " + err.Error()
		return
	}
	m.runID = run.ID
	m.runSeed = seed.WithRunContext(run.ID.String())
	m.session = engine.NewSession(m.catalog, m.specials, m.profile, m.runSeed)
	if err := m.session.Start(m.pool); err != nil {
		m.status = "Failed to deal opening card: " + err.Error()
		return
	}
	m.outcomeMD = ""
	m.persistSnapshot()
	if m.session.State() == engine.StateTerminal {
		m.finishRun()
		return
	}
	m.view = viewCard
	m.status = ""
}

// continueRun resumes the latest unfinished run from its snapshot.
func (m *model) continueRun() {
	run, err := store.NewRunRepo(m.db).Latest(m.ctx)
	if err != nil {
		m.status = "No run to continue"
		return
	}
	snap, err := store.NewSnapshotRepo(m.db).Load(m.ctx, run.ID)
	if err != nil {
		m.status = "No snapshot for latest run"
		return
	}
	seed, err := engine.NewRunSeed(run.SeedText)
	if err != nil {
		m.status = "Stored seed invalid"
		return
	}
	m.seedText = run.SeedText
	m.runID = run.ID
	m.runSeed = seed.WithRunContext(run.ID.String())
	m.session = engine.NewSession(m.catalog, m.specials, m.profile, m.runSeed)
	if err := m.session.Resume(m.pool, snap); err != nil {
		m.status = "Resume failed: " + err.Error()
		return
	}
	m.outcomeMD = ""
	m.view = viewCard
	m.status = ""
}

func (m *model) choose(side engine.Side) {
	if m.session == nil || m.session.State() != engine.StateAwaitingChoice {
		return
	}
	day := m.session.Day()
	res, err := m.session.Choose(side)
	if err != nil {
		m.status = err.Error()
		return
	}
	barkStream := m.runSeed.Stream(fmt.Sprintf("bark:%d", day))
	lines := m.barks.PickAll(res.MatchedTraits, barkStream)
	for _, c := range res.Departed {
		lines = append(lines, c.Name+" packs up and leaves the hall.")
	}
	m.outcomeMD = text.OutcomeMarkdown(res.Outcome, lines)
	m.persistSnapshot()
	if res.Terminal {
		m.finishRun()
		return
	}
	m.status = ""
}

// finishRun records the collapse, updates the cross-run profile, and
// swaps to the summary view.
func (m *model) finishRun() {
	sum := m.session.Summary()
	err := m.db.WithTx(m.ctx, func(tx *gorm.DB) error {
		if err := store.NewCollapseRepo(m.db).Insert(m.ctx, tx, m.runID, sum); err != nil {
			return err
		}
		return store.NewRunRepo(m.db).Finish(m.ctx, tx, m.runID, sum.Day)
	})
	if err != nil {
		m.status = "Failed to record collapse: " + err.Error()
	}
	m.profile.Record(sum.Kind)
	m.summaryMD = text.SummaryMarkdown(sum, m.profile.TotalLegacy())
	m.view = viewSummary
}

// persistSnapshot writes the latest turn state. Errors surface in the
// status line but never block play.
func (m *model) persistSnapshot() {
	if m.session == nil || m.runID == uuid.Nil {
		return
	}
	payload, err := m.session.Snapshot()
	if err != nil {
		m.status = "snapshot: " + err.Error()
		return
	}
	if err := store.NewSnapshotRepo(m.db).Upsert(m.ctx, m.runID, m.session.Day(), payload); err != nil {
		m.status = "snapshot: " + err.Error()
	}
}

func (m *model) cycleTheme() {
	m.theme = nextThemeName(m.theme)
	m.st = stylesFor(m.theme)
	_ = store.NewSettingsRepo(m.db).Upsert(m.ctx, m.theme, m.density)
}

func (m *model) cycleDensity() {
	m.density = text.CycleDensity(m.density)
	_ = store.NewSettingsRepo(m.db).Upsert(m.ctx, m.theme, m.density)
}

func (m *model) refreshHistory() {
	repo := store.NewCollapseRepo(m.db)
	if hist, err := repo.History(m.ctx, 20); err == nil {
		m.history = hist
	}
	if best, err := repo.BestDay(m.ctx); err == nil {
		m.titles = engine.UnlockedAchievements(m.profile, best)
	}
}

// tea.Model implementation ---------------------------------------------------

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		k := msg.String()
		if k == "q" || k == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewMainMenu:
			switch k {
			case "1", "n":
				m.startNewRun()
			case "2", "c":
				m.continueRun()
			case "3":
				m.seedText = randomSeedText()
			case "t":
				m.cycleTheme()
			case "d":
				m.cycleDensity()
			case "?":
				m.view = viewHelp
			}
		case viewCard:
			switch k {
			case "left", "a":
				m.choose(engine.SideLeft)
			case "right", "d":
				m.choose(engine.SideRight)
			case "tab", "l":
				m.view = viewLog
				m.logScroll = 0
			case "h":
				m.refreshHistory()
				m.view = viewHistory
			case "t":
				m.cycleTheme()
			case "m":
				m.view = viewMainMenu
			case "?":
				m.view = viewHelp
			}
		case viewLog:
			switch k {
			case "down", "j":
				m.logScroll++
			case "up", "k":
				if m.logScroll > 0 {
					m.logScroll--
				}
			case "esc", "tab", "l":
				m.view = viewCard
			}
		case viewHistory:
			if k == "esc" || k == "h" {
				m.view = viewCard
			}
		case viewSummary:
			switch k {
			case "n", "enter":
				m.seedText = randomSeedText()
				m.startNewRun()
			case "h":
				m.refreshHistory()
				m.view = viewHistory
			case "m", "esc":
				m.view = viewMainMenu
			}
		case viewHelp:
			if k == "esc" || k == "?" {
				if m.session != nil && m.session.State() == engine.StateAwaitingChoice {
					m.view = viewCard
				} else {
					m.view = viewMainMenu
				}
			}
		}
	}
	return m, nil
}

func (m model) View() string {
	switch m.view {
	case viewMainMenu:
		return m.renderMainMenu()
	case viewCard:
		return m.renderCardLayout()
	case viewLog:
		return m.renderLog()
	case viewHistory:
		return m.renderHistory()
	case viewSummary:
		return m.renderSummary()
	case viewHelp:
		return m.renderHelp()
	}
	return ""
}

// Layout rendering -----------------------------------------------------------

func (m *model) renderMainMenu() string {
	content := m.st.Title.Render("GUILDHALL") + "\n\n" +
		"[1] New Run\n[2] Continue\n[3] Reroll Seed\n\n" +
		m.st.Muted.Render("Seed: "+m.seedText) + "\n" +
		m.st.Muted.Render(fmt.Sprintf("Theme: %s (t)  Density: %s (d)", m.theme, m.density)) + "\n" +
		m.st.Muted.Render(fmt.Sprintf("Legacy: %d  Collapses: %d", m.profile.TotalLegacy(), m.profile.Collapses)) + "\n\n" +
		m.st.Muted.Render("[?] help  [q] quit")
	if m.status != "" {
		content += "\n\n" + m.st.Warning.Render(m.status)
	}
	return m.st.Panel.Width(54).Render(content)
}

func (m *model) renderCardLayout() string {
	card := m.session.Current()
	if card == nil {
		return m.st.Muted.Render("(no card)")
	}
	w := m.width
	if w <= 0 {
		w = 100
	}
	sidebarWidth := 28
	mainWidth := w - sidebarWidth - 3

	var b strings.Builder
	b.WriteString(m.renderMarkdown(text.CardMarkdown(card, m.density)))
	b.WriteString("\n")
	b.WriteString(m.st.Choice.Render(text.ChoiceLine(engine.SideLeft, card.Choice(engine.SideLeft).Label)) + "\n")
	b.WriteString(m.st.Choice.Render(text.ChoiceLine(engine.SideRight, card.Choice(engine.SideRight).Label)) + "\n")
	if m.outcomeMD != "" {
		b.WriteString("\n" + m.renderMarkdown(m.outcomeMD))
	}
	if m.status != "" {
		b.WriteString("\n" + m.st.Warning.Render(m.status))
	}

	top := m.renderTopBar()
	main := lipgloss.NewStyle().Width(mainWidth).Render(b.String())
	side := m.st.Sidebar.Width(sidebarWidth).Render(m.renderSidebar())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, side)
	bottom := m.st.Muted.Render("[←/→] choose  [Tab] log  [H] history  [T] theme  [M] menu  [?] help  [Q] quit")
	return lipgloss.JoinVertical(lipgloss.Left, top, body, bottom)
}

func (m *model) renderTopBar() string {
	left := fmt.Sprintf("GUILDHALL • Day %d", m.session.Day())
	right := fmt.Sprintf("Legacy %d", m.profile.TotalLegacy())
	w := m.width
	if w <= 0 {
		w = 100
	}
	gap := w - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return m.st.Title.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *model) renderSidebar() string {
	var b strings.Builder
	b.WriteString("METERS\n")
	b.WriteString(text.MeterLines(m.session.Meters()))
	b.WriteString("\nROSTER\n")
	for _, c := range m.session.Roster().Active {
		b.WriteString(text.MoraleLine(c) + "\n")
	}
	return b.String()
}

func (m *model) renderLog() string {
	records := m.session.Log()
	var b strings.Builder
	b.WriteString(m.st.Title.Render("RUN LOG") + "\n")
	if len(records) == 0 {
		b.WriteString(m.st.Muted.Render("(no turns yet)") + "\n")
	}
	start := m.logScroll
	if start > len(records) {
		start = len(records)
	}
	for _, rec := range records[start:] {
		b.WriteString(fmt.Sprintf("Day %-3d %-28s %s\n", rec.Day, rec.Title, text.Recap(rec.Outcome)))
	}
	b.WriteString("\n" + m.st.Muted.Render("[↑/↓] scroll  [Esc] back"))
	return b.String()
}

func (m *model) renderHistory() string {
	var b strings.Builder
	b.WriteString(m.st.Title.Render("PAST RUNS") + "\n")
	if len(m.history) == 0 {
		b.WriteString(m.st.Muted.Render("(no collapses yet)") + "\n")
	}
	for _, sum := range m.history {
		mark := " "
		if sum.Victory {
			mark = "★"
		}
		b.WriteString(fmt.Sprintf("%s Day %-3d %-28s %s\n", mark, sum.Day, sum.Cause, sum.Kind))
	}
	if len(m.titles) > 0 {
		b.WriteString("\n" + m.st.Title.Render("TITLES EARNED") + "\n")
		for _, a := range m.titles {
			b.WriteString(fmt.Sprintf("%-20s %s\n", a.Title, m.st.Muted.Render(string(a.Rarity))))
		}
	}
	b.WriteString("\n" + m.st.Muted.Render("[Esc] back"))
	return b.String()
}

func (m *model) renderSummary() string {
	content := m.renderMarkdown(m.summaryMD) + "\n" +
		m.st.Muted.Render("[N] new run  [H] history  [M] menu  [Q] quit")
	if m.status != "" {
		content += "\n" + m.st.Warning.Render(m.status)
	}
	return m.st.Panel.Width(60).Render(content)
}

func (m *model) renderHelp() string {
	return m.st.Panel.Width(64).Render(
		m.st.Title.Render("HOW TO PLAY") + "\n\n" +
			"You run a guild hall. Each day one card arrives; pick the left\n" +
			"or right choice with the arrow keys. Choices move funds,\n" +
			"reputation, readiness, and roster morale. Any meter at zero\n" +
			"collapses the guild; collapses feed the legacy ledger, and\n" +
			"legacy unlocks new recruits and stranger cards.\n\n" +
			"Controls: ←/→ choose | Tab log | H history | T theme\n" +
			"M menu | Q quit | Esc back\n")
}

func (m *model) renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
