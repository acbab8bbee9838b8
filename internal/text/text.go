// Package text builds the markdown shown for cards, outcomes, and
// run summaries before glamour renders it.
package text

import (
	"fmt"
	"strings"

	"guildhall/internal/engine"
)

const (
	DensityConcise  = "concise"
	DensityStandard = "standard"
	DensityRich     = "rich"
)

// CycleDensity steps concise -> standard -> rich -> concise.
func CycleDensity(cur string) string {
	switch cur {
	case DensityConcise:
		return DensityStandard
	case DensityStandard:
		return DensityRich
	default:
		return DensityConcise
	}
}

// CardMarkdown renders one event card as a markdown panel.
func CardMarkdown(card *engine.EventCard, density string) string {
	if card == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("# " + card.Title + "\n\n")
	if card.Speaker != "" && density != DensityConcise {
		b.WriteString("*" + card.Speaker + "*\n\n")
	}
	b.WriteString(card.Body + "\n")
	if density == DensityRich && card.Portrait != "" {
		b.WriteString("\n`" + card.Portrait + "`\n")
	}
	return b.String()
}

// ChoiceLine formats a choice label with its key hint.
func ChoiceLine(side engine.Side, label string) string {
	key := "←"
	if side == engine.SideRight {
		key = "→"
	}
	return fmt.Sprintf("[%s] %s", key, label)
}

// OutcomeMarkdown renders the resolution line plus any roster barks.
func OutcomeMarkdown(outcome string, barks []string) string {
	var b strings.Builder
	b.WriteString("**" + outcome + "**\n")
	for _, bark := range barks {
		if bark == "" {
			continue
		}
		b.WriteString("\n> " + bark + "\n")
	}
	return b.String()
}

// SummaryMarkdown renders the end-of-run recap.
func SummaryMarkdown(sum engine.Summary, legacy int) string {
	var b strings.Builder
	if sum.Victory {
		b.WriteString("# " + sum.Cause + "\n\n")
		b.WriteString(fmt.Sprintf("The guild stands after %d days.\n\n", sum.Day))
	} else {
		b.WriteString("# " + sum.Cause + "\n\n")
		b.WriteString(fmt.Sprintf("The guild lasted %d days.\n\n", sum.Day))
	}
	b.WriteString(MeterLines(sum.Meters))
	b.WriteString(fmt.Sprintf("\nMilestones reached: %d\n", sum.Milestones))
	if sum.Kind != "" {
		b.WriteString(fmt.Sprintf("Remembered as: %s\n", titleCase(string(sum.Kind))))
	}
	b.WriteString(fmt.Sprintf("Legacy: %d\n", legacy))
	return b.String()
}

// MeterBar renders v on a 10-wide bar. Meters live in [0,10] so the
// value maps one to one onto cells.
func MeterBar(v int) string {
	if v < engine.MeterMin {
		v = engine.MeterMin
	}
	if v > engine.MeterMax {
		v = engine.MeterMax
	}
	return strings.Repeat("█", v) + strings.Repeat("·", engine.MeterMax-v)
}

// MeterLines renders all three meters, one per line.
func MeterLines(m engine.Meters) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Funds      %s %2d\n", MeterBar(m.Funds), m.Funds))
	b.WriteString(fmt.Sprintf("Reputation %s %2d\n", MeterBar(m.Reputation), m.Reputation))
	b.WriteString(fmt.Sprintf("Readiness  %s %2d\n", MeterBar(m.Readiness), m.Readiness))
	return b.String()
}

// MoraleLine renders one roster member for the sidebar.
func MoraleLine(c engine.Character) string {
	return fmt.Sprintf("%-10s %s %2d", c.Name, MeterBar(c.Morale), c.Morale)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Recap collapses markdown into a single short log line.
func Recap(md string) string {
	clean := strings.ReplaceAll(md, "\n", " ")
	clean = strings.Join(strings.Fields(clean), " ")
	if len(clean) > 120 {
		clean = clean[:120] + "..."
	}
	return clean
}
