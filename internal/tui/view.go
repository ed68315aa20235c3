package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/core"
	"github.com/priyamkaur/winbroom/internal/engine"
	"github.com/priyamkaur/winbroom/internal/resolve"
	"github.com/priyamkaur/winbroom/internal/ui"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorSecondary)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorMuted)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary)

	elevatedStyle = lipgloss.NewStyle().
			Foreground(ui.ColorWarning)

	okStyle   = lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errStyle  = lipgloss.NewStyle().Foreground(ui.ColorError)
	skipStyle = lipgloss.NewStyle().Foreground(ui.ColorMuted)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorWarning).
			Padding(1, 2)
)

func (m Model) View() string {
	if m.quitting && m.phase != phaseDone {
		return ""
	}

	switch m.phase {
	case phaseConfirm:
		return m.renderConfirm()
	case phaseRunning:
		return m.renderRunning()
	case phaseDone:
		return m.renderDone()
	default:
		return m.renderBrowse()
	}
}

// ─── Browse ──────────────────────────────────────────────────────────────────

func (m Model) renderBrowse() string {
	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("  WinBroom") + mutedStyle.Render("  reclaim disk space"))
	s.WriteString("\n\n")

	var lastCat catalog.Category = -1
	for i, r := range m.rows {
		if r.item.Category != lastCat {
			if lastCat != -1 {
				s.WriteString("\n")
			}
			s.WriteString(headerStyle.Render("  " + r.item.Category.String()))
			s.WriteString("\n")
			lastCat = r.item.Category
		}
		s.WriteString(m.renderRow(i, r))
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(mutedStyle.Italic(true).Render(
		"  ↑/↓ move  " + ui.IconPipe + "  space select  " + ui.IconPipe +
			"  a all  " + ui.IconPipe + "  enter clean  " + ui.IconPipe + "  q quit"))
	s.WriteString("\n")
	return s.String()
}

func (m Model) renderRow(i int, r row) string {
	marker := "  "
	if i == m.cursor {
		marker = cursorStyle.Render("› ")
	}

	box := "[ ]"
	if r.selected {
		box = okStyle.Render("[" + ui.IconOK + "]")
	}

	name := r.item.DisplayName
	var notes []string
	if r.item.Risk == catalog.RiskElevated {
		notes = append(notes, elevatedStyle.Render("admin"))
	}
	switch {
	case !r.available():
		box = mutedStyle.Render("[-]")
		name = mutedStyle.Render(name)
		notes = append(notes, mutedStyle.Render("unavailable"))
	case r.item.IsAction():
		notes = append(notes, mutedStyle.Render("system utility"))
	case r.target.Existence == resolve.NotFound:
		name = mutedStyle.Render(name)
		notes = append(notes, mutedStyle.Render("nothing to clean"))
	case r.item.SizeHint != "":
		notes = append(notes, mutedStyle.Render("~"+r.item.SizeHint))
	}

	line := fmt.Sprintf("%s%s %-34s", marker, box, name)
	if len(notes) > 0 {
		line += "  " + strings.Join(notes, mutedStyle.Render("  "+ui.IconPipe+"  "))
	}
	return line
}

// ─── Confirm ─────────────────────────────────────────────────────────────────

func (m Model) renderConfirm() string {
	item := m.rows[m.confirmQueue[m.confirmPos]].item

	var b strings.Builder
	b.WriteString(elevatedStyle.Bold(true).Render(ui.IconWarn + " Confirm cleanup"))
	b.WriteString("\n\n")
	b.WriteString(item.DisplayName)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(item.Description))
	if item.Risk == catalog.RiskElevated {
		b.WriteString("\n")
		b.WriteString(elevatedStyle.Render("Requires administrator privilege."))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("(%d of %d)  ", m.confirmPos+1, len(m.confirmQueue))))
	b.WriteString(okStyle.Render("y") + " proceed  " + errStyle.Render("n") + " skip")

	return "\n" + modalStyle.Render(b.String()) + "\n"
}

// ─── Running ─────────────────────────────────────────────────────────────────

func (m Model) renderRunning() string {
	var s strings.Builder
	s.WriteString("\n")
	s.WriteString("  " + m.spin.View() + titleStyle.Render("Cleaning…"))
	s.WriteString("\n\n")
	s.WriteString(m.renderResults())
	return s.String()
}

// ─── Done ────────────────────────────────────────────────────────────────────

func (m Model) renderDone() string {
	var s strings.Builder
	s.WriteString("\n")
	s.WriteString(titleStyle.Render("  Cleanup complete"))
	s.WriteString("\n\n")
	s.WriteString(m.renderResults())
	s.WriteString("\n")

	rep := m.report
	summary := fmt.Sprintf("  %d cleaned, %d skipped, %d cancelled, %d failed",
		rep.Succeeded, rep.Skipped, rep.Cancelled, rep.Failed)
	if rep.Reclaimed > 0 {
		summary += "  " + ui.IconPipe + "  " + okStyle.Render(core.FormatSize(rep.Reclaimed)+" reclaimed")
	}
	s.WriteString(summary)
	s.WriteString("\n\n")
	s.WriteString(mutedStyle.Italic(true).Render("  press q to exit"))
	s.WriteString("\n")
	return s.String()
}

// ─── Shared ──────────────────────────────────────────────────────────────────

func (m Model) renderResults() string {
	var s strings.Builder
	for _, res := range m.results {
		name := res.ItemID
		if item, err := m.cat.Get(res.ItemID); err == nil {
			name = item.DisplayName
		}
		s.WriteString("  " + renderResult(name, res))
		s.WriteString("\n")
	}
	return s.String()
}

func renderResult(name string, res engine.Result) string {
	switch res.Outcome {
	case engine.OutcomeSucceeded:
		line := okStyle.Render(ui.IconOK) + " " + name
		if res.Reclaimed > 0 {
			line += mutedStyle.Render("  " + core.FormatSize(res.Reclaimed))
		}
		return line
	case engine.OutcomeSkippedNotFound:
		return skipStyle.Render(ui.IconSkip+" "+name) + mutedStyle.Render("  nothing to clean")
	case engine.OutcomeCancelled:
		return skipStyle.Render(ui.IconSkip+" "+name) + mutedStyle.Render("  cancelled")
	default:
		return errStyle.Render(ui.IconError+" "+name) + mutedStyle.Render("  "+res.Reason)
	}
}
