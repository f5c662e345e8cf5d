package tui

import (
	"fmt"
	"strings"

	"eve-routes/internal/present"
)

const progressBarWidth = 40

var fieldNames = [fieldCount]string{
	"From station",
	"To station",
	"Cargo (m³)",
	"Min profit (ISK)",
	"Sales tax (%)",
}

// View renders the whole screen.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.viewForm())
		b.WriteString("\n")
		b.WriteString(m.viewProgress())
	case stateError:
		b.WriteString(m.viewForm())
		b.WriteString("\n")
		b.WriteString(m.viewError())
	default:
		b.WriteString(m.viewForm())
		if m.set != nil {
			b.WriteString("\n")
			b.WriteString(m.viewResults())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("EVE Routes · trade route scout " + m.version)
	status := ""
	if m.probed {
		if m.healthy {
			status = dimStyle.Render("  server: online")
		} else {
			status = errorStyle.Render("  server: unreachable")
		}
	}
	return title + status + "\n"
}

func (m Model) viewForm() string {
	var b strings.Builder
	for i := range m.inputs {
		b.WriteString(labelStyle.Render(fieldNames[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString(errorStyle.Render("✗ " + m.formErr))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewProgress() string {
	pct := m.progress.Percent()
	filled := pct * progressBarWidth / 100
	bar := progressBarStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", progressBarWidth-filled))

	route := ""
	if m.lastQuery != nil {
		route = dimStyle.Render(m.lastQuery.Route()) + "\n"
	}
	return panelStyle.Render(fmt.Sprintf("%s%s %3d%%\n%s",
		route, bar, pct, progressMsgStyle.Render(m.progress.Message())))
}

func (m Model) viewError() string {
	return panelStyle.Render(
		errorStyle.Render("✗ "+m.errMsg) + "\n" +
			dimStyle.Render("press r to retry, esc to dismiss"))
}

func (m Model) viewResults() string {
	md := m.set.Metadata
	head := fmt.Sprintf("%s → %s · %d found", md.FromStation, md.ToStation, md.TotalFound)
	if md.Showing > 0 && md.Showing < md.TotalFound {
		head += fmt.Sprintf(" (showing %d)", md.Showing)
	}
	if md.Cached {
		head += " · cached"
	}
	head += fmt.Sprintf(" · %.2fs", md.QueryTimeSeconds)

	if len(m.rows) == 0 {
		return panelStyle.Render(dimStyle.Render(head) + "\n\n" + present.EmptyGuidance)
	}

	summary := fmt.Sprintf("%s %s   %s %s   %s %s   %s %s",
		dimStyle.Render("profit"), summaryValueStyle.Render(present.FormatISK(m.summary.TotalProfit)),
		dimStyle.Render("investment"), summaryValueStyle.Render(present.FormatISK(m.summary.TotalInvestment)),
		dimStyle.Render("cargo"), summaryValueStyle.Render(fmt.Sprintf("%.0f m³", m.summary.TotalWeight)),
		dimStyle.Render("avg margin"), summaryValueStyle.Render(fmt.Sprintf("%.1f%%", m.summary.AverageMargin)))

	var b strings.Builder
	b.WriteString(dimStyle.Render(head))
	b.WriteString("\n")
	b.WriteString(summary)
	b.WriteString("\n\n")
	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf("%3s  %-28s %9s %9s %7s %8s %10s",
		"#", "Item", "Buy", "Sell", "Margin", "Units", "Profit")))
	b.WriteString("\n")

	visible := len(m.rows)
	if m.height > 14 && visible > m.height-14 {
		visible = m.height - 14
	}
	for _, r := range m.rows[:visible] {
		o := r.Opportunity
		b.WriteString(fmt.Sprintf("%3d  %-28s %9s %9s %s %8d %10s\n",
			r.Rank, clip(o.ItemName, 28),
			present.FormatISK(o.BuyPrice), present.FormatISK(o.SellPrice),
			marginCell(r.MarginClass, o.ProfitMargin),
			o.MaxUnits, present.FormatISK(o.TotalProfit)))
	}
	if visible < len(m.rows) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(m.rows)-visible)))
		b.WriteString("\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// marginCell colors a margin percent by its class.
func marginCell(class string, margin float64) string {
	cell := fmt.Sprintf("%6.1f%%", margin)
	switch class {
	case present.MarginPositive:
		return marginPositiveStyle.Render(cell)
	case present.MarginNeutral:
		return marginNeutralStyle.Render(cell)
	default:
		return marginNegativeStyle.Render(cell)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
