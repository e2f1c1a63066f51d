package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDashboard composes the six regions and the footer.
func (m Model) renderDashboard() string {
	layout := ComputeLayout(m.width, m.height)
	box := func(r Region) string { return m.renderPanel(r, layout[r]) }

	upper := lipgloss.JoinHorizontal(lipgloss.Top, box(RegionUpperLeft), box(RegionUpperRight))
	bottomInner := lipgloss.JoinHorizontal(lipgloss.Top, box(RegionBottomInnerLeft), box(RegionBottomInnerRight))
	rightColumn := lipgloss.JoinVertical(lipgloss.Left, box(RegionTopInner), bottomInner)
	lower := lipgloss.JoinHorizontal(lipgloss.Top, box(RegionMiddleLeft), rightColumn)

	return lipgloss.JoinVertical(lipgloss.Left, upper, lower, m.renderFooter())
}

// renderPanel draws one region as a bordered box of exactly b's size with
// the title set into the top border.
func (m Model) renderPanel(region Region, b Box) string {
	panel, ok := m.panels[region]
	if !ok {
		panel = Panel{
			Title: regionTitles[region],
			Body:  MutedStyle.Render("collecting..."),
			Style: PanelStyle,
		}
	}

	style := panel.Style
	if !style.GetBorderTop() {
		style = PanelStyle
	}

	body := lipgloss.NewStyle().
		MaxWidth(b.ContentWidth()).
		MaxHeight(b.ContentHeight()).
		Render(panel.Body)

	frame := style.
		BorderTop(false).
		Width(b.Width - 2).
		Height(b.Height - 2).
		Render(body)

	return panelTop(panel.Title, b.Width, style.GetBorderTopForeground()) + "\n" + frame
}

// panelTop renders the top border with an embedded title.
// Format: ╭─ Title ─────────────────╮
func panelTop(title string, width int, borderColor lipgloss.TerminalColor) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	maxTitle := width - 6
	if maxTitle < 1 {
		return borderStyle.Render("╭" + strings.Repeat("─", max(width-2, 0)) + "╮")
	}
	if lipgloss.Width(title) > maxTitle {
		title = string([]rune(title)[:maxTitle])
	}

	// "╭─ " + title + " " + fill + "╮"
	fill := width - 3 - lipgloss.Width(title) - 1 - 1
	return borderStyle.Render("╭─ ") +
		PanelTitleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", max(fill, 0))+"╮")
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}
