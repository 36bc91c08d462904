// cli/views.go
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhite/nexus/internal/agents"
	"github.com/mwhite/nexus/internal/conversation"
)

// cardRowHeight is the rendered height of the agent status card row,
// used when sizing the transcript viewport.
const cardRowHeight = 6

var (
	titleStyle = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(20)

	userStyle      = lipgloss.NewStyle().Bold(true)
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
)

// statusGlyphs maps each agent status to the marker shown on its card.
var statusGlyphs = map[agents.AgentStatus]string{
	agents.StatusIdle:      "·",
	agents.StatusPending:   "…",
	agents.StatusRunning:   "▶",
	agents.StatusCompleted: "✓",
	agents.StatusError:     "✗",
	agents.StatusFailed:    "✗",
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.state {
	case viewForm:
		return m.formView()
	case viewDashboard:
		return m.dashboardView()
	case viewReports:
		return m.reportsView()
	default:
		return "Unknown state"
	}
}

// formView renders the company pair inputs and the domain selector.
func (m *model) formView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Collaboration Analysis") + "\n\n")
	b.WriteString(m.companyInput.View() + "\n")
	b.WriteString(m.partnerInput.View() + "\n\n")
	b.WriteString(m.domainList.View() + "\n")
	if m.statusLine != "" {
		b.WriteString("\n" + errStyle.Render(m.statusLine))
	}
	b.WriteString("\n" + helpStyle.Render(" (tab to switch fields, enter on domain to start, esc to quit)"))

	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

// dashboardView renders the agent status cards, the transcript, and the
// recent-activity pane.
func (m *model) dashboardView() string {
	var b strings.Builder

	header := titleStyle.Render("Agent Dashboard")
	if company := m.convStore.SelectedCompany(); company != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top,
			header,
			titleStyle.MarginLeft(1).Render(company),
			titleStyle.MarginLeft(1).Render(m.convStore.SelectedDomain()),
		)
	}
	b.WriteString(header + "\n\n")

	b.WriteString(m.agentCards() + "\n")

	b.WriteString(m.transcript.View() + "\n")

	if m.isRunning {
		timer := fmt.Sprintf("%.1f", time.Since(m.runStartTime).Seconds())
		b.WriteString("\n" + m.spinner.View() + " Agents are working... " + timer + "s")
	} else if m.statusLine != "" {
		b.WriteString("\n" + m.statusLine)
	}

	b.WriteString("\n" + m.activityPane())
	b.WriteString("\n" + helpStyle.Render(" (tab for reports, n for a new analysis, esc to quit)"))

	return b.String()
}

// agentCards renders one bordered card per agent in display order, tinted
// with the agent's descriptor color.
func (m *model) agentCards() string {
	var cards []string
	for _, a := range m.agentStore.Agents() {
		glyph := statusGlyphs[a.Status]
		name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(a.Color)).Render(a.Icon + " " + a.Name)
		body := fmt.Sprintf("%s\n%s %s", name, glyph, a.Status)
		style := cardStyle
		if a.Status == agents.StatusRunning {
			style = style.BorderForeground(lipgloss.Color(a.Color))
		}
		cards = append(cards, style.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// activityPane renders the newest activity log entries, most recent first.
func (m *model) activityPane() string {
	activities := m.agentStore.Activities()
	if len(activities) == 0 {
		return helpStyle.Render(" No agent activity yet.")
	}

	shown := activities
	if len(shown) > 5 {
		shown = shown[:5]
	}
	var b strings.Builder
	b.WriteString(helpStyle.Render("Recent activity:") + "\n")
	for _, act := range shown {
		line := fmt.Sprintf("  %s  %-12s %s", act.Timestamp.Format("15:04:05"), act.AgentType, act.Action)
		b.WriteString(helpStyle.Render(line) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// refreshTranscript rewrites the viewport content from the conversation store.
func (m *model) refreshTranscript() {
	msgs := m.convStore.Messages()
	var b strings.Builder
	for _, msg := range msgs {
		var role string
		switch msg.Role {
		case conversation.RoleAssistant:
			role = assistantStyle.Render("Assistant: ")
		case conversation.RoleSystem:
			role = helpStyle.Render("System: ")
		default:
			role = userStyle.Render("You: ")
		}
		width := m.transcript.Width - lipgloss.Width(role) - 2
		if width < 10 {
			width = 10
		}
		wrapped := lipgloss.NewStyle().Width(width).Render(msg.Content)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrapped) + "\n")
	}
	m.transcript.SetContent(b.String())
	m.transcript.GotoBottom()
}

// reportsView renders the stored-report list with its key bindings.
func (m *model) reportsView() string {
	var b strings.Builder
	b.WriteString(m.reportList.View())
	if m.statusLine != "" {
		b.WriteString("\n" + m.statusLine)
	}
	b.WriteString("\n" + helpStyle.Render(" (r refresh, s save, x delete, tab for dashboard, esc to quit)"))
	return lipgloss.NewStyle().Margin(1, 2).Render(b.String())
}

// reportListTitle builds the reports list title with the total count.
func reportListTitle(total int) string {
	if total == 1 {
		return "Stored Reports (1 report)"
	}
	return fmt.Sprintf("Stored Reports (%d reports)", total)
}
