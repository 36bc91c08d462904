// cli/cli.go
// Package cli provides the interactive dashboard for the nexus application.
package cli

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mwhite/nexus/internal/agents"
	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/appconfig"
	"github.com/mwhite/nexus/internal/conversation"
	"github.com/mwhite/nexus/internal/pipeline"
	"github.com/mwhite/nexus/internal/reports"
)

// Config represents the shared application configuration for the CLI.
type Config = appconfig.Config

// viewState represents the current view or screen of the application.
type viewState int

const (
	// viewForm is the state where the user enters the company pair and domain.
	viewForm viewState = iota
	// viewDashboard is the state showing agent statuses and the transcript.
	viewDashboard
	// viewReports is the state listing stored reports.
	viewReports
)

// focusTarget identifies which form control currently receives keystrokes.
type focusTarget int

const (
	focusCompany focusTarget = iota
	focusPartner
	focusDomain
)

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx         context.Context
	config      *Config
	ctrl        *pipeline.Controller
	agentStore  *agents.Store
	convStore   *conversation.Store
	reportStore *reports.Store

	state         viewState
	focus         focusTarget
	companyInput  textinput.Model
	partnerInput  textinput.Model
	domainList    list.Model
	reportList    list.Model
	transcript    viewport.Model
	spinner       spinner.Model
	isRunning     bool
	statusLine    string
	width, height int
	runStartTime  time.Time
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *Config, ctrl *pipeline.Controller, agentStore *agents.Store, convStore *conversation.Store, reportStore *reports.Store) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	company := textinput.New()
	company.Placeholder = "Company name"
	company.Prompt = "Company: "
	company.CharLimit = 100
	company.Focus()

	partner := textinput.New()
	partner.Placeholder = "Partner company"
	partner.Prompt = "Partner: "
	partner.CharLimit = 100

	domainItems := make([]list.Item, len(api.AvailableDomains))
	for i, d := range api.AvailableDomains {
		domainItems[i] = domainItem(d)
	}
	domainDelegate := list.NewDefaultDelegate()
	domainDelegate.ShowDescription = false
	domainList := list.New(domainItems, domainDelegate, 0, 0)
	domainList.Title = "Select a Domain"
	domainList.SetShowHelp(false)

	vp := viewport.New(100, 5)

	return &model{
		ctx:          ctx,
		config:       cfg,
		ctrl:         ctrl,
		agentStore:   agentStore,
		convStore:    convStore,
		reportStore:  reportStore,
		state:        viewForm,
		spinner:      s,
		companyInput: company,
		partnerInput: partner,
		domainList:   domainList,
		reportList:   list.New(nil, list.NewDefaultDelegate(), 0, 0),
		transcript:   vp,
	}
}

// domainItem is a selectable collaboration domain in the domain list.
type domainItem string

// Title returns the domain name.
func (d domainItem) Title() string { return string(d) }

// Description returns an empty description; domains are self-explanatory.
func (d domainItem) Description() string { return "" }

// FilterValue returns the domain name, used for filtering.
func (d domainItem) FilterValue() string { return string(d) }

// reportItem is a selectable stored report in the reports list.
type reportItem struct {
	summary api.ReportSummary
}

// Title returns the company pair the report covers.
func (r reportItem) Title() string {
	return r.summary.CompanyName + " + " + r.summary.PartnerCompany
}

// Description returns the domain, status, and creation time of the report.
func (r reportItem) Description() string {
	return r.summary.Domain + " · " + string(r.summary.Status) + " · " + r.summary.CreatedAt.Format("2006-01-02 15:04")
}

// FilterValue returns the company pair, used for filtering.
func (r reportItem) FilterValue() string { return r.Title() }

// runDoneMsg is a message sent when the pipeline run has settled.
type runDoneMsg struct{}

// reportsLoadedMsg is a message sent when the report listing has been fetched.
type reportsLoadedMsg struct{}

// reportActionMsg is a message sent after a delete or download completes.
type reportActionMsg struct{ status string }

// tickMsg is a message sent at regular intervals to re-read the store
// snapshots while a run or cooldown is in flight.
type tickMsg time.Time

// runPipelineCmd creates a Bubble Tea command that drives the full pipeline
// for the given request. The controller updates the agent and conversation
// stores as it goes; the UI observes those through tick polling.
func runPipelineCmd(ctx context.Context, ctrl *pipeline.Controller, req api.PipelineRequest) tea.Cmd {
	return func() tea.Msg {
		ctrl.Run(ctx, req)
		return runDoneMsg{}
	}
}

// fetchReportsCmd creates a Bubble Tea command that refreshes the report
// listing cache.
func fetchReportsCmd(ctx context.Context, store *reports.Store) tea.Cmd {
	return func() tea.Msg {
		store.Refresh(ctx)
		return reportsLoadedMsg{}
	}
}

// deleteReportCmd creates a Bubble Tea command that deletes a report and
// refreshes the listing.
func deleteReportCmd(ctx context.Context, store *reports.Store, reportID string) tea.Cmd {
	return func() tea.Msg {
		if !store.DeleteReport(ctx, reportID) {
			return reportActionMsg{status: "Delete failed: " + reportID}
		}
		return reportActionMsg{status: "Deleted " + reportID}
	}
}

// downloadReportCmd creates a Bubble Tea command that saves a report to disk.
func downloadReportCmd(ctx context.Context, store *reports.Store, reportID string) tea.Cmd {
	return func() tea.Msg {
		path, err := store.DownloadReport(ctx, reportID, "")
		if err != nil {
			return reportActionMsg{status: "Download failed: " + err.Error()}
		}
		return reportActionMsg{status: "Saved " + path}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*250, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the
// spinner animation and, when configured, the initial report fetch.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.config.AutoFetch {
		cmds = append(cmds, fetchReportsCmd(m.ctx, m.reportStore))
	}
	return tea.Batch(cmds...)
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			switch m.state {
			case viewForm:
				m.cycleFocus()
				return m, nil
			case viewDashboard:
				m.state = viewReports
				return m, fetchReportsCmd(m.ctx, m.reportStore)
			case viewReports:
				m.state = viewDashboard
				return m, nil
			}
		case "n":
			if m.state == viewDashboard && !m.isRunning {
				m.state = viewForm
				m.statusLine = ""
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.domainList.SetSize(msg.Width-4, msg.Height-12)
		m.reportList.SetSize(msg.Width-2, msg.Height-6)
		m.transcript.Width = msg.Width - 2
		m.transcript.Height = msg.Height - cardRowHeight - 8

	case runDoneMsg:
		m.isRunning = false
		snap := m.ctrl.Snapshot()
		if snap.State == pipeline.StateFailed {
			m.statusLine = "Run failed: " + snap.Err
		} else {
			m.statusLine = "Run complete"
			cmds = append(cmds, fetchReportsCmd(m.ctx, m.reportStore))
		}
		m.refreshTranscript()
		// keep ticking so the cooldown sweep is rendered
		cmds = append(cmds, tickCmd())
		return m, tea.Batch(cmds...)

	case reportsLoadedMsg:
		m.syncReportList()
		return m, nil

	case reportActionMsg:
		m.statusLine = msg.status
		return m, fetchReportsCmd(m.ctx, m.reportStore)

	case tickMsg:
		m.refreshTranscript()
		if m.isRunning || m.agentsBusy() {
			return m, tickCmd()
		}
		return m, nil
	}

	switch m.state {
	case viewForm:
		cmds = append(cmds, m.updateForm(msg))
	case viewDashboard:
		m.transcript, cmd = m.transcript.Update(msg)
		cmds = append(cmds, cmd)
	case viewReports:
		cmds = append(cmds, m.updateReports(msg))
	}

	if m.isRunning {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// cycleFocus moves keyboard focus between the form controls.
func (m *model) cycleFocus() {
	switch m.focus {
	case focusCompany:
		m.focus = focusPartner
		m.companyInput.Blur()
		m.partnerInput.Focus()
	case focusPartner:
		m.focus = focusDomain
		m.partnerInput.Blur()
	case focusDomain:
		m.focus = focusCompany
		m.companyInput.Focus()
	}
}

// updateForm routes messages to the focused form control and starts a run on
// enter once both company fields are filled.
func (m *model) updateForm(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.focus {
	case focusCompany:
		m.companyInput, cmd = m.companyInput.Update(msg)
	case focusPartner:
		m.partnerInput, cmd = m.partnerInput.Update(msg)
	case focusDomain:
		m.domainList, cmd = m.domainList.Update(msg)
	}
	cmds = append(cmds, cmd)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && m.focus == focusDomain {
		company := strings.TrimSpace(m.companyInput.Value())
		partner := strings.TrimSpace(m.partnerInput.Value())
		domain := "XR"
		if d, ok := m.domainList.SelectedItem().(domainItem); ok {
			domain = string(d)
		}
		if company == "" || partner == "" {
			m.statusLine = "Both company names are required"
			return tea.Batch(cmds...)
		}

		req := api.PipelineRequest{CompanyName: company, PartnerCompany: partner, Domain: domain}
		if err := api.ValidatePipelineRequest(req); err != nil {
			m.statusLine = err.Error()
			return tea.Batch(cmds...)
		}

		m.state = viewDashboard
		m.isRunning = true
		m.statusLine = ""
		m.runStartTime = time.Now()
		cmds = append(cmds, m.spinner.Tick, runPipelineCmd(m.ctx, m.ctrl, req), tickCmd())
	}

	return tea.Batch(cmds...)
}

// updateReports routes messages to the report list and handles the per-report
// key bindings.
func (m *model) updateReports(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.reportList, cmd = m.reportList.Update(msg)
	cmds = append(cmds, cmd)

	if msg, ok := msg.(tea.KeyMsg); ok {
		selected, hasSelection := m.reportList.SelectedItem().(reportItem)
		switch msg.String() {
		case "r":
			cmds = append(cmds, fetchReportsCmd(m.ctx, m.reportStore))
		case "x":
			if hasSelection {
				cmds = append(cmds, deleteReportCmd(m.ctx, m.reportStore, selected.summary.ReportID))
			}
		case "s":
			if hasSelection {
				cmds = append(cmds, downloadReportCmd(m.ctx, m.reportStore, selected.summary.ReportID))
			}
		}
	}

	return tea.Batch(cmds...)
}

// agentsBusy reports whether any agent is still pending or running, which
// includes the cooldown window after a run settles.
func (m *model) agentsBusy() bool {
	for _, a := range m.agentStore.Agents() {
		if a.Status == agents.StatusRunning || a.Status == agents.StatusPending || a.Status == agents.StatusCompleted || a.Status == agents.StatusError || a.Status == agents.StatusFailed {
			return true
		}
	}
	return false
}

// syncReportList rebuilds the report list items from the store snapshot.
func (m *model) syncReportList() {
	snap := m.reportStore.Snapshot()
	if snap.Err != "" {
		m.statusLine = "Reports: " + snap.Err
	}
	var items []list.Item
	total := 0
	if snap.Reports != nil {
		total = snap.Reports.Total
		for _, r := range snap.Reports.Reports {
			items = append(items, reportItem{summary: r})
		}
	}
	m.reportList.SetItems(items)
	m.reportList.Title = reportListTitle(total)
}

// Start initializes and runs the interactive dashboard.
func Start(ctx context.Context, cfg *appconfig.Config) {
	f, err := tea.LogToFile("nexus.log", "debug")
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	defer f.Close()

	if cfg == nil {
		log.Fatalf("Failed to start: configuration is not loaded")
	}

	client := api.New(cfg)
	agentStore := agents.GetInstance()
	convStore := conversation.GetInstance()
	ctrl := pipeline.New(client, agentStore, convStore, cfg.Cooldown())
	reportStore := reports.NewStore(client, cfg.DownloadDir)

	m := initialModel(ctx, cfg, ctrl, agentStore, convStore, reportStore)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
