package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/config"
	"github.com/mariusweiss/netquest/internal/state"
)

type view int

const (
	viewDashboard view = iota
	viewQuest
	viewCoach
)

type AppModel struct {
	client api.Ops
	store  *state.Store
	layout config.Layout

	activeView view
	dashboard  dashboardModel
	quest      questModel
	coach      coachModel

	width  int
	height int
}

func NewApp(client api.Ops, store *state.Store, cfg config.Config) AppModel {
	s := NewStyles(cfg.Colors)
	return AppModel{
		client:    client,
		store:     store,
		layout:    cfg.Layout,
		dashboard: newDashboard(s, cfg.Layout, client, store, cfg.Player.Username),
		quest:     newQuest(s, client),
		coach:     newCoach(s, client),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboard.width = msg.Width
		m.dashboard.height = msg.Height
		m.quest.width = msg.Width
		m.coach.width = msg.Width
		panelWidth := m.panelWidth()
		m.quest.draft.SetWidth(panelWidth - 4)
		m.coach.feed.Width = panelWidth - 4
		m.coach.feed.Height = feedHeight(msg.Height)
		m.coach.input.Width = panelWidth - 8
		m.coach.refreshFeed()
		return m, nil

	// Authoritative-state results always reach the dashboard, whichever
	// view is up: a refresh issued by one action and one issued by a
	// concurrent action both land, and the later completion wins.
	case stateLoadedMsg, leaderboardLoadedMsg, taskCompletedMsg,
		progressSavedMsg, progressLoadedMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd

	// Quest results are seq-guarded inside the quest model, so stale
	// sessions never resurrect.
	case scenarioMsg, scoredMsg, draftRewrittenMsg:
		var cmd tea.Cmd
		m.quest, cmd = m.quest.Update(msg)
		return m, cmd

	case coachReplyMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.coach, cmd = m.coach.Update(msg)
		return m, cmd

	case questClosedMsg, coachClosedMsg:
		m.activeView = viewDashboard
		return m, nil
	}

	switch m.activeView {
	case viewDashboard:
		return m.updateDashboard(msg)
	case viewQuest:
		var cmd tea.Cmd
		m.quest, cmd = m.quest.Update(msg)
		return m, cmd
	case viewCoach:
		var cmd tea.Cmd
		m.coach, cmd = m.coach.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m AppModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			return m.openQuest(QuestOutreach)
		case "2":
			return m.openQuest(QuestCoffee)
		case "3":
			return m.openQuest(QuestFollowup)
		case "4":
			return m.openQuest(QuestReciprocity)
		case "c":
			m.activeView = viewCoach
			var cmd tea.Cmd
			m.coach, cmd = m.coach.open()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

func (m AppModel) openQuest(t QuestType) (tea.Model, tea.Cmd) {
	m.activeView = viewQuest
	var cmd tea.Cmd
	m.quest, cmd = m.quest.open(t)
	return m, cmd
}

func (m AppModel) View() string {
	switch m.activeView {
	case viewQuest:
		return m.viewSideBySide(m.quest.ViewContent())
	case viewCoach:
		return m.viewSideBySide(m.coach.ViewContent())
	default:
		return m.dashboard.View()
	}
}

// feedHeight leaves room for the coach panel's chrome (title, typing
// indicator, input, help) and keeps the feed usable on short terminals.
func feedHeight(windowHeight int) int {
	h := windowHeight - 10
	if h < 4 {
		h = 4
	}
	return h
}

func (m AppModel) panelWidth() int {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	dashPct := m.layout.DashboardWidth
	if dashPct <= 0 || dashPct >= 100 {
		dashPct = 55
	}
	return maxWidth - maxWidth*dashPct/100 - 1
}

func (m AppModel) viewSideBySide(rightPanel string) string {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	panelWidth := m.panelWidth()
	dashWidth := maxWidth - panelWidth - 1

	dashContent := lipgloss.NewStyle().Width(dashWidth).Render(m.dashboard.ViewContent())
	panelContent := lipgloss.NewStyle().Width(panelWidth).Render(rightPanel)

	// Vertical separator matching the taller panel.
	dashHeight := lipgloss.Height(dashContent)
	panelHeight := lipgloss.Height(panelContent)
	sepHeight := dashHeight
	if panelHeight > sepHeight {
		sepHeight = panelHeight
	}
	sepLines := make([]string, sepHeight)
	for i := range sepLines {
		sepLines[i] = "│"
	}
	sep := m.dashboard.styles.Separator.Render(strings.Join(sepLines, "\n"))

	joined := lipgloss.JoinHorizontal(lipgloss.Top, dashContent, sep, panelContent)

	return m.dashboard.styles.Border.Width(maxWidth).Render(joined)
}
