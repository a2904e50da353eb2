package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/config"
	"github.com/mariusweiss/netquest/internal/game"
	"github.com/mariusweiss/netquest/internal/state"
)

const genericCompleteErr = "Could not complete the task — try again."
const genericFetchErr = "Could not reach the server — shown progress may be stale."

type notification struct {
	text  string
	time  time.Time
	style lipgloss.Style
}

type dashboardModel struct {
	client   api.Ops
	store    *state.Store
	username string

	rows        []state.LeaderboardRow
	boardLoaded bool

	cursor        int
	inflight      map[string]bool // task ids with a completion request pending
	shownHints    map[string]bool
	notifications []notification
	err           string

	bar    progress.Model
	styles Styles
	layout config.Layout
	width  int
	height int
}

func newDashboard(s Styles, layout config.Layout, client api.Ops, store *state.Store, username string) dashboardModel {
	barWidth := layout.ProgressWidth
	if barWidth <= 0 {
		barWidth = 30
	}
	return dashboardModel{
		client:     client,
		store:      store,
		username:   username,
		inflight:   make(map[string]bool),
		shownHints: make(map[string]bool),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		),
		styles: s,
		layout: layout,
	}
}

// Init refreshes state and leaderboard concurrently on startup.
func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(fetchStateCmd(m.client), fetchLeaderboardCmd(m.client))
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateLoadedMsg:
		if msg.err != nil {
			slog.Error("state fetch failed", "error", msg.err)
			m.err = genericFetchErr
			return m, nil
		}
		m.store.Replace(msg.state)
		m.clampCursor()
		return m, nil

	case leaderboardLoadedMsg:
		if msg.err != nil {
			slog.Error("leaderboard fetch failed", "error", msg.err)
			m.notify("Leaderboard unavailable", m.styles.Notification)
			return m, nil
		}
		m.rows = msg.rows
		m.boardLoaded = true
		return m, nil

	case taskCompletedMsg:
		delete(m.inflight, msg.taskID)
		if msg.err != nil {
			slog.Error("task completion failed", "task", msg.taskID, "error", msg.err)
			m.err = completionError(msg.err)
			return m, nil
		}
		m.store.Replace(msg.state)
		m.clampCursor()
		m.notify("Task completed — nice work!", m.styles.Highlight)
		// Points changed, so standings may have too.
		return m, fetchLeaderboardCmd(m.client)

	case progressSavedMsg:
		if msg.err != nil {
			slog.Error("save progress failed", "error", msg.err)
		}
		m.notify("Progress saved", m.styles.Notification)
		return m, nil

	case progressLoadedMsg:
		if msg.err != nil {
			slog.Error("load progress failed", "error", msg.err)
			m.err = genericFetchErr
			return m, nil
		}
		m.store.Replace(msg.state)
		m.clampCursor()
		m.notify("Progress loaded", m.styles.Notification)
		return m, nil

	case tea.KeyMsg:
		m.err = ""
		tasks := m.taskRows()

		switch msg.String() {
		case "j", "down":
			if m.cursor < len(tasks)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if len(tasks) == 0 || m.cursor >= len(tasks) {
				return m, nil
			}
			task := tasks[m.cursor]
			if task.Completed {
				return m, nil
			}
			if m.inflight[task.ID] {
				m.notify("Completion already in flight for that task", m.styles.Notification)
				return m, nil
			}
			m.inflight[task.ID] = true
			return m, completeTaskCmd(m.client, task.ID)
		case "h":
			if len(tasks) > 0 && m.cursor < len(tasks) {
				task := tasks[m.cursor]
				if task.Hint != "" {
					m.shownHints[task.ID] = !m.shownHints[task.ID]
				}
			}
		case "r":
			return m, tea.Batch(fetchStateCmd(m.client), fetchLeaderboardCmd(m.client))
		case "S":
			return m, saveProgressCmd(m.client)
		case "L":
			return m, loadProgressCmd(m.client)
		}
	}

	return m, nil
}

// completionError prefers the server-supplied message when the mutation was
// rejected with one; transport failures get the generic text.
func completionError(err error) string {
	var se *api.ServerError
	if errors.As(err, &se) && se.Message != "" {
		return game.Sanitize(se.Message)
	}
	return genericCompleteErr
}

// taskRows flattens the view model's daily and weekly lists into the single
// cursor-addressable sequence the key handlers operate on.
func (m dashboardModel) taskRows() []game.TaskRow {
	vm := game.BuildViewModel(m.store.Snapshot())
	rows := make([]game.TaskRow, 0, len(vm.Daily)+len(vm.Weekly))
	rows = append(rows, vm.Daily...)
	rows = append(rows, vm.Weekly...)
	return rows
}

func (m *dashboardModel) clampCursor() {
	if n := len(m.taskRows()); m.cursor >= n && m.cursor > 0 {
		m.cursor = n - 1
	}
}

func (m *dashboardModel) notify(text string, style lipgloss.Style) {
	m.notifications = append(m.notifications, notification{
		text:  text,
		time:  time.Now(),
		style: style,
	})
	if len(m.notifications) > 10 {
		m.notifications = m.notifications[len(m.notifications)-10:]
	}
}

func (m dashboardModel) ViewContent() string {
	var b strings.Builder
	vm := game.BuildViewModel(m.store.Snapshot())

	b.WriteString(m.styles.Title.Render("NETQUEST — outreach training"))
	b.WriteString(m.styles.ModalDim.Render("  " + m.username))
	b.WriteString("\n\n")

	// Metrics
	level := vm.Level
	if level == "" {
		level = "—"
	}
	metrics := fmt.Sprintf("%s XP   %s day streak   %s",
		m.styles.Metric.Render(fmt.Sprintf("%d", vm.Points)),
		m.styles.Streak.Render(fmt.Sprintf("%d", vm.Streak)),
		m.styles.Header.Render(level),
	)
	b.WriteString("  " + metrics)
	b.WriteString("\n\n")

	// Level progress
	b.WriteString("  " + m.bar.ViewAs(float64(vm.ProgressPct)/100))
	b.WriteString(m.styles.ModalDim.Render(fmt.Sprintf("  %d%% to next level", vm.ProgressPct)))
	b.WriteString("\n\n")

	// Badges
	if len(vm.BadgeLabels) > 0 {
		b.WriteString(m.styles.Header.Render("  Badges"))
		b.WriteString("  ")
		b.WriteString(m.styles.Badge.Render(strings.Join(vm.BadgeLabels, "   ")))
	} else {
		b.WriteString(m.styles.ModalDim.Render("  No badges yet — complete a task to earn your first."))
	}
	b.WriteString("\n\n")

	// Task lists
	idx := 0
	m.renderTaskSection(&b, "Daily Tasks", vm.Daily, &idx)
	b.WriteString("\n")
	m.renderTaskSection(&b, "Weekly Tasks", vm.Weekly, &idx)
	b.WriteString("\n")

	// Leaderboard
	m.renderLeaderboard(&b)

	// Notifications (newest first)
	if len(m.notifications) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Header.Render("  ── Notifications ──"))
		b.WriteString("\n")
		for i := len(m.notifications) - 1; i >= 0; i-- {
			n := m.notifications[i]
			line := fmt.Sprintf("  %s %s", n.time.Format("15:04"), n.text)
			b.WriteString(n.style.Render(line))
			b.WriteString("\n")
		}
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("  j/k: move │ enter: complete │ h: hint │ 1-4: quests │ c: coach │ r: refresh │ S: save │ L: load │ q: quit"))

	return b.String()
}

func (m dashboardModel) renderTaskSection(b *strings.Builder, title string, rows []game.TaskRow, idx *int) {
	b.WriteString(m.styles.Header.Render("  " + title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(m.styles.ModalDim.Render("    nothing assigned"))
		b.WriteString("\n")
		return
	}
	for _, task := range rows {
		var line string
		switch {
		case task.Completed:
			line = m.styles.TaskDone.Render(fmt.Sprintf("    ✔ %s", task.Description))
		case m.inflight[task.ID]:
			line = m.styles.Pending.Render(fmt.Sprintf("    … %s (+%d XP)", task.Description, task.Points))
		default:
			line = m.styles.TaskOpen.Render(fmt.Sprintf("    ▢ %s (+%d XP)", task.Description, task.Points))
		}
		if *idx == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if m.shownHints[task.ID] && task.Hint != "" {
			b.WriteString(m.styles.Hint.Render("      hint: " + task.Hint))
			b.WriteString("\n")
		}
		*idx++
	}
}

func (m dashboardModel) renderLeaderboard(b *strings.Builder) {
	b.WriteString(m.styles.Header.Render("  Leaderboard"))
	b.WriteString("\n")
	if len(m.rows) == 0 {
		placeholder := "    no standings yet"
		if !m.boardLoaded {
			placeholder = "    loading standings…"
		}
		b.WriteString(m.styles.ModalDim.Render(placeholder))
		b.WriteString("\n")
		return
	}
	// Server order is trusted as-is; rank arrives precomputed.
	for _, row := range m.rows {
		line := fmt.Sprintf("    %2d. %-18s %6d XP", row.Rank, game.Sanitize(row.Username), row.Points)
		if row.Username == m.username {
			line = m.styles.Highlight.Render(line + "  ← you")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func (m dashboardModel) View() string {
	maxWidth := m.width - 4
	if maxWidth < 40 {
		maxWidth = 80
	}
	return m.styles.Border.Width(maxWidth).Render(m.ViewContent())
}
