package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/game"
)

// QuestType selects which practice scenario the server generates.
type QuestType string

const (
	QuestOutreach    QuestType = "outreach"
	QuestCoffee      QuestType = "coffee"
	QuestFollowup    QuestType = "followup"
	QuestReciprocity QuestType = "reciprocity"
)

func questTitle(t QuestType) string {
	switch t {
	case QuestOutreach:
		return "Outreach Message"
	case QuestCoffee:
		return "Coffee Chat Questions"
	case QuestFollowup:
		return "Follow-up Timing"
	case QuestReciprocity:
		return "Give Something Back"
	}
	return "Quest"
}

type questStatus int

const (
	questIdle questStatus = iota
	questLoading
	questActive
	questScoring
	questClosed
)

func (s questStatus) String() string {
	switch s {
	case questIdle:
		return "idle"
	case questLoading:
		return "loading"
	case questActive:
		return "active"
	case questScoring:
		return "scoring"
	case questClosed:
		return "closed"
	}
	return "unknown"
}

// Legal session transitions. Close is reachable from every live state;
// everything else moves strictly forward.
var questTransitions = map[questStatus][]questStatus{
	questIdle:    {questLoading},
	questLoading: {questActive, questClosed},
	questActive:  {questScoring, questClosed},
	questScoring: {questActive, questClosed},
	questClosed:  {questIdle},
}

func canTransition(from, to questStatus) bool {
	for _, next := range questTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Fallback texts. Scenario generation is enrichment: when it fails the
// session still goes Active with the generic prompt so the user can proceed.
const (
	placeholderPrompt = "Drafting a scenario for you…"
	fallbackPrompt    = "You're a student reaching out to a mentor about their recent project."
	scoreFailedText   = "Could not score your response — give it another try."
)

// followupChoice pairs the value the server's scorer credits with the label
// the pill shows. The value is sent verbatim; the scorer matches it against a
// fixed lowercase list, so these must stay the exact accepted strings.
type followupChoice struct {
	value string
	label string
}

// Mutually exclusive follow-up timing options. Only meaningful for
// QuestFollowup; selecting one deselects the rest, and scoring with none
// selected is allowed.
var followupChoices = []followupChoice{
	{value: "monday", label: "Monday"},
	{value: "tuesday", label: "Tuesday"},
	{value: "48h", label: "Within 48h"},
	{value: "2 days", label: "In 2 days"},
	{value: "early next week", label: "Early next week"},
}

// questSession is the state of one scenario → draft → score exchange. At
// most one is live; opening a quest replaces the previous session outright.
type questSession struct {
	questType      QuestType
	prompt         string
	selectedChoice string
	feedback       []string
	status         questStatus
}

// questClosedMsg tells the app to return to the dashboard.
type questClosedMsg struct{}

type questModel struct {
	client api.Ops

	// seq increments on every open; results stamped with an older seq
	// belong to a discarded session and are dropped.
	seq     int
	session questSession

	draft        textarea.Model
	pillCursor   int
	pillsFocused bool
	err          string

	styles Styles
	width  int
}

func newQuest(s Styles, client api.Ops) questModel {
	ta := textarea.New()
	ta.Placeholder = "Write your response here…"
	ta.SetHeight(6)
	ta.CharLimit = 2000
	return questModel{
		client: client,
		draft:  ta,
		styles: s,
	}
}

// open starts a fresh session of the given type. The modal becomes visible
// immediately with a placeholder prompt; the scenario arrives (or degrades
// to the fallback) asynchronously.
func (m questModel) open(t QuestType) (questModel, tea.Cmd) {
	m.seq++
	m.session = questSession{questType: t, prompt: placeholderPrompt}
	m.move(questLoading)
	m.draft.Reset()
	m.draft.Focus()
	m.pillCursor = 0
	m.pillsFocused = false
	m.err = ""
	return m, tea.Batch(startQuestCmd(m.client, m.seq, t), textarea.Blink)
}

// move applies a transition if it is legal; illegal moves are logged and
// dropped rather than applied.
func (m *questModel) move(to questStatus) bool {
	if !canTransition(m.session.status, to) {
		slog.Warn("illegal quest transition dropped",
			"from", m.session.status.String(), "to", to.String())
		return false
	}
	m.session.status = to
	return true
}

func (m questModel) Update(msg tea.Msg) (questModel, tea.Cmd) {
	switch msg := msg.(type) {
	case scenarioMsg:
		if msg.seq != m.seq || m.session.status != questLoading {
			return m, nil
		}
		prompt := game.Sanitize(msg.prompt)
		if msg.err != nil || prompt == "" {
			if msg.err != nil {
				slog.Warn("scenario fetch failed, using fallback prompt", "error", msg.err)
			}
			prompt = fallbackPrompt
		}
		m.session.prompt = prompt
		m.move(questActive)
		return m, nil

	case scoredMsg:
		if msg.seq != m.seq || m.session.status != questScoring {
			return m, nil
		}
		m.move(questActive)
		if msg.err != nil {
			slog.Error("quest scoring failed", "error", msg.err)
			m.err = scoreFailedText
			return m, nil
		}
		m.session.feedback = append(m.session.feedback,
			fmt.Sprintf("+%d XP earned", msg.result.Earned))
		if len(msg.result.Tips) > 0 {
			m.session.feedback = append(m.session.feedback,
				"Tip: "+game.Sanitize(msg.result.Tips[0]))
		}
		// Points changed server-side; re-sync state and standings.
		return m, tea.Batch(fetchStateCmd(m.client), fetchLeaderboardCmd(m.client))

	case draftRewrittenMsg:
		if msg.seq != m.seq || m.session.status != questActive {
			return m, nil
		}
		if msg.err != nil || strings.TrimSpace(msg.text) == "" {
			// Degraded mode: keep the user's own words.
			if msg.err != nil {
				slog.Warn("draft rewrite failed, keeping original", "error", msg.err)
			}
			return m, nil
		}
		m.draft.SetValue(game.Sanitize(msg.text))
		return m, nil

	case tea.KeyMsg:
		m.err = ""

		switch msg.String() {
		case "esc":
			return m.close()
		case "tab":
			if m.session.questType == QuestFollowup && m.session.status == questActive {
				m.pillsFocused = !m.pillsFocused
				if m.pillsFocused {
					m.draft.Blur()
				} else {
					m.draft.Focus()
					return m, textarea.Blink
				}
			}
			return m, nil
		case "ctrl+s":
			return m.score()
		case "ctrl+r":
			return m.polish()
		}

		if m.pillsFocused {
			return m.updatePills(msg), nil
		}
		var cmd tea.Cmd
		m.draft, cmd = m.draft.Update(msg)
		return m, cmd
	}

	return m, nil
}

// close discards the session from any live state and returns to Idle.
func (m questModel) close() (questModel, tea.Cmd) {
	if m.session.status == questIdle {
		return m, nil
	}
	m.move(questClosed)
	m.session = questSession{}
	m.draft.Reset()
	m.err = ""
	return m, func() tea.Msg { return questClosedMsg{} }
}

// score submits the draft. A no-op unless the session is Active, so a
// stray trigger while Idle or already Scoring never advances the machine.
func (m questModel) score() (questModel, tea.Cmd) {
	if m.session.status != questActive {
		return m, nil
	}
	m.move(questScoring)
	return m, scoreQuestCmd(m.client, m.seq, m.session.questType,
		m.draft.Value(), m.session.selectedChoice)
}

// polish sends the draft to the server for a rewrite. Failure silently
// keeps the original text.
func (m questModel) polish() (questModel, tea.Cmd) {
	if m.session.status != questActive || strings.TrimSpace(m.draft.Value()) == "" {
		return m, nil
	}
	return m, rewriteDraftCmd(m.client, m.seq, m.draft.Value())
}

func (m questModel) updatePills(msg tea.KeyMsg) questModel {
	switch msg.String() {
	case "left", "h":
		if m.pillCursor > 0 {
			m.pillCursor--
		}
	case "right", "l":
		if m.pillCursor < len(followupChoices)-1 {
			m.pillCursor++
		}
	case "enter", " ":
		choice := followupChoices[m.pillCursor].value
		if m.session.selectedChoice == choice {
			m.session.selectedChoice = ""
		} else {
			m.session.selectedChoice = choice
		}
	}
	return m
}

func (m questModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.ModalTitle.Render("Quest: " + questTitle(m.session.questType)))
	b.WriteString("\n")

	switch m.session.status {
	case questLoading:
		b.WriteString(m.styles.Pending.Render("  " + placeholderPrompt))
		b.WriteString("\n")
	case questActive, questScoring:
		b.WriteString(m.styles.ModalActive.Render("  Scenario"))
		b.WriteString("\n")
		b.WriteString("  " + m.session.prompt)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.draft.View())
	b.WriteString("\n")

	if m.session.questType == QuestFollowup {
		b.WriteString("\n")
		b.WriteString(m.styles.ModalActive.Render("  When would you follow up?"))
		b.WriteString("\n  ")
		for i, choice := range followupChoices {
			label := choice.label
			if m.pillsFocused && i == m.pillCursor {
				label = "[" + label + "]"
			}
			if choice.value == m.session.selectedChoice {
				b.WriteString(m.styles.PillSelected.Render(label))
			} else {
				b.WriteString(m.styles.Pill.Render(label))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if m.session.status == questScoring {
		b.WriteString("\n")
		b.WriteString(m.styles.Pending.Render("  Scoring your response…"))
		b.WriteString("\n")
	}

	for _, line := range m.session.feedback {
		b.WriteString("\n")
		b.WriteString(m.styles.Highlight.Render("  " + line))
	}
	if len(m.session.feedback) > 0 {
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("  " + m.err))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "  ctrl+s: score │ ctrl+r: polish draft │ esc: close"
	if m.session.questType == QuestFollowup {
		help = "  tab: timing options │" + help
	}
	b.WriteString(m.styles.Help.Render(help))

	return b.String()
}
