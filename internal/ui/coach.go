package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/game"
)

type chatRole string

const (
	roleUser      chatRole = "user"
	roleAssistant chatRole = "assistant"
)

// chatMessage is one transcript entry. The transcript is append-only and
// never reordered within a session.
type chatMessage struct {
	role chatRole
	text string
}

// Degraded-content fallback: appended whenever a reply is absent or the
// request failed, so every send yields exactly one assistant message.
const coachApology = "The coach is busy — try again shortly. Tip: include a concrete detail and a 15-minute ask."

// coachClosedMsg tells the app to return to the dashboard.
type coachClosedMsg struct{}

type coachModel struct {
	client api.Ops

	transcript []chatMessage
	input      textinput.Model
	spin       spinner.Model
	feed       viewport.Model

	// Each send gets a sequence number; a reply is only appended while its
	// send is still pending, so duplicates or unknown results are dropped.
	nextSeq int
	pending map[int]bool

	styles Styles
	width  int
}

func newCoach(s Styles, client api.Ops) coachModel {
	ti := textinput.New()
	ti.Placeholder = "Ask the coach anything…"
	ti.CharLimit = 500

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Pending))

	return coachModel{
		client:  client,
		input:   ti,
		spin:    sp,
		feed:    viewport.New(64, 12),
		nextSeq: 1,
		pending: make(map[int]bool),
		styles:  s,
	}
}

func (m coachModel) open() (coachModel, tea.Cmd) {
	m.input.Focus()
	return m, textinput.Blink
}

func (m coachModel) Update(msg tea.Msg) (coachModel, tea.Cmd) {
	switch msg := msg.(type) {
	case coachReplyMsg:
		if !m.pending[msg.seq] {
			return m, nil
		}
		delete(m.pending, msg.seq)
		text := game.Sanitize(msg.reply)
		if msg.err != nil || text == "" {
			if msg.err != nil {
				slog.Warn("coach chat failed, appending apology", "error", msg.err)
			}
			text = coachApology
		}
		m.transcript = append(m.transcript, chatMessage{role: roleAssistant, text: text})
		m.refreshFeed()
		return m, nil

	case spinner.TickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return coachClosedMsg{} }
		case "enter":
			return m.send()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

// send appends the user's message to the transcript synchronously, before
// the request command exists, so it is always visible first.
func (m coachModel) send() (coachModel, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	m.transcript = append(m.transcript, chatMessage{role: roleUser, text: game.Sanitize(text)})
	m.input.Reset()
	m.refreshFeed()

	seq := m.nextSeq
	m.nextSeq++
	m.pending[seq] = true
	return m, tea.Batch(coachChatCmd(m.client, seq, text), m.spin.Tick)
}

func (m *coachModel) refreshFeed() {
	var b strings.Builder
	for _, msg := range m.transcript {
		switch msg.role {
		case roleUser:
			b.WriteString(m.styles.CoachUser.Render("You: "))
		case roleAssistant:
			b.WriteString(m.styles.CoachReply.Render("Coach: "))
		}
		b.WriteString(msg.text)
		b.WriteString("\n")
	}
	m.feed.SetContent(lipgloss.NewStyle().Width(m.feed.Width).Render(b.String()))
	m.feed.GotoBottom()
}

func (m coachModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.ModalTitle.Render("Networking Coach"))
	b.WriteString("\n")

	if len(m.transcript) == 0 {
		b.WriteString(m.styles.ModalDim.Render("  Ask about pitches, outreach, follow-ups — anything networking."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.feed.View())
		b.WriteString("\n")
	}

	if len(m.pending) > 0 {
		b.WriteString(m.spin.View())
		b.WriteString(m.styles.Pending.Render(" coach is typing…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("  enter: send │ esc: close"))

	return b.String()
}
