package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mariusweiss/netquest/internal/config"
)

// Styles holds every lipgloss style used by the UI, built from config colors.
type Styles struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Selected     lipgloss.Style
	Metric       lipgloss.Style
	Streak       lipgloss.Style
	Badge        lipgloss.Style
	TaskOpen     lipgloss.Style
	TaskDone     lipgloss.Style
	Hint         lipgloss.Style
	Highlight    lipgloss.Style
	Notification lipgloss.Style
	Help         lipgloss.Style
	Border       lipgloss.Style
	Separator    lipgloss.Style
	ModalTitle   lipgloss.Style
	ModalActive  lipgloss.Style
	ModalDim     lipgloss.Style
	Error        lipgloss.Style
	Pending      lipgloss.Style
	Pill         lipgloss.Style
	PillSelected lipgloss.Style
	CoachUser    lipgloss.Style
	CoachReply   lipgloss.Style
}

func NewStyles(c config.Colors) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectedBG)).
			Foreground(lipgloss.Color(c.SelectedFG)),
		Metric: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Metric)),
		Streak: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Streak)),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Badge)),
		TaskOpen: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.TaskOpen)),
		TaskDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.TaskDone)).
			Strikethrough(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hint)).
			Italic(true),
		Highlight: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Highlight)),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Notification)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(1, 2),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Separator)),
		ModalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.ModalTitle)).
			MarginBottom(1),
		ModalActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.ModalActive)),
		ModalDim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.ModalDim)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Pending)),
		Pill: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Pill)).
			Padding(0, 1),
		PillSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.PillSelected)).
			Bold(true).
			Reverse(true).
			Padding(0, 1),
		CoachUser: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.CoachUser)),
		CoachReply: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.CoachReply)),
	}
}
