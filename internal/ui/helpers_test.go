package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/config"
	"github.com/mariusweiss/netquest/internal/state"
)

// fakeOps is a scripted api.Ops for driving the models without a server.
type fakeOps struct {
	stateResp state.ProgressState
	stateErr  error

	completeResp  state.ProgressState
	completeErr   error
	completeCalls []string

	boardResp []state.LeaderboardRow
	boardErr  error

	prompt   string
	startErr error

	scoreResp    api.ScoreResult
	scoreErr     error
	scoreChoices []string

	reply    string
	chatErr  error
	chatSent []string

	rewrite    string
	rewriteErr error

	saveErr error
	loadErr error
}

func (f *fakeOps) FetchState(context.Context) (state.ProgressState, error) {
	return f.stateResp, f.stateErr
}

func (f *fakeOps) CompleteTask(_ context.Context, taskID string) (state.ProgressState, error) {
	f.completeCalls = append(f.completeCalls, taskID)
	return f.completeResp, f.completeErr
}

func (f *fakeOps) FetchLeaderboard(context.Context) ([]state.LeaderboardRow, error) {
	return f.boardResp, f.boardErr
}

func (f *fakeOps) StartQuest(_ context.Context, _ string) (string, error) {
	return f.prompt, f.startErr
}

func (f *fakeOps) ScoreQuest(_ context.Context, _, _, choice string) (api.ScoreResult, error) {
	f.scoreChoices = append(f.scoreChoices, choice)
	return f.scoreResp, f.scoreErr
}

func (f *fakeOps) CoachChat(_ context.Context, text string) (string, error) {
	f.chatSent = append(f.chatSent, text)
	return f.reply, f.chatErr
}

func (f *fakeOps) RewriteDraft(_ context.Context, _ string) (string, error) {
	return f.rewrite, f.rewriteErr
}

func (f *fakeOps) SaveProgress(context.Context) error {
	return f.saveErr
}

func (f *fakeOps) LoadProgress(context.Context) (state.ProgressState, error) {
	return f.stateResp, f.loadErr
}

var _ api.Ops = (*fakeOps)(nil)

func testStyles() Styles {
	return NewStyles(config.Default().Colors)
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func keyEnter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func keyEsc() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEsc}
}

func sampleState() state.ProgressState {
	return state.ProgressState{
		Points: 145,
		Streak: 2,
		Level:  "Engaged Networker",
		Badges: []string{"badge_first_connection"},
		Tasks: []state.Task{
			{ID: "t1", Description: "Write a pitch", Points: 10, Category: "daily", Hint: "Keep it under 30 seconds."},
			{ID: "w1", Description: "Attend an event", Points: 12, Category: "weekly"},
		},
	}
}

func newTestDashboard(t *testing.T, ops *fakeOps) (dashboardModel, *state.Store) {
	t.Helper()
	store := state.NewStore()
	store.Replace(sampleState())
	cfg := config.Default()
	d := newDashboard(testStyles(), cfg.Layout, ops, store, "Player-001")
	d.width = 120
	d.height = 40
	return d, store
}
