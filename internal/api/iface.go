package api

import (
	"context"

	"github.com/mariusweiss/netquest/internal/state"
)

// Ops abstracts the game server so the UI can be tested with mocks.
type Ops interface {
	FetchState(ctx context.Context) (state.ProgressState, error)
	CompleteTask(ctx context.Context, taskID string) (state.ProgressState, error)
	FetchLeaderboard(ctx context.Context) ([]state.LeaderboardRow, error)
	StartQuest(ctx context.Context, questType string) (string, error)
	ScoreQuest(ctx context.Context, questType, text, choice string) (ScoreResult, error)
	CoachChat(ctx context.Context, text string) (string, error)
	RewriteDraft(ctx context.Context, text string) (string, error)
	SaveProgress(ctx context.Context) error
	LoadProgress(ctx context.Context) (state.ProgressState, error)
}

var _ Ops = (*Client)(nil)
