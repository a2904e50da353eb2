package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariusweiss/netquest/internal/api"
	"github.com/mariusweiss/netquest/internal/state"
)

// Result messages for every server round trip. Each user action issues one
// request; no cancellation exists, so commands carry context.Background()
// and a late result simply arrives as a late message.

type stateLoadedMsg struct {
	state state.ProgressState
	err   error
}

type leaderboardLoadedMsg struct {
	rows []state.LeaderboardRow
	err  error
}

type taskCompletedMsg struct {
	taskID string
	state  state.ProgressState
	err    error
}

type progressSavedMsg struct {
	err error
}

type progressLoadedMsg struct {
	state state.ProgressState
	err   error
}

// Quest messages carry the session sequence number so a result from a
// discarded session is dropped instead of mutating its successor.

type scenarioMsg struct {
	seq    int
	prompt string
	err    error
}

type scoredMsg struct {
	seq    int
	result api.ScoreResult
	err    error
}

type draftRewrittenMsg struct {
	seq  int
	text string
	err  error
}

type coachReplyMsg struct {
	seq   int
	reply string
	err   error
}

func fetchStateCmd(c api.Ops) tea.Cmd {
	return func() tea.Msg {
		s, err := c.FetchState(context.Background())
		return stateLoadedMsg{state: s, err: err}
	}
}

func fetchLeaderboardCmd(c api.Ops) tea.Cmd {
	return func() tea.Msg {
		rows, err := c.FetchLeaderboard(context.Background())
		return leaderboardLoadedMsg{rows: rows, err: err}
	}
}

func completeTaskCmd(c api.Ops, taskID string) tea.Cmd {
	return func() tea.Msg {
		s, err := c.CompleteTask(context.Background(), taskID)
		return taskCompletedMsg{taskID: taskID, state: s, err: err}
	}
}

func saveProgressCmd(c api.Ops) tea.Cmd {
	return func() tea.Msg {
		return progressSavedMsg{err: c.SaveProgress(context.Background())}
	}
}

func loadProgressCmd(c api.Ops) tea.Cmd {
	return func() tea.Msg {
		s, err := c.LoadProgress(context.Background())
		return progressLoadedMsg{state: s, err: err}
	}
}

func startQuestCmd(c api.Ops, seq int, questType QuestType) tea.Cmd {
	return func() tea.Msg {
		prompt, err := c.StartQuest(context.Background(), string(questType))
		return scenarioMsg{seq: seq, prompt: prompt, err: err}
	}
}

func scoreQuestCmd(c api.Ops, seq int, questType QuestType, text, choice string) tea.Cmd {
	return func() tea.Msg {
		result, err := c.ScoreQuest(context.Background(), string(questType), text, choice)
		return scoredMsg{seq: seq, result: result, err: err}
	}
}

func rewriteDraftCmd(c api.Ops, seq int, text string) tea.Cmd {
	return func() tea.Msg {
		out, err := c.RewriteDraft(context.Background(), text)
		return draftRewrittenMsg{seq: seq, text: out, err: err}
	}
}

func coachChatCmd(c api.Ops, seq int, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := c.CoachChat(context.Background(), text)
		return coachReplyMsg{seq: seq, reply: reply, err: err}
	}
}
