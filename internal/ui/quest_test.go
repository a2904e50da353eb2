package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mariusweiss/netquest/internal/api"
)

func newTestQuest() questModel {
	q := newQuest(testStyles(), &fakeOps{})
	q.draft.SetWidth(60)
	return q
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to questStatus
		want     bool
	}{
		{questIdle, questLoading, true},
		{questIdle, questActive, false},
		{questIdle, questScoring, false},
		{questLoading, questActive, true},
		{questLoading, questScoring, false},
		{questActive, questScoring, true},
		{questActive, questClosed, true},
		{questScoring, questActive, true},
		{questScoring, questLoading, false},
		{questClosed, questIdle, true},
		{questClosed, questScoring, false},
	}
	for _, tt := range tests {
		if got := canTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("canTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOpenQuestShowsImmediately(t *testing.T) {
	q := newTestQuest()
	q, cmd := q.open(QuestOutreach)

	if q.session.status != questLoading {
		t.Errorf("status = %v, want loading", q.session.status)
	}
	if cmd == nil {
		t.Error("open issued no command")
	}
	// View must be useful before any network result arrives.
	if !strings.Contains(q.ViewContent(), placeholderPrompt) {
		t.Error("placeholder prompt not visible while loading")
	}
}

func TestOpenDiscardsPriorSession(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestFollowup)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario one"})
	q.draft.SetValue("half a draft")
	q.session.selectedChoice = "monday"

	q, _ = q.open(QuestOutreach)
	if q.session.selectedChoice != "" {
		t.Errorf("selectedChoice = %q after reopen, want empty", q.session.selectedChoice)
	}
	if q.draft.Value() != "" {
		t.Errorf("draft = %q after reopen, want empty", q.draft.Value())
	}
	if q.session.questType != QuestOutreach {
		t.Errorf("questType = %q", q.session.questType)
	}
}

func TestScenarioArrives(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "A mentor posted a case study."})

	if q.session.status != questActive {
		t.Errorf("status = %v, want active", q.session.status)
	}
	if q.session.prompt != "A mentor posted a case study." {
		t.Errorf("prompt = %q", q.session.prompt)
	}
}

func TestScenarioFailureDegradesToActive(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestCoffee)
	q, _ = q.Update(scenarioMsg{seq: q.seq, err: errors.New("connection refused")})

	if q.session.status != questActive {
		t.Errorf("status = %v, want active (degraded mode)", q.session.status)
	}
	if q.session.prompt == "" || q.session.prompt == placeholderPrompt {
		t.Errorf("prompt = %q, want non-empty fallback", q.session.prompt)
	}
}

func TestStaleScenarioDropped(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	stale := q.seq
	q, _ = q.open(QuestCoffee)

	q, _ = q.Update(scenarioMsg{seq: stale, prompt: "old scenario"})
	if q.session.status != questLoading {
		t.Errorf("status = %v, want still loading", q.session.status)
	}
	if q.session.prompt == "old scenario" {
		t.Error("stale scenario mutated the new session")
	}
}

func TestScoreFromIdleIsNoop(t *testing.T) {
	q := newTestQuest()
	q, cmd := q.score()
	if q.session.status != questIdle {
		t.Errorf("status advanced to %v from idle", q.session.status)
	}
	if cmd != nil {
		t.Error("score from idle issued a command")
	}
}

func TestScoreFlow(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
	q.draft.SetValue("Hi Sam, loved your case study — 15 minutes next week?")

	q, cmd := q.score()
	if q.session.status != questScoring {
		t.Fatalf("status = %v, want scoring", q.session.status)
	}
	if cmd == nil {
		t.Fatal("score issued no command")
	}

	q, cmd = q.Update(scoredMsg{seq: q.seq, result: api.ScoreResult{Earned: 7, Tips: []string{"Add an opt-out line.", "second tip"}}})
	if q.session.status != questActive {
		t.Errorf("status = %v, want active after scoring", q.session.status)
	}
	if len(q.session.feedback) != 2 {
		t.Fatalf("feedback = %v, want earned line plus one tip", q.session.feedback)
	}
	if q.session.feedback[0] != "+7 XP earned" {
		t.Errorf("feedback[0] = %q", q.session.feedback[0])
	}
	if q.session.feedback[1] != "Tip: Add an opt-out line." {
		t.Errorf("feedback[1] = %q", q.session.feedback[1])
	}
	if cmd == nil {
		t.Error("successful scoring should trigger state and leaderboard refresh")
	}
}

func TestScoreFailureStaysActive(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
	q.draft.SetValue("my draft")

	q, _ = q.score()
	q, _ = q.Update(scoredMsg{seq: q.seq, err: errors.New("timeout")})

	if q.session.status != questActive {
		t.Errorf("status = %v, want active for retry", q.session.status)
	}
	if q.err != scoreFailedText {
		t.Errorf("err = %q", q.err)
	}
	if len(q.session.feedback) != 0 {
		t.Errorf("feedback = %v, want none", q.session.feedback)
	}
	if q.draft.Value() != "my draft" {
		t.Errorf("draft = %q, want preserved", q.draft.Value())
	}
}

func TestFollowupChoiceExclusive(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestFollowup)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
	q.pillsFocused = true

	q = q.updatePills(keyEnter())
	if q.session.selectedChoice != followupChoices[0].value {
		t.Fatalf("selectedChoice = %q, want %q", q.session.selectedChoice, followupChoices[0].value)
	}

	q = q.updatePills(keyRune('l'))
	q = q.updatePills(keyEnter())
	if q.session.selectedChoice != followupChoices[1].value {
		t.Errorf("selectedChoice = %q, want %q (exclusive)", q.session.selectedChoice, followupChoices[1].value)
	}

	// Selecting the same pill again deselects it; none selected is legal.
	q = q.updatePills(keyEnter())
	if q.session.selectedChoice != "" {
		t.Errorf("selectedChoice = %q, want empty after toggle", q.session.selectedChoice)
	}
}

// The server's fallback scorer credits the timing bonus only for an exact
// lowercase match, so every pill must submit one of its accepted values.
func TestFollowupChoiceSubmitsScorerValue(t *testing.T) {
	accepted := map[string]bool{
		"monday":          true,
		"tuesday":         true,
		"48h":             true,
		"2 days":          true,
		"early next week": true,
	}

	for i, choice := range followupChoices {
		ops := &fakeOps{}
		q := newQuest(testStyles(), ops)
		q.draft.SetWidth(60)
		q, _ = q.open(QuestFollowup)
		q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
		q.draft.SetValue("Thanks for the great meeting!")
		q.pillsFocused = true
		for n := 0; n < i; n++ {
			q = q.updatePills(keyRune('l'))
		}
		q = q.updatePills(keyEnter())

		var cmd tea.Cmd
		q, cmd = q.score()
		if cmd == nil {
			t.Fatalf("%s: score issued no command", choice.label)
		}
		cmd()
		if len(ops.scoreChoices) != 1 {
			t.Fatalf("%s: score calls = %d, want 1", choice.label, len(ops.scoreChoices))
		}
		if got := ops.scoreChoices[0]; !accepted[got] {
			t.Errorf("%s: submitted choice %q is not a value the scorer credits", choice.label, got)
		}
	}
}

func TestCloseDiscardsSession(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)

	q, cmd := q.close()
	if q.session.status != questIdle {
		t.Errorf("status = %v, want idle", q.session.status)
	}
	if cmd == nil {
		t.Fatal("close issued no command")
	}
	if _, ok := cmd().(questClosedMsg); !ok {
		t.Error("close did not emit questClosedMsg")
	}
}

func TestRewriteReplacesDraft(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
	q.draft.SetValue("rough draft")

	q, _ = q.Update(draftRewrittenMsg{seq: q.seq, text: "Polished draft with a 15-minute ask."})
	if q.draft.Value() != "Polished draft with a 15-minute ask." {
		t.Errorf("draft = %q", q.draft.Value())
	}
}

func TestRewriteFailureKeepsDraft(t *testing.T) {
	q := newTestQuest()
	q, _ = q.open(QuestOutreach)
	q, _ = q.Update(scenarioMsg{seq: q.seq, prompt: "scenario"})
	q.draft.SetValue("rough draft")

	q, _ = q.Update(draftRewrittenMsg{seq: q.seq, err: errors.New("offline")})
	if q.draft.Value() != "rough draft" {
		t.Errorf("draft = %q, want original", q.draft.Value())
	}

	q, _ = q.Update(draftRewrittenMsg{seq: q.seq, text: "   "})
	if q.draft.Value() != "rough draft" {
		t.Errorf("draft = %q, want original after blank rewrite", q.draft.Value())
	}
}
