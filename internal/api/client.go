package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mariusweiss/netquest/internal/state"
)

// ServerError is a rejected mutation: the server answered with a non-2xx
// status and (usually) a structured error payload. Message holds the
// server-supplied text verbatim when present.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// ScoreResult is the outcome of scoring a quest response.
type ScoreResult struct {
	Earned int      `json:"earned"`
	Tips   []string `json:"tips"`
}

// Client talks to the game server over HTTP. A zero timeout means requests
// wait indefinitely; a hung request simply leaves its control pending.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchState(ctx context.Context) (state.ProgressState, error) {
	var s state.ProgressState
	if err := c.get(ctx, "/get_state", &s); err != nil {
		return state.ProgressState{}, fmt.Errorf("fetch state: %w", err)
	}
	return s, nil
}

func (c *Client) CompleteTask(ctx context.Context, taskID string) (state.ProgressState, error) {
	var s state.ProgressState
	req := map[string]string{"taskId": taskID}
	if err := c.post(ctx, "/complete_task", req, &s); err != nil {
		return state.ProgressState{}, fmt.Errorf("complete task: %w", err)
	}
	return s, nil
}

func (c *Client) FetchLeaderboard(ctx context.Context) ([]state.LeaderboardRow, error) {
	var rows []state.LeaderboardRow
	if err := c.get(ctx, "/leaderboard", &rows); err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	return rows, nil
}

// StartQuest asks the server for a practice scenario. The returned prompt
// may be empty; callers supply their own fallback.
func (c *Client) StartQuest(ctx context.Context, questType string) (string, error) {
	var resp struct {
		Scenario struct {
			Prompt string `json:"prompt"`
		} `json:"scenario"`
	}
	req := map[string]string{"type": questType}
	if err := c.post(ctx, "/quest/start", req, &resp); err != nil {
		return "", fmt.Errorf("start quest: %w", err)
	}
	return resp.Scenario.Prompt, nil
}

func (c *Client) ScoreQuest(ctx context.Context, questType, text, choice string) (ScoreResult, error) {
	var res ScoreResult
	req := map[string]string{"type": questType, "text": text, "choice": choice}
	if err := c.post(ctx, "/quest/score", req, &res); err != nil {
		return ScoreResult{}, fmt.Errorf("score quest: %w", err)
	}
	return res, nil
}

func (c *Client) CoachChat(ctx context.Context, text string) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	req := map[string]string{"text": text}
	if err := c.post(ctx, "/coach/chat", req, &resp); err != nil {
		return "", fmt.Errorf("coach chat: %w", err)
	}
	return resp.Reply, nil
}

// RewriteDraft asks the server to polish a quest draft. On any failure the
// caller keeps the original text.
func (c *Client) RewriteDraft(ctx context.Context, text string) (string, error) {
	var resp struct {
		Text string `json:"text"`
	}
	req := map[string]string{"text": text}
	if err := c.post(ctx, "/quest/rewrite", req, &resp); err != nil {
		return "", fmt.Errorf("rewrite draft: %w", err)
	}
	return resp.Text, nil
}

func (c *Client) SaveProgress(ctx context.Context) error {
	if err := c.post(ctx, "/save", struct{}{}, nil); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (c *Client) LoadProgress(ctx context.Context) (state.ProgressState, error) {
	var s state.ProgressState
	if err := c.post(ctx, "/load", struct{}{}, &s); err != nil {
		return state.ProgressState{}, fmt.Errorf("load progress: %w", err)
	}
	return s, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's structured error text, if any.
func errorMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
