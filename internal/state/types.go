package state

// Task categories as the server reports them. Anything else is ignored
// by the view model builder.
const (
	CategoryDaily  = "daily"
	CategoryWeekly = "weekly"
)

// Task is a single completable unit of work. Once the server reports it
// completed there is no un-completion path on the client.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Category    string `json:"category"`
	Hint        string `json:"hint,omitempty"`
	Completed   bool   `json:"completed"`
	HintUsed    bool   `json:"hint_used,omitempty"`
}

// ProgressState is the authoritative progress snapshot owned by the server.
// The client never patches it piecemeal; every successful fetch or mutation
// response replaces it wholesale.
type ProgressState struct {
	Points int      `json:"points"`
	Streak int      `json:"streak"`
	Level  string   `json:"level"`
	Badges []string `json:"badges"`
	Tasks  []Task   `json:"tasks"`
}

// TaskByID returns the task with the given id, if present.
func (p ProgressState) TaskByID(id string) (Task, bool) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// LeaderboardRow is a transient read-only projection. Rank is trusted as
// the server provides it; the client never re-sorts.
type LeaderboardRow struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
}
