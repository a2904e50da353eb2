package game

import "github.com/mariusweiss/netquest/internal/state"

// TaskRow is a render-ready task entry. Text fields are already sanitized.
type TaskRow struct {
	ID          string
	Description string
	Points      int
	Hint        string
	Completed   bool
}

// ViewModel is the normalized, render-ready shape of a progress snapshot.
type ViewModel struct {
	Points      int
	Streak      int
	Level       string
	ProgressPct int // percentage toward the next level, always in [0, 99]
	BadgeLabels []string
	Daily       []TaskRow
	Weekly      []TaskRow
}

// BuildViewModel transforms raw server state into a ViewModel. It is pure
// and total: missing fields default to zero values, unrecognized task
// categories are excluded from both lists, and it never fails.
func BuildViewModel(s state.ProgressState) ViewModel {
	vm := ViewModel{
		Points:      s.Points,
		Streak:      s.Streak,
		Level:       Sanitize(s.Level),
		ProgressPct: progressPct(s.Points),
	}
	for _, id := range s.Badges {
		vm.BadgeLabels = append(vm.BadgeLabels, Sanitize(BadgeLabel(id)))
	}
	for _, t := range s.Tasks {
		row := TaskRow{
			ID:          t.ID,
			Description: Sanitize(t.Description),
			Points:      t.Points,
			Hint:        Sanitize(t.Hint),
			Completed:   t.Completed,
		}
		switch t.Category {
		case state.CategoryDaily:
			vm.Daily = append(vm.Daily, row)
		case state.CategoryWeekly:
			vm.Weekly = append(vm.Weekly, row)
		}
	}
	return vm
}

// progressPct maps a point total to the filled portion of the level bar.
// The server never sends negative points, but totality is part of the
// contract, so out-of-range input still lands in [0, 99].
func progressPct(points int) int {
	pct := points % 100
	if pct < 0 {
		pct += 100
	}
	return pct
}
