package review

import (
	"math"

	"github.com/relearnapp/backend/internal/domain"
)

// ComputeDailyProgress derives today's goal progress from the raw counters.
// Pure snapshot: nothing is stored, everything is recomputed per call.
func ComputeDailyProgress(newWords, reviewsDone int, goals domain.DailyGoals) domain.DailyProgress {
	return domain.DailyProgress{
		NewWords: goalProgress(newWords, goals.NewWords),
		Reviews:  goalProgress(reviewsDone, goals.Reviews),
	}
}

// goalProgress computes percentage toward a single goal, capped at 100.
// A goal of zero or less is treated as already satisfied.
func goalProgress(current, goal int) domain.GoalProgress {
	p := domain.GoalProgress{Current: current, Goal: goal}

	if goal <= 0 {
		p.Percent = 100
		p.Complete = true
		return p
	}

	percent := int(math.Round(100 * float64(current) / float64(goal)))
	if percent > 100 {
		percent = 100
	}
	p.Percent = percent
	p.Complete = current >= goal

	return p
}
