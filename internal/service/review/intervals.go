package review

import "time"

// IntervalTable is the ordered retention curve: days until the next review
// at each progression stage. The sequence is non-decreasing, at least one
// entry long, and never mutated after construction — it is configuration.
type IntervalTable []int

// DefaultIntervals is the widening delay sequence between successive reviews
// of the same material, after Ebbinghaus.
var DefaultIntervals = IntervalTable{1, 2, 4, 7, 15, 30}

// At returns the number of days until the next review at the given stage.
// Stages past the last index plateau at the final value rather than erroring
// or extrapolating.
func (t IntervalTable) At(stage int) int {
	if stage < 0 {
		stage = 0
	}
	if stage >= len(t) {
		stage = len(t) - 1
	}
	return t[stage]
}

// MaxStage returns the last valid stage index.
func (t IntervalTable) MaxStage() int {
	return len(t) - 1
}

// Stage maps a raw review counter to the progression stage used to index the
// table. The counter grows without bound; the stage is clamped at the table's
// last index so the schedule plateaus.
func (t IntervalTable) Stage(reviewCount int) int {
	stage := reviewCount - 1
	if stage < 0 {
		stage = 0
	}
	if stage > t.MaxStage() {
		stage = t.MaxStage()
	}
	return stage
}

// days converts a stage's day count into a duration.
func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
