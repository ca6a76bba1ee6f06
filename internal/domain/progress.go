package domain

import "github.com/google/uuid"

// DailyGoals holds the configured targets for one calendar day.
type DailyGoals struct {
	NewWords int
	Reviews  int
}

// GoalProgress is progress against a single daily goal.
type GoalProgress struct {
	Current  int
	Goal     int
	Percent  int
	Complete bool
}

// DailyProgress is a pure snapshot of today's activity, recomputed from the
// stores on every call. It holds no state of its own.
type DailyProgress struct {
	NewWords GoalProgress
	Reviews  GoalProgress
}

// Dashboard aggregates what the client shows on its home screen.
type Dashboard struct {
	DueCount      int
	TotalCount    int
	Progress      DailyProgress
	NextSessionID *uuid.UUID
}

// Notification is the aggregate alert payload handed to the delivery sink.
// The engine decides whether and with what payload; delivery is external.
type Notification struct {
	Title          string
	Body           string
	DedupTag       string
	DueCount       int
	FirstSessionID uuid.UUID
}
