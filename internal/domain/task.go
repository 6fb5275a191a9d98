package domain

import "time"

// Task is the unit of work being tracked. Estimates are in minutes.
// OptimisticMin and PessimisticMin are optional three-point bounds; when the
// user supplies only EstimatedMin they are derived from the uncertainty
// weight at creation time.
type Task struct {
	ID     string
	Title  string
	Status TaskStatus

	EstimatedMin      int
	OptimisticMin     *int
	PessimisticMin    *int
	UncertaintyWeight int // 1..5, how strongly EstimatedMin dominates the bounds

	Deadline       *time.Time
	PlannedStartAt *time.Time

	// ActualTotalMin is the cumulative logged effort. It may exceed the sum
	// of the day logs if adjusted externally; the forecast treats the larger
	// of the two as ground truth.
	ActualTotalMin int

	Forecast Forecast

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemainingMin returns the outstanding effort, never negative.
func (t *Task) RemainingMin() int {
	r := t.EstimatedMin - t.ActualTotalMin
	if r < 0 {
		return 0
	}
	return r
}

// Started reports whether the task has reached its planned start date.
// Risk classification does not apply before then.
func (t *Task) Started(now time.Time) bool {
	return t.PlannedStartAt == nil || !now.Before(*t.PlannedStartAt)
}

// Allocatable reports whether the task is a candidate for today's plan:
// open, positive estimate with work remaining, a deadline to pace against,
// and a planned start that is not in the future.
func (t *Task) Allocatable(now time.Time) bool {
	return t.Status == TaskOpen &&
		t.EstimatedMin > 0 &&
		t.ActualTotalMin < t.EstimatedMin &&
		t.Deadline != nil &&
		t.Started(now)
}

// DayLog is one day's logged minutes for a task. Day is a local-zone
// YYYY-MM-DD key; at most one row exists per task and day.
type DayLog struct {
	TaskID  string
	Day     string
	Minutes int
}
