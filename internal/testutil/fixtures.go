package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/calebmorris/pacer/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDeadline(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = &d
	}
}

func WithPlannedStart(at time.Time) TaskOption {
	return func(t *domain.Task) {
		t.PlannedStartAt = &at
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithEstimate(min int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMin = min
	}
}

func WithBounds(optimistic, pessimistic int) TaskOption {
	return func(t *domain.Task) {
		t.OptimisticMin = &optimistic
		t.PessimisticMin = &pessimistic
	}
}

func WithWeight(w int) TaskOption {
	return func(t *domain.Task) {
		t.UncertaintyWeight = w
	}
}

func WithActualTotal(min int) TaskOption {
	return func(t *domain.Task) {
		t.ActualTotalMin = min
	}
}

func WithForecast(f domain.Forecast) TaskOption {
	return func(t *domain.Task) {
		t.Forecast = f
	}
}

// NewTestTask builds an open task with a 120-minute estimate and no deadline.
func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:                uuid.New().String(),
		Title:             title,
		Status:            domain.TaskOpen,
		EstimatedMin:      120,
		UncertaintyWeight: 3,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestPlan builds a daily plan for the given day with the given items.
// Positions and the planned total are derived from the item list.
func NewTestPlan(day string, capMin *int, items ...domain.PlanItem) *domain.DailyPlan {
	now := time.Now().UTC()
	total := 0
	for i := range items {
		items[i].Position = i + 1
		total += items[i].PlannedMin
	}
	return &domain.DailyPlan{
		Day:             day,
		CapMin:          capMin,
		TotalPlannedMin: total,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
