package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
	"github.com/calebmorris/pacer/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	settings repository.SettingsRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, settings repository.SettingsRepo, observer UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, settings: settings, observer: orNoop(observer)}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) (err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "task-create",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"title": t.Title},
		})
	}()

	if t.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if t.EstimatedMin <= 0 {
		return fmt.Errorf("estimated minutes must be positive")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = domain.TaskOpen
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if t.UncertaintyWeight < 1 || t.UncertaintyWeight > 5 {
		t.UncertaintyWeight = cfg.DefaultUncertaintyWeight
	}
	// Only an explicit pair of bounds is kept; a lone bound is replaced by
	// the derived pair so the three-point model always has both.
	if t.OptimisticMin == nil || t.PessimisticMin == nil {
		b := forecast.DeriveBounds(t.EstimatedMin, t.UncertaintyWeight)
		t.OptimisticMin = &b.OptimisticMin
		t.PessimisticMin = &b.PessimisticMin
	}
	if t.OptimisticMin != nil && t.PessimisticMin != nil && *t.PessimisticMin < *t.OptimisticMin {
		return fmt.Errorf("pessimistic bound %d is below optimistic bound %d", *t.PessimisticMin, *t.OptimisticMin)
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) List(ctx context.Context, includeArchived bool) ([]*domain.Task, error) {
	return s.tasks.List(ctx, includeArchived)
}

func (s *taskService) Update(ctx context.Context, t *domain.Task) error {
	if t.EstimatedMin <= 0 {
		return fmt.Errorf("estimated minutes must be positive")
	}
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}

func (s *taskService) MarkDone(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.TaskDone)
}

func (s *taskService) Archive(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, domain.TaskArchived)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

func (s *taskService) setStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	t.Status = status
	t.UpdatedAt = time.Now().UTC()
	return s.tasks.Update(ctx, t)
}
