package service

import (
	"context"
	"fmt"
	"time"

	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
	"github.com/calebmorris/pacer/internal/repository"
)

type logService struct {
	logs     repository.DayLogRepo
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLogService(logs repository.DayLogRepo, settings repository.SettingsRepo, uow db.UnitOfWork, observer UseCaseObserver) LogService {
	return &logService{logs: logs, settings: settings, uow: uow, observer: orNoop(observer)}
}

func (s *logService) LogMinutes(ctx context.Context, taskID, day string, minutes int) (task *domain.Task, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "log-minutes",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"task": taskID, "day": day, "minutes": minutes},
		})
	}()

	if minutes <= 0 {
		return nil, fmt.Errorf("minutes must be positive, got %d", minutes)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location()
	now := time.Now()

	if day == "" {
		day = domain.DayKey(now, loc)
	} else if _, err := domain.ParseDay(day, loc); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txLogs := repository.NewSQLiteDayLogRepo(tx)

		t, err := txTasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if t.Status != domain.TaskOpen {
			return fmt.Errorf("cannot log time on %s task %s", t.Status, taskID)
		}

		if _, err := txLogs.Add(ctx, taskID, day, minutes); err != nil {
			return err
		}
		logs, err := txLogs.MapByTask(ctx, taskID)
		if err != nil {
			return err
		}

		t.ActualTotalMin += minutes
		t.Forecast = forecast.Compute(buildForecastInput(t, logs, cfg, now))
		t.UpdatedAt = now.UTC()
		if err := txTasks.Update(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *logService) ListByTask(ctx context.Context, taskID string) ([]domain.DayLog, error) {
	return s.logs.ListByTask(ctx, taskID)
}

func (s *logService) ListByDay(ctx context.Context, day string) ([]domain.DayLog, error) {
	if day == "" {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		day = domain.DayKey(time.Now(), cfg.Location())
	}
	return s.logs.ListByDay(ctx, day)
}
