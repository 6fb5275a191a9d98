package service

import (
	"context"
	"time"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
	"github.com/calebmorris/pacer/internal/repository"
)

type forecastService struct {
	tasks    repository.TaskRepo
	logs     repository.DayLogRepo
	settings repository.SettingsRepo
	observer UseCaseObserver
}

func NewForecastService(tasks repository.TaskRepo, logs repository.DayLogRepo, settings repository.SettingsRepo, observer UseCaseObserver) ForecastService {
	return &forecastService{tasks: tasks, logs: logs, settings: settings, observer: orNoop(observer)}
}

func (s *forecastService) RefreshTask(ctx context.Context, taskID string, now time.Time) (*domain.Task, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if _, err := s.refresh(ctx, t, cfg, now); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *forecastService) RefreshAll(ctx context.Context, now time.Time) (sum RefreshSummary, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "forecast-refresh-all",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"refreshed": sum.Refreshed,
				"unchanged": sum.Unchanged,
				"failed":    len(sum.Failed),
			},
		})
	}()

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return RefreshSummary{}, err
	}
	open, err := s.tasks.ListOpen(ctx)
	if err != nil {
		return RefreshSummary{}, err
	}

	for _, t := range open {
		changed, err := s.refresh(ctx, t, cfg, now)
		if err != nil {
			sum.Failed = append(sum.Failed, RefreshFailure{TaskID: t.ID, Err: err})
			continue
		}
		if changed {
			sum.Refreshed++
		} else {
			sum.Unchanged++
		}
	}
	return sum, nil
}

// refresh recomputes one task's forecast in place and persists it only when
// it differs from the stored one.
func (s *forecastService) refresh(ctx context.Context, t *domain.Task, cfg domain.Settings, now time.Time) (bool, error) {
	logs, err := s.logs.MapByTask(ctx, t.ID)
	if err != nil {
		return false, err
	}
	next := forecast.Compute(buildForecastInput(t, logs, cfg, now))
	if next.Equal(t.Forecast) {
		return false, nil
	}
	if err := s.tasks.UpdateForecast(ctx, t.ID, next); err != nil {
		return false, err
	}
	t.Forecast = next
	return true, nil
}

func (s *forecastService) Status(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, req.IncludeArchived)
	if err != nil {
		return nil, err
	}

	now := resolveNow(req.Now)
	loc := cfg.Location()
	resp := &contract.StatusResponse{GeneratedAt: now}
	for _, t := range tasks {
		if t.Status == domain.TaskOpen {
			if _, err := s.refresh(ctx, t, cfg, now); err != nil {
				return nil, err
			}
		}
		line := contract.StatusLine{Task: t, RemainingMin: t.RemainingMin()}
		if t.Deadline != nil {
			line.DaysLeft = domain.DaysUntil(*t.Deadline, domain.StartOfDay(now, loc))
		}
		resp.Tasks = append(resp.Tasks, line)
	}
	return resp, nil
}

func (s *forecastService) Guide(ctx context.Context, req contract.GuideRequest) (*contract.GuideResponse, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	now := resolveNow(req.Now)
	if t.Status == domain.TaskOpen {
		if _, err := s.refresh(ctx, t, cfg, now); err != nil {
			return nil, err
		}
	}

	g := forecast.ComputeGuidance(forecast.GuidanceInput{
		Deadline:     t.Deadline,
		RemainingMin: t.RemainingMin(),
		Risk:         t.Forecast.Risk,
		Now:          now,
		Location:     cfg.Location(),
	})
	return &contract.GuideResponse{
		Task:           t,
		RequiredPerDay: g.RequiredPerDay,
		ForWarnMin:     g.ForWarnMin,
		ForOkMin:       g.ForOkMin,
	}, nil
}
