package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
	"github.com/calebmorris/pacer/internal/repository"
)

type planService struct {
	tasks     repository.TaskRepo
	plans     repository.PlanRepo
	settings  repository.SettingsRepo
	forecasts ForecastService
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewPlanService(
	tasks repository.TaskRepo,
	plans repository.PlanRepo,
	settings repository.SettingsRepo,
	forecasts ForecastService,
	uow db.UnitOfWork,
	observer UseCaseObserver,
) PlanService {
	return &planService{
		tasks:     tasks,
		plans:     plans,
		settings:  settings,
		forecasts: forecasts,
		uow:       uow,
		observer:  orNoop(observer),
	}
}

func (s *planService) PlanDay(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now()
	defer func() {
		fields := map[string]any{"day": req.Day}
		if resp != nil {
			fields["planned_min"] = resp.TotalPlannedMin
			fields["items"] = len(resp.Items)
			fields["changed"] = resp.Changed
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan-day",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	loc := cfg.Location()
	now := resolveNow(req.Now)

	day := req.Day
	if day == "" {
		day = domain.DayKey(now, loc)
	} else if _, perr := domain.ParseDay(day, loc); perr != nil {
		return nil, &contract.PlanError{Code: contract.ErrInvalidDay, Message: perr.Error()}
	}

	// Allocation reads the forecast fields, so they must be current.
	if _, err := s.forecasts.RefreshAll(ctx, now); err != nil {
		return nil, err
	}

	open, err := s.tasks.ListOpen(ctx)
	if err != nil {
		return nil, err
	}

	riskByTask := make(map[string]domain.RiskLevel, len(open))
	var candidates []forecast.Candidate
	for _, t := range open {
		riskByTask[t.ID] = t.Forecast.Risk
		if !t.Allocatable(now) {
			continue
		}
		g := forecast.ComputeGuidance(forecast.GuidanceInput{
			Deadline:     t.Deadline,
			RemainingMin: t.RemainingMin(),
			Risk:         t.Forecast.Risk,
			Now:          now,
			Location:     loc,
		})
		candidates = append(candidates, buildCandidate(t, g))
	}

	capMin := forecast.ResolveCap(req.CapMin, cfg.DailyCapMin)
	allocations := forecast.Allocate(candidates, capMin, now)

	next := &domain.DailyPlan{
		Day:       day,
		CapMin:    &capMin,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	for _, a := range allocations {
		next.Items = append(next.Items, domain.PlanItem{
			TaskID:      a.TaskID,
			Title:       a.Title,
			PlannedMin:  a.PlannedMin,
			RequiredMin: a.RequiredMin,
			Position:    a.Position,
		})
		next.TotalPlannedMin += a.PlannedMin
	}

	changed, err := s.store(ctx, day, next, now)
	if err != nil {
		return nil, err
	}

	resp = buildPlanResponse(next, riskByTask, cfg, now, loc)
	resp.Changed = changed
	return resp, nil
}

// store persists the computed plan: create when the day has none, overwrite
// with a revision record when the allocation changed, no-op otherwise.
// Reports whether anything was written.
func (s *planService) store(ctx context.Context, day string, next *domain.DailyPlan, now time.Time) (bool, error) {
	prev, err := s.plans.Get(ctx, day)
	var nf *repository.NotFoundError
	switch {
	case errors.As(err, &nf):
		if err := s.plans.Save(ctx, next); err != nil {
			return false, err
		}
		return true, nil
	case err != nil:
		return false, err
	}

	if next.SameAllocation(prev) {
		next.CreatedAt = prev.CreatedAt
		return false, nil
	}

	next.CreatedAt = prev.CreatedAt
	rev := &domain.PlanRevision{
		ID:        uuid.New().String(),
		Day:       day,
		Before:    encodePlanJSON(prev),
		After:     encodePlanJSON(next),
		ChangedAt: now.UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		if err := txPlans.Save(ctx, next); err != nil {
			return err
		}
		return txPlans.AddRevision(ctx, rev)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *planService) GetPlan(ctx context.Context, day string) (*domain.DailyPlan, error) {
	day, err := s.resolveDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.plans.Get(ctx, day)
}

func (s *planService) ListRevisions(ctx context.Context, day string) ([]*domain.PlanRevision, error) {
	day, err := s.resolveDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.plans.ListRevisions(ctx, day)
}

// resolveDay defaults an empty day to today in the configured timezone.
// Plans are written under that zone's day key, so reads must derive the
// default from the same place or a caller in another machine zone can ask
// for the wrong calendar day.
func (s *planService) resolveDay(ctx context.Context, day string) (string, error) {
	if day != "" {
		return day, nil
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return domain.DayKey(time.Now(), cfg.Location()), nil
}

// buildPlanResponse joins the stored plan with per-task risk and the day's
// start window.
func buildPlanResponse(p *domain.DailyPlan, riskByTask map[string]domain.RiskLevel, cfg domain.Settings, now time.Time, loc *time.Location) *contract.PlanResponse {
	resp := &contract.PlanResponse{
		GeneratedAt:     now,
		Day:             p.Day,
		TotalPlannedMin: p.TotalPlannedMin,
	}
	if p.CapMin != nil {
		resp.CapMin = *p.CapMin
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, contract.PlanLine{
			TaskID:      it.TaskID,
			Title:       it.Title,
			PlannedMin:  it.PlannedMin,
			RequiredMin: it.RequiredMin,
			Position:    it.Position,
			Risk:        riskByTask[it.TaskID],
		})
	}

	notify, nerr := forecast.ParseWindow(cfg.NotifyStart, cfg.NotifyEnd)
	work, werr := forecast.ParseWindow(cfg.WorkStart, cfg.WorkEnd)
	if nerr != nil || werr != nil {
		return resp
	}
	if win, ok := forecast.ResolveDayWindow(notify, work); ok {
		start, end := win.At(domain.StartOfDay(now, loc), loc)
		resp.WindowStart, resp.WindowEnd = &start, &end
		if rec, ok := win.RecommendedStart(now, loc); ok {
			resp.RecommendedStart = &rec
		}
	}
	return resp
}
