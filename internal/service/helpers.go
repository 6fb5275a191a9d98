package service

import (
	"encoding/json"
	"time"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/calebmorris/pacer/internal/forecast"
)

// buildForecastInput assembles the progress-model input for one task.
func buildForecastInput(t *domain.Task, logs map[string]int, s domain.Settings, now time.Time) forecast.Input {
	return forecast.Input{
		EstimatedMin:   t.EstimatedMin,
		StoredTotalMin: t.ActualTotalMin,
		Logs:           logs,
		Deadline:       t.Deadline,
		CreatedAt:      t.CreatedAt,
		PlannedStartAt: t.PlannedStartAt,
		Now:            now,
		Location:       s.Location(),
		Tunables: forecast.Tunables{
			Alpha:            s.Alpha,
			RelaxFactor:      s.RelaxFactor,
			SPIWarnThreshold: s.SPIWarnThreshold,
		},
	}
}

// buildCandidate decorates an allocatable task for the allocator. The
// required pace carries the dynamic-buffer adjustment when one applied;
// the recovery target is the guidance "for ok" minutes.
func buildCandidate(t *domain.Task, g forecast.Guidance) forecast.Candidate {
	return forecast.Candidate{
		TaskID:         t.ID,
		Title:          t.Title,
		EstimatedMin:   t.EstimatedMin,
		ActualTotalMin: t.ActualTotalMin,
		Deadline:       *t.Deadline,
		IdealProgress:  t.Forecast.IdealProgress,
		ActualProgress: t.Forecast.ActualProgress,
		RequiredPerDay: t.Forecast.RequiredPaceAdj,
		RecoverMin:     g.ForOkMin,
	}
}

// planSnapshot is the JSON shape stored in plan revision records.
type planSnapshot struct {
	Day             string             `json:"day"`
	CapMin          *int               `json:"cap_min,omitempty"`
	TotalPlannedMin int                `json:"total_planned_min"`
	Items           []planSnapshotItem `json:"items"`
}

type planSnapshotItem struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	PlannedMin  int    `json:"planned_min"`
	RequiredMin int    `json:"required_min"`
	Position    int    `json:"position"`
}

// encodePlanJSON serializes a plan for the revision log. A nil plan (no
// prior plan existed) encodes as an empty snapshot.
func encodePlanJSON(p *domain.DailyPlan) string {
	snap := planSnapshot{Items: []planSnapshotItem{}}
	if p != nil {
		snap.Day = p.Day
		snap.CapMin = p.CapMin
		snap.TotalPlannedMin = p.TotalPlannedMin
		for _, it := range p.Items {
			snap.Items = append(snap.Items, planSnapshotItem{
				TaskID:      it.TaskID,
				Title:       it.Title,
				PlannedMin:  it.PlannedMin,
				RequiredMin: it.RequiredMin,
				Position:    it.Position,
			})
		}
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// resolveNow unwraps an injectable request time.
func resolveNow(now *time.Time) time.Time {
	if now != nil {
		return *now
	}
	return time.Now()
}
