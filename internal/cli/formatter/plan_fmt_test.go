package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
)

func TestFormatPlan_RendersItemsAndWindow(t *testing.T) {
	start := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	end := time.Date(2026, 8, 29, 21, 0, 0, 0, time.Local)
	resp := &contract.PlanResponse{
		Day:             "2026-08-29",
		CapMin:          180,
		TotalPlannedMin: 100,
		Changed:         true,
		Items: []contract.PlanLine{
			{TaskID: "a", Title: "Essay", PlannedMin: 60, RequiredMin: 40, Position: 1, Risk: domain.RiskLate},
			{TaskID: "b", Title: "Reading", PlannedMin: 40, RequiredMin: 20, Position: 2, Risk: domain.RiskOK},
		},
		WindowStart: &start,
		WindowEnd:   &end,
	}

	out := FormatPlan(resp)
	assert.Contains(t, out, "2026-08-29")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "1h")      // planned 60
	assert.Contains(t, out, "3h")      // budget 180
	assert.Contains(t, out, "09:00–21:00")
	assert.NotContains(t, out, "unchanged")
}

func TestFormatPlan_Empty(t *testing.T) {
	resp := &contract.PlanResponse{Day: "2026-08-29", CapMin: 180}
	out := FormatPlan(resp)
	assert.Contains(t, out, "Nothing to plan")
}

func TestFormatPlan_UnchangedMarker(t *testing.T) {
	resp := &contract.PlanResponse{
		Day:    "2026-08-29",
		CapMin: 180,
		Items: []contract.PlanLine{
			{Title: "Essay", PlannedMin: 30, Position: 1},
		},
	}
	assert.Contains(t, FormatPlan(resp), "unchanged")
}

func TestFormatStoredPlan(t *testing.T) {
	cap := 120
	plan := &domain.DailyPlan{
		Day:             "2026-08-28",
		CapMin:          &cap,
		TotalPlannedMin: 50,
		Items: []domain.PlanItem{
			{TaskID: "a", Title: "Essay", PlannedMin: 50, RequiredMin: 50, Position: 1},
		},
	}
	out := FormatStoredPlan(plan)
	assert.Contains(t, out, "2026-08-28")
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "50m")
}

func TestFormatGuide(t *testing.T) {
	perDay := 24.0
	warn, ok := 0, 40
	resp := &contract.GuideResponse{
		Task:           statusTask("Guided", domain.RiskWarn),
		RequiredPerDay: &perDay,
		ForWarnMin:     &warn,
		ForOkMin:       &ok,
	}
	out := FormatGuide(resp)
	assert.Contains(t, out, "Guided")
	assert.Contains(t, out, "24/d")
	assert.Contains(t, out, "40m")

	none := &contract.GuideResponse{Task: statusTask("Free", domain.RiskOK)}
	assert.Contains(t, FormatGuide(none), "No guidance")
}
