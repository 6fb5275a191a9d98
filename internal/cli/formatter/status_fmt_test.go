package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
)

func statusTask(title string, risk domain.RiskLevel) *domain.Task {
	deadline := time.Now().AddDate(0, 0, 7)
	eac := time.Now().AddDate(0, 0, 5)
	return &domain.Task{
		ID:           "t-" + title,
		Title:        title,
		Status:       domain.TaskOpen,
		EstimatedMin: 120,
		Deadline:     &deadline,
		Forecast: domain.Forecast{
			Pace7d:          20,
			RequiredPace:    12,
			RequiredPaceAdj: 12,
			SPI:             1.67,
			EACDate:         &eac,
			Risk:            risk,
			ActualProgress:  0.5,
			IdealProgress:   0.4,
		},
	}
}

func TestFormatStatus_RendersRows(t *testing.T) {
	resp := &contract.StatusResponse{
		GeneratedAt: time.Now(),
		Tasks: []contract.StatusLine{
			{Task: statusTask("Essay", domain.RiskOK), RemainingMin: 60, DaysLeft: 7},
			{Task: statusTask("Reading", domain.RiskLate), RemainingMin: 120, DaysLeft: 7},
		},
	}

	out := FormatStatus(resp)
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "Reading")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "LATE")
	assert.Contains(t, out, "1.67")
	assert.Contains(t, out, "%")
}

func TestFormatStatus_NotStartedDimmed(t *testing.T) {
	task := statusTask("Later", domain.RiskNotStarted)
	resp := &contract.StatusResponse{
		Tasks: []contract.StatusLine{{Task: task}},
	}
	assert.Contains(t, FormatStatus(resp), "NOT STARTED")
}

func TestFormatTaskDetail(t *testing.T) {
	task := statusTask("Essay", domain.RiskWarn)
	task.ActualTotalMin = 60
	o, p := 90, 160
	task.OptimisticMin, task.PessimisticMin = &o, &p
	task.UncertaintyWeight = 3

	out := FormatTaskDetail(task)
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "2h") // estimate 120
	assert.Contains(t, out, "1h") // logged 60
	assert.Contains(t, out, "weight 3")
}
