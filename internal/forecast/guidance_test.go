package forecast

import (
	"testing"

	"github.com/calebmorris/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guidanceInput(risk domain.RiskLevel, remaining, daysLeft int) GuidanceInput {
	now := day(2025, 6, 15)
	deadline := now.AddDate(0, 0, daysLeft)
	return GuidanceInput{
		Deadline:     &deadline,
		RemainingMin: remaining,
		Risk:         risk,
		Now:          now,
		Location:     utc,
	}
}

func TestComputeGuidance_NoDeadline(t *testing.T) {
	in := guidanceInput(domain.RiskLate, 100, 5)
	in.Deadline = nil
	g := ComputeGuidance(in)
	assert.Nil(t, g.RequiredPerDay)
	assert.Nil(t, g.ForWarnMin)
	assert.Nil(t, g.ForOkMin)
}

func TestComputeGuidance_NothingRemaining(t *testing.T) {
	g := ComputeGuidance(guidanceInput(domain.RiskOK, 0, 5))
	assert.Nil(t, g.ForOkMin)
}

func TestComputeGuidance_Late_DoublesForOk(t *testing.T) {
	// 120 remaining over 5 days: base 24/day -> warn 25, ok 50.
	g := ComputeGuidance(guidanceInput(domain.RiskLate, 120, 5))
	require.NotNil(t, g.ForWarnMin)
	require.NotNil(t, g.ForOkMin)
	assert.Equal(t, 25, *g.ForWarnMin)
	assert.Equal(t, 50, *g.ForOkMin)
	assert.InDelta(t, 24.0, *g.RequiredPerDay, 1e-9)
}

func TestComputeGuidance_Warn_SmallerPremium(t *testing.T) {
	// base 24/day -> warn target already met (0), ok 24*1.5=36 -> 40.
	g := ComputeGuidance(guidanceInput(domain.RiskWarn, 120, 5))
	require.NotNil(t, g.ForWarnMin)
	assert.Equal(t, 0, *g.ForWarnMin)
	assert.Equal(t, 40, *g.ForOkMin)
}

func TestComputeGuidance_OK_PlainRequired(t *testing.T) {
	g := ComputeGuidance(guidanceInput(domain.RiskOK, 120, 5))
	assert.Equal(t, 25, *g.ForWarnMin)
	assert.Equal(t, 25, *g.ForOkMin)
}

func TestComputeGuidance_CappedAtRemaining(t *testing.T) {
	// base 17/day doubled is 34 -> rounds to 35, capped at 17 remaining.
	g := ComputeGuidance(guidanceInput(domain.RiskLate, 17, 1))
	assert.Equal(t, 17, *g.ForOkMin)
	assert.Equal(t, 17, *g.ForWarnMin)
}

func TestComputeGuidance_TargetsAreFiveMinuteStepsWithinRemaining(t *testing.T) {
	for remaining := 5; remaining <= 300; remaining += 37 {
		for days := 1; days <= 14; days += 3 {
			for _, risk := range []domain.RiskLevel{domain.RiskOK, domain.RiskWarn, domain.RiskLate} {
				g := ComputeGuidance(guidanceInput(risk, remaining, days))
				require.NotNil(t, g.ForOkMin)
				assert.LessOrEqual(t, *g.ForOkMin, remaining)
				assert.LessOrEqual(t, *g.ForWarnMin, remaining)
				if *g.ForOkMin < remaining {
					assert.Zero(t, *g.ForOkMin%5, "remaining=%d days=%d risk=%s", remaining, days, risk)
				}
				if *g.ForWarnMin < remaining {
					assert.Zero(t, *g.ForWarnMin%5)
				}
			}
		}
	}
}

func TestComputeGuidance_PastDeadlineUsesOneDay(t *testing.T) {
	in := guidanceInput(domain.RiskLate, 60, -3)
	g := ComputeGuidance(in)
	// daysLeft clamps to 1: everything is owed today.
	assert.Equal(t, 60, *g.ForWarnMin)
	assert.InDelta(t, 60.0, *g.RequiredPerDay, 1e-9)
}
