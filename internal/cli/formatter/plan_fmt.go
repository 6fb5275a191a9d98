package formatter

import (
	"fmt"
	"strings"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
)

// FormatPlan renders the daily plan: ranked items with planned vs required
// minutes, the day's total against the cap, and the allowed start window.
func FormatPlan(resp *contract.PlanResponse) string {
	var b strings.Builder
	b.WriteString(Header("Plan " + resp.Day))
	b.WriteString("\n\n")

	if len(resp.Items) == 0 {
		b.WriteString(Dim("Nothing to plan: no open tasks with a deadline.") + "\n")
	} else {
		headers := []string{"#", "TASK", "PLANNED", "REQUIRED", "RISK"}
		rows := make([][]string, 0, len(resp.Items))
		for _, it := range resp.Items {
			rows = append(rows, []string{
				Dim(fmt.Sprintf("%d", it.Position)),
				Bold(it.Title),
				StyleFg.Render(FormatMinutes(it.PlannedMin)),
				Dim(FormatMinutes(it.RequiredMin)),
				RiskBadge(it.Risk),
			})
		}
		b.WriteString(RenderTable(headers, rows))
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf("Total %s of %s budget",
		Bold(FormatMinutes(resp.TotalPlannedMin)), FormatMinutes(resp.CapMin)))
	if !resp.Changed {
		b.WriteString(Dim("  (unchanged)"))
	}
	b.WriteString("\n")

	if resp.WindowStart != nil && resp.WindowEnd != nil {
		b.WriteString(fmt.Sprintf("Window %s–%s",
			resp.WindowStart.Format("15:04"), resp.WindowEnd.Format("15:04")))
		if resp.RecommendedStart != nil {
			b.WriteString(Dim("  start by " + resp.RecommendedStart.Format("15:04")))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// FormatStoredPlan renders a plan fetched from storage (no risk joins, no
// window).
func FormatStoredPlan(p *domain.DailyPlan) string {
	var b strings.Builder
	b.WriteString(Header("Plan " + p.Day))
	b.WriteString("\n\n")

	if len(p.Items) == 0 {
		b.WriteString(Dim("Empty plan.") + "\n")
		return strings.TrimRight(b.String(), "\n")
	}

	headers := []string{"#", "TASK", "PLANNED", "REQUIRED"}
	rows := make([][]string, 0, len(p.Items))
	for _, it := range p.Items {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", it.Position)),
			Bold(it.Title),
			StyleFg.Render(FormatMinutes(it.PlannedMin)),
			Dim(FormatMinutes(it.RequiredMin)),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n\n")
	b.WriteString("Total " + Bold(FormatMinutes(p.TotalPlannedMin)))
	if p.CapMin != nil {
		b.WriteString(Dim(" of " + FormatMinutes(*p.CapMin) + " budget"))
	}
	return b.String()
}

// FormatGuide renders the guide card: minutes owed today per target tier.
func FormatGuide(resp *contract.GuideResponse) string {
	t := resp.Task
	var b strings.Builder
	b.WriteString(Bold(t.Title) + "  " + RiskBadge(t.Forecast.Risk) + "\n\n")

	if resp.RequiredPerDay == nil {
		b.WriteString(Dim("No guidance: the task has no deadline or nothing remains."))
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  required today  %s\n", Bold(FormatPace(*resp.RequiredPerDay))))
	if resp.ForWarnMin != nil && *resp.ForWarnMin > 0 {
		b.WriteString(fmt.Sprintf("  to reach warn   %s\n", StyleYellow.Render(FormatMinutes(*resp.ForWarnMin))))
	}
	if resp.ForOkMin != nil {
		b.WriteString(fmt.Sprintf("  to reach ok     %s\n", StyleGreen.Render(FormatMinutes(*resp.ForOkMin))))
	}
	return strings.TrimRight(b.String(), "\n")
}
