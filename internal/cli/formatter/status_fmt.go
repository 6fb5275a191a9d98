package formatter

import (
	"fmt"
	"strings"

	"github.com/calebmorris/pacer/internal/contract"
	"github.com/calebmorris/pacer/internal/domain"
)

const statusProgressBarWidth = 10

// FormatStatus renders the forecast overview table: one row per task with
// risk, pace against required pace, SPI, EAC and a progress bar.
func FormatStatus(resp *contract.StatusResponse) string {
	var b strings.Builder
	b.WriteString(Header("Tasks"))
	b.WriteString("\n\n")

	headers := []string{"TITLE", "STATUS", "RISK", "PROGRESS", "PACE", "SPI", "EAC", "DUE"}
	rows := make([][]string, 0, len(resp.Tasks))
	for _, line := range resp.Tasks {
		t := line.Task
		f := t.Forecast

		pace := Dim("--")
		if t.Status == domain.TaskOpen && t.Deadline != nil {
			pace = StyleFg.Render(FormatPace(f.Pace7d)) + Dim(" need "+FormatPace(f.RequiredPaceAdj))
		}

		spiCell := Dim("--")
		if t.Status == domain.TaskOpen && f.RequiredPace > 0 {
			spiCell = RiskStyle(f.Risk).Render(fmt.Sprintf("%.2f", f.SPI))
		}

		eac := Dim("--")
		if f.EACDate != nil {
			eac = StyleFg.Render(f.EACDate.Format(domain.DayLayout))
		}

		due := Dim("--")
		if t.Deadline != nil {
			due = RelativeDateStyled(*t.Deadline)
		}

		rows = append(rows, []string{
			Bold(t.Title),
			StatusPill(t.Status),
			RiskBadge(f.Risk),
			RenderProgress(f.ActualProgress, statusProgressBarWidth),
			pace,
			spiCell,
			eac,
			due,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatTaskDetail renders one task's full card for "task show".
func FormatTaskDetail(t *domain.Task) string {
	f := t.Forecast
	var b strings.Builder

	b.WriteString(Bold(t.Title) + "  " + StatusPill(t.Status) + "\n")
	b.WriteString(Dim("id " + t.ID))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  estimate     %s", FormatMinutes(t.EstimatedMin)))
	if t.OptimisticMin != nil && t.PessimisticMin != nil {
		b.WriteString(Dim(fmt.Sprintf("  (O %s / P %s, weight %d)",
			FormatMinutes(*t.OptimisticMin), FormatMinutes(*t.PessimisticMin), t.UncertaintyWeight)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  logged       %s\n", FormatMinutes(t.ActualTotalMin)))
	if t.Deadline != nil {
		b.WriteString(fmt.Sprintf("  deadline     %s  %s\n",
			t.Deadline.Format(domain.DayLayout), RelativeDateStyled(*t.Deadline)))
	}
	if t.PlannedStartAt != nil {
		b.WriteString(fmt.Sprintf("  starts       %s\n", t.PlannedStartAt.Format(domain.DayLayout)))
	}

	b.WriteString("\n  " + RiskBadge(f.Risk) + "\n")
	b.WriteString(fmt.Sprintf("  progress     %s  ideal %s\n",
		RenderProgress(f.ActualProgress, statusProgressBarWidth), RenderPacePair(f.ActualProgress, f.IdealProgress)))
	if f.RequiredPace > 0 {
		b.WriteString(fmt.Sprintf("  pace         %s  required %s  spi %.2f\n",
			FormatPace(f.Pace7d), FormatPace(f.RequiredPaceAdj), f.SPI))
	}
	if f.EACDate != nil {
		b.WriteString(fmt.Sprintf("  finish est.  %s\n", f.EACDate.Format(domain.DayLayout)))
	}

	return strings.TrimRight(b.String(), "\n")
}
