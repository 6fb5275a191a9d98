package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/cli/formatter"
	"github.com/calebmorris/pacer/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	var capMin float64

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute or refresh today's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Plans.PlanDay(context.Background(), contract.NewPlanRequest(capMin))
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().Float64Var(&capMin, "cap", 0, "Today's capacity in minutes (default from settings)")

	cmd.AddCommand(newPlanShowCmd(app), newPlanHistoryCmd(app))
	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored plan without recomputing",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.GetPlan(context.Background(), day)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatStoredPlan(plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Plan day (YYYY-MM-DD, default today)")
	return cmd
}

func newPlanHistoryCmd(app *App) *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a day's plan revisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			revs, err := app.Plans.ListRevisions(context.Background(), day)
			if err != nil {
				return err
			}
			if len(revs) == 0 {
				fmt.Println("No revisions.")
				return nil
			}
			for _, rev := range revs {
				fmt.Printf("%s  %s\n", rev.ChangedAt.Local().Format("15:04:05"), formatter.Dim(rev.ID[:8]))
				fmt.Printf("  before: %s\n", formatter.Dim(rev.Before))
				fmt.Printf("  after:  %s\n", rev.After)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Plan day (YYYY-MM-DD, default today)")
	return cmd
}
