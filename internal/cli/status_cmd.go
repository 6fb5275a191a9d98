package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/cli/formatter"
	"github.com/calebmorris/pacer/internal/contract"
)

func newStatusCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the forecast for every task",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Forecasts.Status(context.Background(), contract.StatusRequest{IncludeArchived: all})
			if err != nil {
				return err
			}
			if len(resp.Tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Println(formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived tasks")
	return cmd
}

func newGuideCmd(app *App) *cobra.Command {
	var task string

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the minutes a task needs today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveTaskID(ctx, app, task)
			if err != nil {
				return err
			}
			resp, err := app.Forecasts.Guide(ctx, contract.GuideRequest{TaskID: id})
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatGuide(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&task, "task", "", "Task ID, prefix or title")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}
