package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/cli/formatter"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change tunables",
	}

	cmd.AddCommand(newSettingsShowCmd(app), newSettingsSetCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Println(formatter.Header("Settings"))
			fmt.Printf("  daily-cap       %s\n", formatter.FormatMinutes(s.DailyCapMin))
			fmt.Printf("  alpha           %.2f\n", s.Alpha)
			fmt.Printf("  relax-factor    %.2f\n", s.RelaxFactor)
			fmt.Printf("  warn-threshold  %.2f\n", s.SPIWarnThreshold)
			fmt.Printf("  default-weight  %d\n", s.DefaultUncertaintyWeight)
			fmt.Printf("  timezone        %s\n", s.Timezone)
			fmt.Printf("  notify window   %s-%s\n", s.NotifyStart, s.NotifyEnd)
			fmt.Printf("  work window     %s-%s\n", s.WorkStart, s.WorkEnd)
			return nil
		},
	}
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var (
		dailyCap, weight            int
		alpha, relax, warnThreshold float64
		timezone                    string
		notifyStart, notifyEnd      string
		workStart, workEnd          string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings (only the flags given are changed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("daily-cap") {
				s.DailyCapMin = dailyCap
			}
			if cmd.Flags().Changed("alpha") {
				s.Alpha = alpha
			}
			if cmd.Flags().Changed("relax-factor") {
				s.RelaxFactor = relax
			}
			if cmd.Flags().Changed("warn-threshold") {
				s.SPIWarnThreshold = warnThreshold
			}
			if cmd.Flags().Changed("default-weight") {
				s.DefaultUncertaintyWeight = weight
			}
			if cmd.Flags().Changed("timezone") {
				s.Timezone = timezone
			}
			if cmd.Flags().Changed("notify-start") {
				s.NotifyStart = notifyStart
			}
			if cmd.Flags().Changed("notify-end") {
				s.NotifyEnd = notifyEnd
			}
			if cmd.Flags().Changed("work-start") {
				s.WorkStart = workStart
			}
			if cmd.Flags().Changed("work-end") {
				s.WorkEnd = workEnd
			}

			if _, err := app.Settings.Update(ctx, s); err != nil {
				return err
			}
			fmt.Println("Settings updated.")
			return nil
		},
	}

	cmd.Flags().IntVar(&dailyCap, "daily-cap", 0, "Default daily capacity in minutes")
	cmd.Flags().Float64Var(&alpha, "alpha", 0, "Exponential pace smoothing factor (0-1)")
	cmd.Flags().Float64Var(&relax, "relax-factor", 0, "Dynamic-buffer relaxation factor (0-1)")
	cmd.Flags().Float64Var(&warnThreshold, "warn-threshold", 0, "SPI below this degrades a task to warn")
	cmd.Flags().IntVar(&weight, "default-weight", 0, "Default uncertainty weight (1-5)")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for day boundaries")
	cmd.Flags().StringVar(&notifyStart, "notify-start", "", "Notification window start (HH:MM)")
	cmd.Flags().StringVar(&notifyEnd, "notify-end", "", "Notification window end (HH:MM)")
	cmd.Flags().StringVar(&workStart, "work-start", "", "Working hours start (HH:MM)")
	cmd.Flags().StringVar(&workEnd, "work-end", "", "Working hours end (HH:MM)")

	return cmd
}
