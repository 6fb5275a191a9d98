package cli

import (
	"github.com/spf13/cobra"

	"github.com/calebmorris/pacer/internal/service"
)

// App holds the service interfaces the CLI commands run against.
type App struct {
	Tasks     service.TaskService
	Logs      service.LogService
	Forecasts service.ForecastService
	Plans     service.PlanService
	Settings  service.SettingsService

	// IsInteractive reports whether stdin is a terminal; interactive
	// prompts are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pacer" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pacer",
		Short: "Task progress forecasting and daily capacity planning",
	}

	root.AddCommand(
		newTaskCmd(app),
		newLogCmd(app),
		newPlanCmd(app),
		newStatusCmd(app),
		newGuideCmd(app),
		newSettingsCmd(app),
	)

	return root
}
