package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/calebmorris/pacer/internal/cli"
	"github.com/calebmorris/pacer/internal/db"
	"github.com/calebmorris/pacer/internal/repository"
	"github.com/calebmorris/pacer/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.pacer/pacer.db
	dbPath := os.Getenv("PACER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pacer", "pacer.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	logRepo := repository.NewSQLiteDayLogRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case telemetry on stderr
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("PACER_LOG") == "1" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	forecastSvc := service.NewForecastService(taskRepo, logRepo, settingsRepo, observer)

	app := &cli.App{
		Tasks:     service.NewTaskService(taskRepo, settingsRepo, observer),
		Logs:      service.NewLogService(logRepo, settingsRepo, uow, observer),
		Forecasts: forecastSvc,
		Plans:     service.NewPlanService(taskRepo, planRepo, settingsRepo, forecastSvc, uow, observer),
		Settings:  service.NewSettingsService(settingsRepo),
	}

	// Detect interactive terminal for form-based entrypoints.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
