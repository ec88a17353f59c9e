package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/punchclock/internal/cache"
	"github.com/alexanderramin/punchclock/internal/cli"
	"github.com/alexanderramin/punchclock/internal/config"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/logging"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/alexanderramin/punchclock/internal/store"
	"github.com/mattn/go-isatty"
)

// cacheEntries bounds the query cache.
const cacheEntries = 256

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	ctx := logging.ContextWithLogger(context.Background(), logger)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	st := store.New(store.NewSQLiteBackend(database, cfg.QuotaBytes), store.Options{
		Namespace: cfg.Namespace,
		Logger:    logger,
		Retain:    domain.DurableKeys,
	})
	if n, err := st.Sweep(ctx); err != nil {
		logger.Warn("sweeping expired entries failed", "error", err)
	} else if n > 0 {
		logger.Debug("swept expired entries", "removed", n)
	}

	// Wire repositories
	records := repository.NewRecords(st, repository.Options{
		Cache:  cache.New(cfg.CacheTTL, cacheEntries, nil),
		Logger: logger,
	})
	defer records.Close()

	// Wire services
	observer := service.NewSlogUseCaseObserver(logger)
	profiles := service.NewProfileService(repository.NewProfileStore(st), domain.UserProfile{
		ID:                cfg.UserID,
		Name:              cfg.UserName,
		WeeklyTargetHours: cfg.WeeklyTarget,
	})

	app := &cli.App{
		Tracker:     service.NewTimeTrackingService(st, records, profiles, nil, observer),
		Records:     records,
		Activities:  service.NewActivityService(records, profiles, observer),
		Stats:       service.NewStatsService(records, profiles, nil, observer),
		Data:        service.NewDataService(st, records, nil, observer),
		Profiles:    profiles,
		Maintenance: service.NewMaintenanceService(st, observer),
	}

	// Forms and the live clock need a terminal on both ends.
	app.IsInteractive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	// Execute root command
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
