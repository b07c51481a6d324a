package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/example/expense-tracker/internal/categorize"
	"github.com/example/expense-tracker/internal/config"
	"github.com/example/expense-tracker/internal/logging"
	"github.com/example/expense-tracker/internal/sample"
	"github.com/example/expense-tracker/internal/storage"
	"github.com/example/expense-tracker/pkg/expense"
)

// app carries the state shared by every subcommand of one invocation
type app struct {
	configPath string
	dataFile   string
	logLevel   string

	// discardUnreadable starts from an empty store when the data file cannot be parsed
	discardUnreadable bool

	cfg         *config.Config
	logger      zerolog.Logger
	repo        *storage.Repository
	store       *expense.Store
	categorizer *categorize.Categorizer
}

// withStore loads configuration and the data file before running fn
func (a *app) withStore(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.open(cmd); err != nil {
			return err
		}
		return fn(cmd, args)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.dataFile != "" {
		cfg.DataFile = a.dataFile
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg

	a.logger, err = logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Out:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	a.categorizer, err = categorize.New(cfg.Categories, cfg.DefaultCategory)
	if err != nil {
		return err
	}

	a.repo = storage.NewRepository(cfg.DataFile, a.logger)
	store, report, err := a.repo.Load()
	switch {
	case err == nil:
		a.store = store
		if len(report.Skipped) > 0 {
			a.logger.Warn().Int("skipped", len(report.Skipped)).Msg("some expense entries could not be read")
		}
	case errors.Is(err, fs.ErrNotExist):
		a.store = expense.NewStore()
		if cfg.SeedSampleData {
			a.store.Replace(sample.Expenses())
			if err := a.repo.Save(a.store); err != nil {
				return fmt.Errorf("failed to save sample data: %w", err)
			}
			a.logger.Info().Str("path", cfg.DataFile).Int("count", a.store.Count()).Msg("no existing data found, saved sample expenses")
		}
	default:
		var perr *expense.ParseError
		if !errors.As(err, &perr) {
			return err
		}
		if !a.discardUnreadable {
			return fmt.Errorf("%w (run \"seed --replace\" to start over)", err)
		}
		a.logger.Warn().Err(err).Msg("discarding unreadable data file")
		a.store = expense.NewStore()
	}

	return nil
}

// save persists the store after a mutation
func (a *app) save() error {
	if err := a.repo.Save(a.store); err != nil {
		a.logger.Error().Err(err).Msg("failed to save expenses")
		return err
	}
	return nil
}
