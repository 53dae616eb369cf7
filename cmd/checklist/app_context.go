package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/checklist/internal/app"
	"github.com/alexisbeaulieu97/checklist/internal/config"
	"github.com/alexisbeaulieu97/checklist/internal/logger"
	"github.com/alexisbeaulieu97/checklist/internal/store/sqlite"
)

// AppContext bundles the long-lived services a command needs.
type AppContext struct {
	Config     *config.Config
	Log        *logger.Logger
	Store      *sqlite.Store
	Templates  *app.TemplateService
	Checklists *app.ChecklistService

	closers []io.Closer
}

type logTarget int

const (
	logToStderr logTarget = iota
	logToFile
)

// openApp loads the configuration, opens the database and seeds the sample
// templates on first use.
func openApp(cmd *cobra.Command, flags *rootFlags, target logTarget) (*AppContext, error) {
	v, err := config.NewViper(flags.configFile)
	if err != nil {
		return nil, newCommandError("start", "reading configuration", err, "Check the file passed with --config exists and is valid YAML.")
	}
	if flags.dataDir != "" {
		v.Set("data_dir", flags.dataDir)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, newCommandError("start", "validating configuration", err, "Fix the configuration value named above and try again.")
	}

	a := &AppContext{Config: cfg}

	switch target {
	case logToFile:
		log, closer, err := logger.NewFile(cfg.LogPath(), cfg.Log.Level)
		if err != nil {
			return nil, newCommandError("start", "opening log file", err, "Check that the data directory is writable.")
		}
		a.Log = log
		a.closers = append(a.closers, closer)
	default:
		level := "warn"
		if flags.verbose {
			level = "debug"
		}
		log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
		if err != nil {
			return nil, err
		}
		a.Log = log
	}

	store, err := sqlite.Open(cfg.DatabasePath(), sqlite.WithLogger(a.Log))
	if err != nil {
		_ = a.Close()
		return nil, newCommandError("start", fmt.Sprintf("opening database %s", cfg.DatabasePath()), err, "Check that the data directory is writable.")
	}
	a.Store = store
	a.closers = append([]io.Closer{store}, a.closers...)

	a.Templates = app.NewTemplateService(store, store, a.Log)
	a.Checklists = app.NewChecklistService(store, store, a.Log)

	if cfg.Samples.Enabled {
		n, err := app.NewSampleLoader(store, a.Log).Load(cmd.Context())
		if err != nil {
			a.Log.Error(err, "loading sample templates failed")
		} else if n > 0 {
			a.Log.WithFields(map[string]any{"count": n}).Info("sample templates loaded")
		}
	}

	return a, nil
}

// Close releases the database and log file.
func (a *AppContext) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// withApp opens the application for the duration of fn.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(a *AppContext) error) error {
	a, err := openApp(cmd, flags, logToStderr)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
