// Package game wires the investigation engine into cobra commands.
package game

import (
	"gilmoremanor/internal/achievements"
	"gilmoremanor/internal/catalog"
	"gilmoremanor/internal/db"
	"gilmoremanor/internal/deduction"
	"gilmoremanor/internal/dialogue"
	"gilmoremanor/internal/envstruct"
	"gilmoremanor/internal/errors"
	"gilmoremanor/internal/logging"
	"gilmoremanor/internal/pprofserver"
	"gilmoremanor/internal/save"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "game",
	Title: "Investigation commands",
}

type config struct {
	SqliteURL     string `env:"GILMOREMANOR_SQLITE_URL" envDefault:"./gilmoremanor.sqlite"`
	PprofPort     string `env:"GILMOREMANOR_PPROF_PORT" envDefault:":6060"`
	Pprof         bool   `env:"GILMOREMANOR_PPROF" envDefault:"false"`
	Debug         bool   `env:"GILMOREMANOR_DEBUG" envDefault:"false"`
	AutosaveEvery int    `env:"GILMOREMANOR_AUTOSAVE_EVERY" envDefault:"5"`
}

// app bundles everything a command needs: the case catalog, the sqlite
// repositories and the engines over them.
type app struct {
	cfg          config
	logger       *slog.Logger
	cat          *catalog.Catalog
	dbs          *db.DBs
	saves        *save.Repository
	board        *deduction.Repository
	achievements *achievements.Engine
	aiClient     dialogue.Client
}

func newApp() (*app, error) {
	var cfg config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return nil, errors.Wrap(err, "populate config")
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(logging.NewContextHandler(handler))

	if cfg.Pprof {
		pprofserver.Launch(cfg.PprofPort, logger)
	}

	cat, err := catalog.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load catalog")
	}
	dbs, err := db.NewDB(cfg.SqliteURL)
	if err != nil {
		return nil, errors.Wrap(err, "open database", slog.String("url", cfg.SqliteURL))
	}

	return &app{
		cfg:          cfg,
		logger:       logger,
		cat:          cat,
		dbs:          dbs,
		saves:        save.NewRepository(dbs, cat, logger),
		board:        deduction.NewRepository(dbs, logger),
		achievements: achievements.NewEngine(achievements.NewRepository(dbs, logger), logger),
		aiClient:     dialogue.NewClient(),
	}, nil
}

func (a *app) close() {
	if err := a.dbs.Close(); err != nil {
		a.logger.Error("close database", errors.SlogError(err))
	}
}
