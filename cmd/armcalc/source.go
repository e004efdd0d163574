package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/armcalc/internal/config"
	"github.com/udisondev/armcalc/internal/data"
	"github.com/udisondev/armcalc/internal/db"
	"github.com/udisondev/armcalc/internal/store"
)

// loadTables reads and validates game data from the configured source.
func (a *app) loadTables(ctx context.Context) (*data.Tables, error) {
	src, closeSrc, err := openSource(ctx, a.cfg, a.cfg.Source)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	tables, err := src.LoadTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading game data from %s: %w", a.cfg.Source, err)
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// openSource returns the data source of the given kind and a func
// releasing its resources.
func openSource(ctx context.Context, cfg config.Calculator, kind string) (data.Source, func(), error) {
	switch kind {
	case config.SourceFile:
		return cfg.FileSource(), func() {}, nil

	case config.SourcePostgres:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Debug("database connected", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)
		return db.NewGameDataRepository(database.Pool()), database.Close, nil

	case config.SourceSQLite:
		st, err := store.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			if err := st.Close(); err != nil {
				slog.Warn("closing sqlite store", "path", cfg.SQLitePath, "error", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, kind)
	}
}
