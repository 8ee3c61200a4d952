package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/prontuario/api/internal/platform/db"
)

// Options selects and configures a Backend.
type Options struct {
	Driver      string
	DataDir     string
	SQLitePath  string
	DatabaseURL string
	MaxConns    int32
	MinConns    int32
	// Migrate applies the bundled SQL migrations when opening postgres.
	Migrate bool
}

// Open constructs the Backend named by opts.Driver.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Backend, error) {
	switch opts.Driver {
	case DriverFile, "":
		b, err := NewFileBackend(opts.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("dir", opts.DataDir).Msg("using file store")
		return b, nil
	case DriverMemory:
		logger.Warn().Msg("using in-memory store, data is lost on exit")
		return NewMemoryBackend(), nil
	case DriverSQLite:
		b, err := NewSQLiteBackend(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", b.Path()).Msg("using sqlite store")
		return b, nil
	case DriverPostgres:
		pool, err := db.NewPool(ctx, opts.DatabaseURL, opts.MaxConns, opts.MinConns)
		if err != nil {
			return nil, err
		}
		if opts.Migrate {
			n, err := db.NewMigrator(pool, db.Migrations()).Up(ctx)
			if err != nil {
				pool.Close()
				return nil, err
			}
			logger.Info().Int("applied", n).Msg("migrations applied")
		}
		logger.Info().Msg("connected to database")
		return NewPostgresBackend(pool), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
