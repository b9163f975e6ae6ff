// Package bootstrap turns a config.Config into ready-to-use collaborators for
// the binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/de-tools/statement-atlas/pkg/services/accounts"
	"github.com/de-tools/statement-atlas/pkg/services/config"
	"github.com/de-tools/statement-atlas/pkg/services/source"
	"github.com/de-tools/statement-atlas/pkg/services/statement"
	"github.com/de-tools/statement-atlas/pkg/services/statement/bs"
	"github.com/de-tools/statement-atlas/pkg/services/statement/cf"
	"github.com/de-tools/statement-atlas/pkg/services/statement/pl"
	"github.com/de-tools/statement-atlas/pkg/store/lineitems"
	"github.com/de-tools/statement-atlas/pkg/store/sqlite"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Registry returns a registry holding the built-in statements.
func Registry() (statement.Registry, error) {
	return statement.NewRegistry(map[string]statement.Factory{
		pl.ReportType: pl.Factory,
		bs.ReportType: bs.Factory,
		cf.ReportType: cf.Factory,
	})
}

// LoadEnv loads path into the process environment. A missing file is not an
// error; an unreadable or malformed one is.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func Logger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

// OpenDB opens the configured database. SQLite databases are migrated on open;
// any other driver is expected to already carry the line_items table.
func OpenDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if cfg.Driver == sqlite.DriverName {
		return sqlite.NewDB(sqlite.Settings{DbPath: cfg.DSN})
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// Runtime bundles the collaborators shared by the CLI and the web server.
type Runtime struct {
	Config       *config.Config
	Dependencies statement.Dependencies
	Registry     statement.Registry
	Service      statement.Service

	db      *sqlx.DB
	closers []func() error
}

func New(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	rt := &Runtime{Config: cfg}

	chart, err := loadChart(cfg.Accounts)
	if err != nil {
		return nil, err
	}

	src, err := rt.openSource(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Registry, err = Registry()
	if err != nil {
		rt.Close()
		return nil, err
	}

	rt.Dependencies = statement.Dependencies{
		Source:   src,
		Accounts: chart,
		Config:   cfg,
	}
	rt.Service, err = statement.NewService(rt.Registry, rt.Dependencies, nil)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// DB returns the configured database, opening it on first use. The
// connection is released by Close.
func (rt *Runtime) DB() (*sqlx.DB, error) {
	if rt.db != nil {
		return rt.db, nil
	}
	db, err := OpenDB(rt.Config.Database)
	if err != nil {
		return nil, err
	}
	rt.db = db
	rt.closers = append(rt.closers, db.Close)
	return db, nil
}

func (rt *Runtime) LineItems() (lineitems.Store, error) {
	db, err := rt.DB()
	if err != nil {
		return nil, err
	}
	return lineitems.NewStore(db)
}

func (rt *Runtime) Close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		errs = append(errs, rt.closers[i]())
	}
	rt.closers = nil
	rt.db = nil
	return errors.Join(errs...)
}

func (rt *Runtime) openSource(ctx context.Context, cfg *config.Config) (source.Source, error) {
	logger := zerolog.Ctx(ctx)

	switch cfg.Source.Kind {
	case config.SourceReference, "":
		logger.Debug().Msg("using reference data source")
		return source.NewReference(), nil
	case config.SourceFile:
		logger.Debug().Str("file", cfg.Source.File).Msg("using ledger file source")
		return source.NewFile(cfg.Source.File)
	case config.SourceSQL:
		logger.Debug().Str("driver", cfg.Database.Driver).Msg("using sql source")
		store, err := rt.LineItems()
		if err != nil {
			return nil, err
		}
		return source.NewSQL(store), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.Source.Kind)
	}
}

func loadChart(cfg config.AccountsConfig) (accounts.Lookup, error) {
	if cfg.ChartPath == "" {
		return accounts.DefaultChart(), nil
	}
	chart, err := accounts.LoadChart(cfg.ChartPath)
	if err != nil {
		return nil, err
	}
	return chart, nil
}
