package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trknhr/cardlog/internal/config"
	"github.com/trknhr/cardlog/internal/journal"
	"github.com/trknhr/cardlog/internal/location"
	"github.com/trknhr/cardlog/internal/logger"
	"github.com/trknhr/cardlog/internal/model/engine"
	"github.com/trknhr/cardlog/internal/store"
)

var Version = "dev"

// app is everything a subcommand needs, built once per invocation.
type app struct {
	cfg     config.Config
	db      *sql.DB
	journal *journal.Service
	geo     location.Provider
}

func (a *app) Close() error {
	if c, ok := a.geo.(interface{ Close() error }); ok {
		c.Close()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// bootstrap replays history synchronously. One-shot commands need it before
// they can estimate anything.
func (a *app) bootstrap(ctx context.Context) error {
	n, err := a.journal.Engine().Bootstrap(ctx)
	if err != nil {
		return err
	}
	logger.Debug("replayed %d entries", n)
	return nil
}

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var a *app

	cmd := &cobra.Command{
		Use:          "cardlog",
		Short:        "Journal cards with contextual title suggestions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp(opts)
			if err != nil {
				return err
			}
			a = built
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "path to config.yaml")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")

	current := func() *app { return a }
	cmd.AddCommand(
		newAddCmd(current),
		newSuggestCmd(current),
		newInspectCmd(current),
		newListCmd(current),
		newServeCmd(current),
	)
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		return nil, err
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	db, err := store.OpenDB(dbPath)
	if err != nil {
		return nil, err
	}

	st := store.NewSQLEntryStore(db)
	eng := engine.New(st,
		engine.WithHistoryWindow(cfg.Engine.HistoryWindow),
		engine.WithLimit(cfg.Engine.Limit),
	)
	geo := newProvider(cfg.Location)
	svc := journal.NewService(st, eng, geo, journal.WithContextDepth(cfg.Engine.ContextDepth))

	return &app{cfg: cfg, db: db, journal: svc, geo: geo}, nil
}

func newProvider(cfg config.LocationConfig) location.Provider {
	if cfg.File == "" {
		return location.Static(cfg.Static)
	}
	p, err := location.NewFileProvider(cfg.File)
	if err != nil {
		logger.WarnNoLocationOnce(err)
		return location.Static(cfg.Static)
	}
	return p
}
