package main

//	@title						Pitstop API
//	@version					0.1.0
//	@description				Motorcycle workshop business intelligence: demand forecasts, seasonality, alerts and growth scenarios.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	_ "github.com/HerbHall/pitstop/api/swagger"
	"github.com/HerbHall/pitstop/internal/config"
	"github.com/HerbHall/pitstop/internal/store"
	"github.com/HerbHall/pitstop/internal/version"
	"github.com/HerbHall/pitstop/internal/workshop"
)

const usage = `usage: pitstop [command] [flags]

commands:
  serve     run the HTTP server (default)
  import    load a stock or services spreadsheet
  seed      generate demo workshop data
  version   print version information
`

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "import":
		err = runImport(args)
	case "seed":
		err = runSeed(args)
	case "version":
		fmt.Println(version.Info())
	case "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pitstop %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

// env holds the shared services every command starts from.
type env struct {
	cfg    *config.ViperConfig
	logger *zap.Logger
	db     *store.SQLiteStore
}

// bootstrap loads configuration, builds the logger and opens the database.
func bootstrap(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logger, err := config.NewLogger(cfg.Viper())
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	if f := cfg.Viper().ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded", zap.String("component", "config"), zap.String("source", f))
	} else {
		logger.Warn("no configuration file found, using defaults", zap.String("component", "config"))
	}

	dbCfg := store.DefaultConfig()
	if err := cfg.Sub("database").Unmarshal(&dbCfg); err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	db, err := store.Open(dbCfg)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.CheckVersion(context.Background(), version.Short()); err != nil {
		db.Close()
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("database initialized", zap.String("component", "database"), zap.String("path", dbCfg.Path))

	return &env{cfg: cfg, logger: logger, db: db}, nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.logger.Error("close database", zap.Error(err))
	}
	_ = e.logger.Sync()
}

// workshopStore opens the workshop tables outside the module registry, for
// the offline commands.
func (e *env) workshopStore(ctx context.Context) (*workshop.Store, error) {
	return workshop.NewStore(ctx, e.db)
}
