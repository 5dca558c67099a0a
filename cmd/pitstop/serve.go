package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/internal/auth"
	"github.com/HerbHall/pitstop/internal/event"
	"github.com/HerbHall/pitstop/internal/insight"
	"github.com/HerbHall/pitstop/internal/registry"
	"github.com/HerbHall/pitstop/internal/server"
	"github.com/HerbHall/pitstop/internal/version"
	"github.com/HerbHall/pitstop/internal/workshop"
	"github.com/HerbHall/pitstop/internal/ws"
	"github.com/HerbHall/pitstop/pkg/plugin"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	e, err := bootstrap(*configPath)
	if err != nil {
		return err
	}
	defer e.close()
	logger := e.logger

	logger.Info("Pitstop server starting", zap.String("version", version.Short()))

	bus := event.NewBus(logger.Named("event"))
	reg := registry.New(logger.Named("registry"))

	modules := []plugin.Plugin{
		workshop.New(),
		insight.New(),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			return fmt.Errorf("register module: %w", err)
		}
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("module validation: %w", err)
	}

	srvCfg := server.DefaultConfig()
	if err := e.cfg.Sub("server").Unmarshal(&srvCfg); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reg.InitAll(ctx, func(name string) plugin.Dependencies {
		return plugin.Dependencies{
			Config:  e.cfg.Sub("plugins." + name),
			Logger:  logger.Named(name),
			Store:   e.db,
			Bus:     bus,
			Plugins: reg,
		}
	}); err != nil {
		return fmt.Errorf("initialize modules: %w", err)
	}
	if err := reg.StartAll(ctx); err != nil {
		return fmt.Errorf("start modules: %w", err)
	}
	modulesRunning := true
	stopModules := func(ctx context.Context) {
		if !modulesRunning {
			return
		}
		modulesRunning = false
		reg.StopAll(ctx)
		bus.Wait()
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		stopModules(stopCtx)
	}()

	authStore, err := auth.NewUserStore(ctx, e.db)
	if err != nil {
		return fmt.Errorf("initialize auth store: %w", err)
	}
	tokens, err := tokenService(e, logger)
	if err != nil {
		return err
	}
	authService := auth.NewService(authStore, tokens, logger.Named("auth"))
	authHandler := auth.NewHandler(authService, logger.Named("auth"))

	janitor, err := auth.NewJanitor(authStore, e.cfg.GetString("auth.janitor_schedule"), logger.Named("auth"))
	if err != nil {
		return err
	}
	janitor.Start()

	wsHandler := ws.NewHandler(tokens, authService, bus, logger.Named("ws"))

	ready := server.ReadinessChecker(e.db.Ping)
	srv := server.New(srvCfg, reg, logger, ready, authHandler, wsHandler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info("Pitstop server ready", zap.String("addr", srvCfg.Addr()))
	fmt.Fprintf(os.Stderr, "\n  Pitstop %s is ready!\n  Open http://localhost:%d in your browser.\n\n", version.Short(), srvCfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	var serveErr error
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case serveErr = <-errCh:
		logger.Error("server stopped unexpectedly", zap.Error(serveErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	wsHandler.Close()
	janitor.Stop()
	stopModules(shutdownCtx)

	logger.Info("Pitstop server stopped")
	return serveErr
}

// tokenService builds the JWT issuer. Without a configured secret an
// ephemeral one is generated and sessions end at restart.
func tokenService(e *env, logger *zap.Logger) (*auth.TokenService, error) {
	secret := e.cfg.GetString("auth.jwt_secret")
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate JWT secret: %w", err)
		}
		secret = hex.EncodeToString(b)
		logger.Warn("using auto-generated JWT secret (set auth.jwt_secret to keep sessions across restarts)",
			zap.String("component", "auth"),
		)
	} else if len(secret) < 32 {
		return nil, errors.New("auth.jwt_secret must be at least 32 characters")
	}

	accessTTL := e.cfg.GetDuration("auth.access_token_ttl")
	refreshTTL := e.cfg.GetDuration("auth.refresh_token_ttl")
	logger.Info("auth service initialized",
		zap.String("component", "auth"),
		zap.Duration("access_token_ttl", accessTTL),
		zap.Duration("refresh_token_ttl", refreshTTL),
	)
	return auth.NewTokenService([]byte(secret), accessTTL, refreshTTL), nil
}
