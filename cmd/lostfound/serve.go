package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/erazemk/lostfound/internal/api"
	"github.com/erazemk/lostfound/internal/auth"
)

type serveCommand struct {
	Addr            string `short:"a" long:"addr" env:"LOSTFOUND_ADDR" default:":8080" description:"Listen address"`
	ExportPerMinute int    `long:"export-per-minute" env:"LOSTFOUND_EXPORT_PER_MINUTE" default:"10" description:"Report downloads allowed per user per minute (0 disables the limit)"`
}

func (c *serveCommand) Execute([]string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	accounts, err := auth.NewAccounts(a.cfg.Accounts)
	if err != nil {
		return fmt.Errorf("loading accounts: %w", err)
	}
	if accounts.Len() == 0 {
		a.l.Warn("no accounts configured, only the health endpoint is usable")
	}

	// Auto-generate JWT secret if not provided.
	secret := a.cfg.JWTSecret
	if secret == "" {
		if secret, err = auth.NewSecret(); err != nil {
			return err
		}
		a.l.Info("JWT secret auto-generated (tokens will be invalidated on restart)")
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := api.NewRouter(api.Config{
		JWTSecret:       secret,
		ExportPerMinute: c.ExportPerMinute,
	}, a.reports, accounts, a.l.Named("http"))
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              c.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		a.l.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			a.l.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Database.Timeout())
	healthy := a.reports.Health(ctx)
	cancel()
	if !healthy {
		a.l.Warn("database unreachable at startup, serving fallback data until it recovers",
			zap.String("database", a.cfg.Database.String()))
	}

	a.l.Info("server started", zap.String("addr", c.Addr), zap.String("database", a.cfg.Database.String()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	a.l.Info("server stopped")
	return nil
}
