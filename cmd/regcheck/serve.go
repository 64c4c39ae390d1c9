package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/reoring/regcheck/i18n"
	"github.com/reoring/regcheck/internal/config"
	"github.com/reoring/regcheck/internal/logger"
	"github.com/reoring/regcheck/internal/metrics"
	ginmw "github.com/reoring/regcheck/middleware/gin"
)

// serveCmd runs the HTTP server until SIGINT or SIGTERM.
func serveCmd(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "", "listen address (overrides REGCHECK_HTTP_ADDR)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	opt, err := cfg.ParseOpt()
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(logger.Environment(cfg.LogMode), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := ginmw.NewRouter(ginmw.Deps{
		Log:        log,
		Metrics:    metrics.New(),
		Opt:        &opt,
		Translator: i18n.For(cfg.Language),
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		log.Info(context.Background(), "received shutdown signal")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	log.Info(context.Background(), "server stopped gracefully")
	return nil
}
