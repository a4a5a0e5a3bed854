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
	"github.com/samvad-hq/catalog-consumer/internal/config"
	"github.com/samvad-hq/catalog-consumer/internal/logger"
	"github.com/samvad-hq/catalog-consumer/internal/stubapi"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stubapi start failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := stubapi.OpenStore(ctx, cfg.StubDBDSN)
	if err != nil {
		return fmt.Errorf("open product store: %w", err)
	}
	defer store.Close()

	servers := []*http.Server{
		{Addr: cfg.StubCatalogAddr, Handler: stubapi.NewCatalogRouter(store, log), ReadHeaderTimeout: 10 * time.Second},
		{Addr: cfg.StubProcessingAddr, Handler: stubapi.NewProcessingRouter(store, log), ReadHeaderTimeout: 10 * time.Second},
	}

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		logger.InfoObj("stub service listening", "addr", srv.Addr)
		go func(srv *http.Server) {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve %s: %w", srv.Addr, err)
			}
		}(srv)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.InfoObj("stub services stopping", "reason", ctx.Err().Error())
	case runErr = <-errCh:
		logger.ErrorObj("stub service failed", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.ErrorObj("stub service shutdown failed", "error", err)
		}
	}
	return runErr
}
