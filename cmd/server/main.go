package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trends-go/internal/config"
	"trends-go/internal/handler"
	"trends-go/internal/service"
	"trends-go/pkg/logger"
	"trends-go/pkg/metrics"
	"trends-go/pkg/trends"
	"trends-go/pkg/upstream"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Configuration file path")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug mode")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return err
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}

	appLog := logger.New(cfg.Logger)
	logger.SetLogger(appLog)
	logger.SetGlobalLogger(appLog)

	m := metrics.New()
	requester := upstream.New(cfg.Upstream, upstream.WithLogger(appLog), upstream.WithMetrics(m))
	client := trends.NewClient(requester, trends.WithBaseURL(cfg.Search.BaseURL), trends.WithLogger(appLog))
	search := service.NewSearch(client, m, appLog)
	server := handler.NewController(search, cfg.Search, m, appLog).App()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		appLog.Info("Shutdown signal received")
		cancel()
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		appLog.WithField("addr", addr).Info("Server started")
		errCh <- server.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	appLog.Info("Shutting down gracefully")
	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	appLog.Info("Server stopped")
	return nil
}
