package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/slinet/ehparse/internal/config"
	"github.com/slinet/ehparse/internal/handler"
	"github.com/slinet/ehparse/internal/logger"
	"github.com/slinet/ehparse/internal/scheduler"
	"github.com/slinet/ehparse/internal/spool"
	"github.com/slinet/ehparse/pkg/parser"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	enableScheduler := flag.Bool("scheduler", false, "enable spool scheduler")
	flag.Parse()

	// Load configuration first
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	p, err := parser.New(cfg.Parser.Options())
	if err != nil {
		log.Fatal("failed to build parser", zap.Error(err))
	}

	log.Info("configuration loaded",
		zap.Strings("hosts", p.Hosts()),
		zap.Int("port", cfg.Server.Port),
	)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(cfg.Server, log, p)

	// Start scheduler if enabled
	sched, err := startScheduler(*enableScheduler, cfg, p, log)
	if err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	if sched != nil {
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info("starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

// startScheduler starts the cron loop when the -scheduler flag is set. Each
// task is still gated by its own scheduler.*_enabled setting.
func startScheduler(enabled bool, cfg *config.Config, p *parser.Parser, log *zap.Logger) (*scheduler.Scheduler, error) {
	if !enabled {
		return nil, nil
	}
	sp := spool.New(cfg.Spool, p, log.Named("spool"))
	job := scheduler.RunnerFunc(func(ctx context.Context) error {
		_, err := sp.Run(ctx)
		return err
	})
	sched := scheduler.New(cfg.Scheduler, job, 30*time.Minute, log)
	if err := sched.Start(); err != nil {
		return nil, err
	}
	log.Info("scheduler enabled")
	return sched, nil
}
