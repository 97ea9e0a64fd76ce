package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpadapter "bdcompass/internal/adapters/http"
	kafkaadapter "bdcompass/internal/adapters/kafka"
	pg "bdcompass/internal/adapters/postgres"
	"bdcompass/internal/config"
	"bdcompass/internal/logging"
	"bdcompass/internal/ports"
	"bdcompass/internal/services/analysis"
	"bdcompass/internal/workers/analysisrunner"
	"bdcompass/internal/workers/digestcron"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, cfgErr := config.Load()
	if cfgErr != nil && !errors.Is(cfgErr, config.ErrNoDatabaseURL) {
		return fmt.Errorf("config: %w", cfgErr)
	}

	log, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	if cfgErr != nil {
		log.Warn("config", zap.Error(cfgErr))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pub ports.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := kafkaadapter.NewProducer(cfg.KafkaBrokers, log)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("kafka close", zap.Error(err))
			}
		}()
		pub = producer
		log.Info("kafka publisher enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	var wg sync.WaitGroup
	srv := httpadapter.New(nil, nil, nil, log)
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return err
		}

		svc := analysis.New(db, db, db, db, pub, log)
		srv = httpadapter.New(svc, db, svc, log)

		if cfg.AnalysisWorkers > 0 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				analysisrunner.Run(ctx, db, svc, cfg.AnalysisWorkers, 500*time.Millisecond, log)
			}()
			log.Info("analysis workers started", zap.Int("workers", cfg.AnalysisWorkers))
		}

		sched := digestcron.New(db, pub, log)
		if err := sched.Start(ctx, cfg.DigestSchedule); err != nil {
			return err
		}
		defer sched.Stop()
	} else {
		log.Warn("no database configured; serving stateless endpoints only")
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()
	log.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("env", cfg.Env))

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("server error: %w", err)
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	wg.Wait()
	return serveErr
}
