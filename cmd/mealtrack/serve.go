package mealtrack

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/api"
	"github.com/saadjs/mealtrack/internal/db"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/scheduler"
	"github.com/saadjs/mealtrack/internal/service"
	"github.com/saadjs/mealtrack/pkg/logger"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API and run the weekly summary job",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != "" {
			cfg.Server.Port = servePort
		}
		defer func() { _ = baseLogger.Sync() }()

		sqldb, err := db.OpenMigrated(cfg.DBPath)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		engine := nutrition.NewEngine(service.NewStore(sqldb), nil, logger.Named(baseLogger, "nutrition"))
		handler := api.NewHandler(sqldb, engine, cfg.BaseMaintenance, logger.Named(baseLogger, "handlers"))
		router := api.New(handler, logger.Named(baseLogger, "router"))

		sched := scheduler.New(cfg.SummaryCron, engine, logger.Named(baseLogger, "scheduler"))
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		srv := &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      api.WithCORS(router, cfg.Server.CORSOrigins),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("db", cfg.DBPath))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				baseLogger.Error("http server crashed", zap.Error(err))
				return err
			}
			return nil
		case <-ctx.Done():
			baseLogger.Info("shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			baseLogger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides MEALTRACK_PORT)")
}
