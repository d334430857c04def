package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-extras/cobraflags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourEmotion/blog/internal/handler"
	"go.uber.org/zap"
)

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), v)
		},
	}
	cobraflags.RegisterMap(cmd, serveFlags())
	return cmd
}

func serve(ctx context.Context, v *viper.Viper) error {
	cfg, flush, err := setup(v)
	if err != nil {
		return err
	}
	defer flush()

	zap.L().Info("Starting blog service")

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	router := handler.NewRouter(store, handler.RouterOptions{
		SSL:          cfg.HTTP.SSL,
		ServeMetrics: cfg.MetricsPort == 0,
	})

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: router,
	}
	errCh := make(chan error, 2)

	var metricsSrv *http.Server
	if cfg.MetricsPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.MetricsPort),
			Handler: mux,
		}
		go func() {
			zap.L().Info("Prometheus metrics listening", zap.Int("port", cfg.MetricsPort))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("failed to serve metrics: %w", err)
			}
		}()
	}

	go func() {
		zap.L().Info("HTTP server started", zap.Int("port", cfg.HTTP.Port))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	var serveErr error
	select {
	case <-sig:
	case serveErr = <-errCh:
		zap.L().Error("server failed", zap.Error(serveErr))
	}

	zap.L().Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server shutdown failed", zap.Error(err))
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("metrics server shutdown failed", zap.Error(err))
		}
	}
	zap.L().Info("Servers stopped gracefully")
	return serveErr
}
