package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vots/cservice/internal/api"
	"github.com/vots/cservice/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long:  "Bind the listener, serve /health and the greeting fallback, and block until SIGINT or SIGTERM triggers graceful shutdown.",
	RunE:  runServe,
}

var listenAddr string

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	logLevel.Set(lvl)

	srv := api.NewServer(cfg.ListenAddr)

	// A failed bind is fatal and never retried.
	if err := srv.Listen(); err != nil {
		return fmt.Errorf("binding %s: %w", cfg.ListenAddr, err)
	}

	// Signal handlers go in only once the listener is bound. The
	// buffered channel absorbs the first signal; any repeats while
	// shutdown is already underway are simply dropped.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve() }()

	if cfgPath != "" {
		go func() {
			if err := config.Watch(ctx, cfgPath, cfg, logLevel); err != nil {
				slog.Error("config watcher error", "error", err)
			}
		}()
	}

	slog.Info("cservice ready", "addr", srv.Addr())

	// Block until a termination signal or a serve failure. No polling:
	// the main goroutine is parked here for the life of the process.
	select {
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace.Duration)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown incomplete", "error", err)
	}

	slog.Info("cservice stopped")
	return nil
}
