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

	"github.com/me/schedsim/internal/config"
	"github.com/me/schedsim/internal/logging"
	"github.com/me/schedsim/internal/server"
)

func main() {
	cfg := config.DefaultServerConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json)")
	flag.IntVar(&cfg.MaxProcesses, "max-processes", cfg.MaxProcesses, "Largest process list accepted per request")
	flag.IntVar(&cfg.DefaultQuantum, "default-quantum", cfg.DefaultQuantum, "Round Robin quantum when a request omits one")
	flag.IntVar(&cfg.MaxSlices, "max-slices", cfg.MaxSlices, "Largest timeline a single simulation may produce")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	if *debug {
		cfg.LogLevel = "debug"
	}
	if cfg.MaxProcesses <= 0 || cfg.DefaultQuantum <= 0 || cfg.MaxSlices <= 0 {
		fmt.Fprintln(os.Stderr, "max-processes, default-quantum and max-slices must be positive")
		os.Exit(2)
	}

	logger := logging.ForApp(logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat), "schedsim-server")

	srv := server.New(cfg, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "max_processes", cfg.MaxProcesses)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
