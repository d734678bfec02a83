// Package main implements the Centavo gateway entry point. This file handles
// command-line argument parsing, dependency injection, and the HTTP server
// lifecycle including graceful shutdown.
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

	"github.com/centavo-app/centavo/internal/actions"
	"github.com/centavo-app/centavo/internal/client"
	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/logging"
	"github.com/centavo-app/centavo/internal/server"
	"github.com/centavo-app/centavo/internal/session"
)

// Application metadata
const (
	Version     = "1.0.0"
	ProgramName = "Centavo Gateway"
)

// CommandLineArgs represents parsed command-line arguments
type CommandLineArgs struct {
	ConfigPath  string
	Addr        string
	LogLevel    string
	ShowVersion bool
}

func main() {
	args := parseCommandLineArgs()

	if args.ShowVersion {
		fmt.Printf("%s v%s\n", ProgramName, Version)
		return
	}

	cfg, err := config.Load(args.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, args)

	if err := logging.InitGlobalLogger(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	logger := logging.GetGlobalLogger()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err.Error())
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("Gateway terminated with error", "error", err.Error())
		fmt.Fprintf(os.Stderr, "Gateway error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Gateway shutdown completed successfully")
}

// run wires all dependencies and serves until interrupted.
func run(cfg *config.Config, logger *logging.Logger) error {
	api, err := client.New(client.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           time.Duration(cfg.API.Timeout),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})
	if err != nil {
		return fmt.Errorf("initializing API client: %w", err)
	}

	svc := actions.NewService(api, session.NewAccessor(cfg.Session))
	srv := server.New(cfg.Server, svc)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Gateway listening", "addr", cfg.Server.Addr, "api", cfg.API.BaseURL)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// parseCommandLineArgs processes command-line arguments.
func parseCommandLineArgs() CommandLineArgs {
	var args CommandLineArgs

	flag.StringVar(&args.ConfigPath, "config", "", "Path to the YAML configuration file (optional)")
	flag.StringVar(&args.Addr, "addr", "", "Listen address, overrides the configuration file (e.g., :8080)")
	flag.StringVar(&args.LogLevel, "log-level", "", "Log level: debug, info, warn, or error")
	flag.BoolVar(&args.ShowVersion, "version", false, "Display version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", ProgramName, Version)
		fmt.Fprintf(os.Stderr, "Browser-facing gateway for the Centavo personal finance API.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return args
}

// applyOverrides layers command-line flags over the loaded configuration.
func applyOverrides(cfg *config.Config, args CommandLineArgs) {
	if args.Addr != "" {
		cfg.Server.Addr = args.Addr
	}
	if args.LogLevel != "" {
		cfg.Logging.Level = args.LogLevel
	}
}
