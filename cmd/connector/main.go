package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/magodo/slog2hclog"

	"github.com/Mase3206/nextcloud-scim-connector/internal/scim"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

func getLogger(debug bool) hclog.Logger {
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelInfo)

	if debug {
		logLevel.Set(slog.LevelDebug)
	}

	return slog2hclog.New(slog.Default(), logLevel)
}

func main() {
	var (
		configPath string
		debug      bool
	)

	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	logger := getLogger(debug)

	if err := run(configPath, logger); err != nil {
		logger.Error("connector exited", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger hclog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	token, err := cfg.SCIMToken()
	if err != nil {
		return err
	}

	directory, err := ocs.NewClient(cfg, logger.Named("ocs"))
	if err != nil {
		return err
	}

	handler := scim.NewHandler(directory, token, logger.Named("scim"))

	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath+"/", http.StripPrefix(cfg.BasePath, handler))

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("listening", "addr", cfg.ListenAddr, "basepath", cfg.BasePath)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(ctx)
}
