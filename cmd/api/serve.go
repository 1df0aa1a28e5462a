package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mandalnilabja/artgen/internal/app"
	"github.com/mandalnilabja/artgen/internal/config"
	"github.com/mandalnilabja/artgen/internal/generation"
	"github.com/mandalnilabja/artgen/internal/logger"
	"github.com/mandalnilabja/artgen/internal/pinning/pinata"
	"github.com/mandalnilabja/artgen/internal/provider/clipdrop"
	"github.com/mandalnilabja/artgen/internal/storage"
	"github.com/mandalnilabja/artgen/internal/transport/http/handler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

type serveOptions struct {
	configPath string
	port       int
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.DefaultConfigPath, "path to the TOML config file")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "listen port (overrides PORT and the config file)")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.port != 0 {
		cfg.Port = opts.port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := openRecorder(ctx, cfg, log)
	if recorder != nil {
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Warn("failed to close store", zap.Error(err))
			}
		}()
	}

	gen := clipdrop.New(clipdrop.Options{
		APIKey:  cfg.Clipdrop.APIKey,
		URL:     cfg.Clipdrop.URL,
		Timeout: cfg.Clipdrop.Timeout,
		Logger:  log,
	})
	if !gen.Configured() {
		log.Warn("CLIPDROP_API_KEY not set; generation requests will fail")
	}

	pub := pinata.New(pinata.Options{
		JWT:        cfg.Pinata.JWT,
		URL:        cfg.Pinata.URL,
		GatewayURL: cfg.Pinata.GatewayURL,
		Timeout:    cfg.Pinata.Timeout,
		Logger:     log,
	})
	if !cfg.PublishingEnabled() {
		log.Info("PINATA_JWT not set; IPFS publishing disabled")
	}

	pipeline := generation.New(generation.Options{
		Generator:      gen,
		Publisher:      pub,
		Recorder:       recorder,
		ExcerptLength:  cfg.Pinata.PromptExcerptLength,
		PublishTimeout: cfg.Pinata.Timeout,
		RecordTimeout:  cfg.Store.Timeout,
		Logger:         log,
	})

	repo := handler.NewRepo(pipeline, log)
	router := app.NewRouter(repo, &app.RouterOptions{Logger: log})
	srv := app.NewServer(cfg, router, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// openRecorder opens the metadata store. A store that is down at startup
// still gets a recorder; only an unusable URI disables recording.
func openRecorder(ctx context.Context, cfg *config.Config, log *zap.Logger) storage.Recorder {
	if cfg.Store.URI == "" {
		log.Info("MONGODB_URI not set; metadata recording disabled")
		return nil
	}

	rec, err := storage.Open(ctx, cfg.Store.URI, storage.Options{Database: cfg.Store.Database, Logger: log})
	if err != nil {
		log.Warn("metadata store unavailable; recording disabled",
			zap.String("uri", storage.RedactURI(cfg.Store.URI)),
			zap.Error(err))
		return nil
	}

	log.Info("metadata store configured", zap.String("uri", storage.RedactURI(cfg.Store.URI)))
	return rec
}
