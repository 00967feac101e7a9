package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"classifyd/internal/common/fsutil"
	"classifyd/internal/config"
	"classifyd/internal/engine"
	"classifyd/internal/httpapi"
	"classifyd/internal/manager"
	"classifyd/internal/registry"
)

// backendFactory opens the model runtime. engine.NewBackend in production.
type backendFactory func(engine.Options) (engine.Backend, error)

// run loads every model, serves HTTP until ctx is canceled, then shuts down
// gracefully. Any startup failure is returned before the listener opens.
// onListen, if set, receives the bound address.
func run(ctx context.Context, cfg config.Config, log zerolog.Logger, newBackend backendFactory, onListen func(net.Addr)) error {
	dev, err := engine.ParseDevice(cfg.Device)
	if err != nil {
		return err
	}
	baseDir := cfg.ModelsDir
	if baseDir == "" {
		if baseDir, err = fsutil.ExecutableDir(); err != nil {
			return fmt.Errorf("models dir: %w", err)
		}
	}

	be, err := newBackend(engine.Options{LibraryPath: cfg.OnnxRuntimeLib, IntraOpThreads: cfg.IntraOpThreads})
	if err != nil {
		return fmt.Errorf("init runtime: %w", err)
	}
	defer func() {
		if err := be.Close(); err != nil {
			log.Warn().Err(err).Msg("runtime shutdown")
		}
	}()

	start := time.Now()
	reg, err := registry.Load(ctx, be, cfg.ModelSpecs(), registry.Options{
		BaseDir:   baseDir,
		Device:    dev,
		MaxTokens: cfg.MaxTokens,
		Logger:    &log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := reg.Close(); err != nil {
			log.Warn().Err(err).Msg("closing models")
		}
	}()
	log.Info().
		Str("backend", reg.Backend()).
		Str("device", string(reg.Device())).
		Interface("models", reg.IDs()).
		Dur("dur", time.Since(start)).
		Msg("models loaded")

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:  reg,
		Publisher: manager.NewLogPublisher(log),
		Logger:    &log,
	})

	httpapi.SetLogger(log)
	httpapi.SetRequestLogLevel(cfg.RequestLog)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetPredictTimeoutSeconds(cfg.PredictTimeoutSeconds)
	httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders, cfg.CORS.AllowCredentials)
	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{
		Handler:           httpapi.NewMux(mgr),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Str("models_dir", baseDir).Bool("swagger", httpapi.SwaggerEnabled).Msg("classifyd listening")
		errCh <- srv.Serve(ln)
	}()
	if onListen != nil {
		onListen(ln.Addr())
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	grace := time.Duration(cfg.ShutdownSeconds) * time.Second
	if grace <= 0 {
		grace = config.DefaultShutdownSeconds * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)
	// In-flight predictions still running after the grace period are canceled.
	cancelBase()
	if err != nil {
		log.Warn().Err(err).Msg("graceful shutdown error")
	}
	return nil
}
