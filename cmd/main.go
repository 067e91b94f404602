package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/mindscan/internal/adapters/facescore"
	"github.com/okian/mindscan/internal/adapters/http/api"
	"github.com/okian/mindscan/internal/adapters/http/site"
	"github.com/okian/mindscan/internal/adapters/http/swagger"
	"github.com/okian/mindscan/internal/adapters/repository"
	"github.com/okian/mindscan/internal/adapters/textscore"
	service "github.com/okian/mindscan/internal/app"
	"github.com/okian/mindscan/internal/config"
	"github.com/okian/mindscan/internal/domain/fusion"
	"github.com/okian/mindscan/pkg/logger"
	"github.com/okian/mindscan/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 15 * time.Second
	writeTimeout           = 30 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "mindscan exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	// defaults -> optional file -> env
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	metrics.RegisterRuntimeCollectors()

	svc, err := buildService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, svc, cfg, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("strategy", svc.Strategy()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// buildService wires the channel scorers, fusion strategy and stress log
// described by cfg into an unstarted Service.
func buildService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	text, err := textscore.New(textscore.Settings{
		Backend:   cfg.TextBackend,
		Endpoint:  cfg.TextEndpoint,
		Timeout:   cfg.TextTimeout(),
		CacheSize: cfg.TextCacheSize,
	})
	if err != nil {
		return nil, fmt.Errorf("text scorer: %w", err)
	}

	strategy, err := fusion.New(cfg.FusionStrategy, fusion.WithVotingThreshold(cfg.VotingThreshold))
	if err != nil {
		return nil, fmt.Errorf("fusion strategy: %w", err)
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithTextScorer(text),
		service.WithStrategy(strategy),
		service.WithParallelChannels(cfg.ParallelChannels),
		service.WithEagerModelInit(cfg.EagerModelInit),
	}

	if cfg.FaceEndpoint != "" {
		detector := facescore.NewHTTPDetector(cfg.FaceEndpoint, facescore.WithDetectorTimeout(cfg.FaceTimeout()))
		opts = append(opts, service.WithFaceScorer(facescore.NewScorer(detector,
			facescore.WithMaxDimension(cfg.FaceMaxDimension),
			facescore.WithMaxPixels(cfg.FaceMaxPixels),
		)))
	}

	if cfg.AuditPath != "" {
		store, err := repository.OpenFileStore(cfg.AuditPath)
		if err != nil {
			return nil, fmt.Errorf("stress log: %w", err)
		}
		opts = append(opts,
			service.WithAuditStore(store),
			service.WithAuditQueueSize(cfg.AuditQueueSize),
			service.WithAuditWorkers(cfg.AuditWorkers),
		)
	}

	return service.New(opts...), nil
}

// newHandler mounts the API, docs and form page on one mux.
func newHandler(ctx context.Context, svc *service.Service, cfg *config.Config, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	apiServer := api.NewServer(svc,
		api.WithMaxUploadBytes(cfg.MaxUploadBytes()),
		api.WithLogger(log),
	)
	apiServer.Register(ctx, mux)
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	return apiServer.Handler(mux)
}

func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}

// updateServiceMetrics publishes metrics that are only available as a
// point-in-time snapshot of the service.
func updateServiceMetrics(svc *service.Service) {
	stats := svc.GetStats()

	if queueLen, ok := stats["audit_queue_length"].(int); ok {
		metrics.UpdateQueueSize(queueLen)
	}
	if state, ok := stats["model_state"].(string); ok {
		metrics.SetModelReady(state == "ready")
	}
}
