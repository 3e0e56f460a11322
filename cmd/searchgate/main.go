package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchgate/internal/config"
	"github.com/kailas-cloud/searchgate/internal/db"
	dbBleve "github.com/kailas-cloud/searchgate/internal/db/bleve"
	dbRedis "github.com/kailas-cloud/searchgate/internal/db/redis"
	"github.com/kailas-cloud/searchgate/internal/eventlog"
	logpkg "github.com/kailas-cloud/searchgate/internal/logger"
	"github.com/kailas-cloud/searchgate/internal/metrics"
	documentrepo "github.com/kailas-cloud/searchgate/internal/repository/document"
	indexrepo "github.com/kailas-cloud/searchgate/internal/repository/index"
	searchrepo "github.com/kailas-cloud/searchgate/internal/repository/search"
	chiTransport "github.com/kailas-cloud/searchgate/internal/transport/chi"
	"github.com/kailas-cloud/searchgate/internal/usecase/bootstrap"
	documentuc "github.com/kailas-cloud/searchgate/internal/usecase/document"
	healthuc "github.com/kailas-cloud/searchgate/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchgate/internal/usecase/search"
	"github.com/kailas-cloud/searchgate/internal/version"
)

func main() {
	fs := flag.NewFlagSet("searchgate", flag.ExitOnError)
	envFlag := fs.String("env", "", "Environment name; selects config/<env>.yaml (default: $ENV or local)")
	configPath := fs.String("config", "", "Explicit config file path (overrides --env lookup)")
	showVersion := fs.Bool("version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: searchgate [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	env := *envFlag
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchgate API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.String("engine_addr", cfg.Engine.Addr()),
		zap.String("index", cfg.Engine.Index),
	)

	activity, err := eventlog.Open(cfg.EventLog.Path, eventlog.Options{
		SyncWrites: cfg.EventLog.SyncWrites,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to open event log", zap.Error(err))
	}
	defer func() { _ = activity.Close() }()

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := bootstrap.New(bootstrap.Config{
		Index:          cfg.Engine.Index,
		MaxRetries:     cfg.Engine.MaxRetries,
		AttemptTimeout: cfg.Engine.Timeout(),
		Backoff:        cfg.Engine.RetryBackoff(),
		Seed:           cfg.Engine.SeedEnabled(),
	}, activity, logger)

	engine, err := bootstrap.Connect(ctx, runner, engineDialer(cfg.Engine))
	if err != nil {
		logger.Fatal("Search engine not reachable", zap.Error(err))
	}
	defer engine.Close()

	indexRepo := indexrepo.New(engine)
	docRepo := documentrepo.New(engine, cfg.Engine.Index)
	searchRepo := searchrepo.New(engine, cfg.Engine.Index)

	if err := runner.PrepareIndex(ctx, indexRepo, docRepo); err != nil {
		logger.Fatal("Index initialization failed", zap.Error(err))
	}
	logger.Info("Search engine ready", zap.Stringer("state", runner.State()))

	// Create use case services
	docSvc := documentuc.New(docRepo, activity)
	searchSvc := searchuc.New(searchRepo, activity)
	healthSvc := healthuc.New(engine, activity)

	server := chiTransport.NewServer(docSvc, searchSvc, healthSvc, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      buildRouter(cfg.HTTP, server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildRouter stacks the middleware around the API routes. Metrics sit
// outside CORS and the rate limiter so rejected requests are counted too.
func buildRouter(cfg config.HTTPConfig, server *chiTransport.Server, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.CORS(cfg.AllowedOrigins))
	r.Use(chiTransport.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	server.Register(r)
	return r
}

// engineDialer builds the driver client for one connection attempt,
// wrapped with Prometheus instrumentation.
func engineDialer(cfg config.EngineConfig) func(context.Context) (db.Engine, error) {
	return func(_ context.Context) (db.Engine, error) {
		var (
			engine db.Engine
			err    error
		)
		switch cfg.Driver {
		case config.DriverRedis:
			engine, err = dbRedis.NewStore(dbRedis.Config{
				Addrs:    []string{cfg.Addr()},
				Password: cfg.Password,
				Timeout:  cfg.Timeout(),
			})
		case config.DriverBleve:
			engine, err = dbBleve.NewStore(dbBleve.Config{
				Path:    cfg.Path,
				Timeout: cfg.Timeout(),
			})
		default:
			return nil, fmt.Errorf("unknown engine driver %q", cfg.Driver)
		}
		if err != nil {
			return nil, err
		}
		return db.NewInstrumented(engine, metrics.EngineObserver{}), nil
	}
}
