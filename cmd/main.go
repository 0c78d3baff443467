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
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/KasumiMercury/dispatch-watch/internal/config"
	"github.com/KasumiMercury/dispatch-watch/internal/domain"
	"github.com/KasumiMercury/dispatch-watch/internal/health"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/calendar"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/decisionrecorder"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/feed"
	"github.com/KasumiMercury/dispatch-watch/internal/infra/repository"
	"github.com/KasumiMercury/dispatch-watch/internal/observability/metrics"
	"github.com/KasumiMercury/dispatch-watch/internal/runner"
	"github.com/KasumiMercury/dispatch-watch/internal/service/decision"
	"github.com/KasumiMercury/dispatch-watch/internal/service/roster"
	"github.com/KasumiMercury/dispatch-watch/internal/service/watch"
)

// Version is set via ldflags at build time
var Version = "dev"

const (
	pollJob   = "poll"
	rosterJob = "roster"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	gateMode, err := decision.ParseGateMode(cfg.Feed.GateMode)
	if err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	watchMetrics, err := metrics.NewWatchMetrics()
	if err != nil {
		slog.Error("failed to initialize watch metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local builds, BigQuery for gcloud builds
	recorder, err := decisionrecorder.NewRecorder(ctx, decisionrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize decision recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close decision recorder", slog.String("error", err.Error()))
		}
	}()

	sink, cleanup, err := initSink(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize notification sink", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("notification sink cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	calendarSource, err := initCalendarSource(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize calendar source", slog.String("error", err.Error()))
		return 1
	}

	var redisClient *redis.Client
	var seenRepo domain.SeenIncidentRepository
	if cfg.Seen.UsesRedis() {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			slog.Error("failed to connect redis",
				slog.String("event", "redis.connect.fail"),
				slog.String("error", err.Error()),
			)
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		slog.Info("redis connected", slog.String("addr", cfg.Redis.Addr))

		seenRepo, err = repository.NewSeenRepository(redisClient, cfg.Seen.TTL)
	} else {
		seenRepo, err = repository.NewMemorySeenRepository(cfg.Seen.TTL)
	}
	if err != nil {
		slog.Error("failed to initialize seen store", slog.String("error", err.Error()))
		return 1
	}

	state := decision.NewState()
	watchService := watch.NewService(watch.Dependencies{
		Feed:      feed.NewClient(cfg.Feed.URL, cfg.Feed.UnitID, cfg.Location),
		Calendar:  calendarSource,
		Scheduler: roster.NewScheduler(),
		Engine:    decision.NewEngine(state, seenRepo, gateMode),
		State:     state,
		Sink:      sink,
		Recorder:  recorder,
		Metrics:   watchMetrics,
	}, cfg.ResponderName, cfg.Location)

	jobs := runner.New(ctx, slog.Default(), cfg.Location)
	if err := jobs.Add(rosterJob, func(ctx context.Context) error {
		_, err := watchService.RefreshRoster(ctx)
		return err
	}, runner.RosterRefreshSpec, runner.MonthStartSpec); err != nil {
		slog.Error("failed to schedule roster refresh", slog.String("error", err.Error()))
		return 1
	}
	if err := jobs.Add(pollJob, func(ctx context.Context) error {
		_, err := watchService.PollOnce(ctx)
		return err
	}, runner.PollSpec(cfg.Feed.PollInterval)); err != nil {
		slog.Error("failed to schedule feed poll", slog.String("error", err.Error()))
		return 1
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	healthChecker := health.NewChecker(redisClient, state, Version, cfg.ResponderName)
	healthChecker.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(r, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("unit_id", cfg.Feed.UnitID),
			slog.Duration("poll_interval", cfg.Feed.PollInterval),
			slog.String("gate_mode", gateMode.String()),
			slog.String("calendar_source", string(cfg.Calendar.Source)),
			slog.String("seen_store", cfg.Seen.Store),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// The first roster is built before the first poll so the gate has shifts to test.
	go func() {
		if err := jobs.RunNow(rosterJob); err != nil {
			slog.Error("initial roster refresh failed", slog.String("error", err.Error()))
		}
		if err := jobs.RunNow(pollJob); err != nil {
			slog.Error("initial poll failed", slog.String("error", err.Error()))
		}
		jobs.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		select {
		case <-jobs.Stop().Done():
		case <-shutdownCtx.Done():
			slog.Warn("scheduled jobs did not finish before shutdown")
		}

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		jobs.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func initCalendarSource(ctx context.Context, cfg *config.Config) (domain.CalendarSource, error) {
	switch cfg.Calendar.Source {
	case config.CalendarSourceGoogle:
		source, err := calendar.NewGoogleSource(ctx, cfg.Calendar.GoogleAPIKey, cfg.Calendar.GoogleCalendarID, cfg.Location)
		if err != nil {
			return nil, err
		}
		return source, nil
	case config.CalendarSourceICS:
		return calendar.NewICSSource(cfg.Calendar.ICSURL), nil
	case config.CalendarSourceFile:
		return calendar.NewFileSource(cfg.Calendar.FilePath, cfg.Location), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownCalendarSource, cfg.Calendar.Source)
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(cfg.Options())

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}
	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
