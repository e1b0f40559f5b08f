package main // composition root of the check-in API

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/flight-checkin/internal/cache"
	"github.com/iliyamo/flight-checkin/internal/config"
	"github.com/iliyamo/flight-checkin/internal/database"
	"github.com/iliyamo/flight-checkin/internal/handler"
	"github.com/iliyamo/flight-checkin/internal/logging"
	"github.com/iliyamo/flight-checkin/internal/metrics"
	"github.com/iliyamo/flight-checkin/internal/middleware"
	"github.com/iliyamo/flight-checkin/internal/queue"
	"github.com/iliyamo/flight-checkin/internal/repository"
	"github.com/iliyamo/flight-checkin/internal/router"
	"github.com/iliyamo/flight-checkin/internal/seatmap"
	"github.com/iliyamo/flight-checkin/internal/service"
	"github.com/iliyamo/flight-checkin/internal/utils"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of the given password and exit")
	flag.Parse()
	if *hashPassword != "" {
		h, err := utils.HashPassword(*hashPassword, 0)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fleet, err := config.LoadFleet(cfg.FleetPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("redis unavailable; chart cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}
	charts := cache.NewChartCache(config.LoadCacheConfig(), rdb)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.NewCheckinService(
		service.WithStore(repository.NewCheckinRepo(db)),
		service.WithPublisher(queue.NewAMQPPublisher(cfg.AMQPURL)),
		service.WithChartCache(charts),
		service.WithMetrics(metrics.NewPrometheus(reg, "checkin")),
		service.WithLogger(log),
	)
	for _, fc := range fleet.Flights {
		m, err := seatmap.Load(fc.SeatMap, nil)
		if err != nil {
			return fmt.Errorf("flight %s: %w", fc.Number, err)
		}
		if m.Number != fc.Number {
			return fmt.Errorf("flight %s: seat map %s describes flight %s", fc.Number, fc.SeatMap, m.Number)
		}
		f, err := m.Flight(fleet.Weights)
		if err != nil {
			return fmt.Errorf("flight %s: %w", fc.Number, err)
		}
		if err := svc.Register(f); err != nil {
			return err
		}
		if _, err := svc.Restore(ctx, fc.Number); err != nil {
			return err
		}
	}

	go func() {
		err := queue.StartCheckinConsumer(ctx, queue.ConsumerConfig{URL: cfg.AMQPURL, LogDir: cfg.QueueLogDir, Log: log})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("check-in consumer stopped", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				log.Error("request", append(attrs, "error", v.Error)...)
				return nil
			}
			log.Info("request", attrs...)
			return nil
		},
	}))

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log)
	router.RegisterRoutes(e, svc, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	router.RegisterAuth(e, handler.NewAuthHandler(fleet, cfg.JWTSecret, cfg.AccessTTLMin), cfg.JWTSecret)
	router.RegisterCheckin(e, handler.NewCheckinHandler(svc, charts, log), cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "flights", svc.Flights())
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
