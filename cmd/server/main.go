package main // Entry point package

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/tikevents/tikevents/internal/config"
	"github.com/tikevents/tikevents/internal/database"
	"github.com/tikevents/tikevents/internal/database/migrations"
	"github.com/tikevents/tikevents/internal/handler"
	"github.com/tikevents/tikevents/internal/middleware"
	"github.com/tikevents/tikevents/internal/queue"
	"github.com/tikevents/tikevents/internal/repository"
	"github.com/tikevents/tikevents/internal/router"
	"github.com/tikevents/tikevents/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply the schema to the configured store and exit")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash of `password` for OPERATOR_PASSWORD_HASH and exit")
	flag.Parse()

	slog.SetDefault(newLogger(os.Getenv("LOG_LEVEL")))

	var err error
	switch {
	case *hashPassword != "":
		err = printHash(*hashPassword)
	case *migrateOnly:
		err = migrate()
	default:
		err = serve()
	}
	if err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Unknown levels fall back to info.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func printHash(password string) error {
	hash, err := utils.HashPassword(password, config.LoadBcryptCost())
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Println(hash)
	return nil
}

func migrate() error {
	cfg, err := config.LoadDB()
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}
	slog.Info("schema applied", "driver", cfg.Driver)
	return nil
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel) // LOG_LEVEL may come from .env
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.RateLimit.Enabled {
		log.Warn("rate limiting enabled but redis is not reachable; running without it", "addr", cfg.Redis.Addr)
	}
	pub := queue.NewPublisher(cfg.AMQPURL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())
	e.Use(echomw.ContextTimeout(cfg.RequestTimeout))
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb, log))

	venues := repository.NewVenueRepo(db)
	events := repository.NewEventRepo(db)

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterLayout(e, handler.NewLayoutHandler(venues, repository.NewSectorRepo(db), repository.NewSeatRepo(db)), cfg.JWTSecret)
	router.RegisterEvents(e, handler.NewEventHandler(events, repository.NewArtistRepo(db), repository.NewEventArtistRepo(db), venues), cfg.JWTSecret)
	router.RegisterTickets(e, handler.NewTicketHandler(repository.NewTicketRepo(db), events), cfg.JWTSecret)
	router.RegisterSales(e, handler.NewSalesHandler(
		repository.NewBuyerRepo(db),
		repository.NewSaleRepo(db),
		repository.NewReportRepo(db),
		events,
		pub,
		log,
	), cfg.JWTSecret)

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env, "driver", cfg.DB.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
