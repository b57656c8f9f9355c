package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Timmy-id/fyyur/internal/config"
	"github.com/Timmy-id/fyyur/internal/database"
	"github.com/Timmy-id/fyyur/internal/handler"
	"github.com/Timmy-id/fyyur/internal/middleware"
	"github.com/Timmy-id/fyyur/internal/queue"
	"github.com/Timmy-id/fyyur/internal/repository"
	"github.com/Timmy-id/fyyur/internal/router"
	"github.com/Timmy-id/fyyur/internal/service"
)

func main() {
	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
		Path:   cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	if cfg.ConsumerEnabled && cfg.RabbitMQURL != "" {
		go func() {
			if err := queue.StartListingConsumer(ctx, cfg.RabbitMQURL, "logs"); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("listing-consumer: %v", err)
			}
		}()
	}

	h := handler.NewListingHandler(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db, time.Now),
		service.NewPublisher(cfg.RabbitMQURL),
		time.Now,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.Identify(cfg.JWTSecret))
	e.Use(middleware.NewRateLimiter(rlCfg, rdb))

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg))
	router.RegisterPublic(e, h, middleware.NewResponseCache(cacheCfg, rdb))
	router.RegisterAdmin(e, h, cfg.JWTSecret, middleware.InvalidateOnWrite(cacheCfg, rdb))

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, db.Dialect)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
