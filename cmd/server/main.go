package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinetick/cinetick/internal/booking"
	"github.com/cinetick/cinetick/internal/catalog"
	"github.com/cinetick/cinetick/internal/config"
	"github.com/cinetick/cinetick/internal/database"
	"github.com/cinetick/cinetick/internal/handler"
	"github.com/cinetick/cinetick/internal/payment"
	"github.com/cinetick/cinetick/internal/queue"
	"github.com/cinetick/cinetick/internal/repository"
	"github.com/cinetick/cinetick/internal/router"
	"github.com/cinetick/cinetick/internal/seatmap"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)

	cat := catalog.New()
	drafts := booking.NewRegistry()
	store := booking.NewStore(bookings)
	gen := seatmap.New(rand.NewSource(time.Now().UnixNano()))
	proc := payment.NewProcessor(cfg.PaymentDelay)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
	router.RegisterMovies(e, handler.NewMovieHandler(cat), rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())
	router.RegisterBooking(e, handler.NewBookingHandler(cat, drafts, gen, proc, store), cfg.JWTSecret)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
