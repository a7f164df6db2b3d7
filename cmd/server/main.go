package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/farhanrds/scholarship-finder/internal/auth"
	"github.com/farhanrds/scholarship-finder/internal/config"
	"github.com/farhanrds/scholarship-finder/internal/database"
	"github.com/farhanrds/scholarship-finder/internal/handler"
	"github.com/farhanrds/scholarship-finder/internal/match"
	"github.com/farhanrds/scholarship-finder/internal/middleware"
	"github.com/farhanrds/scholarship-finder/internal/queue"
	"github.com/farhanrds/scholarship-finder/internal/repository"
	"github.com/farhanrds/scholarship-finder/internal/router"
	queue_publisher "github.com/farhanrds/scholarship-finder/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	// Repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	scholarships := repository.NewScholarshipRepo(db)
	profiles := repository.NewProfileRepo(db)

	// Session guard shared by every protected route
	guard := auth.NewGuard(auth.Config{
		AccessSecret:  cfg.AccessSecret,
		RefreshSecret: cfg.RefreshSecret,
		AccessTTL:     time.Duration(cfg.AccessTTLMin) * time.Minute,
	}, tokens)
	session := middleware.Session(guard)

	// AI scorer + orchestrator
	scorer, err := match.NewGeminiScorer(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ScorerTimeout)
	if err != nil {
		log.Fatalf("scorer init failed: %v", err)
	}
	orchestrator := match.NewOrchestrator(scholarships, profiles, scorer)

	// Redis-backed read-path middleware; both degrade to no-ops when Redis
	// is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	scholarshipHandler := handler.NewScholarshipHandler(scholarships, queue_publisher.New())
	matchHandler := handler.NewMatchHandler(orchestrator)

	// Background consumer for scholarship events
	go func() {
		if err := queue.StartScholarshipConsumer(); err != nil {
			log.Printf("scholarship consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, session)
	router.RegisterScholarships(e, scholarshipHandler, matchHandler, session, limiter, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}
