package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/github"
	"devconnect/internal/handler"
	"devconnect/internal/redis"
	"devconnect/internal/repository"
	"devconnect/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	// 3. Redis-backed repo cache (optional: the repos endpoint works
	// without it, every request just goes upstream)
	var repoCache cache.RepoCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to create redis client: %w", err)
		}
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		repoCache = cache.NewRepoCache(redisClient.Client, time.Duration(cfg.GithubCacheTTL)*time.Second)
	} else {
		log.Println("REDIS_URL not set, repo listings will not be cached")
	}

	// 4. Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	githubClient := github.NewClient(cfg.GithubAPIBaseURL, cfg.GithubClientID, cfg.GithubClientSecret)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(cfg)
	profileService := service.NewProfileService(profileRepo, postRepo, userRepo, githubClient, repoCache, repository.NewTxRunner(db))
	postService := service.NewPostService(postRepo, userRepo)

	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService),
		ProfileHandler: handler.NewProfileHandler(profileService),
		PostHandler:    handler.NewPostHandler(postService),
		JWTSecret:      cfg.JWTSecret,
	})

	// 5. Serve
	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
