package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/college-directory/api"
	"github.com/sahilchouksey/college-directory/config"
	"github.com/sahilchouksey/college-directory/database"
	"github.com/sahilchouksey/college-directory/router"
	"github.com/sahilchouksey/college-directory/services/digitalocean"
	"github.com/sahilchouksey/college-directory/utils"
	"github.com/sahilchouksey/college-directory/utils/cache"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Logging
	logOutput, logCloser, err := utils.SetupLogger(getEnv.LOG_LEVEL, getEnv.LOG_FILE)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("Set DATABASE_URL or the DB_* variables in .env to point at a reachable server\n")
		return err
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	opts := router.Options{Env: getEnv, LogOutput: logOutput}

	// Shared rate-limit counters (optional)
	if getEnv.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warnw("failed to connect to Redis, rate limiting falls back to memory", "error", err)
		} else {
			defer redisCache.Close()
			opts.LimiterStorage = cache.NewLimiterStorage(redisCache, "college-directory:limiter:")
		}
	}

	// Upload archiving (optional)
	if getEnv.SpacesEnabled() {
		spacesClient, err := digitalocean.NewSpacesClient(digitalocean.ConfigFromEnv(getEnv))
		if err != nil {
			log.Warnw("failed to configure Spaces, uploads will not be archived", "error", err)
		} else {
			opts.Archiver = spacesClient
		}
	}

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), getEnv.UPLOAD_MAX_BYTES)
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store, opts)

	// Stop gracefully on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			log.Errorw("server shutdown failed", "error", err)
		}
	}()

	// Get the PORT & Start the Server
	return server.Run()
}
