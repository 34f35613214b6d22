package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-events/config"
	"community-events/internal/auth"
	"community-events/internal/cache"
	"community-events/internal/database"
	"community-events/internal/handler"
	"community-events/internal/repository"
	"community-events/internal/service"
	"community-events/internal/storage"
	"community-events/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

func main() {
	cfg := config.LoadConfig()

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.L.Sync()
	appLog := logger.WithComponent("server")

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		appLog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.EnsureSchema(context.Background(), pool); err != nil {
		appLog.Fatal("Failed to apply schema", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Cache.Backend == "redis" {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			appLog.Fatal("Failed to initialize redis", zap.Error(err))
		}
		defer rdb.Close()
	}
	queryCache, permissionCache := buildCaches(cfg.Cache, rdb)

	objectStorage, err := buildStorage(cfg.Storage)
	if err != nil {
		appLog.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// repositories
	eventRepo := repository.NewEventRepository(pool)
	resourceRepo := repository.NewResourceRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	feedbackRepo := repository.NewFeedbackRepository(pool)

	// services
	eventQueries := service.NewEventQueryService(eventRepo, queryCache)
	resourceQueries := service.NewResourceQueryService(resourceRepo, queryCache)
	eventAdmin := service.NewEventAdminService(eventRepo)
	resourceAdmin := service.NewResourceAdminService(resourceRepo)
	registrations := service.NewRegistrationService(registrationRepo, eventRepo)
	community := service.NewCommunityService(profileRepo)
	userAdmin := service.NewUserAdminService(userRepo)
	dashboard := service.NewDashboardService(eventRepo, registrationRepo, feedbackRepo)

	provider := auth.NewLocalProvider(userRepo, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	sessions := auth.NewSessions(provider, userRepo, profileRepo, permissionCache)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		handler.RequestLogger(logger.WithComponent("http")),
		handler.CORS(cfg.HTTP.CORSOrigins),
		handler.RateLimit(handler.NewLimiterStore(rate.Limit(cfg.HTTP.RateLimitRPS), cfg.HTTP.RateLimitBurst, limiterIdleTTL)),
		handler.Authenticate(sessions),
	)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	handler.NewEventHandler(eventQueries, registrations).RegisterRoutes(router)
	handler.NewResourceHandler(resourceQueries).RegisterRoutes(router)
	handler.NewCommunityHandler(community).RegisterRoutes(router)
	handler.NewAccountHandler(sessions, registrations, eventAdmin).RegisterRoutes(router)
	handler.NewDashboardHandler(eventAdmin, registrations, resourceAdmin, dashboard).RegisterRoutes(router)
	handler.NewAdminHandler(userAdmin, sessions, queryCache).RegisterRoutes(router)
	handler.NewUploadHandler(storage.NewUploader(objectStorage)).RegisterRoutes(router)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLog.Info("Server started",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	appLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP shutdown failed", zap.Error(err))
	}
}

// buildCaches 依 CACHE_BACKEND 選擇；none 時權限快照仍用記憶體
func buildCaches(cfg config.CacheConfig, rdb *redis.Client) (cache.QueryCache, auth.PermissionCache) {
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisQueryCache(rdb, cfg.TTL), auth.NewRedisPermissionCache(rdb, cfg.PermissionTTL)
	case "none":
		return cache.NewNoopQueryCache(), auth.NewMemoryPermissionCache(cfg.PermissionTTL)
	default:
		return cache.NewMemoryQueryCache(cfg.TTL), auth.NewMemoryPermissionCache(cfg.PermissionTTL)
	}
}

func buildStorage(cfg config.StorageConfig) (storage.ObjectStorage, error) {
	if cfg.Backend == "s3" {
		return storage.NewS3Storage(context.Background(), storage.S3Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
	}
	baseURL := cfg.PublicURL
	if baseURL == "" {
		baseURL = "http://localhost:8080/files"
	}
	return storage.NewMemoryStorage(baseURL), nil
}
