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

	"tripbid/internal/config"
	"tripbid/internal/handlers/driver"
	"tripbid/internal/middleware"
	"tripbid/internal/models"
	"tripbid/internal/repositories/mongodb"
	"tripbid/internal/services"
	"tripbid/internal/utils"
	"tripbid/pkg/cache"
	"tripbid/pkg/database"
	"tripbid/pkg/logger"
	"tripbid/pkg/messaging"
	"tripbid/pkg/push"
	"tripbid/pkg/realtime"
	"tripbid/pkg/websocket"
	"tripbid/pkg/worker"
	"tripbid/routes"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.App.LogLevel),
		Format:  cfg.App.LogFormat,
		Output:  cfg.App.LogOutput,
		Caller:  cfg.App.Debug,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Primary store
	mongo, err := database.NewMongoDB(ctx, database.Config{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		AppName:        cfg.App.Name,
		MaxPoolSize:    uint64(cfg.Database.MaxPoolSize),
		MinPoolSize:    uint64(cfg.Database.MinPoolSize),
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			log.WithError(err).Warn("Failed to disconnect from MongoDB")
		}
	}()

	if cfg.Database.RunMigrations {
		if err := database.NewMigrator(mongo.Database, log).Up(ctx); err != nil {
			log.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// Redis backs the user cache and, when selected, the realtime mirror.
	redisCtx, cancelRedis := context.WithTimeout(ctx, cfg.Redis.DialTimeout)
	redisCache, err := cache.NewRedisCache(redisCtx, cache.Config{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	cancelRedis()
	if err != nil {
		if cfg.Redis.Required {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		log.WithError(err).Warn("Redis unavailable, running without user cache")
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	var userCache mongodb.Cache
	if redisCache != nil {
		userCache = redisCache
	}

	tripRepo := mongodb.NewTripRequestRepository(mongo.Database)
	bidRepo := mongodb.NewTripBidRepository(mongo.Database)
	userRepo := mongodb.NewUserRepository(mongo.Database, userCache)
	driverRepo := mongodb.NewDriverRepository(mongo.Database)

	var firebaseApp *firebase.App
	if cfg.Realtime.Provider == config.RealtimeProviderFirebase || cfg.Push.Provider == config.PushProviderFCM {
		firebaseApp, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize Firebase")
		}
	}

	mirror, err := newMirror(ctx, cfg, firebaseApp, redisCache)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize realtime mirror")
	}

	pushSender, err := newPushSender(ctx, cfg, firebaseApp)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize push providers")
	}

	// Socket channel
	var socketSender services.SocketSender
	var wsHandler *websocket.Handler
	if cfg.Trip.SocketEnabled {
		hub := websocket.NewHub(log)
		go hub.Run(ctx)
		socketSender = hub
		wsHandler = websocket.NewHandler(hub, websocket.HandlerConfig{
			ReadBufferSize:   cfg.WebSocket.ReadBufferSize,
			WriteBufferSize:  cfg.WebSocket.WriteBufferSize,
			HandshakeTimeout: cfg.WebSocket.HandshakeTimeout,
			AllowedOrigins:   cfg.WebSocket.AllowedOrigins,
		}, log)
	}

	// Message bus channel
	var busPublisher services.BusPublisher
	if cfg.Messaging.BusEnabled {
		producer := messaging.NewKafkaProducer(cfg.Messaging.Brokers, cfg.Messaging.WriteTimeout)
		defer producer.Close()
		busPublisher = producer
	}

	pool := worker.NewPool(worker.Config{
		Workers:        cfg.Trip.Workers,
		QueueSize:      cfg.Trip.QueueSize,
		DefaultTimeout: cfg.Trip.NotifyTimeout,
	}, log)

	notificationService := services.NewNotificationService(
		pool,
		userRepo,
		pushSender,
		socketSender,
		busPublisher,
		services.NotificationConfig{Timeout: cfg.Trip.NotifyTimeout},
		log,
	)

	tripService := services.NewTripService(
		tripRepo,
		driverRepo,
		userRepo,
		notificationService,
		services.NewLocalizer(cfg.App.Language),
		services.TripServiceConfig{
			StartAttempts:   cfg.Trip.StartAttempts,
			LookupTimeout:   cfg.Trip.NotifyTimeout,
			SocketEnabled:   cfg.Trip.SocketEnabled,
			BusEnabled:      cfg.Messaging.BusEnabled,
			TripStatusTopic: cfg.Messaging.TripStatusTopic,
		},
		log,
	)

	bidService := services.NewBidService(
		bidRepo,
		mirror,
		pool,
		services.BidServiceConfig{
			MirrorPathPrefix: cfg.Realtime.BidPathPrefix,
			MirrorTimeout:    cfg.Realtime.WriteTimeout,
			Location:         utils.LoadLocation(cfg.App.Timezone),
		},
		log,
	)

	// Initialize handlers
	tripHandler := driver.NewTripHandler(tripService, driverRepo, log)
	bidHandler := driver.NewBidHandler(bidService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.WithError(err).Fatal("Invalid trusted proxies")
	}

	// API routes
	v1 := router.Group("/api/v1")
	{
		routes.SetupDriverTripRoutes(v1, cfg.Security.JWTSecret, tripHandler, bidHandler)
	}

	checks := map[string]routes.HealthCheck{
		"mongodb": func(c *gin.Context) error { return mongo.Ping(c.Request.Context()) },
	}
	if redisCache != nil {
		checks["redis"] = func(c *gin.Context) error { return redisCache.Ping(c.Request.Context()) }
	}
	routes.SetupSystemRoutes(router, cfg.App.Version, checks, cfg.Security.JWTSecret, cfg.WebSocket.Path, wsHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		log.Infof("Starting server on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}

	// Drain pending notifications and mirror writes before the stores close.
	pool.Close()
}

func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}

	return firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.Firebase.ProjectID,
		DatabaseURL: cfg.Firebase.DatabaseURL,
	}, opts...)
}

func newMirror(ctx context.Context, cfg *config.Config, app *firebase.App, redisCache *cache.RedisCache) (realtime.Mirror, error) {
	switch cfg.Realtime.Provider {
	case config.RealtimeProviderRedis:
		return realtime.NewRedisMirror(redisCache, cfg.Realtime.RedisChannel), nil
	default:
		return realtime.NewFirebaseMirror(ctx, app)
	}
}

// newPushSender returns nil when push is disabled.
func newPushSender(ctx context.Context, cfg *config.Config, app *firebase.App) (services.PushSender, error) {
	if cfg.Push.Provider == config.PushProviderNone {
		return nil, nil
	}

	router := &push.Router{ByPlatform: make(map[string]push.PushProvider)}

	if cfg.Push.APNS.Enabled() {
		apns, err := push.NewAPNSProvider(push.APNSConfig{
			KeyFile:    cfg.Push.APNS.KeyFile,
			KeyID:      cfg.Push.APNS.KeyID,
			TeamID:     cfg.Push.APNS.TeamID,
			BundleID:   cfg.Push.APNS.BundleID,
			Production: cfg.Push.APNS.Production,
		})
		if err != nil {
			return nil, err
		}
		router.ByPlatform[string(models.DevicePlatformIOS)] = apns
		if cfg.Push.Provider == config.PushProviderAPNS {
			router.Default = apns
		}
	}

	if cfg.Push.Provider == config.PushProviderFCM {
		fcm, err := push.NewFCMProvider(ctx, app)
		if err != nil {
			return nil, err
		}
		router.Default = fcm
	}

	return router, nil
}
