package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetadmin/internal/config"
	"fleetadmin/internal/handlers"
	"fleetadmin/internal/middleware"
	"fleetadmin/internal/repositories/mongodb"
	"fleetadmin/internal/services"
	"fleetadmin/pkg/cache"
	"fleetadmin/pkg/database"
	"fleetadmin/pkg/email"
	"fleetadmin/pkg/identity"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/maps"
	"fleetadmin/pkg/sms"
	"fleetadmin/pkg/storage"
	"fleetadmin/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     cfg.App.LogFormat,
		Output:     "stdout",
		TimeFormat: time.RFC3339,
		AppName:    cfg.App.Name,
		Version:    cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	// Day boundaries for "today" filters follow the configured zone.
	if loc, err := time.LoadLocation(cfg.App.Timezone); err == nil {
		time.Local = loc
	} else {
		appLogger.WithError(err).Warn("Unknown timezone, using system default")
	}

	ctx := context.Background()

	// Database
	mongoDB, err := database.NewMongoDB(ctx, &database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		QueryTimeout:   cfg.Database.QueryTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer mongoDB.Close()

	if cfg.App.RunMigrations {
		if err := database.NewMigrator(mongoDB.Database, appLogger).Up(ctx); err != nil {
			appLogger.WithError(err).Fatal("Failed to run migrations")
		}
	}

	// Redis is optional. Without it lookups go straight to Mongo and OTP is unavailable.
	var (
		cacheService services.CacheService
		redisPinger  handlers.Pinger
	)
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(ctx, &cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			KeyPrefix:    "fleet:",
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = redisCache
			redisPinger = redisCache
		}
	}

	storageProvider, err := storage.New(ctx, storage.Options{
		Provider:           cfg.Storage.Provider,
		LocalBasePath:      cfg.Storage.Local.BasePath,
		LocalBaseURL:       cfg.Storage.Local.BaseURL,
		AWSRegion:          cfg.Storage.AWS.Region,
		AWSBucket:          cfg.Storage.AWS.Bucket,
		AWSCDNDomain:       cfg.Storage.AWS.CDNDomain,
		GCPBucket:          cfg.Storage.GCP.Bucket,
		GCPCredentialsFile: cfg.Storage.GCP.CredentialsFile,
		GCPCDNDomain:       cfg.Storage.GCP.CDNDomain,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize storage")
	}

	smsProvider, err := sms.New(ctx, sms.Options{
		Provider:         cfg.SMS.Provider,
		TwilioAccountSID: cfg.SMS.Twilio.AccountSID,
		TwilioAuthToken:  cfg.SMS.Twilio.AuthToken,
		TwilioFromNumber: cfg.SMS.Twilio.FromNumber,
		AWSRegion:        cfg.SMS.AWS.Region,
		SenderID:         cfg.SMS.SenderID,
	})
	if err != nil {
		appLogger.WithError(err).Warn("SMS provider unavailable")
		smsProvider = nil
	}

	var mailer email.Sender
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPSender(&email.SMTPConfig{
			Host:      cfg.SMTP.Host,
			Port:      cfg.SMTP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			FromEmail: cfg.SMTP.FromEmail,
			FromName:  cfg.SMTP.FromName,
		})
	}

	var geocoder maps.Geocoder
	if cfg.Maps.Enabled() {
		provider, err := maps.NewGoogleMapsProvider(cfg.Maps.GoogleMaps.APIKey, cfg.Maps.GoogleMaps.Region)
		if err != nil {
			appLogger.WithError(err).Warn("Google Maps unavailable, geocoding disabled")
		} else {
			geocoder = provider
		}
	}

	var identityProvider identity.Provider = identity.Disabled{}
	if cfg.Firebase.Enabled() {
		provider, err := identity.NewFirebaseProvider(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile, cfg.Firebase.UsersCollection)
		if err != nil {
			appLogger.WithError(err).Warn("Firebase Admin unavailable")
		} else {
			defer provider.Close()
			identityProvider = provider
		}
	}

	// Repositories
	db := mongoDB.Database
	var repoCache mongodb.CacheService
	if cacheService != nil {
		repoCache = cacheService
	}
	busRepo := mongodb.NewBusRepository(db, repoCache)
	busStatusRepo := mongodb.NewBusStatusRepository(db)
	driverRepo := mongodb.NewDriverRepository(db)
	routeRepo := mongodb.NewRouteRepository(db, repoCache)
	stopRepo := mongodb.NewRouteStopRepository(db)
	terminalRepo := mongodb.NewTerminalRepository(db, repoCache)
	terminalLogRepo := mongodb.NewTerminalLogRepository(db)
	assignmentRepo := mongodb.NewBusAssignmentRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	userNotificationRepo := mongodb.NewUserNotificationRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	systemLogRepo := mongodb.NewSystemLogRepository(db)
	dashboardRepo := mongodb.NewDashboardRepository(db)

	// Services
	imageMaxSide := cfg.Storage.ImageMaxWidth
	audit := services.NewSystemLogService(systemLogRepo, appLogger)
	busService := services.NewBusService(busRepo, audit, appLogger)
	busStatusService := services.NewBusStatusService(busStatusRepo, busRepo, audit)
	driverService := services.NewDriverService(driverRepo, storageProvider, imageMaxSide, audit, appLogger)
	routeService := services.NewRouteService(routeRepo, stopRepo, geocoder, audit, appLogger)
	terminalService := services.NewTerminalService(terminalRepo, terminalLogRepo, busRepo, geocoder, audit, appLogger)
	assignmentService := services.NewBusAssignmentService(services.AssignmentRepos{
		Assignments: assignmentRepo,
		Buses:       busRepo,
		Drivers:     driverRepo,
		Users:       userRepo,
		Routes:      routeRepo,
		Terminals:   terminalRepo,
	}, audit)
	userService := services.NewUserService(userRepo, storageProvider, imageMaxSide, services.TokenConfig{
		Secret: cfg.Security.JWTSecret,
		TTL:    cfg.Security.JWTAccessTokenTTL,
	}, audit, appLogger)
	otpService := services.NewOTPService(cacheService, userRepo, mailer, smsProvider, services.OTPConfig{
		Length:         cfg.Security.OTPLength,
		Expiry:         cfg.Security.OTPExpiry,
		MaxAttempts:    cfg.Security.OTPMaxAttempts,
		VerifiedWindow: cfg.Security.OTPVerifiedWindow,
	}, appLogger)
	identityService := services.NewIdentityService(identityProvider, otpService, appLogger)
	notificationService := services.NewNotificationService(services.NotificationRepos{
		Notifications:     notificationRepo,
		UserNotifications: userNotificationRepo,
		Subscriptions:     subscriptionRepo,
		Users:             userRepo,
		Buses:             busRepo,
		Routes:            routeRepo,
		Terminals:         terminalRepo,
	}, audit, appLogger)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, routeRepo, busRepo)
	dashboardService := services.NewDashboardService(dashboardRepo, cacheService, appLogger)

	// Initialize handlers
	busHandler := handlers.NewBusHandler(busService, busStatusService)
	driverHandler := handlers.NewDriverHandler(driverService)
	assignmentHandler := handlers.NewBusAssignmentHandler(assignmentService)
	routeHandler := handlers.NewRouteHandler(routeService)
	terminalHandler := handlers.NewTerminalHandler(terminalService)
	userHandler := handlers.NewUserHandler(userService)
	otpHandler := handlers.NewOTPHandler(otpService)
	identityHandler := handlers.NewIdentityHandler(identityService)
	notificationHandler := handlers.NewNotificationHandler(notificationService, subscriptionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, audit)
	healthHandler := handlers.NewHealthHandler(cfg.App.Version, map[string]handlers.Pinger{
		"mongodb": mongoDB,
		"redis":   redisPinger,
	})

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		appLogger.WithError(err).Warn("Invalid trusted proxies")
	}

	// Global middleware
	router.Use(middleware.RecoveryMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))

	router.GET("/health", healthHandler.Health)
	if cfg.Storage.Provider == "" || cfg.Storage.Provider == "local" {
		router.Static("/uploads", cfg.Storage.Local.BasePath)
	}

	// API routes
	guards := routes.NewGuards(cfg.Security.JWTSecret)
	v1 := router.Group("/api/v1")
	{
		routes.SetupUserRoutes(v1, guards, userHandler, otpHandler, identityHandler)
		routes.SetupFleetRoutes(v1, guards, busHandler, driverHandler, assignmentHandler)
		routes.SetupNetworkRoutes(v1, guards, routeHandler, terminalHandler)
		routes.SetupNotificationRoutes(v1, guards, notificationHandler)
		routes.SetupDashboardRoutes(v1, guards, dashboardHandler)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}
}
