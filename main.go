package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auditorium/config"
	"auditorium/cron"
	"auditorium/database"
	"auditorium/database/repository"
	"auditorium/handlers"
	"auditorium/middleware"
	"auditorium/routes"
	"auditorium/services/booking"
	"auditorium/services/department"
	"auditorium/services/export"
	"auditorium/services/notification"
	"auditorium/services/user"
	"auditorium/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const notifyBuffer = 256

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	mongoClient, err := database.Connect(rootCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)

	otpClient, err := utils.NewRedisClient(cfg.RedisOTPDB)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	utils.StartHealthMonitor(rootCtx, otpClient, mongoClient)

	// repositories.
	repos, err := repository.NewMongoRepositories(db)
	if err != nil {
		logger.Fatal("main: failed to initialize repositories", zap.Error(err))
	}

	// notifications.
	notifier, shutdownNotifier := buildNotifier(cfg, logger)

	// services.
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	userService, err := user.NewDefaultUserService(
		repos.Users,
		tokens,
		utils.NewRedisOTPStore(otpClient),
		notifier,
		cfg.AdminEmail,
		logger,
	)
	if err != nil {
		logger.Fatal("main: failed to initialize user service", zap.Error(err))
	}

	bookingService, err := booking.NewDefaultBookingService(booking.Dependencies{
		Repo:       repos.Bookings,
		Users:      repos.Users,
		Notifier:   notifier,
		Routes:     cfg.EquipmentRoutes,
		AdminEmail: cfg.AdminEmail,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("main: failed to initialize booking service", zap.Error(err))
	}

	departmentService := department.NewDefaultDepartmentService(repos.Departments, logger)
	exporter := export.NewExporter(bookingService, repos.Users, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	if !config.IsProduction() {
		router.Use(gin.Logger())
	}
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.NewRateLimiter(cfg.MaxRequestsPerMin).Middleware())

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Tokens:            tokens,
		BookingHandler:    handlers.NewBookingHandler(bookingService, exporter),
		AuthHandler:       handlers.NewAuthHandler(userService),
		UserHandler:       handlers.NewUserHandler(userService),
		DepartmentHandler: handlers.NewDepartmentHandler(departmentService),
		AdminHandler:      handlers.NewAdminHandler(bookingService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopMonitor()
	shutdownNotifier(ctx)
	if err := otpClient.Close(); err != nil {
		logger.Warn("main: failed to close Redis client", zap.Error(err))
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// buildNotifier selects the delivery path from NOTIFY_MODE and returns a hook
// that drains it on shutdown.
//
//	queue: emails are enqueued in Redis and delivered by the asynq email worker.
//	pool:  emails are delivered over SMTP by an in-process worker pool.
//	log:   emails are only logged (development).
func buildNotifier(cfg config.Config, logger *zap.Logger) (notification.Notifier, func(context.Context)) {
	switch cfg.NotifyMode {
	case "queue":
		queue := notification.NewQueueNotifier(cron.RedisOpt(cfg))
		worker := cron.NewEmailWorker(cfg, notification.NewSMTPMailer(cfg), cfg.NotifyWorkers)
		worker.Start()
		logger.Info("notifications: asynq queue", zap.Int("workers", cfg.NotifyWorkers))
		return queue, func(context.Context) {
			if err := queue.Close(); err != nil {
				logger.Warn("main: failed to close notification queue", zap.Error(err))
			}
			worker.Shutdown()
		}

	case "log":
		pool := notification.NewPool(notification.NewLogMailer(logger), 1, notifyBuffer, logger)
		logger.Info("notifications: log only")
		return pool, drainPool(pool, logger)

	default:
		if cfg.NotifyMode != "pool" {
			logger.Warn("unknown NOTIFY_MODE, falling back to pool", zap.String("mode", cfg.NotifyMode))
		}
		pool := notification.NewPool(notification.NewSMTPMailer(cfg), cfg.NotifyWorkers, notifyBuffer, logger)
		logger.Info("notifications: in-process SMTP pool", zap.Int("workers", cfg.NotifyWorkers))
		return pool, drainPool(pool, logger)
	}
}

func drainPool(pool *notification.Pool, logger *zap.Logger) func(context.Context) {
	return func(ctx context.Context) {
		if err := pool.Shutdown(ctx); err != nil {
			logger.Warn("main: notification pool did not drain", zap.Error(err))
		}
	}
}
