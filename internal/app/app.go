package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobhub_backend/database"
	"jobhub_backend/internal/cache"
	"jobhub_backend/internal/config"
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/events"
	"jobhub_backend/internal/handlers"
	"jobhub_backend/internal/listeners"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/routes"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/validator"
	"jobhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Database migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles the whole application: repositories, services,
// handlers, background consumers and workers. ctx bounds the lifetime of
// the background goroutines.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	redisClient := cache.NewClient(cfg)

	repos := services.NewRepositories()
	publisher := buildPublisher(cfg)
	serviceContainer := services.NewServiceContainer(cfg, repos, publisher, redisClient)

	appHandlers := initializeHandlers(serviceContainer, repos)

	// Background consumers and workers.
	if cfg.AMQP.URL != "" {
		reconciler := listeners.NewPaymentReconciliationListener(repos.User, repos.Subscription, repos.Payment, publisher)
		consumer := listeners.NewTransactionConsumer(cfg.AMQP.URL, cfg.AMQP.TransactionQueue, gormDB, reconciler)
		go consumer.Start(ctx)
	} else {
		logger.Warn("AMQP not configured, transaction consumer disabled")
	}

	subscriptionWorker := workers.NewSubscriptionWorker(gormDB, time.Hour)
	go subscriptionWorker.Start(ctx)

	ginRouter := initializeGinRouter(gormDB)

	authMW := middleware.AuthMiddleware(serviceContainer.Auth)
	routes.RegisterRoutes(ginRouter, appHandlers, authMW)

	return ginRouter
}

// buildPublisher fans events out to the broker and the in-process email
// notifier. Without a broker the notifier still runs.
func buildPublisher(cfg *config.Config) events.Publisher {
	sinks := []events.Publisher{}

	if cfg.AMQP.URL != "" {
		sinks = append(sinks, events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.EventQueue))
	}
	if cfg.Email.SMTPHost != "" {
		sinks = append(sinks, listeners.NewReviewNotificationListener(email.NewSMTPSender(cfg)))
	} else {
		logger.Warn("SMTP not configured, review notification emails disabled")
	}

	if len(sinks) == 0 {
		return events.Noop{}
	}
	return events.NewFanout(sinks...)
}

func initializeHandlers(container *services.ServiceContainer, repos *services.Repositories) *handlers.AppHandlers {
	customValidator := validator.NewValidator()
	baseHandler := handlers.NewBaseHandler(customValidator, repos.User)

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.Auth),
		JobHandler:         handlers.NewJobHandler(baseHandler, container.Job),
		ApplicationHandler: handlers.NewApplicationHandler(baseHandler, container.Application),
		ReviewHandler:      handlers.NewReviewHandler(baseHandler, container.Review),
		DashboardHandler:   handlers.NewDashboardHandler(baseHandler, container.Dashboard),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit admin seeding: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
