package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/visipakalpojumi/backend/internal/auth"
	"github.com/visipakalpojumi/backend/internal/cache"
	"github.com/visipakalpojumi/backend/internal/config"
	"github.com/visipakalpojumi/backend/internal/database"
	"github.com/visipakalpojumi/backend/internal/email"
	"github.com/visipakalpojumi/backend/internal/handlers"
	"github.com/visipakalpojumi/backend/internal/logger"
	"github.com/visipakalpojumi/backend/internal/middleware"
	"github.com/visipakalpojumi/backend/internal/models"
	"github.com/visipakalpojumi/backend/internal/routes"
	"github.com/visipakalpojumi/backend/internal/services"
	"github.com/visipakalpojumi/backend/internal/validator"
	"github.com/visipakalpojumi/backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	logger.Info("database connected", "driver", cfg.Database.Driver)

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := SetupRouter(cfg, gormDB, ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter assembles the full application: services, handlers, workers,
// middleware and routes.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, workerCtx context.Context) *gin.Engine {
	if err := validator.RegisterGinRules(); err != nil {
		logger.Fatal("failed to register validation rules", "error", err)
	}

	container := services.NewServiceContainer(gormDB, newEmailProvider(cfg), newListingCache(cfg), cfg)
	appHandlers := handlers.NewAppHandlers(container, validator.New())

	worker := workers.NewSubscriptionWorker(container.SubscriptionService)
	worker.Start(workerCtx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logging(),
		middleware.CORS(),
	)

	routes.RegisterRoutes(router, appHandlers)

	return router
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	default:
		dialector = postgres.Open(cfg.Database.DSN)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("SMTP not configured, outgoing mail is recorded in memory only")
		return email.NewMockProvider()
	}

	return email.NewGomailProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		BaseURL:   fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port),
	})
}

func newListingCache(cfg *config.Config) cache.ListingCache {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis not configured, listing cache disabled")
		return cache.NewNoopListingCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis unreachable, listing cache disabled", "error", err)
		return cache.NewNoopListingCache()
	}

	logger.Info("redis connected", "addr", cfg.Redis.Addr)
	return cache.NewRedisListingCache(client)
}

// seedFirstAdmin creates the configured admin account when it is absent.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("first admin credentials not configured, skipping seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.FirstAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	passwordHash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: passwordHash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("first admin user created", "email", cfg.FirstAdminEmail)
	return nil
}
