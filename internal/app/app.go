package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Kentemie/Nimbus/internal/auth"
	"github.com/Kentemie/Nimbus/internal/config"
	"github.com/Kentemie/Nimbus/internal/events"
	"github.com/Kentemie/Nimbus/internal/handlers"
	"github.com/Kentemie/Nimbus/internal/logger"
	"github.com/Kentemie/Nimbus/internal/middleware"
	"github.com/Kentemie/Nimbus/internal/models"
	"github.com/Kentemie/Nimbus/internal/repositories"
	"github.com/Kentemie/Nimbus/internal/routes"
	"github.com/Kentemie/Nimbus/internal/services"
	"github.com/Kentemie/Nimbus/internal/validator"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := runMigrations(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.MaxConnections,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.TimeoutSec)*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		logger.Fatal("Redis unavailable", "error", err, "addr", cfg.Redis.Addr)
	}
	cancel()
	logger.Info("Redis connected", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)

	notifier := events.NewKafkaNotifier(
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		time.Duration(cfg.Kafka.WriteTimeoutSec)*time.Second,
	)
	logger.Info("Kafka producer initialized", "topic", cfg.Kafka.Topic)

	serviceContainer := initializeServices(cfg, gormDB, rdb, notifier)

	if err := seedFirstAdmin(cfg, serviceContainer); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	backend := buildAuthBackend(cfg)
	appHandlers := initializeHandlers(serviceContainer, backend)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info("🚀 Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	// Порядок важен: сперва продюсер (дожидается in-flight событий),
	// потом кеш, потом база
	if err := notifier.Close(); err != nil {
		logger.Error("Kafka producer close error", "error", err)
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Redis close error", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Database close error", "error", err)
	}

	logger.Info("Server stopped")
}

func runMigrations(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Product{},
		&models.Order{},
		&models.OrderProduct{},
	)
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	rdb *redis.Client,
	notifier events.Notifier,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	roleRepo := repositories.NewRoleRepository(gormDB)
	productRepo := repositories.NewProductRepository(gormDB)
	orderRepo := repositories.NewOrderRepository(gormDB)
	orderCache := repositories.NewOrderCacheRepository(rdb, time.Duration(cfg.Redis.TimeoutSec)*time.Second)

	passwordHelper := auth.NewPasswordHelper()

	return &services.ServiceContainer{
		User:    services.NewUserService(userRepo, roleRepo, passwordHelper),
		Order:   services.NewOrderService(orderRepo, orderCache, notifier),
		Role:    services.NewRoleService(roleRepo),
		Product: services.NewProductService(productRepo),
	}
}

func buildAuthBackend(cfg *config.Config) *auth.AuthenticationBackend {
	strategy := auth.NewHMACJWTStrategy(
		[]byte(cfg.JWT.Secret),
		jwt.GetSigningMethod(cfg.JWT.Algorithm),
		time.Duration(cfg.JWT.LifetimeSec)*time.Second,
		cfg.JWT.Audience,
	)
	return auth.NewAuthenticationBackend("jwt", auth.NewBearerTransport(), strategy)
}

func initializeHandlers(container *services.ServiceContainer, backend *auth.AuthenticationBackend) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		Auth:    handlers.NewAuthHandler(base, container.User, backend),
		User:    handlers.NewUserHandler(base, container.User, backend),
		Order:   handlers.NewOrderHandler(base, container.Order, container.User, backend),
		Role:    handlers.NewRoleHandler(base, container.Role, container.User, backend),
		Product: handlers.NewProductHandler(base, container.Product, container.User, backend),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	return r
}
