package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"wanderlite.backend/internal/config"
	"wanderlite.backend/internal/infrastructure/repositories"
	"wanderlite.backend/internal/interfaces/http/handlers"
	"wanderlite.backend/internal/interfaces/http/middleware"
	"wanderlite.backend/internal/usecases"
	"wanderlite.backend/pkg/jwt"
	"wanderlite.backend/pkg/logger"
	"wanderlite.backend/pkg/redis"
	"wanderlite.backend/pkg/tickets"
)

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	connectRedis = redis.Connect
	openDB       = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	redisStore, err := connectRedis(cfg.Redis.URL, cfg.Redis.PASSWORD)
	if err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redisStore.Close()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM. The schema is never migrated from
	// here: deployments own their schema and repositories adapt to it.
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not reachable: %v (endpoints will return errors)", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	ticketService, err := tickets.NewService(cfg.Security.TicketEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize ticket service: %w", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db, bookingRepo)
	receiptRepo := repositories.NewReceiptRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	auditRecorder := repositories.NewAuditRecorder(db)
	tripRepo := repositories.NewTripRepository(db)
	checklistRepo := repositories.NewChecklistRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, checklistRepo, ticketService)
	paymentUsecase := usecases.NewPaymentUsecase(paymentRepo, bookingRepo, receiptRepo, uow)
	kycUsecase := usecases.NewKYCUsecase(kycRepo, userRepo, auditRecorder, uow)
	tripUsecase := usecases.NewTripUsecase(tripRepo, checklistRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase)
	kycHandler := handlers.NewKYCHandler(kycUsecase)
	tripHandler := handlers.NewTripHandler(tripUsecase)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:     authHandler,
		bookingHandler:  bookingHandler,
		paymentHandler:  paymentHandler,
		kycHandler:      kycHandler,
		tripHandler:     tripHandler,
		authMiddleware:  middleware.AuthMiddleware(jwtService),
		idempotency:     middleware.IdempotencyMiddleware(redisStore),
		optionalAuth:    middleware.OptionalAuthMiddleware(jwtService),
		adminMiddleware: middleware.RequireClaim(cfg.Admin.ClaimName, cfg.Admin.ClaimValue),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
		sqlDB.Close()
		os.Exit(0)
	}()

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
