package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"nachapa-api/internal/config"
	"nachapa-api/internal/db"
	"nachapa-api/internal/email"
	apihttp "nachapa-api/internal/http"
	"nachapa-api/internal/repository"
	"nachapa-api/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Secreto corto o ausente: el servicio se niega a arrancar.
	tokenSvc, err := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatal("jwt config", zap.Error(err))
	}

	if err := db.Migrate(cfg); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	loginWindow := time.Duration(cfg.LoginWindowMin) * time.Minute
	var loginLimiter service.LoginRateLimiter = service.NewLoginRateLimiter(loginWindow, cfg.LoginMaxTries)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginMaxTries)
		}
		cancel()
	}

	emailSender := email.NewDisabledSender()
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	userSvc := service.NewUserService(logger, userRepo, emailSender)
	authSvc := service.NewAuthService(logger, userRepo, tokenSvc, loginLimiter)

	authHandler := apihttp.NewAuthHandler(logger, userSvc, authSvc)
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	router := apihttp.NewRouter(logger, tokenSvc, authHandler, userHandler, pingFunc(pool))

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func pingFunc(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	}
}
