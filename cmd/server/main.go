package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"factfind/config"
	"factfind/internal/cache"
	"factfind/internal/database"
	"factfind/internal/logger"
	"factfind/internal/mail"
	"factfind/internal/repository"
	"factfind/internal/service"
	"factfind/internal/transport/rest"
)

func main() {
	logger.Info("started")
	ctx := context.Background()

	cfg := config.Load()

	// Postgres connection and schema migrations
	db := database.Connect(ctx, cfg.DatabaseURL)
	defer db.Close()
	database.Migrate(cfg.DatabaseURL, cfg.MigrationsDir)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping redis", err)
	}
	logger.Info("connected to redis")

	// Initialize repositories
	userRepo := repository.NewUserRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	answerRepo := repository.NewAnswerRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	// Initialize caches
	questionCache := cache.NewQuestionCache(rdb)
	sessionCache := cache.NewSessionCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg, userRepo)
	questionSvc := service.NewQuestionService(questionRepo, questionCache)
	sessionSvc := service.NewSessionService(sessionRepo, answerRepo)
	factfindSvc := service.NewFactFindService(sessionRepo, answerRepo, questionSvc, sessionCache)
	settingsSvc := service.NewSettingsService(settingsRepo)
	assistantSvc := service.NewAssistantService(cfg.OpenAIKey, settingsSvc)
	mailer := mail.NewMailer(cfg)
	reportSvc := service.NewReportService(factfindSvc, userRepo, settingsSvc, mailer)

	// Create router with container
	container := &rest.Container{
		AuthService:      authSvc,
		QuestionService:  questionSvc,
		SessionService:   sessionSvc,
		FactFindService:  factfindSvc,
		AssistantService: assistantSvc,
		ReportService:    reportSvc,
		SettingsService:  settingsSvc,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting on :" + cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", err)
	}

	logger.Info("stopped")
}
