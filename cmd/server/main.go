package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/api"
	"github.com/quitofx/newswindow/internal/api/handlers"
	"github.com/quitofx/newswindow/internal/cache"
	"github.com/quitofx/newswindow/internal/config"
	"github.com/quitofx/newswindow/internal/database"
	"github.com/quitofx/newswindow/internal/engine"
	"github.com/quitofx/newswindow/internal/services"
	"github.com/quitofx/newswindow/pkg/calendar"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Session availability engine
	eng, err := engine.New(&cfg.Trading)
	if err != nil {
		logrus.Fatalf("Failed to build engine: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	// Calendar source behind the per-date cache
	calendarClient := calendar.NewClient(&cfg.Calendar)
	calendarCache := cache.NewRedisCalendarCache(redis.Client, time.Duration(cfg.Calendar.CacheTTLMinutes)*time.Minute)

	reportService := services.NewReportService(eng, calendarClient, calendarCache)
	subscriberRepo := database.NewSubscriberRepository(db.Pool)

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	telegramHandler := handlers.NewTelegramHandler(&cfg.Telegram, reportService, subscriberRepo)

	// Scheduled daily/weekly report broadcasts
	notifier := services.NewNotifier(telegramHandler.Bot(), subscriberRepo, cfg.Telegram.ReportChatID, cfg.Telegram.ChunkLimit)
	scheduler, err := services.NewScheduler(cfg.Schedule, reportService, notifier)
	if err != nil {
		logrus.Fatalf("Failed to build scheduler: %v", err)
	}
	if cfg.Schedule.Enabled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Setup Gin router
	router := gin.Default()
	api.SetupRoutes(router, db, redis, reportHandler, telegramHandler)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
