package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quitofx/newswindow/internal/api/handlers"
	"github.com/quitofx/newswindow/internal/database"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Services  Services  `json:"services"`
}

type Services struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func SetupRoutes(router *gin.Engine, db *database.PostgresDB, redis *database.RedisClient, reportHandler *handlers.ReportHandler, telegramHandler *handlers.TelegramHandler) {
	// Health check endpoint
	router.GET("/health", healthCheck(db, redis))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		reports := v1.Group("/reports")
		{
			reports.GET("/day", reportHandler.GetDayReport)
			reports.GET("/week", reportHandler.GetWeekReport)
		}

		telegram := v1.Group("/telegram")
		{
			telegram.POST("/webhook", telegramHandler.HandleWebhook)
		}
	}
}

func healthCheck(db *database.PostgresDB, redis *database.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Services: Services{
				Database: "ok",
				Redis:    "ok",
			},
		}

		if db != nil {
			if err := db.HealthCheck(c.Request.Context()); err != nil {
				response.Status = "degraded"
				response.Services.Database = "unavailable"
			}
		} else {
			response.Services.Database = "disabled"
		}

		if redis != nil {
			if err := redis.HealthCheck(c.Request.Context()); err != nil {
				response.Status = "degraded"
				response.Services.Redis = "unavailable"
			}
		} else {
			response.Services.Redis = "disabled"
		}

		c.JSON(http.StatusOK, response)
	}
}
