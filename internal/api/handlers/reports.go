package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quitofx/newswindow/internal/models"
)

// ReportProvider is the slice of the report service the HTTP layer
// needs; narrowed for testability.
type ReportProvider interface {
	DayResult(ctx context.Context, date time.Time) models.DayResult
	DayReport(ctx context.Context, date time.Time) string
	WeekReport(ctx context.Context, start time.Time) string
	Location() *time.Location
}

// ReportHandler serves day and week reports over HTTP.
type ReportHandler struct {
	reports ReportProvider
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reports ReportProvider) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GetDayReport handles GET /api/v1/reports/day?date=YYYY-MM-DD.
// The date defaults to today in the trading timezone.
func (h *ReportHandler) GetDayReport(c *gin.Context) {
	date, ok := h.parseDate(c, c.Query("date"))
	if !ok {
		return
	}

	result := h.reports.DayResult(c.Request.Context(), date)
	c.JSON(http.StatusOK, gin.H{
		"date":   result.Date.Format("2006-01-02"),
		"result": result,
		"report": h.reports.DayReport(c.Request.Context(), date),
	})
}

// GetWeekReport handles GET /api/v1/reports/week?start=YYYY-MM-DD.
// The start date defaults to today in the trading timezone.
func (h *ReportHandler) GetWeekReport(c *gin.Context) {
	start, ok := h.parseDate(c, c.Query("start"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start":  start.Format("2006-01-02"),
		"report": h.reports.WeekReport(c.Request.Context(), start),
	})
}

func (h *ReportHandler) parseDate(c *gin.Context, raw string) (time.Time, bool) {
	loc := h.reports.Location()
	if raw == "" {
		return time.Now().In(loc), true
	}

	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}
