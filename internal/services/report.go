package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/engine"
	"github.com/quitofx/newswindow/internal/models"
)

// CalendarFetcher retrieves the raw calendar records for one date.
type CalendarFetcher interface {
	FetchDay(ctx context.Context, date time.Time) ([]models.RawCalendarRecord, error)
}

// CalendarCache sits in front of the fetcher. Both methods must be
// safe to call concurrently.
type CalendarCache interface {
	Get(ctx context.Context, date time.Time) ([]models.RawCalendarRecord, bool)
	Set(ctx context.Context, date time.Time, recs []models.RawCalendarRecord) error
}

// ReportService composes the calendar source, the cache and the
// engine into day and week reports. A fetch failure for a date turns
// into a "data unavailable" day, never an error that blanks the
// report: one bad day must not take the other six with it.
type ReportService struct {
	engine  *engine.Engine
	fetcher CalendarFetcher
	cache   CalendarCache
}

// NewReportService creates a report service. cache may be nil, in
// which case every request goes to the fetcher.
func NewReportService(eng *engine.Engine, fetcher CalendarFetcher, cache CalendarCache) *ReportService {
	return &ReportService{
		engine:  eng,
		fetcher: fetcher,
		cache:   cache,
	}
}

// DayResult computes the structured result for one local date.
func (s *ReportService) DayResult(ctx context.Context, date time.Time) models.DayResult {
	recs, err := s.fetchDay(ctx, date)
	if err != nil {
		logrus.WithError(err).WithField("date", date.Format("2006-01-02")).Warn("Calendar fetch failed")
		return s.engine.UnavailableDay(date, err.Error())
	}

	result := s.engine.BuildDay(date, recs)
	if result.DroppedRecords > 0 {
		logrus.WithFields(logrus.Fields{
			"date":    result.Date.Format("2006-01-02"),
			"dropped": result.DroppedRecords,
		}).Info("Dropped malformed calendar records")
	}
	return result
}

// DayReport renders the day report text for one local date.
func (s *ReportService) DayReport(ctx context.Context, date time.Time) string {
	return engine.RenderDay(s.DayResult(ctx, date))
}

// WeekReport renders the reports of the start date and the six
// following days, in date order, separated by a rule line. Days whose
// fetch failed are reported as unavailable rather than omitted.
func (s *ReportService) WeekReport(ctx context.Context, start time.Time) string {
	days := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, s.DayReport(ctx, start.AddDate(0, 0, i)))
	}
	return engine.RenderWeek(days)
}

// Location exposes the trading timezone for date parsing at the edges.
func (s *ReportService) Location() *time.Location {
	return s.engine.Location()
}

func (s *ReportService) fetchDay(ctx context.Context, date time.Time) ([]models.RawCalendarRecord, error) {
	if s.cache != nil {
		if recs, ok := s.cache.Get(ctx, date); ok {
			return recs, nil
		}
	}

	recs, err := s.fetcher.FetchDay(ctx, date)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, date, recs); err != nil {
			logrus.WithError(err).Warn("Failed to cache calendar records")
		}
	}
	return recs, nil
}
