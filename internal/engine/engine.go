package engine

import (
	"sort"
	"time"

	"github.com/quitofx/newswindow/internal/config"
	"github.com/quitofx/newswindow/internal/models"
)

// Engine is the session availability engine: it classifies a day's raw
// calendar records and decides which clock-time windows inside the
// configured sessions are safe to trade. Deterministic and
// side-effect-free; the same inputs always produce the same result.
type Engine struct {
	pair       string
	loc        *time.Location
	sessions   []models.TradingSession
	classifier *Classifier
	keyword    string
	radius     time.Duration
	minimum    time.Duration
}

// New builds an engine from the trading configuration. Configuration
// problems (bad timezone, malformed sessions) are returned as errors
// and are fatal at startup.
func New(cfg *config.TradingConfig) (*Engine, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	sessions, err := cfg.ParsedSessions()
	if err != nil {
		return nil, err
	}
	return &Engine{
		pair:       cfg.Pair,
		loc:        loc,
		sessions:   sessions,
		classifier: NewClassifier(cfg, loc),
		keyword:    cfg.HolidayKeyword,
		radius:     cfg.BlackoutRadius(),
		minimum:    cfg.MinimumWindow(),
	}, nil
}

// Location returns the configured trading timezone.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Pair returns the configured currency pair.
func (e *Engine) Pair() string {
	return e.pair
}

// BuildDay computes one day's result from the raw calendar records for
// that date. A holiday short-circuits the per-session computation.
func (e *Engine) BuildDay(date time.Time, recs []models.RawCalendarRecord) models.DayResult {
	result := models.DayResult{
		Date:     date.In(e.loc),
		Pair:     e.pair,
		Timezone: e.loc.String(),
	}

	classified, dropped := e.classifier.ClassifyAll(recs)
	result.DroppedRecords = dropped

	// Events outside the evaluated local date never influence the day.
	events := make([]models.EconomicEvent, 0, len(classified))
	y, m, d := result.Date.Date()
	for _, event := range classified {
		ey, em, ed := event.Timestamp.Date()
		if ey == y && em == m && ed == d {
			events = append(events, event)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	result.Events = events

	if holiday, title := DetectHoliday(events, e.keyword); holiday {
		result.Holiday = true
		result.HolidayTitle = title
		return result
	}

	result.Sessions = make([]models.SessionOutcome, 0, len(e.sessions))
	for _, session := range e.sessions {
		result.Sessions = append(result.Sessions, ComputeSession(session, result.Date, e.loc, events, e.radius, e.minimum))
	}
	return result
}

// UnavailableDay builds the result reported when the calendar fetch
// for a date failed. Kept distinct from a day with zero events.
func (e *Engine) UnavailableDay(date time.Time, reason string) models.DayResult {
	return models.DayResult{
		Date:              date.In(e.loc),
		Pair:              e.pair,
		Timezone:          e.loc.String(),
		Unavailable:       true,
		UnavailableReason: reason,
	}
}
