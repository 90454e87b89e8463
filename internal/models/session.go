package models

import (
	"fmt"
	"time"
)

// ClockTime is a local time of day, minute granularity.
type ClockTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseClockTime parses "HH:MM" (24-hour, zero-padded or not).
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: out of range", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// On anchors the clock time to a calendar date in the given zone.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Before reports whether c is earlier in the day than other.
func (c ClockTime) Before(other ClockTime) bool {
	return c.Hour < other.Hour || (c.Hour == other.Hour && c.Minute < other.Minute)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TradingSession is a fixed local time-of-day range during which
// trading is permitted absent blocking events.
type TradingSession struct {
	Name  string    `json:"name"`
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Bounds returns the timezone-aware session bounds for a date.
func (s TradingSession) Bounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	return s.Start.On(date, loc), s.End.On(date, loc)
}

// Label renders the session bounds as "HH:MM–HH:MM".
func (s TradingSession) Label() string {
	return fmt.Sprintf("%s–%s", s.Start, s.End)
}

// BlockInterval is the time range excluded from trading around a
// medium-impact event, clipped to the enclosing session.
type BlockInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TradeableWindow is a sub-interval of a session not covered by any
// blackout. Windows are half-open: start inclusive, end exclusive.
type TradeableWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns the window length.
func (w TradeableWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Label renders the window as "HH:MM–HH:MM" in local time.
func (w TradeableWindow) Label() string {
	return fmt.Sprintf("%s–%s", w.Start.Format("15:04"), w.End.Format("15:04"))
}
