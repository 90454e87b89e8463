package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quitofx/newswindow/internal/models"
)

var testLoc = mustLoadLocation("America/Guayaquil")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func testDate() time.Time {
	return time.Date(2025, time.March, 3, 0, 0, 0, 0, testLoc)
}

func at(t *testing.T, hour, minute int) time.Time {
	t.Helper()
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, testLoc)
}

func session1() models.TradingSession {
	return models.TradingSession{
		Name:  "Session 1",
		Start: models.ClockTime{Hour: 8, Minute: 0},
		End:   models.ClockTime{Hour: 15, Minute: 45},
	}
}

func session2() models.TradingSession {
	return models.TradingSession{
		Name:  "Session 2",
		Start: models.ClockTime{Hour: 17, Minute: 45},
		End:   models.ClockTime{Hour: 21, Minute: 0},
	}
}

func mediumEvent(t *testing.T, hour, minute int, title string) models.EconomicEvent {
	t.Helper()
	return models.EconomicEvent{
		Timestamp: at(t, hour, minute),
		Currency:  "USD",
		Impact:    models.ImpactMedium,
		Title:     title,
	}
}

func TestComputeSession_NoEvents(t *testing.T) {
	outcome := ComputeSession(session1(), testDate(), testLoc, nil, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
	assert.Equal(t, at(t, 8, 0), outcome.Windows[0].Start)
	assert.Equal(t, at(t, 15, 45), outcome.Windows[0].End)
}

func TestComputeSession_SingleMediumBlackout(t *testing.T) {
	events := []models.EconomicEvent{mediumEvent(t, 10, 0, "CPI m/m")}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 2)
	assert.Equal(t, "08:00–09:00", outcome.Windows[0].Label())
	assert.Equal(t, "11:00–15:45", outcome.Windows[1].Label())
}

func TestComputeSession_HighImpactCancelsSession(t *testing.T) {
	events := []models.EconomicEvent{{
		Timestamp: at(t, 19, 30),
		Currency:  "USD",
		Impact:    models.ImpactHigh,
		Title:     "FOMC Statement",
	}}

	outcome := ComputeSession(session2(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.True(t, outcome.Cancelled)
	assert.Equal(t, models.ReasonRedNews, outcome.Reason)
	assert.Empty(t, outcome.Windows)
}

func TestComputeSession_HighImpactSupersedesMedium(t *testing.T) {
	events := []models.EconomicEvent{
		mediumEvent(t, 10, 0, "CPI m/m"),
		{
			Timestamp: at(t, 12, 0),
			Currency:  "EUR",
			Impact:    models.ImpactHigh,
			Title:     "ECB Press Conference",
		},
	}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.True(t, outcome.Cancelled)
	assert.Equal(t, models.ReasonRedNews, outcome.Reason)
}

func TestComputeSession_HighImpactOutsideSessionIgnored(t *testing.T) {
	events := []models.EconomicEvent{{
		Timestamp: at(t, 16, 30),
		Currency:  "USD",
		Impact:    models.ImpactHigh,
		Title:     "Fed Chair Speech",
	}}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
}

func TestComputeSession_OverlappingBlackoutsCompound(t *testing.T) {
	events := []models.EconomicEvent{
		mediumEvent(t, 9, 0, "PMI"),
		mediumEvent(t, 9, 50, "Retail Sales"),
	}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
	assert.Equal(t, "10:50–15:45", outcome.Windows[0].Label())
}

func TestComputeSession_MinimumWidthFilter(t *testing.T) {
	// Blackout 08:05–10:05 leaves a 5-minute sliver before it.
	events := []models.EconomicEvent{mediumEvent(t, 9, 5, "PPI")}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
	assert.Equal(t, "10:05–15:45", outcome.Windows[0].Label())
}

func TestComputeSession_BlackoutsCoverEntireSession(t *testing.T) {
	events := []models.EconomicEvent{
		mediumEvent(t, 18, 30, "Speech"),
		mediumEvent(t, 20, 15, "Minutes"),
	}

	outcome := ComputeSession(session2(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.True(t, outcome.Cancelled)
	assert.Equal(t, models.ReasonBlackoutCovered, outcome.Reason)
}

func TestComputeSession_BlackoutOutsideSessionDiscarded(t *testing.T) {
	// Blackout 05:00–07:00 ends before the session opens.
	events := []models.EconomicEvent{mediumEvent(t, 6, 0, "Overnight data")}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
	assert.Equal(t, "08:00–15:45", outcome.Windows[0].Label())
}

func TestComputeSession_LowAndUnknownEventsDoNotBlock(t *testing.T) {
	events := []models.EconomicEvent{
		{Timestamp: at(t, 10, 0), Currency: "USD", Impact: models.ImpactLow, Title: "Minor release"},
		{Timestamp: at(t, 11, 0), Currency: "EUR", Impact: models.ImpactUnknown, Title: "Odd entry"},
	}

	outcome := ComputeSession(session1(), testDate(), testLoc, events, time.Hour, 10*time.Minute)

	require.False(t, outcome.Cancelled)
	require.Len(t, outcome.Windows, 1)
}

// Subtraction must be exact: windows plus clipped blackouts partition
// the session span, and windows never overlap.
func TestComputeSession_SubtractionIsExact(t *testing.T) {
	events := []models.EconomicEvent{
		mediumEvent(t, 9, 0, "A"),
		mediumEvent(t, 9, 50, "B"),
		mediumEvent(t, 13, 0, "C"),
	}
	session := session1()
	start, end := session.Bounds(testDate(), testLoc)

	// No minimum-width filter so the partition property holds exactly.
	outcome := ComputeSession(session, testDate(), testLoc, events, time.Hour, 0)
	require.False(t, outcome.Cancelled)

	blocks := blackouts(events, start, end, time.Hour)

	var covered time.Duration
	for _, w := range outcome.Windows {
		covered += w.Duration()
	}
	// Blackouts overlap each other, so measure their merged extent.
	var merged time.Duration
	cursor := start
	for _, b := range blocks {
		s := b.Start
		if s.Before(cursor) {
			s = cursor
		}
		if b.End.After(s) {
			merged += b.End.Sub(s)
			cursor = b.End
		}
	}
	assert.Equal(t, end.Sub(start), covered+merged)

	// Chronological order, no overlap.
	for i := 1; i < len(outcome.Windows); i++ {
		assert.True(t, !outcome.Windows[i].Start.Before(outcome.Windows[i-1].End),
			"windows %d and %d overlap", i-1, i)
	}
}
