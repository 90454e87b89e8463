package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{input: "08:00", want: ClockTime{Hour: 8, Minute: 0}},
		{input: "8:00", want: ClockTime{Hour: 8, Minute: 0}},
		{input: "15:45", want: ClockTime{Hour: 15, Minute: 45}},
		{input: "23:59", want: ClockTime{Hour: 23, Minute: 59}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClockTime_On(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	date := time.Date(2025, time.March, 3, 23, 59, 0, 0, loc)
	anchored := ClockTime{Hour: 8, Minute: 30}.On(date, loc)

	assert.Equal(t, time.Date(2025, time.March, 3, 8, 30, 0, 0, loc), anchored)
}

func TestClockTime_Before(t *testing.T) {
	assert.True(t, ClockTime{Hour: 8, Minute: 0}.Before(ClockTime{Hour: 15, Minute: 45}))
	assert.True(t, ClockTime{Hour: 8, Minute: 0}.Before(ClockTime{Hour: 8, Minute: 1}))
	assert.False(t, ClockTime{Hour: 8, Minute: 0}.Before(ClockTime{Hour: 8, Minute: 0}))
	assert.False(t, ClockTime{Hour: 9, Minute: 0}.Before(ClockTime{Hour: 8, Minute: 59}))
}

func TestClockTime_String(t *testing.T) {
	assert.Equal(t, "08:05", ClockTime{Hour: 8, Minute: 5}.String())
	assert.Equal(t, "17:45", ClockTime{Hour: 17, Minute: 45}.String())
}

func TestTradingSession_Bounds(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	session := TradingSession{
		Name:  "Session 1",
		Start: ClockTime{Hour: 8, Minute: 0},
		End:   ClockTime{Hour: 15, Minute: 45},
	}
	date := time.Date(2025, time.March, 3, 0, 0, 0, 0, loc)

	start, end := session.Bounds(date, loc)

	assert.Equal(t, time.Date(2025, time.March, 3, 8, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, time.March, 3, 15, 45, 0, 0, loc), end)
	assert.Equal(t, "08:00–15:45", session.Label())
}

func TestTradeableWindow_Label(t *testing.T) {
	loc, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	w := TradeableWindow{
		Start: time.Date(2025, time.March, 3, 8, 0, 0, 0, loc),
		End:   time.Date(2025, time.March, 3, 9, 0, 0, 0, loc),
	}

	assert.Equal(t, "08:00–09:00", w.Label())
	assert.Equal(t, time.Hour, w.Duration())
}

func TestParseImpactTier(t *testing.T) {
	assert.Equal(t, ImpactHigh, ParseImpactTier("high"))
	assert.Equal(t, ImpactMedium, ParseImpactTier("medium"))
	assert.Equal(t, ImpactLow, ParseImpactTier("low"))
	assert.Equal(t, ImpactUnknown, ParseImpactTier("unknown"))
	assert.Equal(t, ImpactUnknown, ParseImpactTier("severe"))
	assert.Equal(t, ImpactUnknown, ParseImpactTier(""))
}
