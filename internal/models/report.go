package models

import (
	"time"
)

// Cancellation reasons reported per session.
const (
	ReasonRedNews         = "red news in session"
	ReasonBlackoutCovered = "blackout windows cover entire session"
)

// SessionOutcome is the window calculator's verdict for one session:
// either a cancellation with a reason, or the surviving tradeable
// windows in chronological order.
type SessionOutcome struct {
	Session   TradingSession    `json:"session"`
	Cancelled bool              `json:"cancelled"`
	Reason    string            `json:"reason,omitempty"`
	Windows   []TradeableWindow `json:"windows,omitempty"`
}

// DayResult is one day's findings, composed from holiday detection and
// the per-session window computation. Purely a function of the date
// and the day's calendar records.
type DayResult struct {
	Date     time.Time `json:"date"`
	Pair     string    `json:"pair"`
	Timezone string    `json:"timezone"`

	// Unavailable marks a day whose calendar fetch failed. Distinct
	// from a day with zero events.
	Unavailable       bool   `json:"unavailable,omitempty"`
	UnavailableReason string `json:"unavailable_reason,omitempty"`

	Holiday      bool   `json:"holiday,omitempty"`
	HolidayTitle string `json:"holiday_title,omitempty"`

	Sessions []SessionOutcome `json:"sessions,omitempty"`
	// Events lists the currency-relevant events for display, ascending
	// by timestamp.
	Events []EconomicEvent `json:"events,omitempty"`
	// DroppedRecords counts raw records discarded during
	// classification (unparseable timestamp, unmapped currency).
	DroppedRecords int `json:"dropped_records,omitempty"`
}
