package models

import (
	"time"
)

// ImpactTier classifies how disruptive a calendar event is to trading.
type ImpactTier string

const (
	// ImpactHigh cancels any session the event falls into.
	ImpactHigh ImpactTier = "high"
	// ImpactMedium blocks a fixed radius of time around the event.
	ImpactMedium ImpactTier = "medium"
	// ImpactLow is informational only.
	ImpactLow ImpactTier = "low"
	// ImpactUnknown is the fallback for unrecognized importance codes.
	ImpactUnknown ImpactTier = "unknown"
)

// ParseImpactTier maps a tier name to its enumeration value.
// Unrecognized names fall back to ImpactUnknown rather than erroring.
func ParseImpactTier(s string) ImpactTier {
	switch ImpactTier(s) {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return ImpactTier(s)
	default:
		return ImpactUnknown
	}
}

// Currency identifies one of the currencies relevant to the traded pair.
type Currency string

// RawCalendarRecord is one entry as delivered by the calendar source,
// before classification. Date and Importance are left untyped because
// upstream sources disagree on their shape (epoch millis vs. date
// string, numeric code vs. label).
type RawCalendarRecord struct {
	Date       any    `json:"date"`
	Country    string `json:"country"`
	Importance any    `json:"importance"`
	Title      string `json:"title"`
}

// EconomicEvent is a classified calendar entry, localized to the
// configured trading timezone. Immutable after classification.
type EconomicEvent struct {
	Timestamp time.Time  `json:"timestamp"`
	Currency  Currency   `json:"currency"`
	Impact    ImpactTier `json:"impact"`
	Title     string     `json:"title"`
}
