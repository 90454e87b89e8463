package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/quitofx/newswindow/internal/config"
	"github.com/quitofx/newswindow/internal/models"
)

// timestampLayouts are the known string shapes of source timestamps,
// tried in order. Naive layouts are interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Classifier normalizes raw calendar records into typed events.
// Pure over one record at a time; no side effects.
type Classifier struct {
	loc        *time.Location
	tiers      map[string]models.ImpactTier
	currencies map[string]models.Currency
	allowed    map[models.Currency]struct{}
}

// NewClassifier builds a classifier from the trading configuration.
// Mapping keys are matched case-insensitively.
func NewClassifier(cfg *config.TradingConfig, loc *time.Location) *Classifier {
	tiers := make(map[string]models.ImpactTier, len(cfg.ImportanceLevels))
	for code, tier := range cfg.ImportanceLevels {
		tiers[strings.ToLower(code)] = models.ParseImpactTier(strings.ToLower(tier))
	}

	currencies := make(map[string]models.Currency, len(cfg.CurrencyCodes))
	for code, currency := range cfg.CurrencyCodes {
		currencies[strings.ToLower(code)] = models.Currency(strings.ToUpper(currency))
	}

	allowed := make(map[models.Currency]struct{}, len(cfg.Currencies))
	for _, currency := range cfg.Currencies {
		allowed[models.Currency(strings.ToUpper(currency))] = struct{}{}
	}

	return &Classifier{
		loc:        loc,
		tiers:      tiers,
		currencies: currencies,
		allowed:    allowed,
	}
}

// Classify turns one raw record into an economic event. The boolean
// reports whether the record survived: records with an unparseable
// timestamp or an unmapped/irrelevant country are dropped, never
// errors, so one malformed record cannot break a report.
func (c *Classifier) Classify(rec models.RawCalendarRecord) (models.EconomicEvent, bool) {
	ts, ok := c.parseTimestamp(rec.Date)
	if !ok {
		return models.EconomicEvent{}, false
	}

	currency, ok := c.currencies[strings.ToLower(strings.TrimSpace(rec.Country))]
	if !ok {
		return models.EconomicEvent{}, false
	}
	if _, ok := c.allowed[currency]; !ok {
		return models.EconomicEvent{}, false
	}

	return models.EconomicEvent{
		Timestamp: ts.In(c.loc),
		Currency:  currency,
		Impact:    c.impactTier(rec.Importance),
		Title:     strings.TrimSpace(rec.Title),
	}, true
}

// ClassifyAll classifies a batch of records and reports how many were
// dropped, so the caller can surface the count instead of losing it.
func (c *Classifier) ClassifyAll(recs []models.RawCalendarRecord) ([]models.EconomicEvent, int) {
	events := make([]models.EconomicEvent, 0, len(recs))
	dropped := 0
	for _, rec := range recs {
		event, ok := c.Classify(rec)
		if !ok {
			dropped++
			continue
		}
		events = append(events, event)
	}
	return events, dropped
}

// parseTimestamp accepts epoch values (seconds or milliseconds) and
// the known string layouts. Values without a zone are taken as UTC.
func (c *Classifier) parseTimestamp(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case float64:
		return fromEpoch(int64(ts)), true
	case int64:
		return fromEpoch(ts), true
	case int:
		return fromEpoch(int64(ts)), true
	case string:
		s := strings.TrimSpace(ts)
		if s == "" {
			return time.Time{}, false
		}
		if epoch, err := strconv.ParseInt(s, 10, 64); err == nil {
			return fromEpoch(epoch), true
		}
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// fromEpoch disambiguates second vs. millisecond epochs by magnitude.
func fromEpoch(epoch int64) time.Time {
	if epoch > 1e12 {
		return time.UnixMilli(epoch).UTC()
	}
	return time.Unix(epoch, 0).UTC()
}

// impactTier maps an importance code (numeric or textual) to a tier.
// Unrecognized codes map to ImpactUnknown.
func (c *Classifier) impactTier(v any) models.ImpactTier {
	var key string
	switch code := v.(type) {
	case float64:
		key = strconv.FormatInt(int64(code), 10)
	case int:
		key = strconv.Itoa(code)
	case string:
		key = strings.ToLower(strings.TrimSpace(code))
	default:
		return models.ImpactUnknown
	}
	if tier, ok := c.tiers[key]; ok {
		return tier
	}
	return models.ImpactUnknown
}
