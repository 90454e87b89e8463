package engine

import (
	"sort"
	"time"

	"github.com/quitofx/newswindow/internal/models"
)

// ComputeSession evaluates one trading session against the day's
// classified events and returns either a cancellation or the tradeable
// windows in chronological order.
//
// Boundary convention: windows and blackout intervals are half-open
// [start, end), applied uniformly so adjacent blackouts cannot leave a
// zero-width sliver counted as tradeable. The high-impact cancellation
// check alone is inclusive of both session bounds.
func ComputeSession(session models.TradingSession, date time.Time, loc *time.Location, events []models.EconomicEvent, radius, minimum time.Duration) models.SessionOutcome {
	start, end := session.Bounds(date, loc)

	// A high-impact event inside the session cancels it outright;
	// medium blackouts are irrelevant once that happens.
	for _, event := range events {
		if event.Impact != models.ImpactHigh {
			continue
		}
		if !event.Timestamp.Before(start) && !event.Timestamp.After(end) {
			return models.SessionOutcome{
				Session:   session,
				Cancelled: true,
				Reason:    models.ReasonRedNews,
			}
		}
	}

	blocks := blackouts(events, start, end, radius)

	windows := subtract(models.TradeableWindow{Start: start, End: end}, blocks)

	kept := windows[:0]
	for _, w := range windows {
		if w.Duration() >= minimum {
			kept = append(kept, w)
		}
	}

	if len(kept) == 0 {
		return models.SessionOutcome{
			Session:   session,
			Cancelled: true,
			Reason:    models.ReasonBlackoutCovered,
		}
	}

	return models.SessionOutcome{Session: session, Windows: kept}
}

// blackouts builds the clipped blackout intervals of every
// medium-impact event overlapping the session, sorted by start.
func blackouts(events []models.EconomicEvent, start, end time.Time, radius time.Duration) []models.BlockInterval {
	var blocks []models.BlockInterval
	for _, event := range events {
		if event.Impact != models.ImpactMedium {
			continue
		}
		block := models.BlockInterval{
			Start: event.Timestamp.Add(-radius),
			End:   event.Timestamp.Add(radius),
		}
		if block.End.Before(start) || block.Start.After(end) {
			continue
		}
		if block.Start.Before(start) {
			block.Start = start
		}
		if block.End.After(end) {
			block.End = end
		}
		blocks = append(blocks, block)
	}
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})
	return blocks
}

// subtract removes each blackout interval from the working window set.
// Overlapping blackouts compound via repeated subtraction; processing
// blackouts start-ascending with local splits preserves chronological
// order of the survivors.
func subtract(initial models.TradeableWindow, blocks []models.BlockInterval) []models.TradeableWindow {
	windows := []models.TradeableWindow{initial}
	for _, block := range blocks {
		next := make([]models.TradeableWindow, 0, len(windows)+1)
		for _, w := range windows {
			// Half-open intervals: no overlap when the blackout starts
			// at or after the window end, or ends at or before its start.
			if !block.Start.Before(w.End) || !block.End.After(w.Start) {
				next = append(next, w)
				continue
			}
			if block.Start.After(w.Start) {
				next = append(next, models.TradeableWindow{Start: w.Start, End: block.Start})
			}
			if block.End.Before(w.End) {
				next = append(next, models.TradeableWindow{Start: block.End, End: w.End})
			}
		}
		windows = next
	}
	return windows
}
