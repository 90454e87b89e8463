package engine

import (
	"strings"

	"github.com/quitofx/newswindow/internal/models"
)

// DetectHoliday reports whether any event title contains the keyword,
// case-insensitively, marking the whole day non-tradeable. This is a
// deliberately coarse heuristic: a title that merely mentions the
// keyword mis-triggers, and holidays phrased differently are missed.
// The keyword is configuration, not a fixed rule.
func DetectHoliday(events []models.EconomicEvent, keyword string) (bool, string) {
	if keyword == "" {
		return false, ""
	}
	needle := strings.ToLower(keyword)
	for _, event := range events {
		if strings.Contains(strings.ToLower(event.Title), needle) {
			return true, event.Title
		}
	}
	return false, ""
}
