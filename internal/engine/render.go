package engine

import (
	"fmt"
	"strings"

	"github.com/quitofx/newswindow/internal/models"
)

// daySeparator is the rule line between days in a week report.
const daySeparator = "──────────────────────────────"

// policyLine is the static reminder appended to every full day report.
const policyLine = "ℹ️ Rollover between sessions is never traded."

// RenderDay renders one day's result as the ordered text lines the
// delivery layer expects. Rendering is deterministic: the same result
// produces byte-identical text.
func RenderDay(result models.DayResult) string {
	lines := []string{
		fmt.Sprintf("📅 %s — %s (%s)", result.Date.Format("Monday 02 Jan 2006"), result.Pair, result.Timezone),
	}

	if result.Unavailable {
		lines = append(lines, fmt.Sprintf("⚠️ Calendar data unavailable: %s", result.UnavailableReason))
		return strings.Join(lines, "\n")
	}

	if result.Holiday {
		lines = append(lines, fmt.Sprintf("🚫 %s: no trading all day", result.HolidayTitle))
		return strings.Join(lines, "\n")
	}

	for _, outcome := range result.Sessions {
		lines = append(lines, renderSession(outcome))
	}

	if len(result.Events) == 0 {
		lines = append(lines, "🗓 No relevant events.")
	} else {
		lines = append(lines, "🗓 Events:")
		for _, event := range result.Events {
			lines = append(lines, fmt.Sprintf("  %s %s [%s] %s",
				event.Timestamp.Format("15:04"), event.Currency, event.Impact, event.Title))
		}
	}

	lines = append(lines, policyLine)
	return strings.Join(lines, "\n")
}

func renderSession(outcome models.SessionOutcome) string {
	if outcome.Cancelled {
		marker := "🟠"
		if outcome.Reason == models.ReasonRedNews {
			marker = "🔴"
		}
		return fmt.Sprintf("%s %s %s: no trading (%s)", marker, outcome.Session.Name, outcome.Session.Label(), outcome.Reason)
	}

	labels := make([]string, 0, len(outcome.Windows))
	for _, w := range outcome.Windows {
		labels = append(labels, w.Label())
	}
	return fmt.Sprintf("✅ %s: tradeable %s", outcome.Session.Name, strings.Join(labels, ", "))
}

// RenderWeek concatenates day reports in date order with a visible
// rule between days.
func RenderWeek(days []string) string {
	return strings.Join(days, "\n"+daySeparator+"\n")
}
