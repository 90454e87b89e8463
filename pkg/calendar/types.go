package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/quitofx/newswindow/internal/models"
)

// eventsEnvelope is the wrapped response shape of the calendar source.
// Some deployments return the bare record array instead; decodeEvents
// accepts both.
type eventsEnvelope struct {
	Status string                     `json:"status"`
	Result []models.RawCalendarRecord `json:"result"`
}

// ErrorResponse is the error payload returned by the calendar source.
type ErrorResponse struct {
	Error string `json:"error"`
}

func decodeEvents(body []byte) ([]models.RawCalendarRecord, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var recs []models.RawCalendarRecord
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal calendar records: %w", err)
		}
		return recs, nil
	}

	var envelope eventsEnvelope
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar response: %w", err)
	}
	return envelope.Result, nil
}
