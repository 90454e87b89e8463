package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quitofx/newswindow/internal/config"
	"github.com/quitofx/newswindow/internal/models"
)

// ErrUnavailable marks a calendar source failure. Callers must render
// it as "data unavailable", never conflate it with zero events.
var ErrUnavailable = errors.New("calendar source unavailable")

// Client fetches raw economic-calendar records over HTTP.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	countries  string
}

// NewClient creates a calendar client for the configured source.
func NewClient(cfg *config.CalendarConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		BaseURL:   strings.TrimSuffix(cfg.ServiceURL, "/"),
		countries: strings.Join(cfg.Countries, ","),
	}
}

// FetchDay retrieves the raw calendar records for one calendar date.
func (c *Client) FetchDay(ctx context.Context, date time.Time) ([]models.RawCalendarRecord, error) {
	day := date.Format("2006-01-02")
	params := url.Values{}
	params.Set("from", day)
	params.Set("to", day)
	if c.countries != "" {
		params.Set("countries", c.countries)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "newswindow/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Warn("Error closing calendar response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: calendar source returned status %d", ErrUnavailable, resp.StatusCode)
	}

	recs, err := decodeEvents(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	logrus.WithFields(logrus.Fields{
		"date":    day,
		"records": len(recs),
	}).Debug("Fetched calendar records")

	return recs, nil
}
