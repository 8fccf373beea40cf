package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"imbalance-report/internal/model"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Elexon Insights API.
const DefaultBaseURL = "https://data.elexon.co.uk/bmrs/api/v1"

// ErrNoData is returned when the API answers a valid request with an empty
// data set (e.g. a future settlement date).
var ErrNoData = errors.New("no settlement data for date")

// ElexonClient provides methods to fetch data from the Elexon Insights API.
type ElexonClient struct {
	BaseURL string
	Client  *http.Client
}

// NewElexonClient creates a new Elexon Insights API client.
// If baseURL is empty, defaults to DefaultBaseURL.
func NewElexonClient(baseURL string) *ElexonClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ElexonClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ElexonError represents an error response from the Elexon API.
type ElexonError struct {
	StatusCode int
	Code       string
	Message    string
	RetryAfter string // For rate limit errors
}

func (e *ElexonError) Error() string {
	return e.Message
}

// SystemPrices fetches imbalance system prices for one settlement date.
// date must be in "YYYY-MM-DD" format. A single day's data fits one
// response, so there is no pagination and no retrying.
func (c *ElexonClient) SystemPrices(date string) (*model.SystemPricesResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid settlement date %q (expected YYYY-MM-DD): %w", date, err)
	}

	u, err := url.Parse(c.BaseURL + "/balancing/settlement/system-prices/" + date)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("date", date).Str("path", u.Path).Msg("elexon request")

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.Error().Err(err).Str("date", date).Dur("duration", duration).Msg("elexon request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Str("date", date).
		Msg("elexon response")

	switch resp.StatusCode {
	case http.StatusOK:
		// Success, continue
	case http.StatusBadRequest:
		return nil, &ElexonError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_REQUEST",
			Message:    fmt.Sprintf("API rejected settlement date %q", date),
		}
	case http.StatusNotFound:
		return nil, &ElexonError{
			StatusCode: resp.StatusCode,
			Code:       "NOT_FOUND",
			Message:    fmt.Sprintf("no system-prices resource for %q", date),
		}
	case http.StatusTooManyRequests:
		retryAfter := resp.Header.Get("Retry-After")
		return nil, &ElexonError{
			StatusCode: resp.StatusCode,
			Code:       "RATE_LIMIT_EXCEEDED",
			Message:    fmt.Sprintf("rate limit exceeded, retry after: %s", retryAfter),
			RetryAfter: retryAfter,
		}
	default:
		return nil, &ElexonError{
			StatusCode: resp.StatusCode,
			Code:       "API_ERROR",
			Message:    fmt.Sprintf("API returned status %d: %s", resp.StatusCode, resp.Status),
		}
	}

	var result model.SystemPricesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return nil, fmt.Errorf("%s: %w", date, ErrNoData)
	}

	log.Info().Int("rows", len(result.Data)).Str("date", date).Msg("fetched system prices")
	return &result, nil
}

// FetchDay fetches system prices for a settlement date. With completeDay set,
// it also looks for periods the API files under the adjacent settlement dates
// (this happens around clock changes) and adopts any row whose start time
// falls inside the requested civil day. Remaining gaps are logged, never
// fatal: the period count for a day is derived from the data (46/48/50).
func (c *ElexonClient) FetchDay(date string, completeDay bool) (*model.SystemPricesResponse, error) {
	resp, err := c.SystemPrices(date)
	if err != nil {
		return nil, err
	}
	if !completeDay {
		return resp, nil
	}

	expected, err := ExpectedStartTimes(date)
	if err != nil {
		return nil, err
	}
	missing := missingStartTimes(expected, resp.Data)
	if len(missing) == 0 {
		return resp, nil
	}

	day, _ := time.Parse("2006-01-02", date)
	for _, adjacent := range []string{
		day.AddDate(0, 0, -1).Format("2006-01-02"),
		day.AddDate(0, 0, 1).Format("2006-01-02"),
	} {
		adj, err := c.SystemPrices(adjacent)
		if err != nil {
			// A neighbour with no data yet is normal (e.g. reporting today).
			log.Warn().Err(err).Str("date", adjacent).Msg("could not fetch adjacent settlement date")
			continue
		}
		for _, row := range adj.Data {
			if _, ok := missing[row.StartTime.UTC()]; ok {
				resp.Data = append(resp.Data, row)
			}
		}
	}

	if still := missingStartTimes(expected, resp.Data); len(still) > 0 {
		times := make([]string, 0, len(still))
		for t := range still {
			times = append(times, t.Format("15:04"))
		}
		log.Warn().Str("date", date).Strs("start_times", times).Msg("settlement date is missing settlement periods")
	}
	return resp, nil
}

// ExpectedStartTimes generates the half-hourly period start times for a
// civil day in UTC (00:00 through 23:30).
func ExpectedStartTimes(date string) ([]time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid settlement date %q (expected YYYY-MM-DD): %w", date, err)
	}
	out := make([]time.Time, 0, 48)
	for t := day; t.Day() == day.Day(); t = t.Add(30 * time.Minute) {
		out = append(out, t)
	}
	return out, nil
}

func missingStartTimes(expected []time.Time, rows []model.SystemPriceRow) map[time.Time]struct{} {
	have := make(map[time.Time]struct{}, len(rows))
	for _, row := range rows {
		have[row.StartTime.UTC()] = struct{}{}
	}
	missing := map[time.Time]struct{}{}
	for _, t := range expected {
		if _, ok := have[t]; !ok {
			missing[t] = struct{}{}
		}
	}
	return missing
}
