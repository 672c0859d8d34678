package cities

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrStatus covers transport failures and non-2xx responses.
	ErrStatus = errors.New("network or status error")

	// ErrParse covers bodies that are not a JSON array of cities.
	ErrParse = errors.New("parse error")
)

type City struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

func (c City) String() string {
	return c.Name + ", " + c.State
}

type Client struct {
	http *http.Client
	url  string
}

// New creates a client for the city list at url. A zero timeout leaves the
// transport defaults in place.
func New(url string, timeout time.Duration, logger *zap.Logger) *Client {
	// Create http client
	client := &http.Client{
		Timeout: timeout,
		Transport: LogMiddleware{
			Logger:  logger,
			Proxied: http.DefaultTransport,
		},
	}

	return &Client{
		http: client,
		url:  url,
	}
}

// Fetch issues a single GET for the city list.
func (c *Client) Fetch(ctx context.Context) ([]City, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStatus, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected response %s", ErrStatus, res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read body: %w", ErrStatus, err)
	}

	return Parse(body)
}

// Parse decodes a JSON array of {"name", "state"} objects. Both fields must be
// present strings.
func Parse(data []byte) ([]City, error) {
	var records []struct {
		Name  *string `json:"name"`
		State *string `json:"state"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	// null decodes without error
	if records == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrParse)
	}

	cities := make([]City, 0, len(records))
	for i, r := range records {
		if r.Name == nil || r.State == nil {
			return nil, fmt.Errorf("%w: record %d is missing name or state", ErrParse, i)
		}

		cities = append(cities, City{
			Name:  *r.Name,
			State: *r.State,
		})
	}

	return cities, nil
}

type LogMiddleware struct {
	Logger  *zap.Logger
	Proxied http.RoundTripper
}

func (lm LogMiddleware) RoundTrip(req *http.Request) (res *http.Response, e error) {
	start := time.Now()
	res, e = lm.Proxied.RoundTrip(req)
	if e != nil {
		return res, e
	}

	lm.Logger.Debug("http request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", res.StatusCode),
		zap.Duration("took", time.Since(start)))

	return res, nil
}
