// Package openf1 provides a read-only client for the OpenF1 telemetry API.
package openf1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/nicolarischia/f1-analytics/log"
)

const DefaultBaseURL = "https://api.openf1.org/v1"

// ErrUpstream marks any failure to retrieve or decode upstream data.
// Callers must not return partial results when this occurs.
var ErrUpstream = errors.New("upstream telemetry request failed")

type (
	Client struct {
		baseURL string
		hc      *http.Client
		l       *log.Logger
	}
	Option func(*Client)
)

func WithBaseURL(arg string) Option {
	return func(c *Client) {
		c.baseURL = arg
	}
}

// WithTimeout bounds every upstream request. There is no retry; a slow
// or failing upstream fails the request fast.
func WithTimeout(arg time.Duration) Option {
	return func(c *Client) {
		c.hc.Timeout = arg
	}
}

func WithHTTPClient(arg *http.Client) Option {
	return func(c *Client) {
		c.hc = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(c *Client) {
		c.l = arg
	}
}

func NewClient(opts ...Option) *Client {
	ret := &Client{
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
		l:       log.Default().Named("openf1"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Positions returns all position samples recorded for a session.
func (c *Client) Positions(ctx context.Context, sessionID string) ([]Position, error) {
	var ret []Position
	if err := c.get(ctx, "position", url.Values{"session_key": {sessionID}}, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Laps returns all lap records for a session.
func (c *Client) Laps(ctx context.Context, sessionID string) ([]Lap, error) {
	var ret []Lap
	if err := c.get(ctx, "laps", url.Values{"session_key": {sessionID}}, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) Sessions(ctx context.Context) ([]Session, error) {
	var ret []Session
	if err := c.get(ctx, "sessions", nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) Drivers(ctx context.Context) ([]DriverEntry, error) {
	var ret []DriverEntry
	if err := c.get(ctx, "drivers", nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) Teams(ctx context.Context) ([]TeamEntry, error) {
	var ret []TeamEntry
	if err := c.get(ctx, "teams", nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// RaceResults returns the final result rows across all races.
func (c *Client) RaceResults(ctx context.Context) ([]RaceResult, error) {
	var ret []RaceResult
	if err := c.get(ctx, "race_results", nil, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		c.l.Warn("upstream request failed",
			log.String("url", reqURL),
			log.ErrorField(err))
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.l.Warn("upstream returned non-success status",
			log.String("url", reqURL),
			log.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return nil
}
