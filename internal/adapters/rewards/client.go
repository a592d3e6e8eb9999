// Package rewards provides the outbound client for the rewards platform API
package rewards

import (
	"bytes"
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"time"

	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/logger"
)

const (
	defaultTimeout = 9 * time.Second
	defaultUA      = "boostjar"

	headerToken = "X-Integration-Token"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	Token     string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal rewards platform REST client.
// Every call is bounded by the configured timeout on top of the caller context
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("rewards"),
	}
}

// StatusError is a non-2xx response from the rewards platform
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rewards status %d body %s", e.Status, e.Body)
}

// PostBoost submits one boost grant and returns the platform receipt.
// Callers distinguish failures with errors.As on *StatusError for HTTP
// rejections and errors.Is on context.DeadlineExceeded for timeouts;
// anything else is a transport failure
func (c *Client) PostBoost(ctx context.Context, p BoostPayload) (BoostReceipt, error) {
	var out BoostReceipt
	if err := c.do(ctx, http.MethodPost, "/api/v1/boosts", p, &out); err != nil {
		return BoostReceipt{}, err
	}
	return out, nil
}

// UserStats fetches the reward totals for one platform user
func (c *Client) UserStats(ctx context.Context, accountID string) (UserStats, error) {
	var out UserStats
	path := "/api/v1/users/" + accountID + "/stats"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return UserStats{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "rewards marshal failed")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "rewards new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Token != "" {
		req.Header.Set(headerToken, c.opts.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Dur("latency", lat).
			Msg("rewards transport error")
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("rewards close body failed")
		}
	}()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("rewards http response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &StatusError{Status: resp.StatusCode, Body: string(tail)}
	}
	if out == nil {
		return nil
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "rewards decode failed")
	}
	return nil
}
