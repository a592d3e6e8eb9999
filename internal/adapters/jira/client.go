// Package jira provides the outbound Jira Cloud REST client
package jira

import (
	"bytes"
	"context"
	json "encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/logger"
)

const (
	defaultTimeout = 8 * time.Second
	defaultUA      = "boostjar"
)

// Options configures the Client.
// Email and APIToken form the basic-auth pair Jira Cloud expects
type Options struct {
	BaseURL   string
	Email     string
	APIToken  string
	UserAgent string
	Timeout   time.Duration
}

// Client is a minimal Jira Cloud REST client
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
		log:  *logger.Named("jira"),
	}
}

// StatusError is a non-2xx response from Jira
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira status %d body %s", e.Status, e.Body)
}

// User is one directory entry from the Jira user search API
type User struct {
	AccountID   string `json:"accountId"`
	AccountType string `json:"accountType"`
	DisplayName string `json:"displayName"`
	Email       string `json:"emailAddress"`
	Active      bool   `json:"active"`
}

// AddComment posts a plain-text confirmation comment on an issue.
// The text is wrapped in a single-paragraph rich document, which is the
// only body shape the comment endpoint accepts
func (c *Client) AddComment(ctx context.Context, issue, text string) error {
	body := map[string]any{
		"body": map[string]any{
			"type":    "doc",
			"version": 1,
			"content": []any{
				map[string]any{
					"type": "paragraph",
					"content": []any{
						map[string]any{"type": "text", "text": text},
					},
				},
			},
		},
	}
	path := "/rest/api/2/issue/" + url.PathEscape(issue) + "/comment"
	return c.do(ctx, http.MethodPost, path, body, nil)
}

// SearchUsers pages through the user directory matching query.
// An empty query returns all browsable users; callers drive paging with
// startAt until the returned page is shorter than maxResults
func (c *Client) SearchUsers(ctx context.Context, query string, startAt, maxResults int) ([]User, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("startAt", fmt.Sprint(startAt))
	q.Set("maxResults", fmt.Sprint(maxResults))

	var out []User
	if err := c.do(ctx, http.MethodGet, "/rest/api/2/user/search?"+q.Encode(), nil, &out); err != nil {
		return nil, err
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
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "jira marshal failed")
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, body)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "jira new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.opts.Email != "" || c.opts.APIToken != "" {
		req.SetBasicAuth(c.opts.Email, c.opts.APIToken)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	lat := time.Since(start)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Dur("latency", lat).
			Msg("jira transport error")
		return err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("jira close body failed")
		}
	}()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("jira http response")

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
		return perr.Wrapf(err, perr.ErrorCodeJSON, "jira decode failed")
	}
	return nil
}
