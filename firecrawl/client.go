// Package firecrawl provides a Firecrawl-backed implementation of
// webtab.Extractor. Extraction runs as an asynchronous job on the service:
// the client submits the job, then polls its status until completion.
package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fwojciec/webtab"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the hosted Firecrawl API endpoint.
const DefaultBaseURL = "https://api.firecrawl.dev"

// DefaultPollInterval is the delay between job status polls.
const DefaultPollInterval = 2 * time.Second

// DefaultMaxPollAttempts bounds how many status polls a single extraction
// may take before it is reported as timed out.
const DefaultMaxPollAttempts = 60

// DefaultRequestTimeout is the per-request HTTP timeout.
const DefaultRequestTimeout = 30 * time.Second

// errProcessing marks a poll that found the job still running.
var errProcessing = errors.New("extraction job still processing")

// Ensure Client implements webtab.Extractor at compile time.
var _ webtab.Extractor = (*Client)(nil)

// Client calls the Firecrawl v1 extract API.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	limiter         *rate.Limiter
	pollInterval    time.Duration
	maxPollAttempts uint
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Useful for self-hosted instances
// and tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPollInterval sets the delay between job status polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

// WithMaxPollAttempts sets how many status polls to attempt before giving up.
func WithMaxPollAttempts(n uint) Option {
	return func(c *Client) { c.maxPollAttempts = n }
}

// WithLimiter overrides the client-side request rate limiter.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// NewClient creates a Firecrawl client. An empty API key is refused up front
// with EUNAUTHORIZED so no request is ever attempted without a credential.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, webtab.Errorf(webtab.EUNAUTHORIZED, "Firecrawl API key required")
	}

	c := &Client{
		apiKey:          apiKey,
		baseURL:         DefaultBaseURL,
		pollInterval:    DefaultPollInterval,
		maxPollAttempts: DefaultMaxPollAttempts,
		limiter:         rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultRequestTimeout}
	}

	return c, nil
}

// extractRequest is the submit body for POST /v1/extract.
type extractRequest struct {
	URLs   []string       `json:"urls"`
	Prompt string         `json:"prompt,omitempty"`
	Schema *webtab.Schema `json:"schema,omitempty"`
}

// extractResponse is the envelope for both the submit and the status
// endpoints.
type extractResponse struct {
	Success bool            `json:"success"`
	ID      string          `json:"id,omitempty"`
	Status  string          `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// terminal reports whether the status means the job is done.
func (r *extractResponse) terminal() bool {
	return r.Status == "completed"
}

// Extract submits an extraction job and blocks until it completes, the
// context is cancelled, or the poll budget runs out.
func (c *Client) Extract(ctx context.Context, urls []string, params webtab.ExtractParams) (*webtab.ExtractResult, error) {
	submit, raw, err := c.do(ctx, http.MethodPost, "/v1/extract", &extractRequest{
		URLs:   urls,
		Prompt: params.Prompt,
		Schema: params.Schema,
	})
	if err != nil {
		return nil, err
	}

	// The API answers cached extractions synchronously.
	if submit.terminal() {
		return &webtab.ExtractResult{Data: submit.Data, Raw: raw, Status: submit.Status}, nil
	}
	if submit.ID == "" {
		return nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction service returned no job ID")
	}

	var result *webtab.ExtractResult
	err = retry.Do(
		func() error {
			status, raw, err := c.do(ctx, http.MethodGet, "/v1/extract/"+submit.ID, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			switch status.Status {
			case "completed":
				result = &webtab.ExtractResult{Data: status.Data, Raw: raw, Status: status.Status}
				return nil
			case "failed", "cancelled":
				msg := status.Error
				if msg == "" {
					msg = "extraction job " + status.Status
				}
				return retry.Unrecoverable(webtab.Errorf(webtab.EUNAVAILABLE, "%s", msg))
			default:
				return errProcessing
			}
		},
		retry.Context(ctx),
		retry.Attempts(c.maxPollAttempts),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if errors.Is(err, errProcessing) {
			return nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction timed out after %d status checks", c.maxPollAttempts)
		}
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, ctxErr
		}
		return nil, err
	}

	return result, nil
}

// do issues one API request and decodes the response envelope. It waits on
// the client-side rate limiter before sending and maps HTTP failures to
// application error codes. The raw body is returned alongside the envelope
// for the caller's fallback rendering.
func (c *Client) do(ctx context.Context, method, path string, body any) (*extractResponse, json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, err
	}

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction request failed: %s", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "reading extraction response: %s", err)
	}

	var env extractResponse
	decodeErr := json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, webtab.Errorf(webtab.EUNAUTHORIZED, "extraction service rejected the API key")
	case resp.StatusCode == http.StatusPaymentRequired:
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction service reports insufficient credits")
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction service rate limit exceeded")
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		if decodeErr == nil && env.Error != "" {
			return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "%s", env.Error)
		}
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "extraction service returned HTTP %d", resp.StatusCode)
	}

	if decodeErr != nil {
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "malformed extraction response: %s", decodeErr)
	}
	if !env.Success && env.Error != "" {
		return nil, nil, webtab.Errorf(webtab.EUNAVAILABLE, "%s", env.Error)
	}

	return &env, raw, nil
}
