package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	domainErrors "github.com/thomas-vilte/github2range/internal/errors"
	"github.com/thomas-vilte/github2range/internal/logger"
	"github.com/thomas-vilte/github2range/internal/models"
)

const defaultMaxResponseBody = 4096

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// DeliveryResult describes a completed HTTP exchange. A non-2xx status is
// still a completed delivery.
type DeliveryResult struct {
	StatusCode int
	Body       string
	Truncated  bool
	Latency    time.Duration
}

// Client posts suggestions to a Range incoming webhook, one request per
// suggestion, without retries.
type Client struct {
	url             string
	httpClient      HTTPClient
	userAgent       string
	maxResponseBody int
}

type Option func(*Client)

func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

func WithMaxResponseBody(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.maxResponseBody = n
		}
	}
}

func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:             url,
		httpClient:      &http.Client{},
		maxResponseBody: defaultMaxResponseBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode serializes a suggestion into the webhook JSON body.
func Encode(s models.Suggestion) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, domainErrors.ErrEncodeSuggestion.WithError(err).WithContext("source_id", s.Attachment.SourceID)
	}
	return payload, nil
}

func (c *Client) Deliver(ctx context.Context, s models.Suggestion) (*DeliveryResult, error) {
	log := logger.FromContext(ctx)

	payload, err := Encode(s)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, domainErrors.ErrDelivery.WithError(err).WithContext("source_id", s.Attachment.SourceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Length", strconv.Itoa(len(payload)))
	req.ContentLength = int64(len(payload))
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainErrors.ErrDelivery.WithError(err).WithContext("source_id", s.Attachment.SourceID)
	}
	defer resp.Body.Close()

	result := &DeliveryResult{
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}

	// +1 to detect truncation
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, int64(c.maxResponseBody)+1))
	if readErr != nil {
		log.Warn("failed to read webhook response body", "source_id", s.Attachment.SourceID, "error", readErr)
	}
	if len(body) > c.maxResponseBody {
		body = body[:c.maxResponseBody]
		result.Truncated = true
	}
	result.Body = string(body)

	log.Debug("suggestion delivered",
		"source_id", s.Attachment.SourceID,
		"status", result.StatusCode,
		"duration_ms", result.Latency.Milliseconds())

	if result.Body != "" {
		log.Info("webhook response", "source_id", s.Attachment.SourceID, "body", result.Body)
	}
	if result.StatusCode >= http.StatusBadRequest {
		log.Warn("webhook answered with an error status", "source_id", s.Attachment.SourceID, "status", result.StatusCode)
	}

	return result, nil
}
