package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"userAnalytics/internal/metrics"
	"userAnalytics/models"
)

// DefaultTimeout bounds the whole request, body included.
const DefaultTimeout = 20 * time.Second

// StatusError reports a non-success HTTP status from the users endpoint.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error(%d)", e.StatusCode)
}

// Client fetches the users list. It performs exactly one request per call and
// never retries.
type Client struct {
	http *resty.Client
	url  string
	log  *slog.Logger
}

func NewClient(url string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, url: url, log: log}
}

// FetchUsers downloads and decodes the users list. Keys missing from an object
// decode to nil fields; no other validation is done.
func (c *Client) FetchUsers(ctx context.Context) ([]models.UserRecord, error) {
	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	metrics.ObserveFetch(time.Since(start))
	if err != nil {
		metrics.RecordFetchError("transport")
		return nil, fmt.Errorf("get %s: %w", c.url, err)
	}
	if !resp.IsSuccess() {
		metrics.RecordFetchError("status")
		c.log.Error("users endpoint returned non-success status", slog.String("url", c.url), slog.Int("status", resp.StatusCode()))
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	users, err := decodeUsers(resp.Body())
	if err != nil {
		metrics.RecordFetchError("decode")
		return nil, fmt.Errorf("decode users: %w", err)
	}
	c.log.Info("users fetched", slog.Int("count", len(users)), slog.Duration("took", resp.Time()))
	return users, nil
}
