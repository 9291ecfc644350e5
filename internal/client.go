package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	DefaultBaseURL      = "http://127.0.0.1:8000"
	DefaultTimeout      = 180 * time.Second
	DefaultImageTimeout = 120 * time.Second
	DefaultTextTimeout  = 10 * time.Second

	DefaultHistoryLimit = 20
)

// Options configures a Client. Zero durations take the defaults above.
type Options struct {
	BaseURL        string
	DefaultTimeout time.Duration
	ImageTimeout   time.Duration
	TextTimeout    time.Duration
}

// ImageUpload is the file handed to SubmitImageAudit
type ImageUpload struct {
	Name     string
	MimeType string
	Size     int64
	Data     io.Reader
}

// Client talks to the analysis backend. It keeps no state between calls and
// is safe for concurrent use.
type Client struct {
	http *resty.Client
	opts Options
}

// NewClient creates a backend client
func NewClient(opts Options) *Client {
	if strings.TrimSpace(opts.BaseURL) == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = DefaultTimeout
	}
	if opts.ImageTimeout <= 0 {
		opts.ImageTimeout = DefaultImageTimeout
	}
	if opts.TextTimeout <= 0 {
		opts.TextTimeout = DefaultTextTimeout
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	return &Client{
		http: resty.New().
			SetBaseURL(opts.BaseURL).
			SetHeader("Accept", "application/json"),
		opts: opts,
	}
}

// BaseURL returns the backend root this client targets
func (c *Client) BaseURL() string {
	return c.opts.BaseURL
}

// SubmitImageAudit uploads a chat screenshot. Callers validate type and size.
func (c *Client) SubmitImageAudit(ctx context.Context, img ImageUpload) (*Payload, error) {
	const op = "submit image"
	body, err := c.execute(ctx, op, http.MethodPost, "/api/audit/upload", c.opts.ImageTimeout, func(r *resty.Request) {
		r.SetMultipartField("file", img.Name, img.MimeType, img.Data)
	})
	if err != nil {
		return nil, err
	}
	return parseAuditBody(body)
}

// SubmitTextAudit sends a raw chat log. Callers reject blank text.
func (c *Client) SubmitTextAudit(ctx context.Context, text string) (*Payload, error) {
	const op = "submit text"
	body, err := c.execute(ctx, op, http.MethodPost, "/api/audit/text", c.opts.TextTimeout, func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody(map[string]string{"text": text})
	})
	if err != nil {
		return nil, err
	}
	return parseAuditBody(body)
}

// ListHistory returns stored sessions, newest first
func (c *Client) ListHistory(ctx context.Context, skip, limit int) ([]HistorySessionSummary, error) {
	const op = "list history"
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	body, err := c.execute(ctx, op, http.MethodGet, "/api/history", c.opts.DefaultTimeout, func(r *resty.Request) {
		r.SetQueryParam("skip", strconv.Itoa(skip)).
			SetQueryParam("limit", strconv.Itoa(limit))
	})
	if err != nil {
		return nil, err
	}
	sessions, err := ParseHistoryList(body)
	if err != nil {
		return nil, &ParseError{Source: "history", Err: err}
	}
	return sessions, nil
}

// GetHistoryDetail fetches one stored session. A 404 yields *NotFoundError;
// any other failure yields *ConnectionError.
func (c *Client) GetHistoryDetail(ctx context.Context, id int64) (*HistorySessionDetail, error) {
	const op = "history detail"
	body, err := c.execute(ctx, op, http.MethodGet, historyPath(id), c.opts.DefaultTimeout, nil)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound {
			return nil, &NotFoundError{ID: id}
		}
		return nil, &ConnectionError{Op: op, Err: err}
	}
	detail, err := ParseHistoryDetail(body)
	if err != nil {
		return nil, &ConnectionError{Op: op, Err: &ParseError{Source: "history detail", Err: err}}
	}
	return detail, nil
}

// DeleteHistory removes one stored session
func (c *Client) DeleteHistory(ctx context.Context, id int64) error {
	const op = "delete history"
	if _, err := c.execute(ctx, op, http.MethodDelete, historyPath(id), c.opts.DefaultTimeout, nil); err != nil {
		return &ConnectionError{Op: op, Err: err}
	}
	return nil
}

// CheckHealth reports whether GET /api/health answered 200. It never fails;
// every error counts as unreachable.
func (c *Client) CheckHealth(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.opts.DefaultTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString()).
		Get("/api/health")
	if err != nil {
		LogDebug("health check failed: %v", err)
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

func (c *Client) execute(ctx context.Context, op, method, path string, timeout time.Duration, prepare func(*resty.Request)) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if prepare != nil {
		prepare(req)
	}

	LogDebug("%s %s%s (request %s, timeout %s)", method, c.opts.BaseURL, path, requestID, timeout)
	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	LogDebug("%s %s -> %d in %s", method, path, resp.StatusCode(), time.Since(start).Round(time.Millisecond))

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, &HTTPError{Op: op, Status: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}

func parseAuditBody(body []byte) (*Payload, error) {
	p, err := ParsePayload(body)
	if err != nil {
		return nil, &ParseError{Source: "audit", Err: err}
	}
	return p, nil
}

func historyPath(id int64) string {
	return fmt.Sprintf("/api/history/%d", id)
}
