package readwise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/readwise-community/readwise-mcp/internal/config"
)

const maxErrorBodySize = 512

// Client is a thin wrapper around the Readwise v2 highlights API.
// It holds no mutable state beyond the shared http.Client and is safe
// for concurrent use.
type Client struct {
	apiBase    string
	token      string
	userAgent  string
	httpClient *http.Client
	logger     *log.Logger
}

func NewClient(cfg config.Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		apiBase:    strings.TrimRight(cfg.APIBaseURL, "/"),
		token:      cfg.APIToken,
		userAgent:  cfg.UserAgent,
		httpClient: config.NewHTTPClient(cfg),
		logger:     logger,
	}
}

// CreateHighlight submits a single highlight. The upstream endpoint
// only accepts lists, so the highlight is wrapped in a one-element
// batch. Returns the raw decoded response body.
func (c *Client) CreateHighlight(ctx context.Context, h Highlight) (any, error) {
	return c.CreateHighlights(ctx, []Highlight{h})
}

// CreateHighlights submits the whole batch in one request, order
// preserved. Returns the raw decoded response body.
func (c *Client) CreateHighlights(ctx context.Context, hs []Highlight) (any, error) {
	if len(hs) == 0 {
		return nil, errors.New("highlights is required")
	}
	for i, h := range hs {
		if strings.TrimSpace(h.Text) == "" {
			return nil, fmt.Errorf("highlights[%d]: text is required", i)
		}
	}
	return c.do(ctx, http.MethodPost, "/highlights/", map[string]any{"highlights": hs})
}

// ListHighlights fetches the first page of highlights. No pagination:
// the caller gets exactly what the upstream first page yields.
func (c *Client) ListHighlights(ctx context.Context) (any, error) {
	return c.do(ctx, http.MethodGet, "/highlights/", nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (any, error) {
	u, err := url.Parse(c.apiBase)
	if err != nil {
		return nil, err
	}
	u.Path = strings.TrimRight(u.Path, "/") + endpoint

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if len(payload) > 0 {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("method=%s endpoint=%s status=0 latency_ms=%d", method, endpoint, time.Since(start).Milliseconds())
		return nil, err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("method=%s endpoint=%s status=%d latency_ms=%d bytes=%d", method, endpoint, resp.StatusCode, time.Since(start).Milliseconds(), len(respBytes))

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       truncate(string(respBytes), maxErrorBodySize),
			Message:    errorMessage(resp.StatusCode, endpoint, respBytes),
		}
	}

	if len(respBytes) == 0 {
		return map[string]any{}, nil
	}
	var decoded any
	if err := json.Unmarshal(respBytes, &decoded); err != nil {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    fmt.Sprintf("decode response: %v", err),
		}
	}
	return decoded, nil
}

func errorMessage(status int, endpoint string, body []byte) string {
	msg := fmt.Sprintf("upstream returned status %d on %s", status, endpoint)
	if detail := strings.TrimSpace(string(body)); detail != "" {
		msg += ": " + truncate(detail, maxErrorBodySize)
	}
	return msg
}

// truncate caps s at limit bytes without splitting a UTF-8 rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "..."
}
