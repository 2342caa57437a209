package httpcsv

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-playoff-efficiency/internal/domain/playoffs"
	"github.com/preston-bernstein/nba-playoff-efficiency/internal/providers"
)

// Config controls how the client reaches the export host.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches raw per-season CSV exports over HTTP from {BaseURL}/{raw file name}.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

func (c *Client) Name() string { return providerName }

// FetchTable downloads and decodes one season's export.
// 404 maps to providers.ErrSeasonNotFound and 429 to *providers.RateLimitError.
func (c *Client) FetchTable(ctx context.Context, season int) (playoffs.RawTable, error) {
	req, err := c.buildRequest(ctx, season)
	if err != nil {
		return playoffs.RawTable{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return playoffs.RawTable{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return playoffs.RawTable{}, fmt.Errorf("%s: season %d: %w", providerName, season, providers.ErrSeasonNotFound)
	case http.StatusTooManyRequests:
		return playoffs.RawTable{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    readSnippet(resp.Body),
		}
	default:
		return playoffs.RawTable{}, fmt.Errorf("%s: unexpected status %d: %s", providerName, resp.StatusCode, readSnippet(resp.Body))
	}

	table, err := providers.DecodeCSV(resp.Body, season)
	if err != nil {
		return playoffs.RawTable{}, fmt.Errorf("%s: season %d: %w", providerName, season, err)
	}
	return table, nil
}

func (c *Client) buildRequest(ctx context.Context, season int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+providers.RawFileName(season), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func readSnippet(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return strings.TrimSpace(string(body))
}
