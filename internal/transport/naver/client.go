package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/cureat-cloud/matseek/internal/domain"
	"github.com/cureat-cloud/matseek/internal/metrics"
)

const defaultBaseURL = "https://openapi.naver.com/v1/search"

// Client calls the Naver open API search endpoints (local.json, blog.json).
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
	logger       *zap.Logger
}

// Config holds the Naver open API settings.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	Timeout      time.Duration
	Logger       *zap.Logger
}

// NewClient creates a Naver open API client.
func NewClient(cfg *Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      baseURL,
		http:         &http.Client{Timeout: cfg.Timeout},
		logger:       logger,
	}
}

// localItem is one venue row of a local.json response.
type localItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// blogItem is one post row of a blog.json response.
type blogItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	BloggerName string `json:"bloggername"`
	PostDate    string `json:"postdate"`
}

type searchResponse[T any] struct {
	Total   int `json:"total"`
	Start   int `json:"start"`
	Display int `json:"display"`
	Items   []T `json:"items"`
}

// SearchLocal queries local.json for venues matching the free-text query,
// ranked by review volume (sort=comment).
func (c *Client) SearchLocal(ctx context.Context, query string, display int) ([]domain.LocalResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "comment")

	var resp searchResponse[localItem]
	if err := c.get(ctx, "local", params, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.LocalResult, len(resp.Items))
	for i, it := range resp.Items {
		results[i] = domain.LocalResult{
			Title:       it.Title,
			Address:     it.Address,
			RoadAddress: it.RoadAddress,
			MapX:        it.MapX,
			MapY:        it.MapY,
		}
	}
	return results, nil
}

// SearchBlog queries blog.json for review posts matching the query.
func (c *Client) SearchBlog(ctx context.Context, query string, display int) ([]domain.BlogResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("display", strconv.Itoa(display))

	var resp searchResponse[blogItem]
	if err := c.get(ctx, "blog", params, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.BlogResult, len(resp.Items))
	for i, it := range resp.Items {
		results[i] = domain.BlogResult{
			Title:       it.Title,
			Description: it.Description,
			BloggerName: it.BloggerName,
			PostDate:    it.PostDate,
		}
	}
	return results, nil
}

// HealthCheck probes the provider with a minimal local search.
func (c *Client) HealthCheck(ctx context.Context) error {
	params := url.Values{}
	params.Set("query", "맛집")
	params.Set("display", "1")

	var resp searchResponse[localItem]
	return c.get(ctx, "local", params, &resp)
}

// get performs one authenticated GET against <baseURL>/<endpoint>.json.
// All errors are wrapped with domain.ErrSearchProviderError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s/%s.json?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	start := time.Now()

	res, err := c.http.Do(req)

	duration := time.Since(start)

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s search request failed: %w", endpoint, domain.ErrSearchProviderError)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("read %s search response: %w", endpoint, domain.ErrSearchProviderError)
	}

	if res.StatusCode != http.StatusOK {
		metrics.SearchRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.logger.Warn("search provider returned non-success status",
			zap.String("endpoint", endpoint),
			zap.Int("status", res.StatusCode),
		)
		return fmt.Errorf("%s search status %d: %w", endpoint, res.StatusCode, domain.ErrSearchProviderError)
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("decode %s search response: %w", endpoint, domain.ErrSearchProviderError)
	}

	metrics.SearchRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	metrics.SearchRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
	return nil
}
