// Package searxng 通过自建 SearXNG 实例的 JSON 接口检索公司资料。
package searxng

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/company_intel/internal/search"
)

const defaultUserAgent = "company-intel/1.0 (+https://github.com/iWorld-y/company_intel)"

// Client SearXNG 客户端，实例可以部署在子路径下，例如 http://host/searx
type Client struct {
	endpoint  *url.URL
	userAgent string
	client    *http.Client
}

// NewClient timeout 单位为秒，0 表示 30 秒
func NewClient(baseURL string, timeout int) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid searxng base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid searxng base url %q: scheme and host required", baseURL)
	}
	if base.Path == "" {
		base.Path = "/"
	}

	t := time.Duration(timeout) * time.Second
	if t <= 0 {
		t = 30 * time.Second
	}
	return &Client{
		endpoint:  base.JoinPath("search"),
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: t},
	}, nil
}

// WithUserAgent 部分实例的 limiter 会拦截可疑或缺失的 User-Agent
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Content       string  `json:"content"`
		PublishedDate string  `json:"publishedDate"`
		Score         float64 `json:"score"`
	} `json:"results"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	u := *c.endpoint
	q := url.Values{}
	q.Set("q", req.Query)
	q.Set("format", "json")
	q.Set("categories", category(req.Topic))
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("searxng api error (status %d): %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response failed (is format=json enabled on the instance?): %w", err)
	}

	out := &search.Response{}
	for _, r := range parsed.Results {
		if req.MaxResults > 0 && len(out.Results) >= req.MaxResults {
			break
		}
		out.Results = append(out.Results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return out, nil
}

func category(topic string) string {
	if topic == "news" {
		return "news"
	}
	return "general"
}
