package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iWorld-y/company_intel/internal/search"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Client Tavily API 客户端
type Client struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewClient 创建一个新的 Tavily 客户端
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// WithEndpoint 替换接口地址，便于测试或代理
func (c *Client) WithEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Ensure Client implements search.Searcher
var _ search.Searcher = (*Client)(nil)

// searchRequest Tavily 搜索请求参数
type searchRequest struct {
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"` // basic or advanced
	Topic       string `json:"topic,omitempty"`        // general or news
	MaxResults  int    `json:"max_results,omitempty"`
}

// searchResponse Tavily 搜索响应
type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

// Search implements search.Searcher
func (c *Client) Search(ctx context.Context, req *search.Request) (*search.Response, error) {
	body := searchRequest{
		Query:       req.Query,
		SearchDepth: "basic",
		Topic:       req.Topic,
		MaxResults:  req.MaxResults,
	}
	if body.Topic == "" {
		body.Topic = "general"
	}
	if body.MaxResults == 0 {
		body.MaxResults = 5
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily api error (status %d): %s", res.StatusCode, string(data))
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}

	results := make([]search.Result, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, search.Result{
			Title:         r.Title,
			URL:           r.URL,
			Content:       r.Content,
			Score:         r.Score,
			PublishedDate: r.PublishedDate,
		})
	}
	return &search.Response{Results: results}, nil
}
