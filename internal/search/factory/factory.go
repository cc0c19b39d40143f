package factory

import (
	"fmt"

	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/search"
	"github.com/iWorld-y/company_intel/internal/searxng"
	"github.com/iWorld-y/company_intel/internal/tavily"
)

// NewSearcher 根据配置创建搜索实例，未配置时返回 nil, nil
func NewSearcher(cfg config.SearchConfig) (search.Searcher, error) {
	switch cfg.Provider {
	case "":
		return nil, nil

	case config.SearchTavily:
		if cfg.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Tavily.APIKey), nil

	case config.SearchSearXNG:
		if cfg.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		c, err := searxng.NewClient(cfg.SearXNG.BaseURL, cfg.SearXNG.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", cfg.Provider)
	}
}
