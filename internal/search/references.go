package search

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
)

const (
	minSnippetLen = 200
	maxSnippetLen = 1500
)

// Fetcher 抓取 URL 正文
type Fetcher func(url string) (string, error)

// FetchReadable 使用 readability 提取网页正文
func FetchReadable(url string) (string, error) {
	article, err := readability.FromURL(url, 30*time.Second)
	if err != nil {
		return "", err
	}
	return article.TextContent, nil
}

// Gatherer 为采集阶段准备参考摘录
type Gatherer struct {
	searcher   Searcher
	fetch      Fetcher
	maxResults int
	log        logrus.FieldLogger
}

// NewGatherer fetch 为 nil 时不展开过短的摘要
func NewGatherer(searcher Searcher, fetch Fetcher, maxResults int, log logrus.FieldLogger) *Gatherer {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Gatherer{searcher: searcher, fetch: fetch, maxResults: maxResults, log: log}
}

// References 搜索公司并返回 "标题: 摘要 (链接)" 形式的参考摘录。
// 搜索失败只记录日志，返回 nil。
func (g *Gatherer) References(ctx context.Context, companyName string) []string {
	if g == nil || g.searcher == nil {
		return nil
	}

	resp, err := g.searcher.Search(ctx, &Request{
		Query:      fmt.Sprintf("%s company overview", companyName),
		Topic:      "general",
		MaxResults: g.maxResults,
	})
	if err != nil {
		g.log.WithField("company", companyName).Warnf("搜索参考资料失败: %v", err)
		return nil
	}

	var refs []string
	for _, item := range resp.Results {
		content := strings.TrimSpace(item.Content)
		// 摘要太短时尝试抓取原文
		if len(content) < minSnippetLen && g.fetch != nil && item.URL != "" {
			fetched, err := g.fetch(item.URL)
			if err == nil && len(fetched) > len(content) {
				content = strings.TrimSpace(fetched)
			}
		}
		content = strings.Join(strings.Fields(content), " ")
		content = truncate(content, maxSnippetLen)
		if content == "" {
			continue
		}
		refs = append(refs, fmt.Sprintf("%s: %s (%s)", item.Title, content, item.URL))
		if len(refs) >= g.maxResults {
			break
		}
	}
	g.log.WithField("company", companyName).Debugf("获取到 %d 条参考资料", len(refs))
	return refs
}

// truncate 截断到不超过 max 字节，且不拆开多字节字符
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
