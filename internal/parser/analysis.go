package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/model"
)

const listSize = 3

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n?|```")

// ParseAnalysis 解析模型返回的分析 JSON 并校验字段与类型。
// searchSummary 非空时 summary 也必须非空。任何不符都返回 ErrMalformedResponse。
func ParseAnalysis(raw string, searchSummary string) (model.Analysis, error) {
	cleaned := extractObject(stripFences(raw))
	if cleaned == "" {
		return model.Analysis{}, fmt.Errorf("%w: empty response", llm.ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return model.Analysis{}, fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}

	var (
		a         model.Analysis
		sentiment string
	)
	if err := stringField(fields, "company_name", &a.CompanyName); err != nil {
		return model.Analysis{}, err
	}
	if err := stringField(fields, "industry", &a.Industry); err != nil {
		return model.Analysis{}, err
	}
	if err := stringField(fields, "summary", &a.Summary); err != nil {
		return model.Analysis{}, err
	}
	if err := listField(fields, "strengths", &a.Strengths); err != nil {
		return model.Analysis{}, err
	}
	if err := listField(fields, "risks", &a.Risks); err != nil {
		return model.Analysis{}, err
	}
	if err := stringField(fields, "sentiment", &sentiment); err != nil {
		return model.Analysis{}, err
	}

	a.Sentiment = model.Sentiment(strings.ToLower(strings.TrimSpace(sentiment)))
	if !a.Sentiment.Valid() {
		return model.Analysis{}, fmt.Errorf("%w: sentiment %q not in positive|negative|mixed", llm.ErrMalformedResponse, sentiment)
	}
	if strings.TrimSpace(a.CompanyName) == "" || strings.TrimSpace(a.Industry) == "" {
		return model.Analysis{}, fmt.Errorf("%w: company_name and industry must not be empty", llm.ErrMalformedResponse)
	}
	if strings.TrimSpace(searchSummary) != "" && strings.TrimSpace(a.Summary) == "" {
		return model.Analysis{}, fmt.Errorf("%w: empty summary", llm.ErrMalformedResponse)
	}
	return a, nil
}

func stringField(fields map[string]json.RawMessage, key string, dst *string) error {
	v, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: missing key %q", llm.ErrMalformedResponse, key)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%w: key %q is not a string", llm.ErrMalformedResponse, key)
	}
	return nil
}

func listField(fields map[string]json.RawMessage, key string, dst *[]string) error {
	v, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: missing key %q", llm.ErrMalformedResponse, key)
	}
	var items []string
	if err := json.Unmarshal(v, &items); err != nil {
		return fmt.Errorf("%w: key %q is not a list of strings", llm.ErrMalformedResponse, key)
	}
	if len(items) != listSize {
		return fmt.Errorf("%w: key %q has %d items, want %d", llm.ErrMalformedResponse, key, len(items), listSize)
	}
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
		if items[i] == "" {
			return fmt.Errorf("%w: key %q has an empty item", llm.ErrMalformedResponse, key)
		}
	}
	*dst = items
	return nil
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	return strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))
}

// extractObject 截取第一个 '{' 到最后一个 '}'，容忍模型在 JSON 前后附带说明文字
func extractObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}
