// Package agent 实现流水线的两个阶段：资料采集与结构化分析。
// 两个阶段都不向调用方返回错误，失败时分别退化为占位文本和规则分析。
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/prompts"
	"github.com/iWorld-y/company_intel/internal/search"
)

// Collector 资料采集阶段
type Collector struct {
	gen      llm.Generator
	gatherer *search.Gatherer
	log      logrus.FieldLogger
}

// NewCollector gen 为 nil 表示未配置生成服务；gatherer 为 nil 时不做检索
func NewCollector(gen llm.Generator, gatherer *search.Gatherer, log logrus.FieldLogger) *Collector {
	return &Collector{gen: gen, gatherer: gatherer, log: log}
}

// UnavailableSummary 未配置生成服务时的占位摘要
func UnavailableSummary(companyName string) string {
	return fmt.Sprintf("No AI source available for %s.", companyName)
}

// FailedSummary 调用失败或返回为空时的占位摘要
func FailedSummary(companyName string) string {
	return fmt.Sprintf("AI error while collecting data for %s.", companyName)
}

// Collect 采集公司资料，任何失败都以占位摘要代替
func (c *Collector) Collect(ctx context.Context, companyName string) model.RawData {
	raw := model.RawData{CompanyName: companyName}
	log := c.log.WithField("company", companyName)

	text, err := c.generate(ctx, companyName)
	switch {
	case err == nil:
		raw.SearchSummary = text
		log.Infof("资料采集完成，长度 %d", len(text))
	case errors.Is(err, llm.ErrUnavailable):
		raw.SearchSummary = UnavailableSummary(companyName)
		log.Warn("未配置生成服务，使用占位摘要")
	default:
		raw.SearchSummary = FailedSummary(companyName)
		log.WithError(err).Warn("资料采集失败，使用占位摘要")
	}
	return raw
}

func (c *Collector) generate(ctx context.Context, companyName string) (string, error) {
	if c.gen == nil {
		return "", llm.ErrUnavailable
	}

	refs := c.gatherer.References(ctx, companyName)
	text, err := c.gen.Generate(ctx, prompts.BuildCollectorPrompt(companyName, refs))
	if err != nil {
		if errors.Is(err, llm.ErrCallFailed) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", llm.ErrCallFailed, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", llm.ErrMalformedResponse)
	}
	return text, nil
}
