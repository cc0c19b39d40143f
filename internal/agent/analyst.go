package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/iWorld-y/company_intel/internal/classifier"
	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/parser"
	"github.com/iWorld-y/company_intel/internal/prompts"
)

// Analyst 结构化分析阶段
type Analyst struct {
	gen llm.Generator
	log logrus.FieldLogger
}

// NewAnalyst gen 为 nil 时始终使用规则分析
func NewAnalyst(gen llm.Generator, log logrus.FieldLogger) *Analyst {
	return &Analyst{gen: gen, log: log}
}

// Analyze 优先使用模型输出，不可用、失败或格式不符时退回规则分析，两者不混用
func (a *Analyst) Analyze(ctx context.Context, raw model.RawData) model.Analysis {
	log := a.log.WithField("company", raw.CompanyName)

	analysis, err := a.analyze(ctx, raw)
	if err != nil {
		log.WithError(err).Warn("模型分析不可用，使用规则分析")
		return classifier.Classify(raw)
	}
	log.Info("模型分析完成")
	return analysis
}

func (a *Analyst) analyze(ctx context.Context, raw model.RawData) (model.Analysis, error) {
	if a.gen == nil {
		return model.Analysis{}, llm.ErrUnavailable
	}

	text, err := a.gen.Generate(ctx, prompts.BuildAnalysisPrompt(raw.CompanyName, raw.SearchSummary))
	if err != nil {
		return model.Analysis{}, fmt.Errorf("%w: %w", llm.ErrCallFailed, err)
	}
	a.log.WithField("company", raw.CompanyName).Debugf("模型原始输出: %s", text)

	return parser.ParseAnalysis(text, raw.SearchSummary)
}
