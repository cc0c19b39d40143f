// Package classifier 提供无需 LLM 的规则分析，作为外部生成服务不可用时的兜底。
package classifier

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/company_intel/internal/model"
)

const (
	IndustryIT      = "Information Technology / Software"
	IndustryBanking = "Banking / Financial Services"
	IndustryAuto    = "Automotive / Mobility"
	IndustryPharma  = "Pharmaceuticals / Healthcare"
	IndustryUnknown = "Unknown / Mixed"

	unknownCompany  = "Unknown company"
	summarySentence = 3
)

type industryRule struct {
	industry string
	keywords []string
}

// 顺序即优先级，命中第一组即返回
var industryRules = []industryRule{
	{IndustryIT, []string{"software", "it services", "technology"}},
	{IndustryBanking, []string{"bank", "financial"}},
	{IndustryAuto, []string{"automotive", "car", "vehicle"}},
	{IndustryPharma, []string{"pharma", "biotech"}},
}

var (
	positiveKeywords = []string{"growth", "record profit", "expansion", "partnership"}
	negativeKeywords = []string{"loss", "scandal", "fraud", "decline"}
)

var fixedRisks = []string{
	"Subject to competition from other players in the same industry.",
	"Sensitive to macroeconomic and regulatory changes.",
	"Public information may not reflect internal challenges.",
}

// Classify 基于关键词对原始资料做确定性分析，总是返回完整的 Analysis
func Classify(raw model.RawData) model.Analysis {
	name := raw.CompanyName
	if name == "" {
		name = unknownCompany
	}

	text := strings.ReplaceAll(raw.SearchSummary, "\n", " ")
	lowered := strings.ToLower(text)
	industry := Industry(lowered)

	summary := Summarize(text)
	if summary == "" {
		summary = fmt.Sprintf("%s operates in the %s sector.", name, industry)
	}

	return model.Analysis{
		CompanyName: name,
		Industry:    industry,
		Summary:     summary,
		Strengths:   Strengths(industry),
		Risks:       Risks(),
		Sentiment:   Sentiment(lowered),
	}
}

// Summarize 取前三个非空句子拼接成摘要，无句子时返回空串
func Summarize(text string) string {
	var sentences []string
	for _, s := range strings.Split(strings.ReplaceAll(text, "\n", " "), ".") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == summarySentence {
			break
		}
	}

	summary := strings.Join(sentences, ". ")
	if summary != "" && !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// Industry 按固定优先级匹配行业，text 需已转为小写
func Industry(text string) string {
	for _, rule := range industryRules {
		if containsAny(text, rule.keywords) {
			return rule.industry
		}
	}
	return IndustryUnknown
}

// Sentiment 正面关键词优先于负面关键词，text 需已转为小写
func Sentiment(text string) model.Sentiment {
	switch {
	case containsAny(text, positiveKeywords):
		return model.SentimentPositive
	case containsAny(text, negativeKeywords):
		return model.SentimentNegative
	default:
		return model.SentimentMixed
	}
}

// Strengths 只有第一条随行业变化
func Strengths(industry string) []string {
	return []string{
		fmt.Sprintf("Established presence in the %s domain.", industry),
		"Recognizable brand mentioned in multiple sources.",
		"Potential for growth based on recent activities and partnerships.",
	}
}

// Risks 返回固定风险列表的副本
func Risks() []string {
	out := make([]string, len(fixedRisks))
	copy(out, fixedRisks)
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
