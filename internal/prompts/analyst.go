package prompts

import "fmt"

// BuildAnalysisPrompt 要求模型只返回包含六个字段的 JSON
func BuildAnalysisPrompt(companyName, searchSummary string) string {
	if companyName == "" {
		companyName = "the company"
	}
	return fmt.Sprintf(`You are a company intelligence analyst.

Analyze the following information about a company and produce a structured JSON
with the following keys:
- company_name
- industry  (guess if not explicitly mentioned)
- summary   (2-4 sentences)
- strengths (list of 3 bullet points)
- risks     (list of 3 bullet points)
- sentiment (one of: "positive", "negative", "mixed")

Company: %s

Information:
%s

Return ONLY valid JSON. Do not include any explanations or markdown.
`, companyName, searchSummary)
}
