package prompts

import (
	"fmt"
	"strings"
)

// BuildCollectorPrompt 构造公司资料采集 prompt，references 为可选的检索摘录
func BuildCollectorPrompt(companyName string, references []string) string {
	prompt := fmt.Sprintf(`You are a company research assistant.

Provide a clean, factual, compact overview about the company named:
**%s**

Return structured paragraphs including:

- Company overview
- What the company does (products/services)
- Industry and domains
- Market presence (global or Indian)
- Recent updates/news (last 12–18 months)
- Any known acquisitions or partnerships
- Competitors

Do NOT add anything imaginative or fake.
Only return verified or widely-known facts.
Do NOT format in JSON.
`, companyName)

	if len(references) == 0 {
		return prompt
	}

	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\nUse the following reference notes where relevant. Ignore anything unrelated to the company.\n")
	for i, ref := range references {
		fmt.Fprintf(&sb, "\n[%d] %s\n", i+1, ref)
	}
	return sb.String()
}
