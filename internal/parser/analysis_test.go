package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/model"
)

const validJSON = `{
  "company_name": "Harman",
  "industry": "Consumer Electronics",
  "summary": "Harman designs audio products. It is owned by Samsung.",
  "strengths": ["Strong brands", "Automotive footprint", "Samsung backing"],
  "risks": ["Competition", "Supply chain", "Auto cycle exposure"],
  "sentiment": "Positive "
}`

func TestParseAnalysis_Valid(t *testing.T) {
	a, err := ParseAnalysis(validJSON, "some text")
	require.NoError(t, err)

	assert.Equal(t, "Harman", a.CompanyName)
	assert.Equal(t, "Consumer Electronics", a.Industry)
	assert.Equal(t, model.SentimentPositive, a.Sentiment)
	assert.Len(t, a.Strengths, 3)
	assert.Len(t, a.Risks, 3)
}

func TestParseAnalysis_FencedAndChatty(t *testing.T) {
	a, err := ParseAnalysis("Here you go:\n```json\n"+validJSON+"\n```\nHope this helps!", "x")
	require.NoError(t, err)
	assert.Equal(t, "Harman", a.CompanyName)
}

func TestParseAnalysis_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		summary string
	}{
		{"empty", "", "x"},
		{"not json", "Harman is a great company.", "x"},
		{"array", `["a"]`, "x"},
		{"missing sentiment", `{"company_name":"A","industry":"B","summary":"C","strengths":["1","2","3"],"risks":["1","2","3"]}`, "x"},
		{"strengths not list", `{"company_name":"A","industry":"B","summary":"C","strengths":"many","risks":["1","2","3"],"sentiment":"mixed"}`, "x"},
		{"two risks", `{"company_name":"A","industry":"B","summary":"C","strengths":["1","2","3"],"risks":["1","2"],"sentiment":"mixed"}`, "x"},
		{"blank strength", `{"company_name":"A","industry":"B","summary":"C","strengths":["1"," ","3"],"risks":["1","2","3"],"sentiment":"mixed"}`, "x"},
		{"bad sentiment", `{"company_name":"A","industry":"B","summary":"C","strengths":["1","2","3"],"risks":["1","2","3"],"sentiment":"neutral"}`, "x"},
		{"numeric name", `{"company_name":1,"industry":"B","summary":"C","strengths":["1","2","3"],"risks":["1","2","3"],"sentiment":"mixed"}`, "x"},
		{"empty industry", `{"company_name":"A","industry":"","summary":"C","strengths":["1","2","3"],"risks":["1","2","3"],"sentiment":"mixed"}`, "x"},
		{"empty summary with source text", `{"company_name":"A","industry":"B","summary":"","strengths":["1","2","3"],"risks":["1","2","3"],"sentiment":"mixed"}`, "source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalysis(tt.raw, tt.summary)
			assert.ErrorIs(t, err, llm.ErrMalformedResponse)
		})
	}
}

func TestParseAnalysis_EmptySummaryAllowedWithoutSource(t *testing.T) {
	raw := `{"company_name":"A","industry":"B","summary":"","strengths":["1","2","3"],"risks":["1","2","3"],"sentiment":"negative"}`
	a, err := ParseAnalysis(raw, "")
	require.NoError(t, err)
	assert.Equal(t, model.SentimentNegative, a.Sentiment)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripFences(`  {"a":1}  `))
}
