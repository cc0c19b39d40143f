package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/company_intel/internal/model"
)

var sample = model.Analysis{
	CompanyName: "Acme",
	Industry:    "Manufacturing",
	Summary:     "Acme makes anvils.",
	Strengths:   []string{"a", "b", "c"},
	Risks:       []string{"x", "y", "z"},
	Sentiment:   model.SentimentMixed,
}

func init() {
	color.NoColor = true
}

func TestDisplayAnalysis_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sample, FormatJSON))

	var got model.Analysis
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample, got)
}

func TestDisplayAnalysis_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sample, FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "Acme", got["company_name"])
	assert.Equal(t, "mixed", got["sentiment"])
}

func TestDisplayAnalysis_Human(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayAnalysis(&buf, sample, FormatHuman))

	out := buf.String()
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Sentiment: MIXED")
	assert.Contains(t, out, "   2. b")
	assert.Contains(t, out, "   3. z")
}

func TestDisplayAnalysis_UnknownFormat(t *testing.T) {
	assert.Error(t, DisplayAnalysis(&bytes.Buffer{}, sample, "xml"))
}

func TestDisplayHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DisplayHistory(&buf, []string{"B", "A"}, FormatHuman))
	assert.Contains(t, buf.String(), "1. B")

	buf.Reset()
	require.NoError(t, DisplayHistory(&buf, nil, FormatHuman))
	assert.Contains(t, buf.String(), "No analyses yet.")
}

func TestWrapText(t *testing.T) {
	out := wrapText(strings.Repeat("word ", 40), 20, "  ")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 20)
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
