package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/company_intel/internal/model"
)

const (
	FormatHuman = "human"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DisplayAnalysis formats and writes the analysis in the requested format
func DisplayAnalysis(w io.Writer, analysis model.Analysis, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, analysis)
	case FormatYAML:
		return writeYAML(w, analysis)
	case FormatHuman, "":
		displayHuman(w, analysis)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (human, json, yaml)", format)
	}
}

// DisplayHistory writes the company names, newest first
func DisplayHistory(w io.Writer, companies []string, format string) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, companies)
	case FormatYAML:
		return writeYAML(w, companies)
	}

	if len(companies) == 0 {
		fmt.Fprintln(w, color.HiBlackString("No analyses yet."))
		return nil
	}
	color.New(color.FgCyan, color.Bold).Fprintln(w, "🕘 PREVIOUS ANALYSES:")
	for i, name := range companies {
		fmt.Fprintf(w, "   %d. %s\n", i+1, name)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

func writeYAML(w io.Writer, v any) error {
	output, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(output))
	return err
}

func displayHuman(w io.Writer, a model.Analysis) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	fmt.Fprintln(w)
	cyan.Fprintf(w, "🏢 %s\n", a.CompanyName)
	fmt.Fprintf(w, "   Industry: %s\n", a.Industry)
	sentimentColor(a.Sentiment).Fprintf(w, "   Sentiment: %s\n\n", strings.ToUpper(string(a.Sentiment)))

	cyan.Fprintln(w, "📄 SUMMARY:")
	fmt.Fprintln(w, wrapText(a.Summary, 80, "   "))
	fmt.Fprintln(w)

	green.Fprintln(w, "✅ STRENGTHS:")
	for i, s := range a.Strengths {
		fmt.Fprintf(w, "   %d. %s\n", i+1, s)
	}
	fmt.Fprintln(w)

	yellow.Fprintln(w, "⚠️  RISKS:")
	for i, r := range a.Risks {
		fmt.Fprintf(w, "   %d. %s\n", i+1, r)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, strings.Repeat("─", 80))
	fmt.Fprintf(w, "💡 %s\n", color.HiBlackString("Run with -o json or -o yaml for machine-readable output"))
}

func sentimentColor(s model.Sentiment) *color.Color {
	switch s {
	case model.SentimentPositive:
		return color.New(color.FgGreen, color.Bold)
	case model.SentimentNegative:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}

func wrapText(text string, width int, indent string) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent
	}

	var lines []string
	line := indent + words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = indent + word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
