package storage

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/model"
)

func TestConnString(t *testing.T) {
	got := connString(config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "intel"})
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=intel sslmode=disable", got)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "abc", sanitize("a\x00b\x00c"))
	assert.Equal(t, "ok", sanitize("o\xffk"))
	assert.Equal(t, []string{"x", "y"}, sanitizeAll([]string{"x\x00", "y"}))
}

func TestRecentCompanies(t *testing.T) {
	history := []model.HistoryEntry{{CompanyName: "A"}, {CompanyName: "B"}, {CompanyName: "C"}}
	assert.Equal(t, []string{"C", "B", "A"}, RecentCompanies(history))
	assert.Empty(t, RecentCompanies(nil))
}

func TestAnalysisRow_Entry(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := analysisRow{
		companyName:   "Acme",
		searchSummary: sql.NullString{String: "collected text", Valid: true},
		industry:      sql.NullString{String: "Manufacturing", Valid: true},
		summary:       sql.NullString{String: "analysis summary", Valid: true},
		strengths:     []string{"a", "b", "c"},
		risks:         []string{"x", "y", "z"},
		sentiment:     sql.NullString{String: "mixed", Valid: true},
		createdAt:     at,
	}

	e := r.entry()
	assert.Equal(t, "collected text", e.RawData.SearchSummary)
	assert.Equal(t, "analysis summary", e.Analysis.Summary)
	assert.Equal(t, "Acme", e.Analysis.CompanyName)
	assert.Equal(t, model.SentimentMixed, e.Analysis.Sentiment)
	assert.Equal(t, at, e.CreatedAt)

	assert.Empty(t, analysisRow{companyName: "Nulls"}.entry().RawData.SearchSummary)
}
