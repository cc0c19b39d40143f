package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/model"
)

// Storage 分析历史的 PostgreSQL 存储
type Storage struct {
	db *sql.DB
}

// NewStorage 连接数据库并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	db, err := sql.Open("postgres", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func connString(cfg config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS company_analyses (
			id SERIAL PRIMARY KEY,
			company_name TEXT NOT NULL,
			search_summary TEXT,
			industry TEXT,
			summary TEXT,
			strengths TEXT[],
			risks TEXT[],
			sentiment TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_company_analyses_created_at ON company_analyses (created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %s, error: %w", query, err)
		}
	}
	return nil
}

// SaveEntry 保存一条流水线记录
func (s *Storage) SaveEntry(ctx context.Context, entry model.HistoryEntry) error {
	a := entry.Analysis
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO company_analyses
			(company_name, search_summary, industry, summary, strengths, risks, sentiment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sanitize(entry.CompanyName),
		sanitize(entry.RawData.SearchSummary),
		sanitize(a.Industry),
		sanitize(a.Summary),
		pq.Array(sanitizeAll(a.Strengths)),
		pq.Array(sanitizeAll(a.Risks)),
		string(a.Sentiment),
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

// analysisRow company_analyses 的一行，列顺序与 ListEntries 的 SELECT 一致
type analysisRow struct {
	companyName   string
	searchSummary sql.NullString
	industry      sql.NullString
	summary       sql.NullString
	strengths     []string
	risks         []string
	sentiment     sql.NullString
	createdAt     time.Time
}

func (r analysisRow) entry() model.HistoryEntry {
	return model.HistoryEntry{
		CompanyName: r.companyName,
		RawData: model.RawData{
			CompanyName:   r.companyName,
			SearchSummary: r.searchSummary.String,
		},
		Analysis: model.Analysis{
			CompanyName: r.companyName,
			Industry:    r.industry.String,
			Summary:     r.summary.String,
			Strengths:   r.strengths,
			Risks:       r.risks,
			Sentiment:   model.Sentiment(r.sentiment.String),
		},
		CreatedAt: r.createdAt,
	}
}

// ListEntries 按时间倒序返回最近 limit 条记录
func (s *Storage) ListEntries(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT company_name, search_summary, industry, summary, strengths, risks, sentiment, created_at
		FROM company_analyses ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var r analysisRow
		if err := rows.Scan(&r.companyName, &r.searchSummary, &r.industry, &r.summary,
			pq.Array(&r.strengths), pq.Array(&r.risks), &r.sentiment, &r.createdAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		entries = append(entries, r.entry())
	}
	return entries, rows.Err()
}

// ListCompanies 按时间倒序返回最近分析过的公司名
func (s *Storage) ListCompanies(ctx context.Context, limit int) ([]string, error) {
	entries, err := s.ListEntries(ctx, limit)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.CompanyName
	}
	return names, nil
}

// RecentCompanies 把按追加顺序保存的内存历史转换为新到旧的公司名列表
func RecentCompanies(history []model.HistoryEntry) []string {
	names := make([]string, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		names = append(names, history[i].CompanyName)
	}
	return names
}

func sanitizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = sanitize(item)
	}
	return out
}

// sanitize 移除无效的 UTF-8 字符与 NULL 字节，PostgreSQL 文本字段不支持 NULL 字节
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
