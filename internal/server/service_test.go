package server

import (
	"context"
	"encoding/json"
	"errors"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_intel/internal/agent"
	"github.com/iWorld-y/company_intel/internal/chat"
	"github.com/iWorld-y/company_intel/internal/config"
	"github.com/iWorld-y/company_intel/internal/llm"
	"github.com/iWorld-y/company_intel/internal/logger"
	"github.com/iWorld-y/company_intel/internal/model"
	"github.com/iWorld-y/company_intel/internal/pipeline"
)

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Name() string { return "fake" }

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

// blockingGenerator 第一次调用时通知 started，直到 release 关闭才返回
type blockingGenerator struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingGenerator) Name() string { return "blocking" }

func (b *blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
		return "Initech is a software company.", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type fakeLister struct {
	names []string
	err   error
}

func (f *fakeLister) ListCompanies(ctx context.Context, limit int) ([]string, error) {
	return f.names, f.err
}

func newTestServer(t *testing.T, gen llm.Generator, bot *chat.Bot, lister CompanyLister) *khttp.Server {
	t.Helper()
	l := logger.Discard()
	composer, err := pipeline.NewComposer(context.Background(), agent.NewCollector(gen, nil, l), agent.NewAnalyst(gen, l), nil, l)
	require.NoError(t, err)
	return NewHTTPServer(config.ServerConfig{Timeout: "10s"}, NewIntelService(composer, bot, lister, log.DefaultLogger), log.DefaultLogger)
}

func do(srv *khttp.Server, method, path, body string) *httptest.ResponseRecorder {
	var req *nethttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func reason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Reason
}

func TestAnalyzeAndHistory(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := do(srv, nethttp.MethodPost, "/api/analyze", `{"company_name":"Acme"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	var got model.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Len(t, got.Strengths, 3)
	assert.Len(t, got.Risks, 3)

	rec = do(srv, nethttp.MethodPost, "/api/analyze", `{"company_name":"Globex"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = do(srv, nethttp.MethodGet, "/api/history", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `["Globex","Acme"]`, rec.Body.String())
}

func TestAnalyze_BlankName(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := do(srv, nethttp.MethodPost, "/api/analyze", `{"company_name":"  "}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_COMPANY", reason(t, rec))
}

func TestHistory_NotBlockedByRunningAnalysis(t *testing.T) {
	gen := &blockingGenerator{started: make(chan struct{}), release: make(chan struct{})}
	srv := newTestServer(t, gen, nil, nil)

	analyzed := make(chan *httptest.ResponseRecorder)
	go func() {
		analyzed <- do(srv, nethttp.MethodPost, "/api/analyze", `{"company_name":"Initech"}`)
	}()
	<-gen.started

	listed := make(chan *httptest.ResponseRecorder)
	go func() {
		listed <- do(srv, nethttp.MethodGet, "/api/history", "")
	}()

	select {
	case rec := <-listed:
		assert.Equal(t, nethttp.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	case <-time.After(2 * time.Second):
		t.Fatal("history request waited for the running analysis")
	}

	close(gen.release)
	rec := <-analyzed
	require.Equal(t, nethttp.StatusOK, rec.Code)

	rec = do(srv, nethttp.MethodGet, "/api/history", "")
	assert.JSONEq(t, `["Initech"]`, rec.Body.String())
}

func TestHistory_FromStorage(t *testing.T) {
	srv := newTestServer(t, nil, nil, &fakeLister{names: []string{"Stored"}})
	rec := do(srv, nethttp.MethodGet, "/api/history", "")
	assert.JSONEq(t, `["Stored"]`, rec.Body.String())

	srv = newTestServer(t, nil, nil, &fakeLister{err: errors.New("db down")})
	rec = do(srv, nethttp.MethodGet, "/api/history", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestChat(t *testing.T) {
	bot, err := chat.NewBot(&fakeGenerator{reply: "hello there"}, chat.NewStore(filepath.Join(t.TempDir(), "h.txt")), logger.Discard())
	require.NoError(t, err)
	srv := newTestServer(t, nil, bot, nil)

	rec := do(srv, nethttp.MethodPost, "/api/chat", `{"message":"hi"}`)
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"hello there"}`, rec.Body.String())

	rec = do(srv, nethttp.MethodGet, "/api/chat", "")
	assert.JSONEq(t, `[{"role":"user","content":"hi"},{"role":"assistant","content":"hello there"}]`, rec.Body.String())

	rec = do(srv, nethttp.MethodDelete, "/api/chat", "")
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Empty(t, bot.Messages())
}

func TestChat_Errors(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := do(srv, nethttp.MethodGet, "/api/chat", "")
	assert.Equal(t, nethttp.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "CHAT_DISABLED", reason(t, rec))

	bot, err := chat.NewBot(&fakeGenerator{err: errors.New("ollama down")}, chat.NewStore(filepath.Join(t.TempDir(), "h.txt")), logger.Discard())
	require.NoError(t, err)
	srv = newTestServer(t, nil, bot, nil)

	rec = do(srv, nethttp.MethodPost, "/api/chat", `{"message":"hi"}`)
	assert.Equal(t, nethttp.StatusBadGateway, rec.Code)
	assert.Equal(t, "GENERATION_FAILED", reason(t, rec))

	rec = do(srv, nethttp.MethodPost, "/api/chat", `{"message":""}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_MESSAGE", reason(t, rec))
}
