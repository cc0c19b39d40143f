package searxng

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_intel/internal/search"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/searx/search", r.URL.Path)
		assert.Equal(t, "Acme", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "general", r.URL.Query().Get("categories"))
		assert.Equal(t, "intel-test", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"results":[{"title":"a","url":"u1","content":"c1"},{"title":"b","url":"u2","content":"c2"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/searx/", 0)
	require.NoError(t, err)

	resp, err := c.WithUserAgent("intel-test").Search(context.Background(), &search.Request{Query: "Acme", MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "c1", resp.Results[0].Content)
}

func TestClient_SearchNewsTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "news", r.URL.Query().Get("categories"))
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, 5)
	require.NoError(t, err)
	resp, err := c.Search(context.Background(), &search.Request{Query: "Acme", Topic: "news"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestClient_SearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, 1)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), &search.Request{Query: "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient("localhost:8888", 0)
	assert.Error(t, err)

	_, err = NewClient("://bad", 0)
	assert.Error(t, err)
}
