package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/company_intel/internal/search"
)

func TestClient_Search(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tv-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"query":"q","results":[{"title":"Acme","url":"https://acme.test","content":"Acme makes anvils","score":0.9}]}`))
	}))
	defer srv.Close()

	resp, err := NewClient("tv-key").WithEndpoint(srv.URL).Search(context.Background(), &search.Request{Query: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, "Acme", got.Query)
	assert.Equal(t, "general", got.Topic)
	assert.Equal(t, 5, got.MaxResults)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Acme makes anvils", resp.Results[0].Content)
}

func TestClient_SearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient("nope").WithEndpoint(srv.URL).Search(context.Background(), &search.Request{Query: "Acme"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
