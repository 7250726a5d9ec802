package api

import (
	"context"
	"github.com/go-json-experiment/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	"github.com/promptdeckapp/promptdeck/internal/search"
	"github.com/promptdeckapp/promptdeck/internal/service"
	"github.com/promptdeckapp/promptdeck/internal/store"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a test server backed by a temp store and index.
func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "promptdeck-api-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)

	st, err := store.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	index, err := search.NewSearchIndex(search.Options{
		IndexPath: filepath.Join(tmpDir, "search.bleve"),
		Logger:    logger,
	})
	require.NoError(t, err)

	searchService := service.NewSearchService(index, st, logger)
	st.SetSearchIndexer(searchService)

	server := NewServer(st, searchService, logger)
	testAPI := humatest.Wrap(t, server.api)

	cleanup := func() {
		server.Close()
		_ = index.Close()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{Server: server, api: testAPI}, cleanup
}

// createTestPrompt inserts a prompt directly into the store, bypassing the
// HTTP layer and its write rate limit.
func createTestPrompt(t *testing.T, ts *testServer, promptID, title, category string) *domain.Prompt {
	t.Helper()

	now := time.Now().UTC()
	p := &domain.Prompt{
		CreatedAt:  now,
		UpdatedAt:  now,
		ID:         promptID,
		Title:      title,
		Content:    "You are a helpful assistant.",
		Category:   category,
		Difficulty: domain.DifficultyBeginner,
	}
	require.NoError(t, ts.store.CreatePrompt(context.Background(), p))
	return p
}

func TestHealthCheck(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	w := httptest.NewRecorder()

	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "healthy", result["status"])
}

func TestServer_Routes(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "health check",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list prompts",
			method:         http.MethodGet,
			path:           "/api/v1/prompts",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown route",
			method:         http.MethodGet,
			path:           "/api/v1/nonexistent",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			w := httptest.NewRecorder()

			ts.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWriteRateLimit(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	// Every mutating prompt request consumes a token, even when it 404s.
	for i := range writeRateBurst {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/prompts/prm-missing", http.NoBody)
		w := httptest.NewRecorder()
		ts.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code, "request %d should pass the limiter", i)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/prompts/prm-missing", http.NoBody)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["code"])

	// Reads stay unthrottled.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/prompts", http.NoBody)
	w = httptest.NewRecorder()
	ts.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsMutatingPromptRequest(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/v1/prompts", true},
		{http.MethodDelete, "/api/v1/prompts/prm-1", true},
		{http.MethodPost, "/api/v1/prompts/prm-1/ratings", true},
		{http.MethodGet, "/api/v1/prompts", false},
		{http.MethodGet, "/api/v1/prompts/prm-1", false},
		{http.MethodPost, "/api/v1/collections", false},
		{http.MethodDelete, "/api/v1/favorites/prm-1", false},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(tt.method, tt.path, http.NoBody)
		assert.Equal(t, tt.want, isMutatingPromptRequest(r), "%s %s", tt.method, tt.path)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "10.1.2.3:5050",
			want:       "10.1.2.3",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.4"},
			want:       "198.51.100.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}
