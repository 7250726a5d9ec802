package api

import (
	"github.com/go-json-experiment/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	createTestPrompt(t, ts, "prm-1", "Debugging Walkthrough", "development")
	createTestPrompt(t, ts, "prm-2", "Essay Outline Builder", "writing")

	doSearch := func(t *testing.T, path string) SearchResponse {
		t.Helper()
		resp := ts.api.Get(path)
		require.Equal(t, http.StatusOK, resp.Code)
		var result SearchResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
		return result
	}

	// Index updates run asynchronously after the store write, so wait for
	// both prompts to become searchable before asserting anything.
	searchTotal := func(path string) int {
		resp := ts.api.Get(path)
		if resp.Code != http.StatusOK {
			return -1
		}
		var result SearchResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
			return -1
		}
		return int(result.Total)
	}
	require.Eventually(t, func() bool {
		return searchTotal("/api/v1/search?q=assistant") == 2
	}, 5*time.Second, 25*time.Millisecond, "prompts should become searchable")

	t.Run("title match", func(t *testing.T) {
		result := doSearch(t, "/api/v1/search?q=debugging")
		assert.Equal(t, "debugging", result.Query)
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Hits, 1)

		hit := result.Hits[0]
		assert.Equal(t, "prm-1", hit.ID)
		assert.Equal(t, "Debugging Walkthrough", hit.Title)
		assert.Equal(t, "development", hit.Category)
		assert.Positive(t, hit.Score)
		assert.NotEmpty(t, hit.Highlights)
	})

	t.Run("category filter", func(t *testing.T) {
		result := doSearch(t, "/api/v1/search?q=assistant&category=writing")
		assert.EqualValues(t, 1, result.Total)
		require.Len(t, result.Hits, 1)
		assert.Equal(t, "prm-2", result.Hits[0].ID)
	})

	t.Run("limit truncates hits not total", func(t *testing.T) {
		result := doSearch(t, "/api/v1/search?q=assistant&limit=1")
		assert.EqualValues(t, 2, result.Total)
		assert.Len(t, result.Hits, 1)
	})

	t.Run("facets on request", func(t *testing.T) {
		result := doSearch(t, "/api/v1/search?q=assistant&facets=true")
		require.NotNil(t, result.Facets)
		assert.ElementsMatch(t, []FacetCount{
			{Value: "development", Count: 1},
			{Value: "writing", Count: 1},
		}, result.Facets.Categories)

		result = doSearch(t, "/api/v1/search?q=assistant")
		assert.Nil(t, result.Facets, "facets are opt-in")
	})

	t.Run("no results", func(t *testing.T) {
		result := doSearch(t, "/api/v1/search?q=zookeeper")
		assert.EqualValues(t, 0, result.Total)
		assert.Empty(t, result.Hits)
	})

	t.Run("deleting a prompt unindexes it", func(t *testing.T) {
		resp := ts.api.Delete("/api/v1/prompts/prm-2")
		require.Equal(t, http.StatusOK, resp.Code)

		require.Eventually(t, func() bool {
			return searchTotal("/api/v1/search?q=assistant") == 1
		}, 5*time.Second, 25*time.Millisecond, "deleted prompt should leave the index")
	})
}

func TestSearch_MissingQuery(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	for _, path := range []string{"/api/v1/search", "/api/v1/search?q=", "/api/v1/search?q=%20%20"} {
		resp := ts.api.Get(path)
		require.Equal(t, http.StatusBadRequest, resp.Code, "path %s", path)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
		assert.Equal(t, "VALIDATION", apiErr.Code)
	}
}
