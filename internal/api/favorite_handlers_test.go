package api

import (
	"github.com/go-json-experiment/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	createTestPrompt(t, ts, "prm-1", "First", "development")
	createTestPrompt(t, ts, "prm-2", "Second", "writing")

	addFavorite := func(t *testing.T, promptID string) *APIError {
		t.Helper()
		resp := ts.api.Post("/api/v1/favorites", map[string]any{
			"user_id":   "usr-1",
			"prompt_id": promptID,
		})
		if resp.Code != http.StatusOK {
			var apiErr APIError
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
			return &apiErr
		}
		return nil
	}

	listFavorites := func(t *testing.T) ListFavoritesResponse {
		t.Helper()
		resp := ts.api.Get("/api/v1/favorites?user_id=usr-1")
		require.Equal(t, http.StatusOK, resp.Code)
		var result ListFavoritesResponse
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
		return result
	}

	require.Nil(t, addFavorite(t, "prm-2"))
	require.Nil(t, addFavorite(t, "prm-1"))

	result := listFavorites(t)
	require.Len(t, result.Favorites, 2)
	assert.Equal(t, "prm-2", result.Favorites[0].ID, "favorites keep insertion order")
	assert.Equal(t, "prm-1", result.Favorites[1].ID)
	assert.Equal(t, "Second", result.Favorites[0].Title, "listing returns full prompts")

	// Favoriting twice keeps a single entry.
	require.Nil(t, addFavorite(t, "prm-2"))
	assert.Len(t, listFavorites(t).Favorites, 2)

	apiErr := addFavorite(t, "prm-missing")
	require.NotNil(t, apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	resp := ts.api.Delete("/api/v1/favorites/prm-2?user_id=usr-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var msg MessageResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &msg))
	assert.Equal(t, "Favorite removed", msg.Message)

	result = listFavorites(t)
	require.Len(t, result.Favorites, 1)
	assert.Equal(t, "prm-1", result.Favorites[0].ID)

	// Removing an absent favorite succeeds without effect.
	resp = ts.api.Delete("/api/v1/favorites/prm-2?user_id=usr-1")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestListFavorites_MissingUserID(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	resp := ts.api.Get("/api/v1/favorites")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestListFavorites_Empty(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	resp := ts.api.Get("/api/v1/favorites?user_id=usr-1")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Contains(t, resp.Body.String(), `"favorites":[]`)
}

func TestAddFavorite_MissingUserID(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	createTestPrompt(t, ts, "prm-1", "First", "development")

	resp := ts.api.Post("/api/v1/favorites", map[string]any{
		"prompt_id": "prm-1",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestRemoveFavorite_MissingUserID(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	resp := ts.api.Delete("/api/v1/favorites/prm-1")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestClearFavorites(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	createTestPrompt(t, ts, "prm-1", "First", "development")
	createTestPrompt(t, ts, "prm-2", "Second", "writing")

	for _, promptID := range []string{"prm-1", "prm-2"} {
		resp := ts.api.Post("/api/v1/favorites", map[string]any{
			"user_id":   "usr-1",
			"prompt_id": promptID,
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Delete("/api/v1/favorites?user_id=usr-1")
	require.Equal(t, http.StatusOK, resp.Code)

	var result ClearFavoritesResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Removed)

	listResp := ts.api.Get("/api/v1/favorites?user_id=usr-1")
	require.Equal(t, http.StatusOK, listResp.Code)
	assert.Contains(t, listResp.Body.String(), `"favorites":[]`)

	// Clearing again removes nothing.
	resp = ts.api.Delete("/api/v1/favorites?user_id=usr-1")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Removed)
}
