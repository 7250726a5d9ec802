package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrompts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/prompts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"prompts": [
			{"id": "prm-1", "title": "First Prompt", "content": "do the thing", "rating": 4.2},
			{"id": "prm-2", "title": "Second Prompt", "content": "do the other thing", "rating": 3.9}
		]}`)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, nil)
	prompts := c.LoadPrompts(context.Background())

	require.Len(t, prompts, 2)
	assert.Equal(t, "prm-1", prompts[0].ID)
	assert.Equal(t, "First Prompt", prompts[0].Title)
	assert.Equal(t, 3.9, prompts[1].Rating)

	// The listing is cached.
	cached := c.Prompts()
	require.Len(t, cached, 2)
	assert.Equal(t, "prm-2", cached[1].ID)
}

func TestLoadPrompts_ServerErrorFallsBackToSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, nil)
	prompts := c.LoadPrompts(context.Background())

	require.Len(t, prompts, 5)
	assert.Equal(t, "AI Code Review Assistant", prompts[0].Title)
}

func TestLoadPrompts_MalformedPayloadFallsBackToSamples(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"prompts": [`)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, nil)
	prompts := c.LoadPrompts(context.Background())

	require.Len(t, prompts, 5)
	assert.Equal(t, "AI Code Review Assistant", prompts[0].Title)
}

func TestLoadPrompts_UnreachableHostFallsBackToSamples(t *testing.T) {
	// Nothing listens here; the connection is refused immediately.
	c := New("http://127.0.0.1:1", time.Second, nil)
	prompts := c.LoadPrompts(context.Background())

	require.Len(t, prompts, 5)
	assert.Equal(t, "AI Code Review Assistant", prompts[0].Title)
}

func TestLoadPrompts_EmptyListingIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"prompts": []}`)
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, nil)
	prompts := c.LoadPrompts(context.Background())

	assert.Empty(t, prompts)
	assert.Empty(t, c.Prompts())
}

func TestPrompts_EmptyBeforeFirstLoad(t *testing.T) {
	c := New("http://localhost:8080", 5*time.Second, nil)

	assert.Empty(t, c.Prompts())
}

func TestSamplePrompts_Contract(t *testing.T) {
	samples := SamplePrompts()

	require.Len(t, samples, 5)
	assert.Equal(t, "AI Code Review Assistant", samples[0].Title)

	for _, p := range samples {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Content)
		assert.NotEmpty(t, p.Category)
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}

	// Callers get fresh copies.
	samples[0].Title = "mutated"
	assert.Equal(t, "AI Code Review Assistant", SamplePrompts()[0].Title)
}

func TestFilterPrompts_UsesCachedListing(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second, nil)
	c.LoadPrompts(context.Background())

	got := c.FilterPrompts(Filter{Category: "development"})

	require.Len(t, got, 1)
	assert.Equal(t, "AI Code Review Assistant", got[0].Title)
}
