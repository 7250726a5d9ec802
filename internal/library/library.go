// Package library maintains the client's favorites and collections.
//
// State lives in memory and is written through to the persistence adapter on
// every mutation. A failed write leaves the in-memory state authoritative; the
// session continues memory-only. Corrupted persisted state resets to empty on
// load rather than failing construction.
package library

import (
	"github.com/go-json-experiment/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
	"github.com/promptdeckapp/promptdeck/internal/id"
	"github.com/promptdeckapp/promptdeck/internal/persist"
)

// Persistence keys under the adapter's namespace.
const (
	favoritesKey   = "favorites"
	collectionsKey = "collections"
)

// Library holds the user's favorites and collections.
// All methods are safe for concurrent use; each mutation is atomic and
// observed in full or not at all.
type Library struct {
	mu      sync.Mutex
	adapter persist.Adapter
	logger  *slog.Logger

	favorites   []string
	favoriteSet map[string]struct{}
	collections []*domain.Collection
}

// New creates a library backed by the given adapter and loads persisted state.
// Missing keys start empty; unreadable state is logged and reset to empty.
func New(adapter persist.Adapter, logger *slog.Logger) *Library {
	l := &Library{
		adapter:     adapter,
		logger:      logger,
		favorites:   []string{},
		favoriteSet: map[string]struct{}{},
		collections: []*domain.Collection{},
	}

	l.loadFavorites()
	l.loadCollections()

	return l
}

// AddToFavorites marks a prompt as favorited. Empty IDs and prompts already
// favorited are no-ops.
func (l *Library) AddToFavorites(promptID string) {
	if promptID == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.favoriteSet[promptID]; ok {
		return
	}

	l.favorites = append(l.favorites, promptID)
	l.favoriteSet[promptID] = struct{}{}
	l.persistFavorites()
}

// RemoveFromFavorites removes every occurrence of a prompt from favorites.
// Removing a prompt that is not favorited is a no-op.
func (l *Library) RemoveFromFavorites(promptID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.favoriteSet[promptID]; !ok {
		return
	}

	l.favorites = slices.DeleteFunc(l.favorites, func(fid string) bool {
		return fid == promptID
	})
	delete(l.favoriteSet, promptID)
	l.persistFavorites()
}

// IsFavorited reports whether a prompt is favorited. Constant-time regardless
// of how many favorites exist.
func (l *Library) IsFavorited(promptID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.favoriteSet[promptID]
	return ok
}

// FavoritesCount returns the number of favorited prompts.
func (l *Library) FavoritesCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.favorites)
}

// Favorites returns the favorited prompt IDs in insertion order.
func (l *Library) Favorites() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.favorites)
}

// ClearFavorites removes all favorites.
func (l *Library) ClearFavorites() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.favorites = []string{}
	l.favoriteSet = map[string]struct{}{}
	l.persistFavorites()
}

// CreateCollection creates a named collection. The name is trimmed and must
// be non-empty and unique among existing collections (case-sensitive).
func (l *Library) CreateCollection(name, description string) (*domain.Collection, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerrors.Validation("collection name cannot be empty")
	}

	for _, c := range l.collections {
		if c.Name == name {
			return nil, domainerrors.DuplicateNamef("a collection named %q already exists", name)
		}
	}

	collectionID, err := id.Generate(id.PrefixCollection)
	if err != nil {
		return nil, fmt.Errorf("generate collection ID: %w", err)
	}

	collection := &domain.Collection{
		ID:          collectionID,
		Name:        name,
		Description: description,
		PromptIDs:   []string{},
		CreatedAt:   time.Now(),
	}

	l.collections = append(l.collections, collection)
	l.persistCollections()

	if l.logger != nil {
		l.logger.Info("collection created", "collection_id", collectionID, "name", name)
	}

	return collection, nil
}

// AddToCollection adds a prompt to a collection. Adding a prompt that is
// already present is a no-op.
func (l *Library) AddToCollection(collectionID, promptID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	collection := l.findCollection(collectionID)
	if collection == nil {
		return domainerrors.NotFound("Collection not found")
	}

	if promptID == "" {
		return nil
	}

	if collection.AddPrompt(promptID) {
		l.persistCollections()
	}
	return nil
}

// RemoveFromCollection removes every occurrence of a prompt from a collection.
func (l *Library) RemoveFromCollection(collectionID, promptID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	collection := l.findCollection(collectionID)
	if collection == nil {
		return domainerrors.NotFound("Collection not found")
	}

	if collection.RemovePrompt(promptID) {
		l.persistCollections()
	}
	return nil
}

// DeleteCollection removes a collection. Deleting an unknown collection is a
// no-op.
func (l *Library) DeleteCollection(collectionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := len(l.collections)
	l.collections = slices.DeleteFunc(l.collections, func(c *domain.Collection) bool {
		return c.ID == collectionID
	})
	if len(l.collections) == before {
		return
	}

	l.persistCollections()

	if l.logger != nil {
		l.logger.Info("collection deleted", "collection_id", collectionID)
	}
}

// GetCollection returns a collection by ID.
func (l *Library) GetCollection(collectionID string) (*domain.Collection, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	collection := l.findCollection(collectionID)
	return collection, collection != nil
}

// Collections returns all collections in creation order.
func (l *Library) Collections() []*domain.Collection {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.collections)
}

// findCollection locates a collection by ID. Caller holds the lock.
func (l *Library) findCollection(collectionID string) *domain.Collection {
	for _, c := range l.collections {
		if c.ID == collectionID {
			return c
		}
	}
	return nil
}

// loadFavorites restores the favorites list from the adapter.
func (l *Library) loadFavorites() {
	raw, ok := l.adapter.Load(favoritesKey)
	if !ok {
		return
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if l.logger != nil {
			l.logger.Error("corrupted favorites state, resetting to empty", "error", err)
		}
		return
	}

	// Drop empty IDs and duplicates that older clients may have written.
	for _, fid := range stored {
		if fid == "" {
			continue
		}
		if _, seen := l.favoriteSet[fid]; seen {
			continue
		}
		l.favorites = append(l.favorites, fid)
		l.favoriteSet[fid] = struct{}{}
	}
}

// loadCollections restores the collections list from the adapter.
func (l *Library) loadCollections() {
	raw, ok := l.adapter.Load(collectionsKey)
	if !ok {
		return
	}

	var stored []*domain.Collection
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		if l.logger != nil {
			l.logger.Error("corrupted collections state, resetting to empty", "error", err)
		}
		return
	}

	for _, c := range stored {
		if c == nil || c.ID == "" {
			continue
		}
		if c.PromptIDs == nil {
			c.PromptIDs = []string{}
		}
		l.collections = append(l.collections, c)
	}
}

// persistFavorites writes favorites through to the adapter. Caller holds the
// lock. Failures leave memory authoritative.
func (l *Library) persistFavorites() {
	data, err := json.Marshal(l.favorites)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("failed to encode favorites", "error", err)
		}
		return
	}
	if !l.adapter.Save(favoritesKey, string(data)) && l.logger != nil {
		l.logger.Warn("favorites not persisted, continuing in memory")
	}
}

// persistCollections writes collections through to the adapter. Caller holds
// the lock.
func (l *Library) persistCollections() {
	data, err := json.Marshal(l.collections)
	if err != nil {
		if l.logger != nil {
			l.logger.Error("failed to encode collections", "error", err)
		}
		return
	}
	if !l.adapter.Save(collectionsKey, string(data)) && l.logger != nil {
		l.logger.Warn("collections not persisted, continuing in memory")
	}
}
