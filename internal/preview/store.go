package preview

import (
	"fmt"

	"sitegen/internal/types"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Store keeps the most recent generation results in memory, keyed by project ID.
// Results are never persisted; the oldest is evicted once the store is full.
type Store struct {
	cache *lru.Cache[string, types.GenerationResult]
}

func NewStore(size int) (*Store, error) {
	cache, err := lru.New[string, types.GenerationResult](size)
	if err != nil {
		return nil, fmt.Errorf("create preview store: %w", err)
	}
	return &Store{cache: cache}, nil
}

// Put records result under its project ID, replacing any earlier entry.
func (s *Store) Put(result types.GenerationResult) {
	s.cache.Add(result.ProjectID, result)
}

func (s *Store) Get(projectID string) (types.GenerationResult, bool) {
	return s.cache.Get(projectID)
}

func (s *Store) Len() int { return s.cache.Len() }
