package memory

import (
	"sync"
	"time"

	"leaguelens/internal/analytics"
)

// Repository holds the most recently assembled season snapshot so several
// report requests within a short window share one fetch. The snapshot itself
// is immutable; only the pointer is guarded.
type Repository struct {
	season    *analytics.Season
	fetchedAt time.Time
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveSeason(season *analytics.Season) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.season = season
	r.fetchedAt = time.Now()
}

// GetSeason returns the cached snapshot if it is younger than maxAge.
func (r *Repository) GetSeason(maxAge time.Duration) *analytics.Season {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.season == nil || time.Since(r.fetchedAt) > maxAge {
		return nil
	}
	return r.season
}
