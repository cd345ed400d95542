package progress

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Registry holds the live tracker per session. Trackers are transient: they
// expire an hour after their last touch, long after any sane poll loop quits.
type Registry struct {
	cache *cache.Cache
}

func NewRegistry() *Registry {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &Registry{cache: c}
}

// Create installs a fresh tracker for the session, replacing any prior one.
// Exactly one tracker exists per session id at a time.
func (r *Registry) Create(sessionID string) *Tracker {
	t := NewTracker(sessionID)
	r.cache.Set(sessionID, t, cache.DefaultExpiration)
	return t
}

func (r *Registry) Get(sessionID string) (*Tracker, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*Tracker), true
	}
	return nil, false
}

func (r *Registry) Remove(sessionID string) {
	r.cache.Delete(sessionID)
}
