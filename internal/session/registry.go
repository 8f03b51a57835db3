package session

import (
	"time"

	"github.com/geocoder89/restaurantos/internal/cache"
	"github.com/google/uuid"
)

// Registry maps opaque client session ids to their stores. Entries live in
// process memory only and are forgotten after idleTTL without a request.
type Registry struct {
	stores *cache.Cache[*Store]
}

func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{stores: cache.New[*Store](idleTTL)}
}

// WithClock is for tests that need to expire sessions.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.stores.WithClock(now)
	return r
}

// Lookup returns the store registered under sid.
func (r *Registry) Lookup(sid string) (*Store, bool) {
	if sid == "" {
		return nil, false
	}
	return r.stores.Get(sid)
}

// Open returns the client's store, or a fresh detached one when sid is
// unknown or expired. The returned id is empty for a detached store.
func (r *Registry) Open(sid string) (*Store, string) {
	if s, ok := r.Lookup(sid); ok {
		return s, sid
	}
	return NewStore(), ""
}

// Attach registers store under a newly minted id and returns it.
func (r *Registry) Attach(store *Store) string {
	sid := uuid.NewString()
	r.stores.Set(sid, store)
	return sid
}

// Drop forgets sid. Unknown ids are ignored.
func (r *Registry) Drop(sid string) {
	if sid == "" {
		return
	}
	r.stores.Delete(sid)
}

// Active counts session ids that have not expired.
func (r *Registry) Active() int {
	return r.stores.Len()
}

// Sweep evicts idle entries; main runs it on a ticker.
func (r *Registry) Sweep() int {
	return r.stores.Sweep()
}
