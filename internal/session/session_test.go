package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chef() user.User {
	return user.User{ID: "3", Name: "Mike Wilson", Email: "chef@restaurant.com", Password: "chef123", Role: user.Chef, RestaurantID: "rest_01"}
}

func TestStore_StartsSignedOut(t *testing.T) {
	s := session.NewStore()

	u, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, user.User{}, u)
	assert.Empty(t, s.Token())
}

func TestStore_LoginStoresUserAndToken(t *testing.T) {
	s := session.NewStore()

	s.Login(chef(), "not-even-a-jwt")

	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, user.Chef, u.Role)
	assert.Equal(t, "rest_01", u.RestaurantID)
	assert.Empty(t, u.Password, "credential must not be kept in the session")
	assert.Equal(t, "not-even-a-jwt", s.Token())
}

func TestStore_LoginReplacesPreviousSession(t *testing.T) {
	s := session.NewStore()
	s.Login(chef(), "a")
	s.Login(user.User{ID: "1", Role: user.Owner}, "b")

	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, user.Owner, u.Role)
	assert.Equal(t, "b", s.Token())
}

func TestStore_LogoutIsIdempotent(t *testing.T) {
	once := session.NewStore()
	once.Login(chef(), "tok")
	once.Logout()

	twice := session.NewStore()
	twice.Login(chef(), "tok")
	twice.Logout()
	twice.Logout()

	for _, s := range []*session.Store{once, twice} {
		u, ok := s.Current()
		assert.False(t, ok)
		assert.Equal(t, user.User{}, u)
		assert.Empty(t, s.Token())
	}

	// logging out a store that never had a session is fine too
	session.NewStore().Logout()
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := session.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Login(chef(), "tok")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Current()
			s.Logout()
		}()
	}
	wg.Wait()
}

func TestRegistry_OpenAttachDrop(t *testing.T) {
	reg := session.NewRegistry(time.Hour)

	store, sid := reg.Open("")
	assert.Empty(t, sid)
	assert.False(t, store.Authenticated())

	store.Login(chef(), "tok")
	sid = reg.Attach(store)
	require.NotEmpty(t, sid)

	again, gotSID := reg.Open(sid)
	assert.Same(t, store, again)
	assert.Equal(t, sid, gotSID)
	assert.Equal(t, 1, reg.Active())

	reg.Drop(sid)
	reg.Drop(sid)
	reg.Drop("")

	_, ok := reg.Lookup(sid)
	assert.False(t, ok)

	fresh, freshSID := reg.Open(sid)
	assert.Empty(t, freshSID)
	assert.NotSame(t, store, fresh)
}

func TestRegistry_AttachMintsDistinctIDs(t *testing.T) {
	reg := session.NewRegistry(time.Hour)

	a := reg.Attach(session.NewStore())
	b := reg.Attach(session.NewStore())
	assert.NotEqual(t, a, b)
}

func TestRegistry_IdleExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	reg := session.NewRegistry(10 * time.Minute).WithClock(func() time.Time { return now })

	sid := reg.Attach(session.NewStore())

	now = now.Add(11 * time.Minute)
	_, ok := reg.Lookup(sid)
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Sweep())
}
