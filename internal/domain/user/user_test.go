package user_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range user.Roles() {
		got, err := user.ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := user.ParseRole("admin")
	assert.True(t, errors.Is(err, user.ErrUnknownRole))

	_, err = user.ParseRole("Owner")
	assert.Error(t, err, "role names are case sensitive")
}

func TestRoleZeroValueIsInvalid(t *testing.T) {
	var r user.Role
	assert.False(t, r.Valid())

	_, err := json.Marshal(struct {
		Role user.Role `json:"role"`
	}{})
	assert.Error(t, err)
}

func TestUserJSONHidesPassword(t *testing.T) {
	u := user.User{ID: "9", Name: "Test", Email: "t@restaurant.com", Password: "secret", Role: user.Chef, RestaurantID: "rest_01"}

	b, err := json.Marshal(u)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "secret")
	assert.Contains(t, string(b), `"role":"chef"`)
	assert.Contains(t, string(b), `"restaurantId":"rest_01"`)
}

func TestDefaultRoster(t *testing.T) {
	r := user.DefaultRoster()

	u, err := r.FindByEmail("owner@restaurant.com")
	require.NoError(t, err)
	assert.Equal(t, user.Owner, u.Role)
	assert.Equal(t, "owner123", u.Password)

	_, err = r.FindByEmail("OWNER@restaurant.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	all := r.All()
	require.Len(t, all, 4)
	assert.Equal(t, user.Waiter, all[3].Role)
	for _, pub := range all {
		assert.Empty(t, pub.Password)
	}
}

func TestNewRosterRejectsBadEntries(t *testing.T) {
	_, err := user.NewRoster(user.User{ID: "1", Email: "a@b.c"})
	assert.ErrorIs(t, err, user.ErrUnknownRole)

	_, err = user.NewRoster(
		user.User{ID: "1", Email: "a@b.c", Role: user.Chef},
		user.User{ID: "2", Email: "a@b.c", Role: user.Waiter},
	)
	assert.Error(t, err)
}
