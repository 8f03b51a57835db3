package auth_test

import (
	"testing"
	"time"

	"github.com/geocoder89/restaurantos/internal/auth"
	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	a := auth.NewAuthenticator(user.DefaultRoster())

	tests := []struct {
		name     string
		email    string
		password string
		wantRole user.Role
		wantErr  bool
	}{
		{name: "owner", email: "owner@restaurant.com", password: "owner123", wantRole: user.Owner},
		{name: "waiter", email: "waiter@restaurant.com", password: "waiter123", wantRole: user.Waiter},
		{name: "wrong_password", email: "owner@restaurant.com", password: "owner124", wantErr: true},
		{name: "password_is_case_sensitive", email: "chef@restaurant.com", password: "CHEF123", wantErr: true},
		{name: "unknown_email", email: "ghost@restaurant.com", password: "owner123", wantErr: true},
		{name: "empty", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := a.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
				assert.Equal(t, user.User{}, u)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, u.Role)
		})
	}
}

func TestAuthenticate_AccountWithoutCredential(t *testing.T) {
	roster, err := user.NewRoster(user.User{ID: "7", Email: "kiosk@restaurant.com", Role: user.Waiter})
	require.NoError(t, err)

	_, err = auth.NewAuthenticator(roster).Authenticate("kiosk@restaurant.com", "")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestManager_RoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	u, err := user.DefaultRoster().FindByEmail("chef@restaurant.com")
	require.NoError(t, err)

	raw, err := m.GenerateAccessToken("sid-123", u)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(raw)
	require.NoError(t, err)
	assert.Equal(t, "sid-123", claims.SessionID())
	assert.Equal(t, "3", claims.UserID)
	assert.Equal(t, "chef", claims.Role)
	assert.Equal(t, "rest_01", claims.RestaurantID)
}

func TestManager_RejectsForeignAndExpiredTokens(t *testing.T) {
	u, err := user.DefaultRoster().FindByEmail("owner@restaurant.com")
	require.NoError(t, err)

	other := auth.NewManager("other-secret", time.Hour)
	raw, err := other.GenerateAccessToken("sid", u)
	require.NoError(t, err)

	_, err = auth.NewManager("test-secret", time.Hour).VerifyAccessToken(raw)
	assert.Error(t, err)

	expired := auth.NewManager("test-secret", -time.Minute)
	raw, err = expired.GenerateAccessToken("sid", u)
	require.NoError(t, err)

	_, err = expired.VerifyAccessToken(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestManager_RequiresSessionID(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)
	u, err := user.DefaultRoster().FindByEmail("owner@restaurant.com")
	require.NoError(t, err)

	raw, err := m.GenerateAccessToken("", u)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(raw)
	assert.Error(t, err)
}
