package auth

import (
	"errors"
	"time"

	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "restaurantos"

// Claims carry the session id as jti so a token dies with its session.
type Claims struct {
	UserID       string `json:"uid"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	RestaurantID string `json:"rid"`
	TokenType    string `json:"typ"`
	jwt.RegisteredClaims
}

// SessionID is the registry id the token was minted for.
func (c *Claims) SessionID() string {
	return c.ID
}

type Manager struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

// GenerateAccessToken signs the token handed to the session store at login.
func (m *Manager) GenerateAccessToken(sessionID string, u user.User) (string, error) {
	now := m.now().UTC()

	claims := Claims{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         u.Role.String(),
		RestaurantID: u.RestaurantID,
		TokenType:    "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    issuer,
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) ParseAndValidate(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// HS256 only
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func (m *Manager) VerifyAccessToken(tokenStr string) (*Claims, error) {
	claims, err := m.ParseAndValidate(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "access" {
		return nil, errors.New("invalid token type")
	}
	if claims.SessionID() == "" {
		return nil, errors.New("missing session id")
	}
	return claims, nil
}
