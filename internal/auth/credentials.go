package auth

import (
	"errors"

	"github.com/geocoder89/restaurantos/internal/domain/user"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// callers cannot tell them apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserFinder interface {
	FindByEmail(email string) (user.User, error)
}

type Authenticator struct {
	users UserFinder
}

func NewAuthenticator(users UserFinder) *Authenticator {
	return &Authenticator{users: users}
}

// Authenticate looks the email up in the roster and compares the password
// for exact equality against the stored demo credential.
func (a *Authenticator) Authenticate(email, password string) (user.User, error) {
	u, err := a.users.FindByEmail(email)
	if err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	// accounts without a credential cannot sign in
	if u.Password == "" || u.Password != password {
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}
