package user

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrUnknownRole = errors.New("unknown role")
)

// Role is the staff title that decides which dashboard sections a user may reach.
// The zero value is not a valid role.
type Role uint8

const (
	Owner Role = iota + 1
	Manager
	Chef
	Waiter

	roleEnd
)

var roleNames = [roleEnd]string{
	Owner:   "owner",
	Manager: "manager",
	Chef:    "chef",
	Waiter:  "waiter",
}

// Roles lists every valid role in declaration order.
func Roles() []Role {
	out := make([]Role, 0, roleEnd-1)
	for r := Owner; r < roleEnd; r++ {
		out = append(out, r)
	}
	return out
}

func (r Role) Valid() bool {
	return r >= Owner && r < roleEnd
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("role(%d)", uint8(r))
	}
	return roleNames[r]
}

func ParseRole(s string) (Role, error) {
	for r := Owner; r < roleEnd; r++ {
		if roleNames[r] == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"-"` // plaintext demo credential, never serialised
	Role         Role   `json:"role"`
	RestaurantID string `json:"restaurantId"`
}

// Public returns a copy without the credential.
func (u User) Public() User {
	u.Password = ""
	return u
}
