package user

import "fmt"

// Roster is the fixed set of staff accounts loaded at startup. It is never
// mutated after construction, so it is safe for concurrent reads.
type Roster struct {
	users   []User
	byEmail map[string]User
}

func NewRoster(users ...User) (*Roster, error) {
	r := &Roster{
		users:   make([]User, 0, len(users)),
		byEmail: make(map[string]User, len(users)),
	}

	for _, u := range users {
		if u.ID == "" || u.Email == "" {
			return nil, fmt.Errorf("roster entry missing id or email: %+v", u.Public())
		}
		if !u.Role.Valid() {
			return nil, fmt.Errorf("roster entry %s: %w", u.Email, ErrUnknownRole)
		}
		if _, dup := r.byEmail[u.Email]; dup {
			return nil, fmt.Errorf("roster entry %s: duplicate email", u.Email)
		}

		r.users = append(r.users, u)
		r.byEmail[u.Email] = u
	}

	return r, nil
}

// DefaultRoster returns the demo accounts of the single seeded restaurant.
func DefaultRoster() *Roster {
	r, err := NewRoster(
		User{ID: "1", Name: "John Smith", Email: "owner@restaurant.com", Password: "owner123", Role: Owner, RestaurantID: "rest_01"},
		User{ID: "2", Name: "Sarah Johnson", Email: "manager@restaurant.com", Password: "manager123", Role: Manager, RestaurantID: "rest_01"},
		User{ID: "3", Name: "Mike Wilson", Email: "chef@restaurant.com", Password: "chef123", Role: Chef, RestaurantID: "rest_01"},
		User{ID: "4", Name: "Emily Brown", Email: "waiter@restaurant.com", Password: "waiter123", Role: Waiter, RestaurantID: "rest_01"},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// FindByEmail matches the email exactly (case and surrounding whitespace included).
func (r *Roster) FindByEmail(email string) (User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// All returns the roster in load order, credentials stripped.
func (r *Roster) All() []User {
	out := make([]User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Public())
	}
	return out
}
