// Package guard decides, for one navigation, whether to render the requested
// path or send the client somewhere else. It never chains redirects: each
// evaluation yields exactly one decision.
package guard

import (
	"path"

	"github.com/geocoder89/restaurantos/internal/access"
	"github.com/geocoder89/restaurantos/internal/domain/user"
)

const (
	HomePath     = "/"
	AboutPath    = "/about"
	ContactPath  = "/contact"
	LoginPath    = "/auth/login"
	RegisterPath = "/auth/register"
)

var publicPaths = map[string]struct{}{
	HomePath:     {},
	AboutPath:    {},
	ContactPath:  {},
	LoginPath:    {},
	RegisterPath: {},
}

// IsPublic reports whether p is one of the marketing or auth pages.
func IsPublic(p string) bool {
	_, ok := publicPaths[p]
	return ok
}

// Authorizer is the slice of the access policy the guard depends on.
type Authorizer interface {
	IsPermitted(role user.Role, routePath string) bool
	DefaultLandingRoute(role user.Role) string
}

// Identity answers "who is signed in"; *session.Store satisfies it.
type Identity interface {
	Current() (user.User, bool)
}

type Outcome int

const (
	Allow Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Redirect {
		return "redirect"
	}
	return "allow"
}

// Reason says which branch produced a decision; it ends up in logs and metrics.
type Reason string

const (
	ReasonPublic          Reason = "public"
	ReasonUnguarded       Reason = "unguarded"
	ReasonPermitted       Reason = "permitted"
	ReasonAlreadySignedIn Reason = "already_signed_in"
	ReasonNoSession       Reason = "no_session"
	ReasonForbidden       Reason = "forbidden"
)

type Decision struct {
	Outcome  Outcome
	Location string
	Reason   Reason
}

func allow(r Reason) Decision {
	return Decision{Outcome: Allow, Reason: r}
}

func redirect(to string, r Reason) Decision {
	return Decision{Outcome: Redirect, Location: to, Reason: r}
}

type Guard struct {
	policy Authorizer
}

func New(policy Authorizer) *Guard {
	return &Guard{policy: policy}
}

// Evaluate runs the guard for a navigation to routePath.
func (g *Guard) Evaluate(routePath string, who Identity) Decision {
	p := path.Clean("/" + routePath)

	var (
		u        user.User
		signedIn bool
	)
	if who != nil {
		u, signedIn = who.Current()
	}

	if IsPublic(p) {
		if signedIn && p == LoginPath {
			return redirect(g.policy.DefaultLandingRoute(u.Role), ReasonAlreadySignedIn)
		}
		return allow(ReasonPublic)
	}

	if !access.IsDashboardPath(p) {
		return allow(ReasonUnguarded)
	}

	if !signedIn {
		return redirect(LoginPath, ReasonNoSession)
	}

	if !g.policy.IsPermitted(u.Role, p) {
		return redirect(access.DashboardRoot, ReasonForbidden)
	}

	return allow(ReasonPermitted)
}
