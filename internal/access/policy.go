// Package access holds the static role to dashboard-section table and the
// checks derived from it. The same table drives route gating and the
// navigation menu.
package access

import (
	"path"
	"slices"
	"strings"

	"github.com/geocoder89/restaurantos/internal/domain/user"
)

// Section is a top-level dashboard area, i.e. the first path segment after /dashboard/.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionOrders    Section = "orders"
	SectionMenu      Section = "menu"
	SectionStaff     Section = "staff"
	SectionSettings  Section = "settings"
)

const (
	DashboardRoot = "/dashboard"
	OrdersRoute   = "/dashboard/orders"

	dashboardPrefix = DashboardRoot + "/"
)

// Policy is immutable once built; the zero value denies everything.
type Policy struct {
	sections map[user.Role][]Section
	landing  map[user.Role]string
}

var standard = Policy{
	sections: map[user.Role][]Section{
		user.Owner:   {SectionDashboard, SectionOrders, SectionMenu, SectionStaff, SectionSettings},
		user.Manager: {SectionDashboard, SectionOrders, SectionMenu, SectionStaff},
		user.Chef:    {SectionDashboard, SectionOrders, SectionMenu},
		user.Waiter:  {SectionDashboard, SectionOrders},
	},
	landing: map[user.Role]string{
		user.Owner:   DashboardRoot,
		user.Manager: DashboardRoot,
		user.Chef:    OrdersRoute,
		user.Waiter:  OrdersRoute,
	},
}

// Standard returns the restaurant staff policy.
func Standard() Policy {
	return standard
}

// Sections returns a copy of the ordered allow-list for role.
func (p Policy) Sections(role user.Role) []Section {
	return slices.Clone(p.sections[role])
}

func (p Policy) Allows(role user.Role, s Section) bool {
	return slices.Contains(p.sections[role], s)
}

// IsPermitted reports whether role may open routePath. The bare dashboard
// root is open to every known role; anything outside /dashboard is not a
// policy route and is refused.
func (p Policy) IsPermitted(role user.Role, routePath string) bool {
	if !role.Valid() || len(p.sections[role]) == 0 {
		return false
	}

	section, ok := SectionOf(routePath)
	if !ok {
		return false
	}
	if section == "" {
		return true
	}

	return p.Allows(role, section)
}

// DefaultLandingRoute is where role is sent after signing in. Unknown roles
// get the dashboard root, which the guard will then refuse.
func (p Policy) DefaultLandingRoute(role user.Role) string {
	if r, ok := p.landing[role]; ok {
		return r
	}
	return DashboardRoot
}

// SectionOf extracts the top-level section of a dashboard path. ok is false
// for paths outside /dashboard; an empty section means the dashboard root.
func SectionOf(routePath string) (Section, bool) {
	clean := path.Clean("/" + routePath)

	if clean == DashboardRoot {
		return "", true
	}
	if !strings.HasPrefix(clean, dashboardPrefix) {
		return "", false
	}

	rest := strings.TrimPrefix(clean, dashboardPrefix)
	seg, _, _ := strings.Cut(rest, "/")

	return Section(seg), true
}

// IsDashboardPath reports whether routePath lives under the protected prefix.
func IsDashboardPath(routePath string) bool {
	_, ok := SectionOf(routePath)
	return ok
}
