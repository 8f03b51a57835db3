package access_test

import (
	"testing"

	"github.com/geocoder89/restaurantos/internal/access"
	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSections = []access.Section{
	access.SectionDashboard,
	access.SectionOrders,
	access.SectionMenu,
	access.SectionStaff,
	access.SectionSettings,
}

func TestStandardPolicy_EveryRoleHasSections(t *testing.T) {
	p := access.Standard()

	for _, role := range user.Roles() {
		assert.NotEmpty(t, p.Sections(role), "role %s has no sections", role)
		assert.Contains(t, p.Sections(role), access.SectionDashboard)
	}
}

func TestIsPermitted_MatchesTable(t *testing.T) {
	p := access.Standard()

	for _, role := range user.Roles() {
		allowed := p.Sections(role)
		for _, s := range allSections {
			want := false
			for _, a := range allowed {
				if a == s {
					want = true
				}
			}
			got := p.IsPermitted(role, "/dashboard/"+string(s))
			assert.Equal(t, want, got, "role=%s section=%s", role, s)
		}
	}
}

func TestIsPermitted(t *testing.T) {
	p := access.Standard()

	tests := []struct {
		name string
		role user.Role
		path string
		want bool
	}{
		{name: "owner_staff", role: user.Owner, path: "/dashboard/staff", want: true},
		{name: "manager_settings", role: user.Manager, path: "/dashboard/settings", want: false},
		{name: "chef_menu", role: user.Chef, path: "/dashboard/menu", want: true},
		{name: "waiter_staff", role: user.Waiter, path: "/dashboard/staff", want: false},
		{name: "waiter_nested_orders", role: user.Waiter, path: "/dashboard/orders/new", want: true},
		{name: "chef_kitchen", role: user.Chef, path: "/dashboard/orders/kitchen", want: true},
		{name: "bare_root", role: user.Waiter, path: "/dashboard", want: true},
		{name: "root_trailing_slash", role: user.Chef, path: "/dashboard/", want: true},
		{name: "segment_must_match_exactly", role: user.Waiter, path: "/dashboard/ordersx", want: false},
		{name: "unknown_section", role: user.Owner, path: "/dashboard/reports", want: false},
		{name: "not_a_dashboard_path", role: user.Owner, path: "/about", want: false},
		{name: "prefix_lookalike", role: user.Owner, path: "/dashboards", want: false},
		{name: "dot_segments_escape", role: user.Owner, path: "/dashboard/../about", want: false},
		{name: "unknown_role_root", role: user.Role(0), path: "/dashboard", want: false},
		{name: "unknown_role_orders", role: user.Role(42), path: "/dashboard/orders", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsPermitted(tt.role, tt.path))
		})
	}
}

func TestZeroPolicyDeniesEverything(t *testing.T) {
	var p access.Policy

	for _, role := range user.Roles() {
		assert.False(t, p.IsPermitted(role, "/dashboard"))
	}
}

func TestDefaultLandingRoute(t *testing.T) {
	p := access.Standard()

	want := map[user.Role]string{
		user.Owner:   "/dashboard",
		user.Manager: "/dashboard",
		user.Chef:    "/dashboard/orders",
		user.Waiter:  "/dashboard/orders",
	}

	require.Len(t, want, len(user.Roles()), "landing table must cover every role")

	for _, role := range user.Roles() {
		first := p.DefaultLandingRoute(role)
		assert.Equal(t, want[role], first)
		assert.Equal(t, first, p.DefaultLandingRoute(role), "landing route must be deterministic")
		assert.True(t, p.IsPermitted(role, first), "role %s must be allowed on its own landing route", role)
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	p := access.Standard()

	s := p.Sections(user.Waiter)
	s[0] = access.SectionSettings

	assert.False(t, p.IsPermitted(user.Waiter, "/dashboard/settings"))
}

func TestNavigation(t *testing.T) {
	p := access.Standard()

	hrefs := func(items []access.NavItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Href)
		}
		return out
	}

	assert.Equal(t,
		[]string{"/dashboard", "/dashboard/orders", "/dashboard/menu", "/dashboard/staff", "/dashboard/settings"},
		hrefs(p.Navigation(user.Owner)),
	)
	assert.Equal(t,
		[]string{"/dashboard", "/dashboard/orders"},
		hrefs(p.Navigation(user.Waiter)),
	)
	assert.Empty(t, p.Navigation(user.Role(0)))
}
