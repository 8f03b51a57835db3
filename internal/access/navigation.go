package access

import "github.com/geocoder89/restaurantos/internal/domain/user"

type NavItem struct {
	Name    string  `json:"name"`
	Href    string  `json:"href"`
	Section Section `json:"section"`
}

var sidebar = []NavItem{
	{Name: "Dashboard", Href: DashboardRoot, Section: SectionDashboard},
	{Name: "Orders", Href: OrdersRoute, Section: SectionOrders},
	{Name: "Menu", Href: "/dashboard/menu", Section: SectionMenu},
	{Name: "Staff", Href: "/dashboard/staff", Section: SectionStaff},
	{Name: "Settings", Href: "/dashboard/settings", Section: SectionSettings},
}

// Navigation returns the sidebar links role is allowed to follow, in menu order.
func (p Policy) Navigation(role user.Role) []NavItem {
	out := make([]NavItem, 0, len(sidebar))
	for _, item := range sidebar {
		if p.IsPermitted(role, item.Href) {
			out = append(out, item)
		}
	}
	return out
}
