package handlers

import (
	"net/http"

	"github.com/geocoder89/restaurantos/internal/access"
	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/geocoder89/restaurantos/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type Navigator interface {
	Navigation(role user.Role) []access.NavItem
	Sections(role user.Role) []access.Section
	DefaultLandingRoute(role user.Role) string
}

type StaffDirectory interface {
	All() []user.User
}

// PageView is what the front end needs to draw a page shell; the page
// content itself comes from elsewhere.
type PageView struct {
	Page         string           `json:"page"`
	User         *user.User       `json:"user,omitempty"`
	Navigation   []access.NavItem `json:"navigation,omitempty"`
	DemoAccounts []DemoAccount    `json:"demoAccounts,omitempty"`
}

type DemoAccount struct {
	Role  user.Role `json:"role"`
	Email string    `json:"email"`
}

type MeResponse struct {
	User       user.User        `json:"user"`
	Sections   []access.Section `json:"sections"`
	Landing    string           `json:"landing"`
	Navigation []access.NavItem `json:"navigation"`
}

type PagesHandler struct {
	nav   Navigator
	staff StaffDirectory
}

func NewPagesHandler(nav Navigator, staff StaffDirectory) *PagesHandler {
	return &PagesHandler{nav: nav, staff: staff}
}

// Public serves a marketing or auth page; the user is included when signed in.
func (h *PagesHandler) Public(page string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		view := PageView{Page: page}

		if u, ok := middlewares.SessionFromContext(ctx).Current(); ok {
			view.User = &u
		}

		if page == "login" && view.User == nil {
			for _, u := range h.staff.All() {
				view.DemoAccounts = append(view.DemoAccounts, DemoAccount{Role: u.Role, Email: u.Email})
			}
		}

		ctx.JSON(http.StatusOK, view)
	}
}

// Dashboard serves a page under /dashboard. The guard has already checked
// the section; the sidebar is filtered through the same policy.
func (h *PagesHandler) Dashboard(page string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		u, ok := middlewares.SessionFromContext(ctx).Current()
		if !ok {
			RespondUnauthorized(ctx, "no_session", "Sign in to continue", nil)
			return
		}

		ctx.JSON(http.StatusOK, PageView{
			Page:       page,
			User:       &u,
			Navigation: h.nav.Navigation(u.Role),
		})
	}
}

// Me returns the caller's identity and what they may open.
func (h *PagesHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.SessionFromContext(ctx).Current()
	if !ok {
		RespondUnauthorized(ctx, "no_session", "Sign in to continue", nil)
		return
	}

	ctx.JSON(http.StatusOK, MeResponse{
		User:       u,
		Sections:   h.nav.Sections(u.Role),
		Landing:    h.nav.DefaultLandingRoute(u.Role),
		Navigation: h.nav.Navigation(u.Role),
	})
}
