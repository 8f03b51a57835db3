package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/geocoder89/restaurantos/internal/auth"
	"github.com/geocoder89/restaurantos/internal/config"
	"github.com/geocoder89/restaurantos/internal/domain/user"
	"github.com/geocoder89/restaurantos/internal/http/middlewares"
	"github.com/geocoder89/restaurantos/internal/session"
	"github.com/gin-gonic/gin"
)

type Authenticator interface {
	Authenticate(email, password string) (user.User, error)
}

type TokenIssuer interface {
	GenerateAccessToken(sessionID string, u user.User) (string, error)
}

type SessionRegistry interface {
	Attach(store *session.Store) string
	Drop(sid string)
}

type LandingRouter interface {
	DefaultLandingRoute(role user.Role) string
}

type LoginObserver interface {
	ObserveLogin(ok bool)
}

type AuthHandler struct {
	authn    Authenticator
	tokens   TokenIssuer
	sessions SessionRegistry
	landing  LandingRouter
	obs      LoginObserver
	cfg      config.Config
}

func NewAuthHandler(authn Authenticator, tokens TokenIssuer, sessions SessionRegistry, landing LandingRouter, obs LoginObserver, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authn:    authn,
		tokens:   tokens,
		sessions: sessions,
		landing:  landing,
		obs:      obs,
		cfg:      cfg,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"max=254"`
	Password string `json:"password" binding:"max=128"`
}

type LoginResponse struct {
	User        user.User `json:"user"`
	AccessToken string    `json:"accessToken"`
	Redirect    string    `json:"redirect"`
	Notice      Notice    `json:"notice"`
}

var loginFailedNotice = Notice{
	Title:       "Login failed",
	Description: "Invalid email or password",
	Variant:     "destructive",
}

// Login checks the credentials against the roster. On failure the client's
// current session, signed in or not, is left exactly as it was.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	u, err := h.authn.Authenticate(req.Email, req.Password)
	if err != nil {
		h.observe(false)

		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Default().ErrorContext(ctx.Request.Context(), "login_check_failed", "err", err)
		}

		RespondUnauthorized(ctx, "invalid_credentials", loginFailedNotice.Description, gin.H{"notice": loginFailedNotice})
		return
	}

	store := middlewares.SessionFromContext(ctx)
	previousSID := middlewares.SessionIDFromContext(ctx)

	// a fresh id on every sign in; tokens minted for the old id stop working
	sid := h.sessions.Attach(store)

	token, err := h.tokens.GenerateAccessToken(sid, u)
	if err != nil {
		h.sessions.Drop(sid)
		RespondInternal(ctx, "Could not create session")
		return
	}

	store.Login(u, token)
	h.sessions.Drop(previousSID)
	h.observe(true)

	middlewares.SetSessionCookie(ctx, sid, middlewares.SessionCookieOptions(h.cfg))

	slog.Default().InfoContext(ctx.Request.Context(), "login", "user_id", u.ID, "role", u.Role.String())

	ctx.JSON(http.StatusOK, LoginResponse{
		User:        u.Public(),
		AccessToken: token,
		Redirect:    h.landing.DefaultLandingRoute(u.Role),
		Notice: Notice{
			Title:       "Login successful",
			Description: "Welcome back, " + u.Name + "!",
		},
	})
}

// Logout always succeeds, signed in or not.
func (h *AuthHandler) Logout(ctx *gin.Context) {
	store := middlewares.SessionFromContext(ctx)
	store.Logout()

	h.sessions.Drop(middlewares.SessionIDFromContext(ctx))
	middlewares.ClearSessionCookie(ctx, middlewares.SessionCookieOptions(h.cfg))

	ctx.Status(http.StatusNoContent)
}

// Helper functions

func (h *AuthHandler) observe(ok bool) {
	if h.obs != nil {
		h.obs.ObserveLogin(ok)
	}
}
