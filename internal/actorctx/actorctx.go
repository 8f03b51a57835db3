// Package actorctx carries the signed-in staff member on a request context,
// for code below the HTTP layer that only sees context.Context.
package actorctx

import (
	"context"

	"github.com/geocoder89/restaurantos/internal/domain/user"
)

type ctxKey struct{}

func WithActor(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

func ActorFrom(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(user.User)
	return u, ok && u.ID != ""
}

func UserIDFrom(ctx context.Context) (string, bool) {
	u, ok := ActorFrom(ctx)
	return u.ID, ok
}
