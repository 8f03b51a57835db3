package middlewares

// gin context keys set by this package
const (
	CtxRequestID = "request_id"
	CtxGuard     = "guard.reason"

	ctxSessionKey   = "session.store"
	ctxSessionIDKey = "session.id"
	ctxUserIDKey    = "auth.userID"
)
