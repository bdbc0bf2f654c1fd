package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hanuiwon/clinic-api/sessions"
	"github.com/hanuiwon/clinic-api/utils"
)

const (
	// SessionCookie is the name of the cookie carrying the session id.
	SessionCookie = "sid"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextSessionIDKey stores the resolved session id inside Gin context.
	ContextSessionIDKey = "session_id"
)

// resolveSession loads the session bound to the request cookie, if any.
func resolveSession(ctx *gin.Context, store sessions.Store) (sid, userID string, ok bool) {
	sid, err := ctx.Cookie(SessionCookie)
	if err != nil || sid == "" {
		return "", "", false
	}
	userID, err = store.Get(ctx.Request.Context(), sid)
	if err != nil {
		return "", "", false
	}
	return sid, userID, true
}

// LoginRequired rejects requests that do not carry an authenticated session.
func LoginRequired(store sessions.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sid, userID, ok := resolveSession(ctx, store)
		if !ok {
			utils.Error(ctx, http.StatusForbidden, "no authorization")
			ctx.Abort()
			return
		}
		ctx.Set(ContextUserIDKey, userID)
		ctx.Set(ContextSessionIDKey, sid)
		ctx.Next()
	}
}

// GuestOnly blocks requests that already carry an authenticated session,
// used to keep logged-in clients away from signup and login.
func GuestOnly(store sessions.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, _, ok := resolveSession(ctx, store); ok {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
