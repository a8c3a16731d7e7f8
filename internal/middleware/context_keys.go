package middleware

import (
	"context"

	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

const sessionCtxKey = contextKey("session")

// Session is the authenticated caller as carried by the bearer token.
type Session struct {
	UserID         string
	OrganizationID string
	Role           domain.OrganizationRole
}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFromCtx retrieves the session stored by AuthMiddleware.
func SessionFromCtx(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(Session)
	return s, ok
}

// GetSession retrieves the full session from the request.
func GetSession(c *gin.Context) (Session, bool) {
	s, ok := SessionFromCtx(c.Request.Context())
	if !ok || s.UserID == "" || s.OrganizationID == "" {
		return Session{}, false
	}
	return s, true
}
