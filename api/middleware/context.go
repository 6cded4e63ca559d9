package middleware

import (
	"context"

	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// RoleFromContext returns the effective role of the request actor. Requests
// that never passed through the identity middleware count as guests.
func RoleFromContext(ctx context.Context) enums.UserRole {
	if ctx == nil {
		return enums.UserRoleGuest
	}
	if v, ok := ctx.Value(ctxRole).(enums.UserRole); ok && v.IsValid() {
		return v
	}
	return enums.UserRoleGuest
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role enums.UserRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
