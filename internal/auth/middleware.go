// internal/auth/middleware.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/primelots/api-realty/internal/apperror"
)

type ctxKey string

const (
	CtxUserID ctxKey = "userID"
	CtxRole   ctxKey = "role"
)

// Middleware authenticates the bearer token and stores the acting user's id
// and role in the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			apperror.Write(w, apperror.Unauthenticated("missing bearer token"))
			return
		}
		claims, err := ParseAndValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			apperror.Write(w, apperror.Unauthenticated("invalid token"))
			return
		}
		ctx := context.WithValue(r.Context(), CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, CtxRole, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects non-admin callers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFrom(r.Context()) != RoleAdmin {
			apperror.Write(w, apperror.Unauthorized("admin only"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the authenticated user's id, or 0 when absent.
func UserFrom(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUserID).(uint)
	return id
}

// RoleFrom returns the authenticated user's role, or "" when absent.
func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(CtxRole).(string)
	return role
}
