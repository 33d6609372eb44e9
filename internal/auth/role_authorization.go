package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shivam99392677/anwesha26-sub000/internal/core/user"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// ContextWithUser stores the authenticated account in the request context.
func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// UserFromContext retrieves the authenticated account set by AuthMiddleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*user.User)
	return u, ok
}

// RoleAuthorization guards routes by account role. Participants hold no
// elevated role; operators may run check-in scanners; admins may do both
// plus the management surface.
type RoleAuthorization struct {
	logger *slog.Logger
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{logger: logger}
}

func (ra *RoleAuthorization) require(label string, allowed func(*user.User) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFromContext(r.Context())
			if !ok || u == nil {
				ra.logger.Warn("authorization check failed: user not found in context", "required_role", label)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !allowed(u) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", u.ID,
					"user_role", u.Role,
					"required_role", label)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOperator admits operators and admins.
func (ra *RoleAuthorization) RequireOperator() func(http.Handler) http.Handler {
	return ra.require("operator", func(u *user.User) bool { return u.IsOperator() })
}

// RequireAdmin admits admins only.
func (ra *RoleAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.require("admin", func(u *user.User) bool { return u.IsAdmin() })
}
