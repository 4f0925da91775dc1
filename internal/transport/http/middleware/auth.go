package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Suvo-Ghosh/EMS/internal/auth"
)

type ctxKey string

const ctxKeyUser ctxKey = "auth_user"

type UserContext struct {
	UserID string
	Role   string
}

// Auth attaches the authenticated user to the context when a valid bearer
// token is present. Requests without one pass through anonymously; route
// guards decide whether that is acceptable.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, UserContext{
				UserID: claims.UserID,
				Role:   claims.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (UserContext, bool) {
	user, ok := ctx.Value(ctxKeyUser).(UserContext)
	return user, ok
}
