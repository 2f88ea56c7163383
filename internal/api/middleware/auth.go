package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/trampo-app/trampo/internal/auth"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// UserIDKey is the context key for user ID
	UserIDKey ContextKey = "userID"
	// UserEmailKey is the context key for user email
	UserEmailKey ContextKey = "email"
	// UserRoleKey is the context key for the user's marketplace role
	UserRoleKey ContextKey = "role"
)

// AccessTokenCookie is the cookie carrying the access token for browsers
const AccessTokenCookie = "accessToken"

func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func withClaims(w http.ResponseWriter, r *http.Request, claims *auth.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
	ctx = context.WithValue(ctx, UserRoleKey, user.Role(claims.Role))

	// Add audit info to logs
	AddLogField(w, "user_id", claims.UserID)
	AddLogField(w, "role", claims.Role)

	return r.WithContext(ctx)
}

// AuthMiddleware returns a middleware that validates JWT access tokens
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseTyped(tokenStr, jwtSecret, auth.TokenTypeAccess)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			next.ServeHTTP(w, withClaims(w, r, claims))
		})
	}
}

// OptionalAuthMiddleware is like AuthMiddleware but doesn't reject requests without tokens
func OptionalAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr := tokenFromRequest(r); tokenStr != "" {
				if claims, err := auth.ParseTyped(tokenStr, jwtSecret, auth.TokenTypeAccess); err == nil {
					r = withClaims(w, r, claims)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated users of any other role. It must run
// after AuthMiddleware.
func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, _ := GetUserRole(r); got != role {
				utils.WriteError(w, errors.Forbidden("This action requires role "+string(role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRole extracts the user role from the request context
func GetUserRole(r *http.Request) (user.Role, bool) {
	role, ok := r.Context().Value(UserRoleKey).(user.Role)
	return role, ok
}
