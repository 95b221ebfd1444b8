package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"devconnect/internal/httputil"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// SubjectIDKey is the context key for the authenticated subject's user id
	SubjectIDKey contextKey = "subject_id"
)

// AuthMiddleware validates the bearer token carried in the Authorization
// header and resolves it to a subject id in the request context. It is
// stateless: the only shared state is the signing secret, fixed at startup.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			// Expected format: "Bearer <token>"
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				httputil.WriteUnauthorized(w, "Missing authentication token")
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				// Validate signing method
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil {
				if strings.Contains(err.Error(), "expired") {
					httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenExpired, "Access token has expired")
					return
				}
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok || !token.Valid {
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid authentication token")
				return
			}

			subjectIDFloat, ok := claims["user_id"].(float64)
			if !ok {
				httputil.WriteUnauthorizedWithCode(w, httputil.CodeTokenInvalid, "Invalid token claims")
				return
			}
			subjectID := int64(subjectIDFloat)

			ctx := context.WithValue(r.Context(), SubjectIDKey, subjectID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubjectIDFromContext extracts the authenticated subject id from the
// request context. Returns 0 and false when the request is unauthenticated.
func GetSubjectIDFromContext(ctx context.Context) (int64, bool) {
	subjectID, ok := ctx.Value(SubjectIDKey).(int64)
	return subjectID, ok
}
