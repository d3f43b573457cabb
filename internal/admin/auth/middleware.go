package auth

import (
	"net/http"
	"strings"
)

// HTTPMiddleware attaches the bearer token's identity to the request context.
// Requests without an Authorization header pass through unauthenticated.
func HTTPMiddleware(next http.Handler, jwtSecret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			http.Error(w, "invalid authorization format", http.StatusUnauthorized)
			return
		}

		identity, err := Resolve(tokenString, jwtSecret)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), identity)))
	})
}
