package auth

import (
	"net/http"
	"strings"
)

// Authenticate returns a middleware that populates the request identity
// from an optional Authorization: Bearer header. A missing or invalid
// token is not an error at this stage; the request simply proceeds
// anonymously and the gates reject it later where login is required.
func Authenticate(svc *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header != "" && strings.HasPrefix(strings.ToLower(header), "bearer ") {
				token := strings.TrimSpace(header[len("bearer "):])
				if id, err := svc.Verify(token); err == nil {
					r = r.WithContext(WithIdentity(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
