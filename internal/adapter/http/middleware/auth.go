package middleware

import (
	"net/http"
	"strings"

	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/infrastructure/metrics"
)

// AuthMiddleware verifies the Bearer token and stores the authenticated user
// on the request context. m may be nil.
func AuthMiddleware(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				reject(w, m, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				reject(w, m, "invalid authorization header format")
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				reject(w, m, "invalid or expired token")
				return
			}

			if m != nil {
				m.AuthAttempts.WithLabelValues("ok").Inc()
			}

			user := &domain.User{
				ID:    claims.UserID,
				Email: claims.Email,
			}
			next.ServeHTTP(w, r.WithContext(domain.ContextWithUser(r.Context(), user)))
		})
	}
}

func reject(w http.ResponseWriter, m *metrics.Metrics, message string) {
	if m != nil {
		m.AuthAttempts.WithLabelValues("rejected").Inc()
	}
	http.Error(w, message, http.StatusUnauthorized)
}
