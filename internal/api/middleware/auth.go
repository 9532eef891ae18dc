package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/dom/league-skinset-finder/internal/service"
)

type contextKey string

const (
	AdminSubjectKey contextKey = "adminSubject"
)

// AdminAuth requires a Bearer token issued by AdminService.
func AdminAuth(adminService *service.AdminService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.AdminAuth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.AdminAuth] invalid authorization header format")
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := adminService.ValidateToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.AdminAuth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			subject, _ := (*claims)["sub"].(string)
			ctx := context.WithValue(r.Context(), AdminSubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetAdminSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(AdminSubjectKey).(string)
	return subject, ok
}
