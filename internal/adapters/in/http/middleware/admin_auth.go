// internal/adapters/in/http/middleware/admin_auth.go
package middleware

import (
	"log"
	"net/http"
)

// AdminAuthMiddleware gates the /admin surface: the request must already
// carry a verified token (chain UserAuthMiddleware first) whose claims
// include admin=true.
type AdminAuthMiddleware struct{}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, ok := CurrentUserUID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !CurrentUserIsAdmin(r) {
			log.Printf("[admin_auth] forbidden uid=%s path=%s", maskUID(uid), r.URL.Path)
			http.Error(w, "forbidden: admin claim required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// maskUID keeps raw Firebase UIDs out of the logs.
func maskUID(uid string) string {
	if uid == "" {
		return ""
	}
	if len(uid) <= 6 {
		return "***"
	}
	return "***" + uid[len(uid)-6:]
}
