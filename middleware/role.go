package middleware

import (
	"net/http"

	"github.com/uplifts-neel/lab-inventory-managment/utils"
)

// RequireRole gates a route to the listed roles. It must run after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFrom(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			for _, role := range roles {
				if ident.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden: insufficient role")
		})
	}
}
