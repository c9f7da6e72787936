package middleware

import (
	"net/http"
	"strings"

	"github.com/houseofcoffee/US-Chamber/auth"
	"github.com/houseofcoffee/US-Chamber/shared/utils"
)

// SessionAuthMiddleware requires a valid session token on every request it
// wraps. The token arrives as a standard bearer credential; anything else is
// rejected with the generic unauthorized message.
func SessionAuthMiddleware(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Session is not authorized")
				return
			}

			if err := sessions.Verify(token); err != nil {
				utils.RespondWithAPIError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
