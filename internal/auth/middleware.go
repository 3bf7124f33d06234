package auth

import (
	"net/http"

	"family-calendar/internal/session"
	"family-calendar/internal/utils"
)

// RequireSession loads the caller's session into the request context and
// rejects requests whose session has not passed the password gate.
func RequireSession(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := manager.Load(r)
			if err != nil || !s.Authenticated {
				utils.WriteJSON(w, http.StatusUnauthorized,
					utils.ErrorResponse("Nicht angemeldet.", "unauthorized"))
				return
			}

			ctx := session.WithSession(r.Context(), s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Session extracts the authenticated session from the request context.
func Session(r *http.Request) *session.Session {
	s, _ := session.FromContext(r.Context())
	return s
}
