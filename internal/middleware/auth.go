package middleware

import (
	"net/http"

	"github.com/bfbl/moneyglow/internal/auth"
	"github.com/bfbl/moneyglow/internal/session"
	"github.com/bfbl/moneyglow/internal/store"
)

// RequireAuth verifies the session cookie and populates AuthContext.
// Everything behind it is a JSON API, so failures answer 401 JSON rather
// than redirecting.
func RequireAuth(codec *session.Codec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.FromRequest(r)
			if token == "" {
				unauthorized(w)
				return
			}

			claims := codec.Verify(token)
			if claims == nil {
				unauthorized(w)
				return
			}

			ac := auth.AuthContext{
				UserID: claims.UserID,
				Email:  claims.Email,
			}
			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin re-reads the admin flag from the database on every request,
// so revoking admin takes effect without waiting out the session token.
func RequireAdmin(users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := users.GetByID(auth.UserID(r.Context()))
			if err != nil || u == nil || !u.IsAdmin {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(`{"error":"Forbidden"}`))
}
