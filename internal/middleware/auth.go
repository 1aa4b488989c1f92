package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type ctxKey string

const CtxUsername ctxKey = "username"

// WithSession reads the session JWT from the "session" cookie or an
// Authorization bearer header and puts the username in the request context.
// Requests without a valid token pass through unauthenticated; most users
// authenticate through Azure AD on the browser side, so handlers treat a
// local session as optional.
func WithSession(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tok string
			if c, err := r.Cookie("session"); err == nil {
				tok = c.Value
			} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tok = strings.TrimPrefix(h, "Bearer ")
			}

			if tok == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := utils.ParseJWT(cfg.SessionSecret, tok)
			if err != nil {
				// Clear broken/expired cookie so it stops being sent.
				http.SetCookie(w, &http.Cookie{
					Name:     "session",
					Value:    "",
					Path:     "/",
					HttpOnly: true,
					MaxAge:   -1,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUsername, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
