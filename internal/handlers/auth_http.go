package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/config"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/middleware"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/service"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type AuthHTTP struct {
	svc *service.AuthService
	cfg config.Config
}

func NewAuthHTTP(svc *service.AuthService, cfg config.Config) *AuthHTTP {
	return &AuthHTTP{svc: svc, cfg: cfg}
}

// GET /api/auth/config
// MSAL settings for the browser; the interactive Azure AD login runs there.
func (h *AuthHTTP) Config() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]any{
			"clientId":    h.cfg.AzureAD.ClientID,
			"authority":   h.cfg.AzureAD.Authority(),
			"redirectUri": h.cfg.AzureAD.RedirectURI,
			"scopes":      h.cfg.AzureAD.Scopes,
		})
	}
}

// POST /api/auth/login
// Bypass-credential login for non-interactive testing access.
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		token, err := h.svc.Login(in.Username, in.Password)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			// Set true behind HTTPS in prod
			Secure:  false,
			Expires: time.Now().Add(24 * time.Hour),
		})
		utils.JSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"username": in.Username,
		})
	}
}

// POST /api/auth/logout
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     "session",
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/auth/me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := utils.GetString(r.Context(), middleware.CtxUsername)
		if !ok || u == "" {
			utils.Error(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"username": u, "bypass": true})
	}
}
