package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/zendesk"
)

type ZendeskHTTP struct {
	oauth *zendesk.OAuth
	log   zerolog.Logger
}

func NewZendeskHTTP(oauth *zendesk.OAuth, log zerolog.Logger) *ZendeskHTTP {
	return &ZendeskHTTP{oauth: oauth, log: log}
}

// GET /api/zendesk/oauth/authorize
func (h *ZendeskHTTP) Authorize() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := h.oauth.AuthorizeURL()
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	}
}

// GET /api/zendesk/oauth/callback?state=&code=
func (h *ZendeskHTTP) Callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		state := strings.TrimSpace(q.Get("state"))
		code := strings.TrimSpace(q.Get("code"))
		if state == "" || code == "" {
			utils.Error(w, http.StatusBadRequest, "state and code are required")
			return
		}

		tok, err := h.oauth.Exchange(r.Context(), state, code)
		if err != nil {
			if errors.Is(err, zendesk.ErrStateMismatch) {
				utils.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			h.log.Error().Err(err).Msg("zendesk token exchange failed")
			utils.Error(w, http.StatusInternalServerError, "token exchange failed")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"tokenType": tok.TokenType,
			"expiry":    tok.Expiry,
		})
	}
}
