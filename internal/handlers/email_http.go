package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

// draftSuggester is what the suggest endpoint needs from the assist service.
type draftSuggester interface {
	Enabled() bool
	SuggestDraft(ctx context.Context, issues []models.Issue, instructions string) (subject, body string, err error)
}

type EmailHTTP struct {
	templates repository.EmailTemplateRepository
	drafts    repository.EmailDraftRepository
	issues    repository.IssueRepository
	assist    draftSuggester
}

func NewEmailHTTP(templates repository.EmailTemplateRepository, drafts repository.EmailDraftRepository, issues repository.IssueRepository, assist draftSuggester) *EmailHTTP {
	return &EmailHTTP{templates: templates, drafts: drafts, issues: issues, assist: assist}
}

// -----------------------------------------------------------------------------
// Templates
// -----------------------------------------------------------------------------

// GET /api/email-templates
func (h *EmailHTTP) ListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := h.templates.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if ts == nil {
			ts = []models.EmailTemplate{}
		}
		utils.JSON(w, http.StatusOK, ts)
	}
}

type templateDTO struct {
	Name      string            `json:"name" validate:"required,min=1"`
	Subject   string            `json:"subject"`
	Content   string            `json:"content"`
	Variables map[string]string `json:"variables"`
	IsDefault bool              `json:"isDefault"`
}

// POST /api/email-templates
func (h *EmailHTTP) CreateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in templateDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.FieldErrors(w, fieldErrors(err))
			return
		}
		if in.Variables == nil {
			in.Variables = map[string]string{}
		}

		t := &models.EmailTemplate{
			Name:      strings.TrimSpace(in.Name),
			Subject:   in.Subject,
			Content:   in.Content,
			Variables: in.Variables,
			IsDefault: in.IsDefault,
		}
		if err := h.templates.Create(r.Context(), t); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// GET /api/email-templates/{id}
func (h *EmailHTTP) GetTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.templates.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "template not found")
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// PUT /api/email-templates/{id}
func (h *EmailHTTP) UpdateTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var in templateDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.FieldErrors(w, fieldErrors(err))
			return
		}

		t, err := h.templates.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if t == nil {
			utils.Error(w, http.StatusNotFound, "template not found")
			return
		}

		t.Name = strings.TrimSpace(in.Name)
		t.Subject = in.Subject
		t.Content = in.Content
		if in.Variables != nil {
			t.Variables = in.Variables
		}
		t.IsDefault = in.IsDefault

		if err := h.templates.Update(r.Context(), t); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// DELETE /api/email-templates/{id}
func (h *EmailHTTP) DeleteTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "template deleted",
		})
	}
}

// POST /api/email-templates/init
// Seeds one sample template, but only when the table is empty.
func (h *EmailHTTP) InitTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := h.templates.Count(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if n > 0 {
			utils.JSON(w, http.StatusOK, map[string]any{"success": true, "seeded": false})
			return
		}

		sample := &models.EmailTemplate{
			Name:    "Issue Status Update",
			Subject: "Update on {{issueTitle}}",
			Content: "Hi {{recipientName}},\n\nHere is the latest on {{issueTitle}}: {{statusSummary}}\n\nRegards,\n{{senderName}}",
			Variables: map[string]string{
				"issueTitle":    "Example issue",
				"recipientName": "there",
				"statusSummary": "we are on it",
				"senderName":    "ERP Admin Hub",
			},
			IsDefault: true,
		}
		if err := h.templates.Create(r.Context(), sample); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"success":  true,
			"seeded":   true,
			"template": sample,
		})
	}
}

// -----------------------------------------------------------------------------
// Drafts
// -----------------------------------------------------------------------------

// GET /api/email-drafts
func (h *EmailHTTP) ListDrafts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ds, err := h.drafts.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if ds == nil {
			ds = []models.EmailDraft{}
		}
		utils.JSON(w, http.StatusOK, ds)
	}
}

// POST /api/email-drafts
func (h *EmailHTTP) CreateDraft() http.HandlerFunc {
	type inDTO struct {
		Subject    string   `json:"subject" validate:"required,min=1"`
		Content    string   `json:"content"`
		TemplateID *string  `json:"templateId"`
		Recipients []string `json:"recipients"`
		IssueIDs   []string `json:"issueIds"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.FieldErrors(w, fieldErrors(err))
			return
		}

		d := &models.EmailDraft{
			Subject:    in.Subject,
			Content:    in.Content,
			TemplateID: nullIfBlank(in.TemplateID),
			Recipients: in.Recipients,
		}
		if err := h.drafts.Create(r.Context(), d, in.IssueIDs); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		// Re-read with full relations before responding.
		full, err := h.drafts.Get(r.Context(), d.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if full == nil {
			utils.Error(w, http.StatusInternalServerError, "draft not found after create")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"draft":   full,
		})
	}
}

// POST /api/email-drafts/suggest
func (h *EmailHTTP) SuggestDraft() http.HandlerFunc {
	type inDTO struct {
		IssueIDs     []string `json:"issueIds" validate:"required,min=1"`
		Instructions string   `json:"instructions"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if h.assist == nil || !h.assist.Enabled() {
			utils.Error(w, http.StatusServiceUnavailable, "draft suggestions are not configured")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if err := validate.Struct(in); err != nil {
			utils.FieldErrors(w, fieldErrors(err))
			return
		}

		var issues []models.Issue
		for _, id := range in.IssueIDs {
			it, err := h.issues.Get(r.Context(), id)
			if err != nil {
				utils.Error(w, http.StatusInternalServerError, err.Error())
				return
			}
			if it == nil {
				utils.Error(w, http.StatusNotFound, "issue not found: "+id)
				return
			}
			issues = append(issues, *it)
		}

		subject, body, err := h.assist.SuggestDraft(r.Context(), issues, in.Instructions)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"subject": subject,
			"content": body,
		})
	}
}
