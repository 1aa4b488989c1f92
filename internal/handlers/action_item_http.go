package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type ActionItemHTTP struct {
	items repository.ActionItemRepository
}

func NewActionItemHTTP(items repository.ActionItemRepository) *ActionItemHTTP {
	return &ActionItemHTTP{items: items}
}

// GET /api/action-items?issueId=
func (h *ActionItemHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issueID := strings.TrimSpace(r.URL.Query().Get("issueId"))
		if issueID == "" {
			utils.Error(w, http.StatusBadRequest, "issueId is required")
			return
		}
		items, err := h.items.ListByIssue(r.Context(), issueID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.ActionItem{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// POST /api/action-items
func (h *ActionItemHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		IssueID     string     `json:"issueId"`
		Title       string     `json:"title"`
		Description string     `json:"description"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"dueDate"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.IssueID = strings.TrimSpace(in.IssueID)
		in.Title = strings.TrimSpace(in.Title)
		if in.IssueID == "" {
			utils.Error(w, http.StatusBadRequest, "issueId is required")
			return
		}
		if in.Title == "" {
			utils.Error(w, http.StatusBadRequest, "title is required")
			return
		}
		if in.Priority == "" {
			in.Priority = models.PriorityMedium
		}

		a := &models.ActionItem{
			IssueID:     in.IssueID,
			Title:       in.Title,
			Description: strings.TrimSpace(in.Description),
			Priority:    in.Priority,
			DueDate:     in.DueDate,
		}
		if err := h.items.Create(r.Context(), a); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, a)
	}
}

// PATCH /api/action-items/{id}
// Only fields present in the body are written. dueDate distinguishes three
// cases: absent (keep), null (clear), timestamp (set).
func (h *ActionItemHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Priority    *string         `json:"priority"`
		Completed   *bool           `json:"completed"`
		DueDate     json.RawMessage `json:"dueDate"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p := repository.ActionItemPatch{
			Title:       in.Title,
			Description: in.Description,
			Priority:    in.Priority,
			Completed:   in.Completed,
		}
		if len(in.DueDate) > 0 {
			if bytes.Equal(bytes.TrimSpace(in.DueDate), []byte("null")) {
				p.ClearDueDate = true
			} else {
				var due time.Time
				if err := json.Unmarshal(in.DueDate, &due); err != nil {
					utils.Error(w, http.StatusBadRequest, "invalid dueDate")
					return
				}
				p.DueDate = &due
			}
		}

		updated, err := h.items.Patch(r.Context(), id, p)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// DELETE /api/action-items/{id}
func (h *ActionItemHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		if err := h.items.Delete(r.Context(), id); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "action item deleted",
		})
	}
}
