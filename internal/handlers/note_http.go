package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type NoteHTTP struct {
	notes repository.NoteRepository
}

func NewNoteHTTP(notes repository.NoteRepository) *NoteHTTP {
	return &NoteHTTP{notes: notes}
}

// GET /api/notes?issueId=
func (h *NoteHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issueID := strings.TrimSpace(r.URL.Query().Get("issueId"))
		if issueID == "" {
			utils.Error(w, http.StatusBadRequest, "issueId is required")
			return
		}
		notes, err := h.notes.ListByIssue(r.Context(), issueID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if notes == nil {
			notes = []models.Note{}
		}
		utils.JSON(w, http.StatusOK, notes)
	}
}

// POST /api/notes
func (h *NoteHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		IssueID string `json:"issueId" validate:"required"`
		Content string `json:"content" validate:"required,min=1"`
		Author  string `json:"author"`
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

		n := &models.Note{
			IssueID: in.IssueID,
			Content: in.Content,
			Author:  strings.TrimSpace(in.Author),
		}
		if err := h.notes.Create(r.Context(), n); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"note":    n,
		})
	}
}
