package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/service"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

// IssueHTTP wires the issue endpoints to the repositories.
type IssueHTTP struct {
	issues    repository.IssueRepository
	notes     repository.NoteRepository
	dashboard *service.DashboardService
}

func NewIssueHTTP(issues repository.IssueRepository, notes repository.NoteRepository, dashboard *service.DashboardService) *IssueHTTP {
	return &IssueHTTP{issues: issues, notes: notes, dashboard: dashboard}
}

// GET /api/issues?status=resolved|<other>
func (h *IssueHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses := models.StatusGroup(strings.TrimSpace(r.URL.Query().Get("status")))
		items, err := h.issues.List(r.Context(), statuses)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if items == nil {
			items = []models.Issue{}
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// GET /api/issues/{id}
func (h *IssueHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			utils.Error(w, http.StatusBadRequest, "missing id")
			return
		}
		it, err := h.issues.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if it == nil {
			utils.Error(w, http.StatusNotFound, "issue not found")
			return
		}
		utils.JSON(w, http.StatusOK, it)
	}
}

// POST /api/issues
func (h *IssueHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Title            string  `json:"title"`
		Description      string  `json:"description"`
		ResolutionPlan   string  `json:"resolutionPlan"`
		WorkPerformed    string  `json:"workPerformed"`
		Roadblocks       string  `json:"roadblocks"`
		Priority         string  `json:"priority"`
		Status           string  `json:"status"`
		CategoryID       *string `json:"categoryId"`
		ExternalTicketID *string `json:"externalTicketId"`
		ImportedNote     string  `json:"importedNote"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Title = strings.TrimSpace(in.Title)
		if in.Title == "" {
			utils.Error(w, http.StatusBadRequest, "title is required")
			return
		}
		if in.Priority == "" {
			in.Priority = models.PriorityMedium
		}
		if in.Status == "" {
			in.Status = models.StatusOpen
		}

		it := &models.Issue{
			Title:            in.Title,
			Description:      strings.TrimSpace(in.Description),
			ResolutionPlan:   strings.TrimSpace(in.ResolutionPlan),
			WorkPerformed:    strings.TrimSpace(in.WorkPerformed),
			Roadblocks:       strings.TrimSpace(in.Roadblocks),
			Priority:         in.Priority,
			Status:           in.Status,
			CategoryID:       in.CategoryID,
			ExternalTicketID: in.ExternalTicketID,
		}
		if err := h.issues.Create(r.Context(), it); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		if note := strings.TrimSpace(in.ImportedNote); note != "" {
			n := &models.Note{IssueID: it.ID, Content: note, Author: "import"}
			if err := h.notes.Create(r.Context(), n); err != nil {
				utils.Error(w, http.StatusInternalServerError, err.Error())
				return
			}
		}

		h.dashboard.Invalidate()
		utils.JSON(w, http.StatusCreated, map[string]any{
			"success": true,
			"issue":   it,
			"id":      it.ID,
		})
	}
}

// PATCH /api/issues/{id}
func (h *IssueHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Title            *string `json:"title"`
		Description      *string `json:"description"`
		ResolutionPlan   *string `json:"resolutionPlan"`
		WorkPerformed    *string `json:"workPerformed"`
		Roadblocks       *string `json:"roadblocks"`
		Priority         *string `json:"priority"`
		Status           *string `json:"status"`
		Archived         *bool   `json:"archived"`
		CategoryID       *string `json:"categoryId"`
		ExternalTicketID *string `json:"externalTicketId"`
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

		it, err := h.issues.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if it == nil {
			utils.Error(w, http.StatusNotFound, "issue not found")
			return
		}

		if in.Title != nil {
			it.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			it.Description = strings.TrimSpace(*in.Description)
		}
		if in.ResolutionPlan != nil {
			it.ResolutionPlan = strings.TrimSpace(*in.ResolutionPlan)
		}
		if in.WorkPerformed != nil {
			it.WorkPerformed = strings.TrimSpace(*in.WorkPerformed)
		}
		if in.Roadblocks != nil {
			it.Roadblocks = strings.TrimSpace(*in.Roadblocks)
		}
		if in.Priority != nil {
			it.Priority = strings.TrimSpace(*in.Priority)
		}
		if in.Status != nil {
			it.Status = strings.TrimSpace(*in.Status)
		}
		if in.Archived != nil {
			it.Archived = *in.Archived
		}
		if in.CategoryID != nil {
			it.CategoryID = nullIfBlank(in.CategoryID)
		}
		if in.ExternalTicketID != nil {
			it.ExternalTicketID = nullIfBlank(in.ExternalTicketID)
		}

		if err := h.issues.Update(r.Context(), it); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		h.dashboard.Invalidate()
		updated, err := h.issues.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if updated == nil {
			utils.Error(w, http.StatusInternalServerError, "issue not found after update")
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// nullIfBlank turns an empty or whitespace id reference into NULL.
func nullIfBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
