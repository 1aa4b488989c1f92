package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type CategoryHTTP struct {
	repo repository.CategoryRepository
}

func NewCategoryHTTP(repo repository.CategoryRepository) *CategoryHTTP {
	return &CategoryHTTP{repo: repo}
}

// GET /api/categories
func (h *CategoryHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := h.repo.List(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if cats == nil {
			cats = []models.Category{}
		}
		utils.JSON(w, http.StatusOK, cats)
	}
}

// POST /api/categories
func (h *CategoryHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Name = strings.TrimSpace(in.Name)
		if in.Name == "" {
			utils.Error(w, http.StatusBadRequest, "name is required")
			return
		}
		c := &models.Category{Name: in.Name}
		if err := h.repo.Create(r.Context(), c); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusCreated, c)
	}
}
