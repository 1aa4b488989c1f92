package handlers

import (
	"net/http"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/service"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

type DashboardHTTP struct {
	svc *service.DashboardService
}

func NewDashboardHTTP(svc *service.DashboardService) *DashboardHTTP {
	return &DashboardHTTP{svc: svc}
}

// GET /api/dashboard/summary
func (h *DashboardHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := h.svc.Summary(r.Context())
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		utils.JSON(w, http.StatusOK, sum)
	}
}
