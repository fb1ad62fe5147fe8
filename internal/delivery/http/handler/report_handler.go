package handler

import (
	"net/http"
	"strconv"
	"time"

	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// DashboardStats serves the dashboard for a year, defaulting to the
// current one.
func (h *ReportHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			response.BadRequest(w, "Invalid year")
			return
		}
		year = parsed
	}

	stats, err := h.reportUsecase.DashboardStats(r.Context(), year)
	if err != nil {
		response.InternalServerError(w, "Failed to compute dashboard stats")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}
