package handler

import (
	"net/http"

	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	logs, total, err := h.auditLogUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs, response.NewMeta(page, limit, total))
}
