package handler

import (
	"encoding/json"
	"net/http"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ServiceHandler struct {
	serviceUsecase usecase.ServiceUsecase
	validator      *validator.CustomValidator
}

func NewServiceHandler(serviceUsecase usecase.ServiceUsecase, validator *validator.CustomValidator) *ServiceHandler {
	return &ServiceHandler{
		serviceUsecase: serviceUsecase,
		validator:      validator,
	}
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	service, err := h.serviceUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidAmount, usecase.ErrNegativeAmount:
			response.BadRequest(w, err.Error())
		case usecase.ErrUnknownSpecialty:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to create service")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Service created successfully", service)
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	services, total, err := h.serviceUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list services")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Services retrieved successfully", services, response.NewMeta(page, limit, total))
}

func (h *ServiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	service, err := h.serviceUsecase.GetByID(r.Context(), serviceID)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to get service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service retrieved successfully", service)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	serviceID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	var req dto.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	service, err := h.serviceUsecase.Update(r.Context(), userID, serviceID, &req)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrInvalidAmount, usecase.ErrNegativeAmount:
			response.BadRequest(w, err.Error())
		case usecase.ErrUnknownSpecialty:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to update service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service updated successfully", service)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	serviceID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid service ID")
		return
	}

	if err := h.serviceUsecase.Delete(r.Context(), userID, serviceID); err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrServiceInUse:
			response.Conflict(w, "Service is referenced by appointments")
		default:
			response.InternalServerError(w, "Failed to delete service")
		}
		return
	}

	response.Success(w, http.StatusOK, "Service deleted successfully", nil)
}
