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

type DentistHandler struct {
	dentistUsecase usecase.DentistUsecase
	validator      *validator.CustomValidator
}

func NewDentistHandler(dentistUsecase usecase.DentistUsecase, validator *validator.CustomValidator) *DentistHandler {
	return &DentistHandler{
		dentistUsecase: dentistUsecase,
		validator:      validator,
	}
}

func (h *DentistHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateDentistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dentist, err := h.dentistUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailTaken:
			response.Conflict(w, "Email already registered")
		case usecase.ErrLicenseTaken:
			response.Conflict(w, "License number already registered")
		case usecase.ErrInvalidCommission:
			response.BadRequest(w, "Commission rate must be between 0 and 1")
		case usecase.ErrUnknownSpecialtyList:
			response.NotFound(w, "One or more specialties not found")
		default:
			response.InternalServerError(w, "Failed to create dentist")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Dentist created successfully", dentist)
}

func (h *DentistHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	dentists, total, err := h.dentistUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list dentists")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Dentists retrieved successfully", dentists, response.NewMeta(page, limit, total))
}

func (h *DentistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	dentistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid dentist ID")
		return
	}

	dentist, err := h.dentistUsecase.GetByID(r.Context(), dentistID)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		default:
			response.InternalServerError(w, "Failed to get dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist retrieved successfully", dentist)
}

func (h *DentistHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	dentistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid dentist ID")
		return
	}

	var req dto.UpdateDentistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	dentist, err := h.dentistUsecase.Update(r.Context(), userID, dentistID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		case usecase.ErrLicenseTaken:
			response.Conflict(w, "License number already registered")
		case usecase.ErrInvalidCommission:
			response.BadRequest(w, "Commission rate must be between 0 and 1")
		case usecase.ErrUnknownSpecialtyList:
			response.NotFound(w, "One or more specialties not found")
		default:
			response.InternalServerError(w, "Failed to update dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist updated successfully", dentist)
}

func (h *DentistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	dentistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid dentist ID")
		return
	}

	if err := h.dentistUsecase.Delete(r.Context(), userID, dentistID); err != nil {
		switch err {
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		case usecase.ErrDentistHasHistory:
			response.Conflict(w, "Dentist has appointments and cannot be removed")
		default:
			response.InternalServerError(w, "Failed to delete dentist")
		}
		return
	}

	response.Success(w, http.StatusOK, "Dentist deleted successfully", nil)
}
