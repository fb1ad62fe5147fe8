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

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyExists:
			response.Conflict(w, "Specialty with this name already exists")
		default:
			response.InternalServerError(w, "Failed to create specialty")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	specialties, total, err := h.specialtyUsecase.List(r.Context(), page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list specialties")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Specialties retrieved successfully", specialties, response.NewMeta(page, limit, total))
}

func (h *SpecialtyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	specialtyID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	specialty, err := h.specialtyUsecase.GetByID(r.Context(), specialtyID)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to get specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *SpecialtyHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	specialtyID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	var req dto.UpdateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Update(r.Context(), userID, specialtyID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyExists:
			response.Conflict(w, "Specialty with this name already exists")
		default:
			response.InternalServerError(w, "Failed to update specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *SpecialtyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	specialtyID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid specialty ID")
		return
	}

	if err := h.specialtyUsecase.Delete(r.Context(), userID, specialtyID); err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyInUse:
			response.Conflict(w, "Specialty is referenced by services or dentists")
		default:
			response.InternalServerError(w, "Failed to delete specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}
