package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/response"
	"dental-clinic-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

var errInvalidStatusFilter = errors.New("invalid status filter")

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// parseDateBound accepts a local datetime or a bare date. Bare dates
// expand to the start or end of that day, end-of-day at 23:59:59.999.
func parseDateBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dto.LocalDateTimeLayout, raw, time.Local); err == nil {
		return &t, nil
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		day = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 999000000, time.Local)
	}
	return &day, nil
}

func parseAppointmentFilter(r *http.Request) (*entity.AppointmentFilter, error) {
	filter := &entity.AppointmentFilter{}
	query := r.URL.Query()

	if raw := query.Get("patient_id"); raw != "" {
		patientID, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filter.PatientID = &patientID
	}
	if raw := query.Get("dentist_id"); raw != "" {
		dentistID, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		filter.DentistID = &dentistID
	}
	if raw := query.Get("status"); raw != "" {
		status := entity.AppointmentStatus(raw)
		if !status.IsValid() {
			return nil, errInvalidStatusFilter
		}
		filter.Status = &status
	}

	startDate, err := parseDateBound(query.Get("start_date"), false)
	if err != nil {
		return nil, err
	}
	filter.StartDate = startDate

	endDate, err := parseDateBound(query.Get("end_date"), true)
	if err != nil {
		return nil, err
	}
	filter.EndDate = endDate

	// sort=dateTime,desc
	if raw := query.Get("sort"); raw != "" {
		parts := strings.SplitN(raw, ",", 2)
		filter.SortField = parts[0]
		if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
			filter.SortDesc = true
		}
	}

	return filter, nil
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	role, ok := middleware.GetUserRoleFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	filter, err := parseAppointmentFilter(r)
	if err != nil {
		response.BadRequest(w, "Invalid filter parameters")
		return
	}
	page, limit := parsePagination(r)

	appointments, total, err := h.appointmentUsecase.List(r.Context(), userID, role, filter, page, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, response.NewMeta(page, limit, total))
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateTime:
			response.BadRequest(w, "Invalid date time format, use YYYY-MM-DDTHH:MM:SS")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrDentistNotFound:
			response.NotFound(w, "Dentist not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "One or more services not found")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), userID, appointmentID, entity.AppointmentStatus(req.Status))
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTransition:
			response.UnprocessableEntity(w, "Appointment status cannot change this way")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) Settle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.BadRequest(w, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.Settle(r.Context(), userID, appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNothingOutstanding:
			response.Conflict(w, "Appointment has no outstanding balance")
		default:
			response.InternalServerError(w, "Failed to settle appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment settled successfully", appointment)
}
