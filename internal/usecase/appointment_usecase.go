package usecase

import (
	"context"
	"errors"
	"time"

	"dental-clinic-api/internal/converter"
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDentistNotFound     = errors.New("dentist not found")
	ErrServiceNotFound     = errors.New("one or more services not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNothingOutstanding  = errors.New("appointment has no outstanding balance")
	ErrInvalidDateTime     = errors.New("invalid date time format, use YYYY-MM-DDTHH:MM:SS")
)

type AppointmentUsecase interface {
	List(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, filter *entity.AppointmentFilter, page, limit int) ([]dto.AppointmentResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, target entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	Settle(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	dentistRepo     repository.DentistRepository
	serviceRepo     repository.ServiceRepository
	auditService    service.AuditService
	reportCache     *service.ReportCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	dentistRepo repository.DentistRepository,
	serviceRepo repository.ServiceRepository,
	auditService service.AuditService,
	reportCache *service.ReportCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		dentistRepo:     dentistRepo,
		serviceRepo:     serviceRepo,
		auditService:    auditService,
		reportCache:     reportCache,
	}
}

// List returns a page of appointments for the filter. DENTIST-role
// callers are always scoped to their own appointments regardless of the
// dentist filter they sent.
func (u *appointmentUsecase) List(ctx context.Context, actorID uuid.UUID, actorRole entity.Role, filter *entity.AppointmentFilter, page, limit int) ([]dto.AppointmentResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	if actorRole == entity.RoleDentist {
		dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), actorID)
		if err != nil {
			u.log.Warnf("Failed to resolve dentist for user %s: %+v", actorID, err)
			return nil, 0, err
		}
		if dentist == nil {
			return nil, 0, ErrDentistNotFound
		}
		filter.DentistID = &dentist.ID
	}

	appointments, total, err := u.appointmentRepo.FindWithFilter(u.db.WithContext(ctx), filter, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// Create books an appointment with service snapshots. The service name
// and unit price are copied into the line items so later price-list
// edits never touch an existing bill; the total is fixed here as well.
func (u *appointmentUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := time.ParseInLocation(dto.LocalDateTimeLayout, req.DateTime, time.Local)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	dentist, err := u.dentistRepo.FindByID(u.db.WithContext(ctx), req.DentistID)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	serviceIDs := make([]uuid.UUID, len(req.Services))
	for i, s := range req.Services {
		serviceIDs[i] = s.ServiceID
	}
	services, err := u.serviceRepo.FindByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}
	servicesByID := make(map[uuid.UUID]entity.Service, len(services))
	for _, s := range services {
		servicesByID[s.ID] = s
	}

	total := decimal.Zero
	items := make([]entity.AppointmentLineItem, 0, len(req.Services))
	for i, reqService := range req.Services {
		svc, ok := servicesByID[reqService.ServiceID]
		if !ok {
			return nil, ErrServiceNotFound
		}

		quantity := reqService.Quantity
		if quantity < 1 {
			quantity = 1
		}

		items = append(items, entity.AppointmentLineItem{
			ServiceID:    svc.ID,
			ServiceName:  svc.Name,
			Quantity:     quantity,
			PriceApplied: svc.ListPrice,
			StandardCost: svc.StandardCost,
			Paid:         false,
			Position:     i,
		})
		total = total.Add(svc.ListPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}

	appointment := &entity.Appointment{
		DateTime:    dateTime,
		Status:      entity.AppointmentStatusPending,
		TotalAmount: total,
		PatientID:   patient.ID,
		DentistID:   dentist.ID,
		LineItems:   items,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), entity.JSON{
		"patient_id":   patient.ID.String(),
		"dentist_id":   dentist.ID.String(),
		"total_amount": total.String(),
		"line_items":   len(items),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.reportCache.Invalidate(ctx, appointment.DateTime.Year())
	u.log.Infof("Appointment created: id=%s, patient=%s, dentist=%s, total=%s",
		appointment.ID, patient.ID, dentist.ID, total)

	return u.GetByID(ctx, appointment.ID)
}

// UpdateStatus applies a lifecycle transition. Only PENDING appointments
// move, and only to COMPLETED or NO_SHOW; anything else is rejected
// without touching the aggregate.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorID uuid.UUID, id uuid.UUID, target entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	previous := appointment.Status
	appointment.Status = target
	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
		return nil, err
	}

	u.auditService.LogChange(tx, &actorID, entity.AuditActionAppointmentStatus, "appointment", id.String(), string(previous), string(target))

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.reportCache.Invalidate(ctx, appointment.DateTime.Year())
	u.log.Infof("Appointment %s status: %s -> %s", id, previous, target)

	return u.GetByID(ctx, id)
}

// Settle marks every line item paid and completes the appointment.
// Settlement is all-or-nothing: partial payment is not supported even
// though payment state is tracked per line item.
func (u *appointmentUsecase) Settle(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.HasOutstandingBalance() {
		return nil, ErrNothingOutstanding
	}

	pending := appointment.PendingTotal()
	appointment.SettleAll(time.Now())
	if err := u.appointmentRepo.SaveLineItems(tx, appointment.LineItems); err != nil {
		u.log.Warnf("Failed to settle line items for appointment %s: %+v", id, err)
		return nil, err
	}

	appointment.Status = entity.AppointmentStatusCompleted
	if err := u.appointmentRepo.Save(tx, appointment); err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogAction(tx, &actorID, entity.AuditActionAppointmentSettle, "appointment", id.String(), entity.JSON{
		"amount_settled": pending.String(),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.reportCache.Invalidate(ctx, appointment.DateTime.Year())
	u.log.Infof("Appointment %s settled: %s", id, pending)

	return u.GetByID(ctx, id)
}
