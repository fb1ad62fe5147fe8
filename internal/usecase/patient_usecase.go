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
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientExists    = errors.New("patient with this email already exists")
	ErrInvalidBirthDate = errors.New("invalid birth date format, use YYYY-MM-DD")
)

type PatientUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	List(ctx context.Context, search string, page, limit int) ([]dto.PatientResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	birthDate, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, ErrInvalidBirthDate
	}
	return &birthDate, nil
}

func (u *patientUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	patient := &entity.Patient{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		BirthDate: birthDate,
		Notes:     req.Notes,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "patients_email") {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), entity.JSON{
		"name": patient.Name,
	})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) List(ctx context.Context, search string, page, limit int) ([]dto.PatientResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	patients, total, err := u.patientRepo.FindAll(ctx, search, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	patient.Name = req.Name
	patient.Phone = req.Phone
	patient.Email = req.Email
	patient.BirthDate = birthDate
	patient.Notes = req.Notes

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "patients_email") {
			return nil, ErrPatientExists
		}
		u.log.Warnf("Failed to update patient %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionPatientUpdate, "patient", id.String(), nil)

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete patient %s: %+v", id, err)
		return err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionPatientDelete, "patient", id.String(), entity.JSON{
		"name": patient.Name,
	})

	return nil
}
