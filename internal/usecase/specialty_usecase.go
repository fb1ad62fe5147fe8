package usecase

import (
	"context"
	"errors"

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
	ErrSpecialtyNotFound = errors.New("specialty not found")
	ErrSpecialtyExists   = errors.New("specialty with this name already exists")
	ErrSpecialtyInUse    = errors.New("specialty is referenced by services or dentists")
)

type SpecialtyUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.SpecialtyResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type specialtyUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:            db,
		log:           log,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func (u *specialtyUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.specialtyRepo.Create(ctx, specialty); err != nil {
		if isDuplicateKeyError(err, "specialties_name") {
			return nil, ErrSpecialtyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionSpecialtyCreate, "specialty", specialty.ID.String(), entity.JSON{
		"name": specialty.Name,
	})

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) List(ctx context.Context, page, limit int) ([]dto.SpecialtyResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	specialties, total, err := u.specialtyRepo.FindAll(ctx, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, 0, err
	}

	return converter.SpecialtiesToResponses(specialties), total, nil
}

func (u *specialtyUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	specialty.Name = req.Name
	specialty.Description = req.Description

	if err := u.specialtyRepo.Update(ctx, specialty); err != nil {
		if isDuplicateKeyError(err, "specialties_name") {
			return nil, ErrSpecialtyExists
		}
		u.log.Warnf("Failed to update specialty %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionSpecialtyUpdate, "specialty", id.String(), nil)

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	specialty, err := u.specialtyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if specialty == nil {
		return ErrSpecialtyNotFound
	}

	if err := u.specialtyRepo.Delete(ctx, id); err != nil {
		if isForeignKeyError(err, "specialty") {
			return ErrSpecialtyInUse
		}
		u.log.Warnf("Failed to delete specialty %s: %+v", id, err)
		return err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionSpecialtyDelete, "specialty", id.String(), entity.JSON{
		"name": specialty.Name,
	})

	return nil
}
