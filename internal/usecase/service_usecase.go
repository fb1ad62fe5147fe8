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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrServiceInUse     = errors.New("service is referenced by appointments")
	ErrInvalidAmount    = errors.New("invalid monetary amount")
	ErrNegativeAmount   = errors.New("monetary amount must not be negative")
	ErrUnknownSpecialty = errors.New("specialty does not exist")
)

type ServiceUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type serviceUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	serviceRepo   repository.ServiceRepository
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewServiceUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	serviceRepo repository.ServiceRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) ServiceUsecase {
	return &serviceUsecase{
		db:            db,
		log:           log,
		serviceRepo:   serviceRepo,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

// parseAmount converts a request money string into a decimal, rejecting
// negatives. Floats never enter the money path.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount, nil
}

func (u *serviceUsecase) resolveSpecialty(ctx context.Context, specialtyID *uuid.UUID) error {
	if specialtyID == nil {
		return nil
	}
	specialty, err := u.specialtyRepo.FindByID(ctx, *specialtyID)
	if err != nil {
		return err
	}
	if specialty == nil {
		return ErrUnknownSpecialty
	}
	return nil
}

func (u *serviceUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	standardCost, err := parseAmount(req.StandardCost)
	if err != nil {
		return nil, err
	}
	listPrice, err := parseAmount(req.ListPrice)
	if err != nil {
		return nil, err
	}
	if err := u.resolveSpecialty(ctx, req.SpecialtyID); err != nil {
		return nil, err
	}

	svc := &entity.Service{
		Name:         req.Name,
		StandardCost: standardCost,
		ListPrice:    listPrice,
		SpecialtyID:  req.SpecialtyID,
	}

	if err := u.serviceRepo.Create(ctx, svc); err != nil {
		u.log.Warnf("Failed to create service: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionServiceCreate, "service", svc.ID.String(), entity.JSON{
		"name":       svc.Name,
		"list_price": svc.ListPrice.String(),
	})

	return u.GetByID(ctx, svc.ID)
}

func (u *serviceUsecase) List(ctx context.Context, page, limit int) ([]dto.ServiceResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	services, total, err := u.serviceRepo.FindAll(ctx, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list services: %+v", err)
		return nil, 0, err
	}

	return converter.ServicesToResponses(services), total, nil
}

func (u *serviceUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return converter.ServiceToResponse(svc), nil
}

// Update edits the catalog entry. Existing appointments are untouched
// because line items carry their own price snapshots.
func (u *serviceUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	standardCost, err := parseAmount(req.StandardCost)
	if err != nil {
		return nil, err
	}
	listPrice, err := parseAmount(req.ListPrice)
	if err != nil {
		return nil, err
	}
	if err := u.resolveSpecialty(ctx, req.SpecialtyID); err != nil {
		return nil, err
	}

	previousPrice := svc.ListPrice
	svc.Name = req.Name
	svc.StandardCost = standardCost
	svc.ListPrice = listPrice
	svc.SpecialtyID = req.SpecialtyID

	if err := u.serviceRepo.Update(ctx, svc); err != nil {
		u.log.Warnf("Failed to update service %s: %+v", id, err)
		return nil, err
	}

	if !previousPrice.Equal(listPrice) {
		u.auditService.LogChange(u.db.WithContext(ctx), &actorID, entity.AuditActionServicePriceChange, "service", id.String(), previousPrice.String(), listPrice.String())
	} else {
		u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionServiceUpdate, "service", id.String(), nil)
	}

	return u.GetByID(ctx, id)
}

func (u *serviceUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	svc, err := u.serviceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return ErrServiceNotFound
	}

	if err := u.serviceRepo.Delete(ctx, id); err != nil {
		if isForeignKeyError(err, "service") {
			return ErrServiceInUse
		}
		u.log.Warnf("Failed to delete service %s: %+v", id, err)
		return err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionServiceDelete, "service", id.String(), entity.JSON{
		"name": svc.Name,
	})

	return nil
}
