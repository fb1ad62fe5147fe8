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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrLicenseTaken         = errors.New("license number already registered")
	ErrInvalidCommission    = errors.New("commission rate must be between 0 and 1")
	ErrUnknownSpecialtyList = errors.New("one or more specialties not found")
	ErrDentistHasHistory    = errors.New("dentist has appointments and cannot be removed")
)

type DentistUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateDentistRequest) (*dto.DentistResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.DentistResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.DentistResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type dentistUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	dentistRepo   repository.DentistRepository
	userRepo      repository.UserRepository
	specialtyRepo repository.SpecialtyRepository
	auditService  service.AuditService
}

func NewDentistUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	dentistRepo repository.DentistRepository,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
	auditService service.AuditService,
) DentistUsecase {
	return &dentistUsecase{
		db:            db,
		log:           log,
		dentistRepo:   dentistRepo,
		userRepo:      userRepo,
		specialtyRepo: specialtyRepo,
		auditService:  auditService,
	}
}

func parseCommissionRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidCommission
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, ErrInvalidCommission
	}
	return rate, nil
}

func (u *dentistUsecase) resolveSpecialties(ctx context.Context, ids []uuid.UUID) ([]entity.Specialty, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	specialties, err := u.specialtyRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(specialties) != len(ids) {
		return nil, ErrUnknownSpecialtyList
	}
	return specialties, nil
}

// Create registers a dentist together with their login account. Both
// rows commit atomically; a dentist without a user row cannot exist.
func (u *dentistUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateDentistRequest) (*dto.DentistResponse, error) {
	commissionRate, err := parseCommissionRate(req.CommissionRate)
	if err != nil {
		return nil, err
	}

	specialties, err := u.resolveSpecialties(ctx, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Role:     entity.RoleDentist,
	}
	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "users_email") {
			return nil, ErrEmailTaken
		}
		u.log.Warnf("Failed to create dentist user: %+v", err)
		return nil, err
	}

	dentist := &entity.Dentist{
		UserID:         user.ID,
		LicenseNumber:  req.LicenseNumber,
		CommissionRate: commissionRate,
		Specialties:    specialties,
	}
	if err := u.dentistRepo.Create(tx, dentist); err != nil {
		if isDuplicateKeyError(err, "dentists_license_number") {
			return nil, ErrLicenseTaken
		}
		u.log.Warnf("Failed to create dentist: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(tx, &actorID, entity.AuditActionDentistCreate, "dentist", dentist.ID.String(), entity.JSON{
		"user_id":        user.ID.String(),
		"license_number": dentist.LicenseNumber,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetByID(ctx, dentist.ID)
}

func (u *dentistUsecase) List(ctx context.Context, page, limit int) ([]dto.DentistResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	dentists, total, err := u.dentistRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list dentists: %+v", err)
		return nil, 0, err
	}

	return converter.DentistsToResponses(dentists), total, nil
}

func (u *dentistUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.DentistResponse, error) {
	dentist, err := u.dentistRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}
	return converter.DentistToResponse(dentist), nil
}

func (u *dentistUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateDentistRequest) (*dto.DentistResponse, error) {
	dentist, err := u.dentistRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if dentist == nil {
		return nil, ErrDentistNotFound
	}

	commissionRate, err := parseCommissionRate(req.CommissionRate)
	if err != nil {
		return nil, err
	}

	specialties, err := u.resolveSpecialties(ctx, req.SpecialtyIDs)
	if err != nil {
		return nil, err
	}

	dentist.LicenseNumber = req.LicenseNumber
	dentist.CommissionRate = commissionRate
	dentist.User.FullName = req.FullName

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.userRepo.Update(tx, &dentist.User); err != nil {
		u.log.Warnf("Failed to update dentist user %s: %+v", dentist.UserID, err)
		return nil, err
	}
	if err := u.dentistRepo.Update(tx, dentist); err != nil {
		if isDuplicateKeyError(err, "dentists_license_number") {
			return nil, ErrLicenseTaken
		}
		u.log.Warnf("Failed to update dentist %s: %+v", id, err)
		return nil, err
	}
	if err := u.dentistRepo.ReplaceSpecialties(tx, dentist, specialties); err != nil {
		u.log.Warnf("Failed to replace dentist %s specialties: %+v", id, err)
		return nil, err
	}

	u.auditService.LogAction(tx, &actorID, entity.AuditActionDentistUpdate, "dentist", id.String(), nil)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return u.GetByID(ctx, id)
}

// Delete removes the dentist profile and deactivates the login account
// in one transaction. Dentists with appointment history are kept.
func (u *dentistUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	dentist, err := u.dentistRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if dentist == nil {
		return ErrDentistNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.dentistRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "dentist") {
			return ErrDentistHasHistory
		}
		u.log.Warnf("Failed to delete dentist %s: %+v", id, err)
		return err
	}

	inactive := false
	dentist.User.IsActive = &inactive
	if err := u.userRepo.Update(tx, &dentist.User); err != nil {
		u.log.Warnf("Failed to deactivate dentist user %s: %+v", dentist.UserID, err)
		return err
	}

	u.auditService.LogAction(tx, &actorID, entity.AuditActionDentistDelete, "dentist", id.String(), entity.JSON{
		"license_number": dentist.LicenseNumber,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
