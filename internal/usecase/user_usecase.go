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
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrSelfDisable  = errors.New("cannot deactivate your own account")
	ErrUserIsLinked = errors.New("user is linked to a dentist profile")
)

type UserUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	List(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error
}

type userUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	dentistRepo  repository.DentistRepository
	auditService service.AuditService
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	dentistRepo repository.DentistRepository,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		dentistRepo:  dentistRepo,
		auditService: auditService,
	}
}

// Create adds a staff account. Dentists are not created here; the
// dentist endpoint creates the account and the profile together.
func (u *userUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
		Role:     role,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "users_email") {
			return nil, ErrEmailTaken
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionUserCreate, "user", user.ID.String(), entity.JSON{
		"email": user.Email,
		"role":  string(user.Role),
	})

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) List(ctx context.Context, page, limit int) ([]dto.UserResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	users, total, err := u.userRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, 0, err
	}

	return converter.UsersToResponses(users), total, nil
}

func (u *userUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	role := entity.Role(req.Role)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}
	if id == actorID && req.IsActive != nil && !*req.IsActive {
		return nil, ErrSelfDisable
	}

	user.FullName = req.FullName
	user.Role = role
	user.IsActive = req.IsActive

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionUserUpdate, "user", id.String(), nil)

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	if id == actorID {
		return ErrSelfDisable
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	dentist, err := u.dentistRepo.FindByUserID(u.db.WithContext(ctx), id)
	if err != nil {
		return err
	}
	if dentist != nil {
		return ErrUserIsLinked
	}

	if err := u.userRepo.Delete(u.db.WithContext(ctx), id); err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return err
	}

	u.auditService.LogAction(u.db.WithContext(ctx), &actorID, entity.AuditActionUserDelete, "user", id.String(), entity.JSON{
		"email": user.Email,
	})

	return nil
}
