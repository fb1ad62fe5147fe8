package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	FindAll(ctx context.Context, limit, offset int) ([]entity.Service, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Service, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}
