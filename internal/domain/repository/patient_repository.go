package repository

import (
	"context"

	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindAll(ctx context.Context, search string, limit, offset int) ([]entity.Patient, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}
