package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DentistRepository interface {
	Create(db *gorm.DB, dentist *entity.Dentist) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.Dentist, int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dentist, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Dentist, error)
	Update(db *gorm.DB, dentist *entity.Dentist) error
	ReplaceSpecialties(db *gorm.DB, dentist *entity.Dentist, specialties []entity.Specialty) error
	Delete(db *gorm.DB, id uuid.UUID) error
}
