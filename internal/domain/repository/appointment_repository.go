package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error)
	FindAllInRange(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	Save(db *gorm.DB, appointment *entity.Appointment) error
	SaveLineItems(db *gorm.DB, items []entity.AppointmentLineItem) error
}
