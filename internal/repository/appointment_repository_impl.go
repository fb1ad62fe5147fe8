package repository

import (
	"errors"
	"fmt"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Preload("Patient").
		Preload("Dentist.User").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// applyFilter translates the domain filter into WHERE clauses. Each nil
// field is skipped, mirroring the optional query parameters of the API.
func applyFilter(db *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	query := db.Model(&entity.Appointment{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DentistID != nil {
		query = query.Where("dentist_id = ?", *filter.DentistID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.StartDate != nil {
		query = query.Where("date_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date_time <= ?", *filter.EndDate)
	}
	return query
}

func (r *appointmentRepository) FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error) {
	var total int64
	if err := applyFilter(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var appointments []entity.Appointment
	err := applyFilter(db, filter).
		Preload("Patient").
		Preload("Dentist.User").
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(fmt.Sprintf("%s %s", filter.SortColumn(), direction)).
		Limit(limit).
		Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

// FindAllInRange returns every appointment matching the filter without
// pagination. Used by the dashboard report, which aggregates in memory.
func (r *appointmentRepository) FindAllInRange(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := applyFilter(db, filter).
		Preload("Dentist.User").
		Preload("LineItems").
		Order("date_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) SaveLineItems(db *gorm.DB, items []entity.AppointmentLineItem) error {
	for i := range items {
		if err := db.Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
