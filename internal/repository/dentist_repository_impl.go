package repository

import (
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type dentistRepository struct{}

func NewDentistRepository() domainRepo.DentistRepository {
	return &dentistRepository{}
}

func (r *dentistRepository) Create(db *gorm.DB, dentist *entity.Dentist) error {
	return db.Create(dentist).Error
}

func (r *dentistRepository) FindAll(db *gorm.DB, limit, offset int) ([]entity.Dentist, int64, error) {
	var dentists []entity.Dentist
	var total int64

	if err := db.Model(&entity.Dentist{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.
		Preload("User").
		Preload("Specialties").
		Limit(limit).
		Offset(offset).
		Order("created_at ASC").
		Find(&dentists).Error
	if err != nil {
		return nil, 0, err
	}

	return dentists, total, nil
}

func (r *dentistRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Dentist, error) {
	var dentist entity.Dentist
	err := db.
		Preload("User").
		Preload("Specialties").
		Where("id = ?", id).
		First(&dentist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dentist, nil
}

func (r *dentistRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Dentist, error) {
	var dentist entity.Dentist
	err := db.
		Preload("User").
		Where("user_id = ?", userID).
		First(&dentist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dentist, nil
}

func (r *dentistRepository) Update(db *gorm.DB, dentist *entity.Dentist) error {
	return db.Save(dentist).Error
}

func (r *dentistRepository) ReplaceSpecialties(db *gorm.DB, dentist *entity.Dentist, specialties []entity.Specialty) error {
	return db.Model(dentist).Association("Specialties").Replace(specialties)
}

func (r *dentistRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Dentist{}).Error
}
