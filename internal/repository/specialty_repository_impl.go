package repository

import (
	"context"
	"errors"

	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type specialtyRepository struct {
	db *gorm.DB
}

func NewSpecialtyRepository(db *gorm.DB) domainRepo.SpecialtyRepository {
	return &specialtyRepository{db: db}
}

func (r *specialtyRepository) Create(ctx context.Context, specialty *entity.Specialty) error {
	return r.db.WithContext(ctx).Create(specialty).Error
}

func (r *specialtyRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.Specialty, int64, error) {
	var specialties []entity.Specialty
	var total int64

	if err := r.db.WithContext(ctx).Model(&entity.Specialty{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Order("name ASC").Find(&specialties).Error; err != nil {
		return nil, 0, err
	}

	return specialties, total, nil
}

func (r *specialtyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Specialty, error) {
	var specialty entity.Specialty
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&specialty).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &specialty, nil
}

func (r *specialtyRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&specialties).Error
	if err != nil {
		return nil, err
	}
	return specialties, nil
}

func (r *specialtyRepository) Update(ctx context.Context, specialty *entity.Specialty) error {
	return r.db.WithContext(ctx).Save(specialty).Error
}

func (r *specialtyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Specialty{}).Error
}
