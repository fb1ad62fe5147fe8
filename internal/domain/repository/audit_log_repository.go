package repository

import (
	"dental-clinic-api/internal/domain/entity"

	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error)
}
