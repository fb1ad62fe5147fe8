package service

import (
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records who changed what. Failures are logged but never
// fail the business operation that triggered them.
type AuditService interface {
	LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON)
	LogChange(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{})
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, metadata entity.JSON) {
	if metadata == nil {
		metadata = entity.JSON{}
	}
	metadata["entity"] = entityName
	metadata["entity_id"] = entityID

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s: %+v", action, err)
	}
}

// LogChange records an update with old and new values side by side.
func (s *auditService) LogChange(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.LogAction(tx, userID, action, entityName, entityID, entity.JSON{
		"old_value": oldValue,
		"new_value": newValue,
	})
}
