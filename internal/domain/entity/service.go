package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service is a billable dental service from the clinic price list.
// ListPrice is what the patient pays, StandardCost what it costs the
// clinic; both are snapshotted into appointment line items at booking.
type Service struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	StandardCost decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"standard_cost"`
	ListPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"list_price"`
	SpecialtyID  *uuid.UUID      `gorm:"type:uuid;index" json:"specialty_id,omitempty"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Specialty *Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Service) TableName() string {
	return "services"
}
