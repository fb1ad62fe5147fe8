package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateServiceRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	StandardCost string     `json:"standard_cost" validate:"required"`
	ListPrice    string     `json:"list_price" validate:"required"`
	SpecialtyID  *uuid.UUID `json:"specialty_id"`
}

type UpdateServiceRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	StandardCost string     `json:"standard_cost" validate:"required"`
	ListPrice    string     `json:"list_price" validate:"required"`
	SpecialtyID  *uuid.UUID `json:"specialty_id"`
}

// Response DTOs

type ServiceResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	StandardCost decimal.Decimal    `json:"standard_cost"`
	ListPrice    decimal.Decimal    `json:"list_price"`
	Specialty    *SpecialtyResponse `json:"specialty,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
