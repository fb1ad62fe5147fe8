package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDentistRequest struct {
	Email          string      `json:"email" validate:"required,email"`
	Password       string      `json:"password" validate:"required,min=8"`
	FullName       string      `json:"full_name" validate:"required,max=255"`
	LicenseNumber  string      `json:"license_number" validate:"required,max=50"`
	CommissionRate string      `json:"commission_rate" validate:"omitempty"`
	SpecialtyIDs   []uuid.UUID `json:"specialty_ids"`
}

type UpdateDentistRequest struct {
	FullName       string      `json:"full_name" validate:"required,max=255"`
	LicenseNumber  string      `json:"license_number" validate:"required,max=50"`
	CommissionRate string      `json:"commission_rate" validate:"omitempty"`
	SpecialtyIDs   []uuid.UUID `json:"specialty_ids"`
}

// Response DTOs

type DentistResponse struct {
	ID             uuid.UUID           `json:"id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	LicenseNumber  string              `json:"license_number"`
	CommissionRate decimal.Decimal     `json:"commission_rate"`
	Specialties    []SpecialtyResponse `json:"specialties,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}
