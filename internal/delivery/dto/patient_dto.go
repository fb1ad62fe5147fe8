package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Email     string `json:"email" validate:"omitempty,email"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

type UpdatePatientRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Email     string `json:"email" validate:"omitempty,email"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Notes     string `json:"notes"`
}

// Response DTOs

type PatientResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
