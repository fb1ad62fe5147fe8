package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// SpecialtyToResponse converts a Specialty entity to SpecialtyResponse DTO
func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		CreatedAt:   specialty.CreatedAt,
		UpdatedAt:   specialty.UpdatedAt,
	}
}

// SpecialtiesToResponses converts a slice of Specialty entities
func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *SpecialtyToResponse(&specialties[i])
	}
	return responses
}
