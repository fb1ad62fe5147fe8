package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// DentistToResponse converts a Dentist entity to DentistResponse DTO
func DentistToResponse(dentist *entity.Dentist) *dto.DentistResponse {
	if dentist == nil {
		return nil
	}

	return &dto.DentistResponse{
		ID:             dentist.ID,
		Name:           dentist.DisplayName(),
		Email:          dentist.User.Email,
		LicenseNumber:  dentist.LicenseNumber,
		CommissionRate: dentist.CommissionRate,
		Specialties:    SpecialtiesToResponses(dentist.Specialties),
		CreatedAt:      dentist.CreatedAt,
		UpdatedAt:      dentist.UpdatedAt,
	}
}

// DentistsToResponses converts a slice of Dentist entities
func DentistsToResponses(dentists []entity.Dentist) []dto.DentistResponse {
	responses := make([]dto.DentistResponse, len(dentists))
	for i := range dentists {
		responses[i] = *DentistToResponse(&dentists[i])
	}
	return responses
}
