package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	return &dto.ServiceResponse{
		ID:           service.ID,
		Name:         service.Name,
		StandardCost: service.StandardCost,
		ListPrice:    service.ListPrice,
		Specialty:    SpecialtyToResponse(service.Specialty),
		CreatedAt:    service.CreatedAt,
		UpdatedAt:    service.UpdatedAt,
	}
}

// ServicesToResponses converts a slice of Service entities
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = *ServiceToResponse(&services[i])
	}
	return responses
}
