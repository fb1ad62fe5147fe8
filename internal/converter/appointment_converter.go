package converter

import (
	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its response DTO.
// Display names are resolved here once so consumers never dig through
// nested relations.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	items := make([]dto.AppointmentLineItemInfo, len(appointment.LineItems))
	for i, li := range appointment.LineItems {
		items[i] = dto.AppointmentLineItemInfo{
			ID:           li.ID,
			ServiceID:    li.ServiceID,
			ServiceName:  li.ServiceName,
			Quantity:     li.Quantity,
			PriceApplied: li.PriceApplied,
			Paid:         li.Paid,
			PaymentDate:  li.PaymentDate,
		}
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		DateTime:    appointment.DateTime,
		Status:      string(appointment.Status),
		TotalAmount: appointment.TotalAmount,
		Patient: dto.AppointmentPatientInfo{
			ID:    appointment.PatientID,
			Name:  appointment.Patient.Name,
			Phone: appointment.Patient.Phone,
			Email: appointment.Patient.Email,
		},
		Dentist: dto.AppointmentDentistInfo{
			ID:            appointment.DentistID,
			Name:          appointment.Dentist.DisplayName(),
			LicenseNumber: appointment.Dentist.LicenseNumber,
		},
		LineItems: items,
		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
