package dto

// Request DTOs

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role" validate:"required,oneof=ADMIN RECEPTIONIST DENTIST"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Role     string `json:"role" validate:"required,oneof=ADMIN RECEPTIONIST DENTIST"`
	IsActive *bool  `json:"is_active" validate:"required"`
}
