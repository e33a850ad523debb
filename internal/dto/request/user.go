package request

type CreateUserRequest struct {
	CPF           string  `json:"cpf" validate:"required,cpf"`
	Name          string  `json:"name" validate:"required,min=3,max=150"`
	Email         string  `json:"email" validate:"required,email,max=150"`
	Password      string  `json:"password" validate:"required,min=8,max=72"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	Role          string  `json:"role" validate:"required,oneof=ADMIN EMPLOYEE CLIENT"`
	DriverLicense *string `json:"driver_license,omitempty" validate:"omitempty,min=5,max=20"`
	Position      *string `json:"position,omitempty" validate:"omitempty,max=80"`
}

type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=3,max=150"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email,max=150"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	Role          *string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN EMPLOYEE CLIENT"`
	DriverLicense *string `json:"driver_license,omitempty" validate:"omitempty,min=5,max=20"`
	Position      *string `json:"position,omitempty" validate:"omitempty,max=80"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type UserListRequest struct {
	PaginatedRequest
	Role   *string `validate:"omitempty,oneof=ADMIN EMPLOYEE CLIENT"`
	Search *string
}
