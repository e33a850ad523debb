package request

type RegisterRequest struct {
	CPF           string  `json:"cpf" validate:"required,cpf"`
	Name          string  `json:"name" validate:"required,min=3,max=150"`
	Email         string  `json:"email" validate:"required,email,max=150"`
	Password      string  `json:"password" validate:"required,min=8,max=72"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=10,max=20"`
	DriverLicense *string `json:"driver_license,omitempty" validate:"omitempty,min=5,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
