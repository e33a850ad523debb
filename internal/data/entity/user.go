package entity

type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"
	RoleEmployee UserRole = "EMPLOYEE"
	RoleClient   UserRole = "CLIENT"
)

// IsStaff reports whether the role may act on behalf of clients.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	CPF           string   `db:"cpf"`
	Name          string   `db:"name"`
	Email         string   `db:"email"`
	PasswordHash  string   `db:"password_hash"`
	Phone         *string  `db:"phone"`
	Role          UserRole `db:"role"`
	DriverLicense *string  `db:"driver_license"` // clients only
	Position      *string  `db:"position"`       // employees only
	IsActive      bool     `db:"is_active"`
	Timestamps
}

// UserFilter narrows user listings; nil fields are ignored.
type UserFilter struct {
	Role   *UserRole
	Search *string // name or email, case-insensitive
}
