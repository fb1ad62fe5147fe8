package entity

// Role determines what a user is allowed to do. Stored as a plain string
// enum rather than a lookup table since the set is fixed.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleDentist      Role = "DENTIST"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReceptionist, RoleDentist:
		return true
	}
	return false
}

// CanRegisterPayments reports whether the role may settle appointments.
// Dentists can complete appointments but never touch billing.
func (r Role) CanRegisterPayments() bool {
	return r == RoleAdmin || r == RoleReceptionist
}

// CanManageAppointments reports whether the role may create appointments.
func (r Role) CanManageAppointments() bool {
	return r == RoleAdmin || r == RoleReceptionist
}
