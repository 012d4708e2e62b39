package domain

// StaffRole роль сотрудника
type StaffRole string

const (
	RoleStaff StaffRole = "staff"
	RoleAdmin StaffRole = "admin"
	RoleRoot  StaffRole = "root"
)

// Staff represents a person who can be booked
type Staff struct {
	ID          int64
	DisplayName string
	Role        StaffRole
	Active      bool
}

// IsBookable returns true if customers can book this staff member
func (s *Staff) IsBookable() bool {
	return s.Active && s.Role.IsValid()
}

// CanSeeAllBookings returns true for administrators
func (s *Staff) CanSeeAllBookings() bool {
	return s.Role == RoleAdmin || s.Role == RoleRoot
}

// IsValid проверяет, что роль известна
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleStaff, RoleAdmin, RoleRoot:
		return true
	default:
		return false
	}
}
