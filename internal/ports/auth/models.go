package auth

// Role dentro de un barangay.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
	RoleGuest Role = "Guest" // portal público, solo lectura
)

// Claims representa la sesión resuelta: quién es y a qué barangay
// pertenece. Para sesiones del portal público UserID queda vacío y
// Role es Guest.
type Claims struct {
	UserID     string
	BarangayID string
	Role       Role
}

// CanWrite indica si la sesión puede mutar datos del barangay.
func (c Claims) CanWrite() bool {
	return c.Role == RoleAdmin || c.Role == RoleStaff
}
