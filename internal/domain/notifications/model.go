package notifications

import "time"

type Type string

const (
	TypeSuccess Type = "success"
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSystem  Type = "system"
)

func ValidType(t Type) bool {
	switch t {
	case TypeSuccess, TypeInfo, TypeWarning, TypeSystem:
		return true
	default:
		return false
	}
}

// Notification es un aviso del panel del barangay. Solo interesan los
// más recientes: la lista se corta en 20.
type Notification struct {
	ID         string
	BarangayID string

	Title   string
	Message string
	Type    Type

	Timestamp time.Time
	IsRead    bool
}
