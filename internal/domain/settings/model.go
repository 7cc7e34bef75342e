package settings

// SystemSettings es la fila de configuración del barangay: una por
// tenant. El community code es el secreto compartido del portal
// público y debe ser único entre barangays.
type SystemSettings struct {
	BarangayID string

	BarangayName string
	Municipality string
	Province     string

	LogoURL string

	ReminderDays     int
	SupportEmail     string
	EmergencyHotline string

	CommunityCode string

	LicenseUsed string
}

// Placeholder devuelve la configuración que ve un barangay que aún no
// terminó el registro. Nunca se persiste.
func Placeholder(barangayID string) SystemSettings {
	return SystemSettings{
		BarangayID:    barangayID,
		BarangayName:  "Unregistered Barangay",
		ReminderDays:  30,
		CommunityCode: "SETUP-REQUIRED",
	}
}
