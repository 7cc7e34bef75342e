package vaccinations

import "time"

// VaccineType clasifica el producto. Los "Core" son obligatorios por
// RA 9482 (anti-rabia) o práctica veterinaria estándar.
type VaccineType string

const (
	TypeCoreAntiRabies VaccineType = "Core - Anti-Rabies"
	TypeCoreMulti5     VaccineType = "Core - Multi (5-in-1)"
	TypeCoreMulti6     VaccineType = "Core - Multi (6-in-1)"
	TypeNonCore        VaccineType = "Non-Core (Optional)"
	TypeDeworming      VaccineType = "Deworming"
	TypeExternalParas  VaccineType = "External Parasite"
)

// Vaccination es un registro append-only: no hay update ni delete
// expuestos (solo la cascada de borrado de la mascota los limpia).
type Vaccination struct {
	ID         string
	BarangayID string
	PetID      string

	VaccineName  string
	VaccineType  VaccineType
	Manufacturer string
	LotNumber    string // requerido legalmente

	DateGiven      time.Time
	ExpirationDate *time.Time // del frasco (batch expiry)
	NextDueDate    *time.Time // cuándo vence la inmunidad

	WeightKg    *float64
	Temperature *float64 // Celsius

	Veterinarian string
	VetLicenseNo string
	ClinicName   string

	Notes string
}

// Protected indica si la inmunidad sigue vigente a la fecha dada. Es un
// cómputo de lectura: no hay estado persistido que cambie al vencer.
func (v Vaccination) Protected(now time.Time) bool {
	return v.NextDueDate != nil && v.NextDueDate.After(now)
}

func ValidType(t VaccineType) bool {
	switch t {
	case TypeCoreAntiRabies, TypeCoreMulti5, TypeCoreMulti6, TypeNonCore, TypeDeworming, TypeExternalParas:
		return true
	}
	return false
}
