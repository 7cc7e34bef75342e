package strays

import "time"

// Status del reporte de animal callejero. Los reportes del portal
// público entran en Pending hasta que staff los aprueba; los de staff
// entran directo en Reported.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusReported Status = "Reported"
	StatusCaptured Status = "Captured"
	StatusResolved Status = "Resolved"
	StatusRejected Status = "Rejected"
)

type Species string

const (
	SpeciesDog Species = "Dog"
	SpeciesCat Species = "Cat"
)

// StrayReport es un avistamiento de animal callejero dentro del barangay.
type StrayReport struct {
	ID         string
	BarangayID string

	ReporterName    string
	ReporterContact string

	Species     Species
	Location    string
	Description string
	PhotoURL    string

	DateReported time.Time
	Status       Status

	IsEarTipped bool // marca TNR (oreja muescada)

	Latitude  *float64
	Longitude *float64
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusReported, StatusCaptured, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// CanTransition valida el workflow:
// Pending -> {Reported, Rejected}; Reported -> Captured -> Resolved.
// Resolved y Rejected son terminales.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusReported || to == StatusRejected
	case StatusReported:
		return to == StatusCaptured
	case StatusCaptured:
		return to == StatusResolved
	}
	return false
}

// Active indica si el reporte cuenta en la lista operativa del staff
// (excluye los pendientes de aprobación y los rechazados).
func (r StrayReport) Active() bool {
	switch r.Status {
	case StatusReported, StatusCaptured, StatusResolved:
		return true
	}
	return false
}
