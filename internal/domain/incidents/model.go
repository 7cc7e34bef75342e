package incidents

import "time"

// Status del incidente de mordedura. Observation es el único estado
// no-terminal: de ahí se sale a Cleared, Deceased o Escaped y no se
// vuelve.
type Status string

const (
	StatusObservation Status = "Observation"
	StatusCleared     Status = "Cleared"
	StatusDeceased    Status = "Deceased"
	StatusEscaped     Status = "Escaped"
)

// Incident registra una mordedura. PetID nil significa animal callejero
// o no identificado.
type Incident struct {
	ID         string
	BarangayID string
	PetID      *string

	VictimName    string
	VictimContact string

	Date        time.Time
	Location    string
	Description string

	BodyPartBitten string
	IsProvoked     bool

	Status               Status
	ObservationStartDate time.Time
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusObservation, StatusCleared, StatusDeceased, StatusEscaped:
		return true
	}
	return false
}

// CanTransition valida el avance de estado: solo Observation puede
// moverse, y nunca de vuelta a Observation.
func CanTransition(from, to Status) bool {
	if from != StatusObservation {
		return false
	}
	switch to {
	case StatusCleared, StatusDeceased, StatusEscaped:
		return true
	}
	return false
}
