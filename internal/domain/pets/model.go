package pets

import "time"

// Species define las especies soportadas por el registro.
// @Enum Dog, Cat
type Species string

const (
	SpeciesDog Species = "Dog"
	SpeciesCat Species = "Cat"
)

// Sex define el sexo de la mascota.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Status del registro de la mascota.
// @Enum Alive, Deceased, Lost, Transferred
type Status string

const (
	StatusAlive       Status = "Alive"
	StatusDeceased    Status = "Deceased"
	StatusLost        Status = "Lost"
	StatusTransferred Status = "Transferred"
)

// Pet representa una mascota registrada en un barangay.
type Pet struct {
	ID         string
	BarangayID string
	OwnerID    string

	Name    string
	Species Species
	Breed   string
	Color   string
	Sex     Sex

	BirthDate        *time.Time
	IsSpayedNeutered bool
	PhotoURL         string

	RegistrationDate time.Time
	Status           Status
}

func ValidSpecies(s Species) bool {
	return s == SpeciesDog || s == SpeciesCat
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusAlive, StatusDeceased, StatusLost, StatusTransferred:
		return true
	}
	return false
}
