package setup

import "time"

// LocationDetails es el descriptor PSGC del barangay que se está
// registrando.
type LocationDetails struct {
	Region   string
	Province string
	City     string
	Barangay string
}

// VerificationSession es el registro efímero del paso 1: guarda el par
// de códigos y la ubicación hasta que alguien verifica o expira.
type VerificationSession struct {
	ID         string
	Location   LocationDetails
	PublicCode string
	SecretCode string
	Verified   bool
	CreatedAt  time.Time
	ExpiresAt  time.Time
}

// AdminToken es el código de un solo uso del paso 3.
type AdminToken struct {
	ID        string
	Token     string
	Used      bool
	CreatedAt time.Time
	ExpiresAt time.Time
}
