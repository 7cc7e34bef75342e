package vaccinations

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/bus"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTenant     = errors.New("no barangay context")
)

type Service struct {
	repo Repository
	bus  *bus.Bus
	now  func() time.Time
}

func NewService(repo Repository, b *bus.Bus) *Service {
	return &Service{
		repo: repo,
		bus:  b,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID        string
	VaccineName  string
	VaccineType  VaccineType
	Manufacturer string
	LotNumber    string

	DateGiven      time.Time
	ExpirationDate *time.Time
	NextDueDate    *time.Time

	WeightKg    *float64
	Temperature *float64

	Veterinarian string
	VetLicenseNo string
	ClinicName   string
	Notes        string
}

func (s *Service) Create(ctx context.Context, barangayID string, in CreateInput) (Vaccination, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Vaccination{}, ErrNoTenant
	}
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.VaccineName) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	// lote requerido: sin lote el registro no tiene validez legal
	if strings.TrimSpace(in.LotNumber) == "" {
		return Vaccination{}, ErrInvalidInput
	}
	if !ValidType(in.VaccineType) {
		return Vaccination{}, ErrInvalidInput
	}
	if in.DateGiven.IsZero() {
		return Vaccination{}, ErrInvalidInput
	}

	v := Vaccination{
		ID:             uuid.NewString(),
		BarangayID:     barangayID,
		PetID:          strings.TrimSpace(in.PetID),
		VaccineName:    strings.TrimSpace(in.VaccineName),
		VaccineType:    in.VaccineType,
		Manufacturer:   strings.TrimSpace(in.Manufacturer),
		LotNumber:      strings.TrimSpace(in.LotNumber),
		DateGiven:      in.DateGiven,
		ExpirationDate: in.ExpirationDate,
		NextDueDate:    in.NextDueDate,
		WeightKg:       in.WeightKg,
		Temperature:    in.Temperature,
		Veterinarian:   strings.TrimSpace(in.Veterinarian),
		VetLicenseNo:   strings.TrimSpace(in.VetLicenseNo),
		ClinicName:     strings.TrimSpace(in.ClinicName),
		Notes:          strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}

	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindVaccinations, BarangayID: barangayID})
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]Vaccination, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Vaccination{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

func (s *Service) ListByPet(ctx context.Context, barangayID, petID string) ([]Vaccination, error) {
	if strings.TrimSpace(barangayID) == "" || strings.TrimSpace(petID) == "" {
		return []Vaccination{}, nil
	}
	return s.repo.ListByPet(ctx, barangayID, petID)
}

// PetProtected clasifica a la mascota como protegida si alguna vacuna
// core tiene la inmunidad vigente. Se computa a la fecha, no se persiste.
func (s *Service) PetProtected(ctx context.Context, barangayID, petID string) (bool, error) {
	items, err := s.ListByPet(ctx, barangayID, petID)
	if err != nil {
		return false, err
	}

	now := s.now()
	for _, v := range items {
		if v.Protected(now) {
			return true, nil
		}
	}
	return false, nil
}
