package incidents

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
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid status transition")
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
	PetID         *string // nil = callejero/desconocido
	VictimName    string
	VictimContact string

	Date        time.Time
	Location    string
	Description string

	BodyPartBitten string
	IsProvoked     bool
}

func (s *Service) Create(ctx context.Context, barangayID string, in CreateInput) (Incident, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Incident{}, ErrNoTenant
	}
	if strings.TrimSpace(in.VictimName) == "" {
		return Incident{}, ErrInvalidInput
	}
	if in.Date.IsZero() {
		return Incident{}, ErrInvalidInput
	}

	var petID *string
	if in.PetID != nil && strings.TrimSpace(*in.PetID) != "" {
		p := strings.TrimSpace(*in.PetID)
		petID = &p
	}

	i := Incident{
		ID:                   uuid.NewString(),
		BarangayID:           barangayID,
		PetID:                petID,
		VictimName:           strings.TrimSpace(in.VictimName),
		VictimContact:        strings.TrimSpace(in.VictimContact),
		Date:                 in.Date,
		Location:             strings.TrimSpace(in.Location),
		Description:          strings.TrimSpace(in.Description),
		BodyPartBitten:       strings.TrimSpace(in.BodyPartBitten),
		IsProvoked:           in.IsProvoked,
		Status:               StatusObservation,
		ObservationStartDate: s.now(),
	}

	if err := s.repo.Create(ctx, i); err != nil {
		return Incident{}, err
	}

	s.publish(barangayID)
	return i, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]Incident, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Incident{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

func (s *Service) Get(ctx context.Context, barangayID, id string) (Incident, error) {
	if strings.TrimSpace(barangayID) == "" || strings.TrimSpace(id) == "" {
		return Incident{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, barangayID, id)
}

// UpdateStatus aplica la transición unidireccional
// Observation -> {Cleared, Deceased, Escaped}.
func (s *Service) UpdateStatus(ctx context.Context, barangayID, id string, to Status) (Incident, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Incident{}, ErrNoTenant
	}
	if !ValidStatus(to) {
		return Incident{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, barangayID, id)
	if err != nil {
		return Incident{}, ErrNotFound
	}

	if !CanTransition(current.Status, to) {
		return Incident{}, ErrBadState
	}

	if err := s.repo.UpdateStatus(ctx, barangayID, id, to); err != nil {
		return Incident{}, err
	}

	current.Status = to
	s.publish(barangayID)
	return current, nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindIncidents, BarangayID: barangayID})
	}
}
