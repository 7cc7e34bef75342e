package owners

import (
	"context"
	"errors"
	"strings"

	"barangay-pet-registry/internal/platform/bus"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTenant     = errors.New("no barangay context")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	bus  *bus.Bus
}

func NewService(repo Repository, b *bus.Bus) *Service {
	return &Service{repo: repo, bus: b}
}

type CreateInput struct {
	FullName      string
	ContactNumber string
	Address       string
	Email         string
}

func (s *Service) Create(ctx context.Context, barangayID string, in CreateInput) (Owner, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Owner{}, ErrNoTenant
	}
	if strings.TrimSpace(in.FullName) == "" {
		return Owner{}, ErrInvalidInput
	}

	o := Owner{
		ID:            uuid.NewString(),
		BarangayID:    barangayID,
		FullName:      strings.TrimSpace(in.FullName),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Address:       strings.TrimSpace(in.Address),
		Email:         strings.TrimSpace(in.Email),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Owner{}, err
	}

	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindOwners, BarangayID: barangayID})
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]Owner, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Owner{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

func (s *Service) Get(ctx context.Context, barangayID, id string) (Owner, error) {
	if strings.TrimSpace(barangayID) == "" || strings.TrimSpace(id) == "" {
		return Owner{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, barangayID, id)
}
