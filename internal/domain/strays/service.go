package strays

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/bus"
	"barangay-pet-registry/internal/platform/photoingest"
	"barangay-pet-registry/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTenant     = errors.New("no barangay context")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid status transition")
)

type Service struct {
	repo   Repository
	photos *photoingest.Ingestor
	bus    *bus.Bus
	now    func() time.Time
}

func NewService(repo Repository, photos *photoingest.Ingestor, b *bus.Bus) *Service {
	return &Service{
		repo:   repo,
		photos: photos,
		bus:    b,
		now:    time.Now,
	}
}

type CreateInput struct {
	ReporterName    string
	ReporterContact string

	Species     Species
	Location    string
	Description string

	PhotoPayload string

	IsEarTipped bool
	Latitude    *float64
	Longitude   *float64
}

// Create registra el avistamiento. El rol decide el estado inicial:
// Guest (portal público) => Pending, staff => Reported. Es la única
// escritura permitida a sesiones Guest.
func (s *Service) Create(ctx context.Context, barangayID string, role auth.Role, in CreateInput) (StrayReport, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return StrayReport{}, ErrNoTenant
	}
	if strings.TrimSpace(in.ReporterName) == "" || strings.TrimSpace(in.Location) == "" {
		return StrayReport{}, ErrInvalidInput
	}
	if in.Species != SpeciesDog && in.Species != SpeciesCat {
		return StrayReport{}, ErrInvalidInput
	}

	id := uuid.NewString()

	photoURL := in.PhotoPayload
	if s.photos != nil && strings.HasPrefix(photoURL, "data:") {
		url, err := s.photos.Ingest(ctx, barangayID, photoURL, "strays/"+id)
		if err != nil {
			return StrayReport{}, err
		}
		photoURL = url
	}

	status := StatusReported
	if role == auth.RoleGuest {
		status = StatusPending
	}

	r := StrayReport{
		ID:              id,
		BarangayID:      barangayID,
		ReporterName:    strings.TrimSpace(in.ReporterName),
		ReporterContact: strings.TrimSpace(in.ReporterContact),
		Species:         in.Species,
		Location:        strings.TrimSpace(in.Location),
		Description:     strings.TrimSpace(in.Description),
		PhotoURL:        photoURL,
		DateReported:    s.now(),
		Status:          status,
		IsEarTipped:     in.IsEarTipped,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return StrayReport{}, err
	}

	s.publish(barangayID)
	return r, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]StrayReport, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []StrayReport{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

// ListActive filtra la lista operativa (sin Pending ni Rejected).
func (s *Service) ListActive(ctx context.Context, barangayID string) ([]StrayReport, error) {
	items, err := s.List(ctx, barangayID)
	if err != nil {
		return nil, err
	}

	out := make([]StrayReport, 0, len(items))
	for _, r := range items {
		if r.Active() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, barangayID, id string, to Status) (StrayReport, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return StrayReport{}, ErrNoTenant
	}
	if !ValidStatus(to) {
		return StrayReport{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, barangayID, id)
	if err != nil {
		return StrayReport{}, ErrNotFound
	}

	if !CanTransition(current.Status, to) {
		return StrayReport{}, ErrBadState
	}

	if err := s.repo.UpdateStatus(ctx, barangayID, id, to); err != nil {
		return StrayReport{}, err
	}

	current.Status = to
	s.publish(barangayID)
	return current, nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindStrays, BarangayID: barangayID})
	}
}
