package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/bus"
	"barangay-pet-registry/internal/platform/photoingest"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoTenant     = errors.New("no barangay context")
	ErrNotFound     = errors.New("not found")
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
	OwnerID          string
	Name             string
	Species          Species
	Breed            string
	Color            string
	Sex              Sex
	BirthDate        *time.Time
	IsSpayedNeutered bool
	PhotoPayload     string // URL o data: inline
}

func (s *Service) Create(ctx context.Context, barangayID string, in CreateInput) (Pet, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Pet{}, ErrNoTenant
	}
	if strings.TrimSpace(in.OwnerID) == "" || strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if !ValidSpecies(in.Species) {
		return Pet{}, ErrInvalidInput
	}

	id := uuid.NewString()

	photoURL := in.PhotoPayload
	if s.photos != nil && strings.HasPrefix(photoURL, "data:") {
		// la ingesta degrada al payload original si la subida falla
		url, err := s.photos.Ingest(ctx, barangayID, photoURL, "pets/"+id)
		if err != nil {
			return Pet{}, err
		}
		photoURL = url
	}

	p := Pet{
		ID:               id,
		BarangayID:       barangayID,
		OwnerID:          strings.TrimSpace(in.OwnerID),
		Name:             strings.TrimSpace(in.Name),
		Species:          in.Species,
		Breed:            strings.TrimSpace(in.Breed),
		Color:            strings.TrimSpace(in.Color),
		Sex:              in.Sex,
		BirthDate:        in.BirthDate,
		IsSpayedNeutered: in.IsSpayedNeutered,
		PhotoURL:         photoURL,
		RegistrationDate: s.now(),
		Status:           StatusAlive,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}

	s.publish(bus.KindPets, barangayID)
	return p, nil
}

type UpdateInput struct {
	Name             string
	Breed            string
	Color            string
	Sex              Sex
	BirthDate        *time.Time
	IsSpayedNeutered *bool
	PhotoPayload     string
	Status           Status
}

// Update es un merge: campos vacíos conservan el valor actual. Species
// y OwnerID no se tocan acá; un cambio de dueño es una transferencia,
// no una edición.
func (s *Service) Update(ctx context.Context, barangayID, id string, in UpdateInput) (Pet, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Pet{}, ErrNoTenant
	}

	p, err := s.repo.GetByID(ctx, barangayID, id)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	if v := strings.TrimSpace(in.Name); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(in.Breed); v != "" {
		p.Breed = v
	}
	if v := strings.TrimSpace(in.Color); v != "" {
		p.Color = v
	}
	if in.Sex != "" {
		p.Sex = in.Sex
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.IsSpayedNeutered != nil {
		p.IsSpayedNeutered = *in.IsSpayedNeutered
	}
	if in.Status != "" {
		if !ValidStatus(in.Status) {
			return Pet{}, ErrInvalidInput
		}
		p.Status = in.Status
	}
	if in.PhotoPayload != "" {
		photoURL := in.PhotoPayload
		if s.photos != nil && strings.HasPrefix(photoURL, "data:") {
			url, err := s.photos.Ingest(ctx, barangayID, photoURL, "pets/"+p.ID)
			if err != nil {
				return Pet{}, err
			}
			photoURL = url
		}
		p.PhotoURL = photoURL
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}

	s.publish(bus.KindPets, barangayID)
	return p, nil
}

// List retorna vacío (sin error) cuando no hay contexto de barangay.
func (s *Service) List(ctx context.Context, barangayID string) ([]Pet, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Pet{}, nil
	}
	return s.repo.ListByBarangay(ctx, barangayID)
}

func (s *Service) Get(ctx context.Context, barangayID, id string) (Pet, error) {
	if strings.TrimSpace(barangayID) == "" || strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, barangayID, id)
}

// Delete ejecuta la cascada completa: vacunas fuera, incidentes con la
// referencia limpiada, y la mascota borrada — todo dentro del barangay.
func (s *Service) Delete(ctx context.Context, barangayID, id string) error {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return ErrNoTenant
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}

	if err := s.repo.DeleteCascade(ctx, barangayID, id); err != nil {
		return err
	}

	s.publish(bus.KindPets, barangayID)
	s.publish(bus.KindVaccinations, barangayID)
	s.publish(bus.KindIncidents, barangayID)
	return nil
}

func (s *Service) publish(kind bus.Kind, barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: kind, BarangayID: barangayID})
	}
}
