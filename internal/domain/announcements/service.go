package announcements

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
	Title    string
	Content  string
	Category Category

	PhotoPayload string

	// Link opcional: si viene, la tarjeta se resuelve aquí y queda
	// congelada con el anuncio.
	Link string
}

func (s *Service) Create(ctx context.Context, barangayID, authorID string, in CreateInput) (Announcement, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return Announcement{}, ErrNoTenant
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return Announcement{}, ErrInvalidInput
	}
	if !ValidCategory(in.Category) {
		return Announcement{}, ErrInvalidInput
	}

	id := uuid.NewString()

	photoURL := in.PhotoPayload
	if s.photos != nil && strings.HasPrefix(photoURL, "data:") {
		url, err := s.photos.Ingest(ctx, barangayID, photoURL, "announcements/"+id)
		if err != nil {
			return Announcement{}, err
		}
		photoURL = url
	}

	a := Announcement{
		ID:          id,
		BarangayID:  barangayID,
		AuthorID:    authorID,
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Category:    in.Category,
		PhotoURL:    photoURL,
		LinkPreview: ResolvePreview(in.Link),
		DatePosted:  s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Announcement{}, err
	}

	s.publish(barangayID)
	return a, nil
}

func (s *Service) List(ctx context.Context, barangayID string) ([]Announcement, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Announcement{}, nil
	}

	items, err := s.repo.ListByBarangay(ctx, barangayID)
	if err != nil {
		return nil, err
	}

	// La cuenta del autor puede haber sido borrada: el anuncio
	// sobrevive con autor genérico.
	for i := range items {
		if items[i].AuthorName == "" {
			items[i].AuthorName = "Unknown"
		}
		if items[i].AuthorRole == "" {
			items[i].AuthorRole = "Staff"
		}
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, barangayID, id string) error {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return ErrNoTenant
	}

	if _, err := s.repo.GetByID(ctx, barangayID, id); err != nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, barangayID, id); err != nil {
		return err
	}

	s.publish(barangayID)
	return nil
}

func (s *Service) Like(ctx context.Context, barangayID, id string) (int, error) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return 0, ErrNoTenant
	}

	likes, err := s.repo.IncrementLikes(ctx, barangayID, id)
	if err != nil {
		return 0, ErrNotFound
	}

	s.publish(barangayID)
	return likes, nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindAnnouncements, BarangayID: barangayID})
	}
}
