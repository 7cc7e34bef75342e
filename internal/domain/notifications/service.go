package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"barangay-pet-registry/internal/platform/bus"

	"github.com/google/uuid"
)

var (
	ErrNoTenant = errors.New("no barangay context")
	ErrNotFound = errors.New("not found")
)

const latestLimit = 20

type Service struct {
	repo Repository
	bus  *bus.Bus
	now  func() time.Time
}

func NewService(repo Repository, b *bus.Bus) *Service {
	return &Service{repo: repo, bus: b, now: time.Now}
}

// Add es mejor-esfuerzo: lo llaman otros servicios al final de sus
// operaciones y un aviso perdido no debe tumbar la operación. Sin
// tenant no hace nada; con título vacío lo degrada a "Notice".
func (s *Service) Add(ctx context.Context, barangayID, title, message string, typ Type) {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return
	}
	if strings.TrimSpace(title) == "" {
		title = "Notice"
	}
	if !ValidType(typ) {
		typ = TypeInfo
	}

	n := Notification{
		ID:         uuid.NewString(),
		BarangayID: barangayID,
		Title:      strings.TrimSpace(title),
		Message:    strings.TrimSpace(message),
		Type:       typ,
		Timestamp:  s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return
	}
	s.publish(barangayID)
}

func (s *Service) List(ctx context.Context, barangayID string) ([]Notification, error) {
	if strings.TrimSpace(barangayID) == "" {
		return []Notification{}, nil
	}
	return s.repo.ListLatest(ctx, barangayID, latestLimit)
}

func (s *Service) MarkRead(ctx context.Context, barangayID, id string) error {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return ErrNoTenant
	}
	if err := s.repo.MarkRead(ctx, barangayID, id); err != nil {
		return ErrNotFound
	}
	s.publish(barangayID)
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, barangayID string) error {
	barangayID = strings.TrimSpace(barangayID)
	if barangayID == "" {
		return ErrNoTenant
	}
	if err := s.repo.MarkAllRead(ctx, barangayID); err != nil {
		return err
	}
	s.publish(barangayID)
	return nil
}

func (s *Service) publish(barangayID string) {
	if s.bus != nil {
		s.bus.Publish(bus.Event{Kind: bus.KindNotifications, BarangayID: barangayID})
	}
}
