package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/incidents"
)

type incidentRepo struct {
	s *Store
}

func NewIncidentRepo(s *Store) incidents.Repository {
	return &incidentRepo{s: s}
}

func (r *incidentRepo) Create(ctx context.Context, i incidents.Incident) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(i.ID) == "" {
		return errors.New("incident id required")
	}
	if _, exists := r.s.incidents[i.ID]; exists {
		return errors.New("incident already exists")
	}
	r.s.incidents[i.ID] = i
	return nil
}

func (r *incidentRepo) GetByID(ctx context.Context, barangayID, id string) (incidents.Incident, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.incidents[id]
	if !ok || i.BarangayID != barangayID {
		return incidents.Incident{}, ErrNotFound
	}
	return i, nil
}

func (r *incidentRepo) ListByBarangay(ctx context.Context, barangayID string) ([]incidents.Incident, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]incidents.Incident, 0)
	for _, i := range r.s.incidents {
		if i.BarangayID == barangayID {
			out = append(out, i)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})

	return out, nil
}

func (r *incidentRepo) UpdateStatus(ctx context.Context, barangayID, id string, status incidents.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i, ok := r.s.incidents[id]
	if !ok || i.BarangayID != barangayID {
		return ErrNotFound
	}
	i.Status = status
	r.s.incidents[id] = i
	return nil
}
