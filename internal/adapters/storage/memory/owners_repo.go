package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/owners"
)

type ownerRepo struct {
	s *Store
}

func NewOwnerRepo(s *Store) owners.Repository {
	return &ownerRepo{s: s}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("owner id required")
	}
	if _, exists := r.s.owners[o.ID]; exists {
		return errors.New("owner already exists")
	}
	r.s.owners[o.ID] = o
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, barangayID, id string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok || o.BarangayID != barangayID {
		return owners.Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) ListByBarangay(ctx context.Context, barangayID string) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]owners.Owner, 0)
	for _, o := range r.s.owners {
		if o.BarangayID == barangayID {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})

	return out, nil
}
