package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func NewPetRepo(s *Store) pets.Repository {
	return &petRepo{s: s}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.pets[p.ID]
	if !ok || cur.BarangayID != p.BarangayID {
		return ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, barangayID, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok || p.BarangayID != barangayID {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByBarangay(ctx context.Context, barangayID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.BarangayID == barangayID {
			out = append(out, p)
		}
	}

	// Orden estable por fecha de registro desc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegistrationDate.After(out[j].RegistrationDate)
	})

	return out, nil
}

// DeleteCascade hace las tres mutaciones bajo el mismo lock: borrar la
// mascota, borrar sus vacunas y soltar la referencia en incidentes.
func (r *petRepo) DeleteCascade(ctx context.Context, barangayID, petID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[petID]
	if !ok || p.BarangayID != barangayID {
		return ErrNotFound
	}

	for id, v := range r.s.vaccinations {
		if v.BarangayID == barangayID && v.PetID == petID {
			delete(r.s.vaccinations, id)
		}
	}

	for id, inc := range r.s.incidents {
		if inc.BarangayID == barangayID && inc.PetID != nil && *inc.PetID == petID {
			inc.PetID = nil
			r.s.incidents[id] = inc
		}
	}

	delete(r.s.pets, petID)
	return nil
}
