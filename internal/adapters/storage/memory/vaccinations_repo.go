package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"barangay-pet-registry/internal/domain/vaccinations"
)

type vaccinationRepo struct {
	s *Store
}

func NewVaccinationRepo(s *Store) vaccinations.Repository {
	return &vaccinationRepo{s: s}
}

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.s.vaccinations[v.ID]; exists {
		return errors.New("vaccination already exists")
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationRepo) ListByBarangay(ctx context.Context, barangayID string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if v.BarangayID == barangayID {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateGiven.After(out[j].DateGiven)
	})

	return out, nil
}

func (r *vaccinationRepo) ListByPet(ctx context.Context, barangayID, petID string) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if v.BarangayID == barangayID && v.PetID == petID {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateGiven.After(out[j].DateGiven)
	})

	return out, nil
}
