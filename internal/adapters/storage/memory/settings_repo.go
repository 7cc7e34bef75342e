package memory

import (
	"context"
	"errors"
	"strings"

	"barangay-pet-registry/internal/domain/settings"
)

type settingsRepo struct {
	s *Store
}

func NewSettingsRepo(s *Store) settings.Repository {
	return &settingsRepo{s: s}
}

func (r *settingsRepo) Create(ctx context.Context, cfg settings.SystemSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(cfg.BarangayID) == "" {
		return errors.New("barangay id required")
	}
	if _, exists := r.s.settings[cfg.BarangayID]; exists {
		return settings.ErrAlreadyExists
	}
	// La unicidad por ubicación replica el índice único de Postgres.
	for _, existing := range r.s.settings {
		if strings.EqualFold(existing.BarangayName, cfg.BarangayName) &&
			strings.EqualFold(existing.Municipality, cfg.Municipality) {
			return settings.ErrAlreadyExists
		}
	}
	r.s.settings[cfg.BarangayID] = cfg
	return nil
}

func (r *settingsRepo) Update(ctx context.Context, cfg settings.SystemSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.settings[cfg.BarangayID]; !exists {
		return ErrNotFound
	}
	r.s.settings[cfg.BarangayID] = cfg
	return nil
}

func (r *settingsRepo) Delete(ctx context.Context, barangayID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.settings[barangayID]; !exists {
		return ErrNotFound
	}
	delete(r.s.settings, barangayID)
	return nil
}

func (r *settingsRepo) GetByBarangay(ctx context.Context, barangayID string) (settings.SystemSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	cfg, ok := r.s.settings[barangayID]
	if !ok {
		return settings.SystemSettings{}, ErrNotFound
	}
	return cfg, nil
}

func (r *settingsRepo) GetByCommunityCode(ctx context.Context, code string) (settings.SystemSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, cfg := range r.s.settings {
		if cfg.CommunityCode == code {
			return cfg, nil
		}
	}
	return settings.SystemSettings{}, ErrNotFound
}

func (r *settingsRepo) FindByLocation(ctx context.Context, barangayName, municipality string) (settings.SystemSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, cfg := range r.s.settings {
		if strings.EqualFold(cfg.BarangayName, barangayName) &&
			strings.EqualFold(cfg.Municipality, municipality) {
			return cfg, nil
		}
	}
	return settings.SystemSettings{}, ErrNotFound
}
