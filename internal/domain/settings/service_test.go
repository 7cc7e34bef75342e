package settings

import (
	"context"
	"strings"
	"testing"

	"barangay-pet-registry/internal/ports/auth"
)

type fakeRepo struct {
	items map[string]SystemSettings
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]SystemSettings{}}
}

func (f *fakeRepo) Create(_ context.Context, s SystemSettings) error {
	if _, ok := f.items[s.BarangayID]; ok {
		return ErrAlreadyExists
	}
	f.items[s.BarangayID] = s
	return nil
}

func (f *fakeRepo) Update(_ context.Context, s SystemSettings) error {
	if _, ok := f.items[s.BarangayID]; !ok {
		return ErrNotFound
	}
	f.items[s.BarangayID] = s
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, barangayID string) error {
	if _, ok := f.items[barangayID]; !ok {
		return ErrNotFound
	}
	delete(f.items, barangayID)
	return nil
}

func (f *fakeRepo) GetByBarangay(_ context.Context, barangayID string) (SystemSettings, error) {
	s, ok := f.items[barangayID]
	if !ok {
		return SystemSettings{}, ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) GetByCommunityCode(_ context.Context, code string) (SystemSettings, error) {
	for _, s := range f.items {
		if s.CommunityCode == code {
			return s, nil
		}
	}
	return SystemSettings{}, ErrNotFound
}

func (f *fakeRepo) FindByLocation(_ context.Context, barangayName, municipality string) (SystemSettings, error) {
	for _, s := range f.items {
		if strings.EqualFold(s.BarangayName, barangayName) && strings.EqualFold(s.Municipality, municipality) {
			return s, nil
		}
	}
	return SystemSettings{}, ErrNotFound
}

type fakeSessions struct {
	issued []auth.Claims
}

func (f *fakeSessions) Issue(_ context.Context, c auth.Claims) (string, error) {
	f.issued = append(f.issued, c)
	return "guest-tok", nil
}

func (f *fakeSessions) Revoke(_ context.Context, _ string) error { return nil }

func seeded(repo *fakeRepo) SystemSettings {
	s := SystemSettings{
		BarangayID:    "bgy-1",
		BarangayName:  "San Isidro",
		Municipality:  "Naga",
		ReminderDays:  30,
		CommunityCode: "abc12345",
	}
	repo.items[s.BarangayID] = s
	return s
}

func TestGetReturnsPlaceholderWhenUnregistered(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, &fakeSessions{}, nil)

	cfg, err := svc.Get(context.Background(), "bgy-nuevo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cfg.CommunityCode != "SETUP-REQUIRED" {
		t.Fatalf("community_code = %q, want placeholder", cfg.CommunityCode)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	repo := newFakeRepo()
	seeded(repo)
	svc := NewService(repo, nil, &fakeSessions{}, nil)

	days := 15
	cfg, err := svc.Update(context.Background(), "bgy-1", UpdateInput{
		ReminderDays: &days,
		SupportEmail: "captain@sanisidro.ph",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cfg.ReminderDays != 15 || cfg.SupportEmail != "captain@sanisidro.ph" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.BarangayName != "San Isidro" {
		t.Fatal("update borró campos no enviados")
	}
}

func TestRotateCommunityCodeChangesCode(t *testing.T) {
	repo := newFakeRepo()
	old := seeded(repo)
	svc := NewService(repo, nil, &fakeSessions{}, nil)

	cfg, err := svc.RotateCommunityCode(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if cfg.CommunityCode == old.CommunityCode {
		t.Fatal("el código no cambió")
	}
	if len(cfg.CommunityCode) != 8 {
		t.Fatalf("len(code) = %d, want 8", len(cfg.CommunityCode))
	}
}

func TestEnterPortalIssuesGuestSession(t *testing.T) {
	repo := newFakeRepo()
	seeded(repo)
	sessions := &fakeSessions{}
	svc := NewService(repo, nil, sessions, nil)

	token, cfg, err := svc.EnterPortal(context.Background(), "abc12345")
	if err != nil {
		t.Fatalf("enter: %v", err)
	}
	if token != "guest-tok" || cfg.BarangayID != "bgy-1" {
		t.Fatalf("token=%q cfg=%+v", token, cfg)
	}
	if len(sessions.issued) != 1 || sessions.issued[0].Role != auth.RoleGuest {
		t.Fatalf("claims = %+v", sessions.issued)
	}
}

func TestEnterPortalRejectsUnknownCode(t *testing.T) {
	repo := newFakeRepo()
	seeded(repo)
	svc := NewService(repo, nil, &fakeSessions{}, nil)

	if _, _, err := svc.EnterPortal(context.Background(), "nope"); err != ErrBadCode {
		t.Fatalf("err = %v, want ErrBadCode", err)
	}
}
