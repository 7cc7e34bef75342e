package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"barangay-pet-registry/internal/ports/auth"
)

type fakeRepo struct {
	items map[string]User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]User{}}
}

func (f *fakeRepo) Create(_ context.Context, u User) error {
	f.items[u.ID] = u
	return nil
}

func (f *fakeRepo) Update(_ context.Context, u User) error {
	if _, ok := f.items[u.ID]; !ok {
		return ErrNotFound
	}
	f.items[u.ID] = u
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, barangayID, id string) error {
	u, ok := f.items[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, barangayID, id string) (User, error) {
	u, ok := f.items[id]
	if !ok || u.BarangayID != barangayID {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) ListByBarangay(_ context.Context, barangayID string) ([]User, error) {
	out := []User{}
	for _, u := range f.items {
		if u.BarangayID == barangayID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindByUsername(_ context.Context, username string) (User, error) {
	for _, u := range f.items {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (f *fakeRepo) RecordSignIn(_ context.Context, barangayID, id string, at time.Time) error {
	u, ok := f.items[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	u.LastSignInAt = &at
	f.items[id] = u
	return nil
}

func (f *fakeRepo) RecordSignOut(_ context.Context, barangayID, id string, at time.Time) error {
	u, ok := f.items[id]
	if !ok || u.BarangayID != barangayID {
		return ErrNotFound
	}
	u.LastSignOutAt = &at
	f.items[id] = u
	return nil
}

type fakeSessions struct {
	issued  []auth.Claims
	revoked []string
}

func (f *fakeSessions) Issue(_ context.Context, c auth.Claims) (string, error) {
	f.issued = append(f.issued, c)
	return "tok-1", nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	return nil
}

func newTestService(repo *fakeRepo, sessions *fakeSessions) *Service {
	s := NewService(repo, sessions, nil)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func validInput() CreateInput {
	return CreateInput{
		Username: "mreyes",
		FullName: "Maria Reyes",
		Password: "secreto-largo",
		Role:     auth.RoleStaff,
	}
}

func TestCreateHashesPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSessions{})

	u, err := svc.Create(context.Background(), "bgy-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.PasswordHash == "secreto-largo" || u.PasswordHash == "" {
		t.Fatal("la contraseña quedó sin hashear")
	}
}

func TestCreateRejectsDuplicateUsernameCaseInsensitive(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSessions{})

	if _, err := svc.Create(context.Background(), "bgy-1", validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Username = "MReyes"
	if _, err := svc.Create(context.Background(), "bgy-2", in); err != ErrDuplicateUsername {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}
}

func TestCreateRejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSessions{})

	in := validInput()
	in.Password = "corta"
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLoginIssuesSessionWithAccountTenant(t *testing.T) {
	repo := newFakeRepo()
	sessions := &fakeSessions{}
	svc := newTestService(repo, sessions)

	created, _ := svc.Create(context.Background(), "bgy-1", validInput())

	result, err := svc.Login(context.Background(), "MREYES", "secreto-largo")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token != "tok-1" {
		t.Fatalf("token = %q", result.Token)
	}
	if len(sessions.issued) != 1 || sessions.issued[0].BarangayID != "bgy-1" || sessions.issued[0].UserID != created.ID {
		t.Fatalf("claims emitidas = %+v", sessions.issued)
	}
	if result.User.LastSignInAt == nil {
		t.Fatal("last_sign_in sin registrar")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSessions{})

	if _, err := svc.Create(context.Background(), "bgy-1", validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Login(context.Background(), "mreyes", "otra-cosa"); err != ErrBadCredentials {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSessions{})

	u, _ := svc.Create(context.Background(), "bgy-1", validInput())
	if _, err := svc.Update(context.Background(), "bgy-1", u.ID, UpdateInput{Status: StatusInactive}); err != nil {
		t.Fatalf("update: %v", err)
	}

	if _, err := svc.Login(context.Background(), "mreyes", "secreto-largo"); err != ErrBadCredentials {
		t.Fatalf("err = %v, want ErrBadCredentials", err)
	}
}

func TestDeleteRejectsSelf(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSessions{})

	u, _ := svc.Create(context.Background(), "bgy-1", validInput())

	if err := svc.Delete(context.Background(), "bgy-1", u.ID, u.ID); err != ErrSelfDelete {
		t.Fatalf("err = %v, want ErrSelfDelete", err)
	}
}

func TestLastActivePrefersLatestEvent(t *testing.T) {
	in := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		u    User
		want *time.Time
	}{
		{"nunca entró", User{}, nil},
		{"solo entrada", User{LastSignInAt: &in}, &in},
		{"salida posterior", User{LastSignInAt: &in, LastSignOutAt: &out}, &out},
		{"entrada posterior", User{LastSignInAt: &out, LastSignOutAt: &in}, &out},
	}

	for _, tc := range cases {
		got := tc.u.LastActive()
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%s: got %v, want nil", tc.name, got)
		case tc.want != nil && (got == nil || !got.Equal(*tc.want)):
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
