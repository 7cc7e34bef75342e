package strays

import (
	"context"
	"testing"
	"time"

	"barangay-pet-registry/internal/ports/auth"
)

type fakeRepo struct {
	items map[string]StrayReport
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]StrayReport{}}
}

func (f *fakeRepo) Create(_ context.Context, r StrayReport) error {
	f.items[r.ID] = r
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, barangayID, id string) (StrayReport, error) {
	r, ok := f.items[id]
	if !ok || r.BarangayID != barangayID {
		return StrayReport{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListByBarangay(_ context.Context, barangayID string) ([]StrayReport, error) {
	out := []StrayReport{}
	for _, r := range f.items {
		if r.BarangayID == barangayID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, barangayID, id string, status Status) error {
	r, ok := f.items[id]
	if !ok || r.BarangayID != barangayID {
		return ErrNotFound
	}
	r.Status = status
	f.items[id] = r
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(repo, nil, nil)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }
	return s
}

func validInput() CreateInput {
	return CreateInput{
		ReporterName: "Juan Dela Cruz",
		Species:      SpeciesDog,
		Location:     "Purok 3, cerca de la cancha",
	}
}

func TestCreateGuestStartsPending(t *testing.T) {
	svc := newTestService(newFakeRepo())

	r, err := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != StatusPending {
		t.Fatalf("status = %q, want %q", r.Status, StatusPending)
	}
}

func TestCreateStaffStartsReported(t *testing.T) {
	svc := newTestService(newFakeRepo())

	r, err := svc.Create(context.Background(), "bgy-1", auth.RoleStaff, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Status != StatusReported {
		t.Fatalf("status = %q, want %q", r.Status, StatusReported)
	}
	if r.DateReported.IsZero() {
		t.Fatal("date_reported sin asignar")
	}
}

func TestCreateRequiresTenant(t *testing.T) {
	svc := newTestService(newFakeRepo())

	if _, err := svc.Create(context.Background(), "", auth.RoleStaff, validInput()); err != ErrNoTenant {
		t.Fatalf("err = %v, want ErrNoTenant", err)
	}
}

func TestCreateRejectsInvalidSpecies(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validInput()
	in.Species = Species("Parrot")
	if _, err := svc.Create(context.Background(), "bgy-1", auth.RoleStaff, in); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestListActiveExcludesPendingAndRejected(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	pending, _ := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())
	reported, _ := svc.Create(context.Background(), "bgy-1", auth.RoleStaff, validInput())

	rejected, _ := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())
	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", rejected.ID, StatusRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}

	active, err := svc.ListActive(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != reported.ID {
		t.Fatalf("active = %v, want solo %s", active, reported.ID)
	}
	_ = pending
}

func TestStatusWorkflow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	r, _ := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())

	for _, to := range []Status{StatusReported, StatusCaptured, StatusResolved} {
		if _, err := svc.UpdateStatus(context.Background(), "bgy-1", r.ID, to); err != nil {
			t.Fatalf("transición a %q: %v", to, err)
		}
	}

	// Resolved es terminal.
	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", r.ID, StatusReported); err != ErrBadState {
		t.Fatalf("err = %v, want ErrBadState", err)
	}
}

func TestUpdateStatusSkipsInvalidJump(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	r, _ := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())

	// Pending no puede saltar directo a Captured.
	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", r.ID, StatusCaptured); err != ErrBadState {
		t.Fatalf("err = %v, want ErrBadState", err)
	}
}

func TestUpdateStatusIsTenantScoped(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	r, _ := svc.Create(context.Background(), "bgy-1", auth.RoleGuest, validInput())

	if _, err := svc.UpdateStatus(context.Background(), "bgy-2", r.ID, StatusReported); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
