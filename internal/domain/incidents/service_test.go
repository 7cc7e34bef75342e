package incidents

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Incident
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Incident{}}
}

func (f *fakeRepo) Create(_ context.Context, i Incident) error {
	f.items[i.ID] = i
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, barangayID, id string) (Incident, error) {
	i, ok := f.items[id]
	if !ok || i.BarangayID != barangayID {
		return Incident{}, ErrNotFound
	}
	return i, nil
}

func (f *fakeRepo) ListByBarangay(_ context.Context, barangayID string) ([]Incident, error) {
	out := []Incident{}
	for _, i := range f.items {
		if i.BarangayID == barangayID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, barangayID, id string, status Status) error {
	i, ok := f.items[id]
	if !ok || i.BarangayID != barangayID {
		return ErrNotFound
	}
	i.Status = status
	f.items[id] = i
	return nil
}

func newTestService(repo *fakeRepo) *Service {
	s := NewService(repo, nil)
	s.now = func() time.Time { return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC) }
	return s
}

func validInput() CreateInput {
	return CreateInput{
		VictimName:     "Pedro Santos",
		VictimContact:  "09181234567",
		Date:           time.Date(2025, 5, 30, 16, 0, 0, 0, time.UTC),
		Location:       "Purok 2",
		BodyPartBitten: "Left leg",
	}
}

func TestCreateStartsInObservation(t *testing.T) {
	svc := newTestService(newFakeRepo())

	i, err := svc.Create(context.Background(), "bgy-1", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if i.Status != StatusObservation {
		t.Fatalf("status = %q, want %q", i.Status, StatusObservation)
	}
	if i.ObservationStartDate.IsZero() {
		t.Fatal("observation_start_date sin asignar")
	}
}

func TestCreateRequiresVictimAndDate(t *testing.T) {
	svc := newTestService(newFakeRepo())

	in := validInput()
	in.VictimName = "  "
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != ErrInvalidInput {
		t.Fatalf("sin víctima: err = %v, want ErrInvalidInput", err)
	}

	in = validInput()
	in.Date = time.Time{}
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != ErrInvalidInput {
		t.Fatalf("sin fecha: err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateNormalizesUnknownPet(t *testing.T) {
	svc := newTestService(newFakeRepo())

	blank := "   "
	in := validInput()
	in.PetID = &blank

	i, err := svc.Create(context.Background(), "bgy-1", in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// PetID en blanco es un callejero: queda nil, no puntero a vacío.
	if i.PetID != nil {
		t.Fatalf("pet_id = %q, want nil", *i.PetID)
	}
}

func TestUpdateStatusIsOneWay(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	i, _ := svc.Create(context.Background(), "bgy-1", validInput())

	updated, err := svc.UpdateStatus(context.Background(), "bgy-1", i.ID, StatusCleared)
	if err != nil {
		t.Fatalf("observation -> cleared: %v", err)
	}
	if updated.Status != StatusCleared {
		t.Fatalf("status = %q, want %q", updated.Status, StatusCleared)
	}

	// Cleared es terminal: ni a otro terminal ni de vuelta.
	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", i.ID, StatusEscaped); err != ErrBadState {
		t.Fatalf("cleared -> escaped: err = %v, want ErrBadState", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", i.ID, StatusObservation); err != ErrBadState {
		t.Fatalf("cleared -> observation: err = %v, want ErrBadState", err)
	}
}

func TestUpdateStatusAllowsEveryTerminal(t *testing.T) {
	for _, to := range []Status{StatusCleared, StatusDeceased, StatusEscaped} {
		svc := newTestService(newFakeRepo())
		i, _ := svc.Create(context.Background(), "bgy-1", validInput())

		if _, err := svc.UpdateStatus(context.Background(), "bgy-1", i.ID, to); err != nil {
			t.Fatalf("observation -> %q: %v", to, err)
		}
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	i, _ := svc.Create(context.Background(), "bgy-1", validInput())

	if _, err := svc.UpdateStatus(context.Background(), "bgy-1", i.ID, Status("Archived")); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestUpdateStatusIsTenantScoped(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	i, _ := svc.Create(context.Background(), "bgy-1", validInput())

	if _, err := svc.UpdateStatus(context.Background(), "bgy-2", i.ID, StatusCleared); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
