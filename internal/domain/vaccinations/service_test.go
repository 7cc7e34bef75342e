package vaccinations

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	items map[string]Vaccination
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Vaccination{}}
}

func (f *fakeRepo) Create(_ context.Context, v Vaccination) error {
	f.items[v.ID] = v
	return nil
}

func (f *fakeRepo) ListByBarangay(_ context.Context, barangayID string) ([]Vaccination, error) {
	out := []Vaccination{}
	for _, v := range f.items {
		if v.BarangayID == barangayID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByPet(_ context.Context, barangayID, petID string) ([]Vaccination, error) {
	out := []Vaccination{}
	for _, v := range f.items {
		if v.BarangayID == barangayID && v.PetID == petID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestService(repo *fakeRepo) (*Service, *time.Time) {
	s := NewService(repo, nil)
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	return s, &now
}

func validInput() CreateInput {
	return CreateInput{
		PetID:       "pet-1",
		VaccineName: "Rabvac",
		VaccineType: TypeCoreAntiRabies,
		LotNumber:   "LOT-2025-031",
		DateGiven:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestCreateRequiresLotNumber(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	in := validInput()
	in.LotNumber = "   "
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateRejectsUnknownVaccineType(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	in := validInput()
	in.VaccineType = VaccineType("Homeopathic")
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != ErrInvalidInput {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateRequiresTenant(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	if _, err := svc.Create(context.Background(), "", validInput()); err != ErrNoTenant {
		t.Fatalf("err = %v, want ErrNoTenant", err)
	}
}

func TestProtectedBoundaries(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	if (Vaccination{}).Protected(now) {
		t.Fatal("sin next_due_date no hay protección")
	}

	due := now
	if (Vaccination{NextDueDate: &due}).Protected(now) {
		t.Fatal("next_due_date == now ya está vencida")
	}

	due = now.Add(time.Second)
	if !(Vaccination{NextDueDate: &due}).Protected(now) {
		t.Fatal("next_due_date en el futuro debe proteger")
	}
}

func TestPetProtectionExpiresWithoutWrites(t *testing.T) {
	repo := newFakeRepo()
	svc, clock := newTestService(repo)

	due := clock.Add(30 * 24 * time.Hour)
	in := validInput()
	in.NextDueDate = &due
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != nil {
		t.Fatalf("create: %v", err)
	}

	protected, err := svc.PetProtected(context.Background(), "bgy-1", "pet-1")
	if err != nil || !protected {
		t.Fatalf("recién vacunada: protected=%v err=%v", protected, err)
	}

	// La protección vence con el paso del tiempo, sin ninguna
	// escritura: es un cómputo de lectura sobre next_due_date.
	*clock = clock.Add(31 * 24 * time.Hour)
	protected, err = svc.PetProtected(context.Background(), "bgy-1", "pet-1")
	if err != nil || protected {
		t.Fatalf("vencida: protected=%v err=%v", protected, err)
	}
}

func TestPetProtectedIgnoresOtherPets(t *testing.T) {
	repo := newFakeRepo()
	svc, clock := newTestService(repo)

	due := clock.Add(30 * 24 * time.Hour)
	in := validInput()
	in.NextDueDate = &due
	if _, err := svc.Create(context.Background(), "bgy-1", in); err != nil {
		t.Fatalf("create: %v", err)
	}

	protected, err := svc.PetProtected(context.Background(), "bgy-1", "pet-2")
	if err != nil || protected {
		t.Fatalf("otra mascota: protected=%v err=%v", protected, err)
	}
}
