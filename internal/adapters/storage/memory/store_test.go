package memory

import (
	"context"
	"testing"
	"time"

	"barangay-pet-registry/internal/domain/announcements"
	"barangay-pet-registry/internal/domain/incidents"
	"barangay-pet-registry/internal/domain/pets"
	"barangay-pet-registry/internal/domain/users"
	"barangay-pet-registry/internal/domain/vaccinations"
	"barangay-pet-registry/internal/ports/auth"
)

func TestDeleteCascadeRemovesVaccinationsAndDetachesIncidents(t *testing.T) {
	store := NewStore()
	petRepo := NewPetRepo(store)
	vaccRepo := NewVaccinationRepo(store)
	incRepo := NewIncidentRepo(store)

	ctx := context.Background()
	petID := "pet-1"

	if err := petRepo.Create(ctx, pets.Pet{ID: petID, BarangayID: "bgy-1", Name: "Bantay"}); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	for _, id := range []string{"vac-1", "vac-2"} {
		err := vaccRepo.Create(ctx, vaccinations.Vaccination{ID: id, BarangayID: "bgy-1", PetID: petID})
		if err != nil {
			t.Fatalf("create vaccination: %v", err)
		}
	}
	if err := incRepo.Create(ctx, incidents.Incident{ID: "inc-1", BarangayID: "bgy-1", PetID: &petID}); err != nil {
		t.Fatalf("create incident: %v", err)
	}

	if err := petRepo.DeleteCascade(ctx, "bgy-1", petID); err != nil {
		t.Fatalf("cascade: %v", err)
	}

	if _, err := petRepo.GetByID(ctx, "bgy-1", petID); err != ErrNotFound {
		t.Fatalf("pet sigue existiendo: %v", err)
	}
	vacs, _ := vaccRepo.ListByPet(ctx, "bgy-1", petID)
	if len(vacs) != 0 {
		t.Fatalf("quedaron %d vacunas", len(vacs))
	}
	inc, err := incRepo.GetByID(ctx, "bgy-1", "inc-1")
	if err != nil {
		t.Fatalf("get incident: %v", err)
	}
	if inc.PetID != nil {
		t.Fatal("el incidente conserva la referencia a la mascota")
	}
}

func TestDeleteCascadeIsTenantScoped(t *testing.T) {
	store := NewStore()
	petRepo := NewPetRepo(store)

	ctx := context.Background()
	if err := petRepo.Create(ctx, pets.Pet{ID: "pet-1", BarangayID: "bgy-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := petRepo.DeleteCascade(ctx, "bgy-2", "pet-1"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAnnouncementListJoinsAuthor(t *testing.T) {
	store := NewStore()
	annRepo := NewAnnouncementRepo(store)
	userRepo := NewUserRepo(store)

	ctx := context.Background()
	err := userRepo.Create(ctx, users.User{
		ID:         "user-1",
		BarangayID: "bgy-1",
		Username:   "mreyes",
		FullName:   "Maria Reyes",
		Role:       auth.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	err = annRepo.Create(ctx, announcements.Announcement{
		ID:         "ann-1",
		BarangayID: "bgy-1",
		AuthorID:   "user-1",
		Title:      "Aviso",
		DatePosted: time.Now(),
	})
	if err != nil {
		t.Fatalf("create announcement: %v", err)
	}

	items, err := annRepo.ListByBarangay(ctx, "bgy-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].AuthorName != "Maria Reyes" || items[0].AuthorRole != "Admin" {
		t.Fatalf("items = %+v", items)
	}
}
