package reports

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"barangay-pet-registry/internal/adapters/storage/memory"
	"barangay-pet-registry/internal/domain/incidents"
	"barangay-pet-registry/internal/domain/owners"
	"barangay-pet-registry/internal/domain/pets"
	"barangay-pet-registry/internal/domain/strays"
	"barangay-pet-registry/internal/domain/vaccinations"
)

type fakeSummarizer struct {
	configured bool
	fail       bool
	prompts    []string
}

func (f *fakeSummarizer) IsConfigured() bool { return f.configured }

func (f *fakeSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.fail {
		return "", errors.New("upstream down")
	}
	return "**Situation Overview**: todo en orden.", nil
}

func seededService(t *testing.T, summarizer *fakeSummarizer) *Service {
	t.Helper()

	store := memory.NewStore()
	petRepo := memory.NewPetRepo(store)
	ownerRepo := memory.NewOwnerRepo(store)
	vaccRepo := memory.NewVaccinationRepo(store)
	incRepo := memory.NewIncidentRepo(store)
	strayRepo := memory.NewStrayRepo(store)

	ctx := context.Background()

	if err := ownerRepo.Create(ctx, owners.Owner{ID: "own-1", BarangayID: "bgy-1", FullName: "Juan", Address: "Purok 1"}); err != nil {
		t.Fatalf("owner: %v", err)
	}
	if err := ownerRepo.Create(ctx, owners.Owner{ID: "own-2", BarangayID: "bgy-1", FullName: "Ana", Address: "Purok 2"}); err != nil {
		t.Fatalf("owner: %v", err)
	}

	for i, p := range []pets.Pet{
		{ID: "pet-1", BarangayID: "bgy-1", OwnerID: "own-1", Name: "Bantay"},
		{ID: "pet-2", BarangayID: "bgy-1", OwnerID: "own-1", Name: "Muning"},
		{ID: "pet-3", BarangayID: "bgy-1", OwnerID: "own-2", Name: "Whitey"},
	} {
		p.RegistrationDate = time.Date(2025, 5, 1+i, 0, 0, 0, 0, time.UTC)
		if err := petRepo.Create(ctx, p); err != nil {
			t.Fatalf("pet: %v", err)
		}
	}

	future := time.Now().Add(180 * 24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	for _, v := range []vaccinations.Vaccination{
		// Inmunidad vigente.
		{ID: "vac-1", BarangayID: "bgy-1", PetID: "pet-1", VaccineType: vaccinations.TypeCoreAntiRabies, NextDueDate: &future},
		// Vencida: no cuenta.
		{ID: "vac-2", BarangayID: "bgy-1", PetID: "pet-2", VaccineType: vaccinations.TypeCoreAntiRabies, NextDueDate: &past},
		// Vigente pero no Core: no cuenta.
		{ID: "vac-3", BarangayID: "bgy-1", PetID: "pet-3", VaccineType: vaccinations.TypeDeworming, NextDueDate: &future},
	} {
		v.DateGiven = time.Now()
		if err := vaccRepo.Create(ctx, v); err != nil {
			t.Fatalf("vaccination: %v", err)
		}
	}

	if err := incRepo.Create(ctx, incidents.Incident{ID: "inc-1", BarangayID: "bgy-1", Date: time.Now()}); err != nil {
		t.Fatalf("incident: %v", err)
	}
	if err := strayRepo.Create(ctx, strays.StrayReport{ID: "str-1", BarangayID: "bgy-1", DateReported: time.Now()}); err != nil {
		t.Fatalf("stray: %v", err)
	}

	return NewService(petRepo, ownerRepo, vaccRepo, incRepo, strayRepo, summarizer)
}

func TestSummarizeComputesStats(t *testing.T) {
	svc := seededService(t, &fakeSummarizer{})

	summary, err := svc.Summarize(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	s := summary.Stats
	if s.TotalPets != 3 {
		t.Fatalf("total = %d", s.TotalPets)
	}
	if s.VaccinatedCount != 1 {
		t.Fatalf("vaccinated = %d, want 1 (solo Core vigente)", s.VaccinatedCount)
	}
	if s.ComplianceRate != 33 {
		t.Fatalf("compliance = %d", s.ComplianceRate)
	}
	if s.IncidentCount != 1 || s.StrayCount != 1 {
		t.Fatalf("incidents=%d strays=%d", s.IncidentCount, s.StrayCount)
	}
	if s.PurokStats["Purok 1"] != 2 || s.PurokStats["Purok 2"] != 1 {
		t.Fatalf("purok = %v", s.PurokStats)
	}
}

func TestSummarizeUsesAIWhenConfigured(t *testing.T) {
	summarizer := &fakeSummarizer{configured: true}
	svc := seededService(t, summarizer)

	summary, err := svc.Summarize(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if !summary.AIGenerated {
		t.Fatal("no usó el generador configurado")
	}
	if len(summarizer.prompts) != 1 || !strings.Contains(summarizer.prompts[0], "Total Registered Pets: 3") {
		t.Fatalf("prompt = %q", summarizer.prompts)
	}
}

func TestSummarizeFallsBackWhenAIFails(t *testing.T) {
	svc := seededService(t, &fakeSummarizer{configured: true, fail: true})

	summary, err := svc.Summarize(context.Background(), "bgy-1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.AIGenerated {
		t.Fatal("marcó como IA un resumen de respaldo")
	}
	if summary.Narrative == "" {
		t.Fatal("el resumen quedó vacío")
	}
}

func TestSummarizeEmptyTenant(t *testing.T) {
	svc := seededService(t, &fakeSummarizer{})

	summary, err := svc.Summarize(context.Background(), "")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary.Stats.TotalPets != 0 {
		t.Fatalf("stats = %+v", summary.Stats)
	}
}
