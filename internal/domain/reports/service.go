package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"barangay-pet-registry/internal/domain/incidents"
	"barangay-pet-registry/internal/domain/owners"
	"barangay-pet-registry/internal/domain/pets"
	"barangay-pet-registry/internal/domain/strays"
	"barangay-pet-registry/internal/domain/vaccinations"
	"barangay-pet-registry/internal/ports/ai"
)

// Stats es el corte de situación del barangay que alimenta el resumen
// ejecutivo.
type Stats struct {
	TotalPets       int
	VaccinatedCount int
	ComplianceRate  int
	IncidentCount   int
	StrayCount      int

	// PurokStats cuenta mascotas por dirección del dueño.
	PurokStats map[string]int
}

type Summary struct {
	Stats       Stats
	Narrative   string
	AIGenerated bool
}

type Service struct {
	pets         pets.Repository
	owners       owners.Repository
	vaccinations vaccinations.Repository
	incidents    incidents.Repository
	strays       strays.Repository
	summarizer   ai.Summarizer
	now          func() time.Time
}

func NewService(
	petsRepo pets.Repository,
	ownersRepo owners.Repository,
	vaccinationsRepo vaccinations.Repository,
	incidentsRepo incidents.Repository,
	straysRepo strays.Repository,
	summarizer ai.Summarizer,
) *Service {
	return &Service{
		pets:         petsRepo,
		owners:       ownersRepo,
		vaccinations: vaccinationsRepo,
		incidents:    incidentsRepo,
		strays:       straysRepo,
		summarizer:   summarizer,
		now:          time.Now,
	}
}

func (s *Service) collect(ctx context.Context, barangayID string) (Stats, error) {
	petList, err := s.pets.ListByBarangay(ctx, barangayID)
	if err != nil {
		return Stats{}, err
	}
	ownerList, err := s.owners.ListByBarangay(ctx, barangayID)
	if err != nil {
		return Stats{}, err
	}
	vaccList, err := s.vaccinations.ListByBarangay(ctx, barangayID)
	if err != nil {
		return Stats{}, err
	}
	incidentList, err := s.incidents.ListByBarangay(ctx, barangayID)
	if err != nil {
		return Stats{}, err
	}
	strayList, err := s.strays.ListByBarangay(ctx, barangayID)
	if err != nil {
		return Stats{}, err
	}

	now := s.now()

	// Inmunidad activa: vacuna Core vigente a la fecha del reporte.
	protectedPets := map[string]bool{}
	for _, v := range vaccList {
		if !v.Protected(now) {
			continue
		}
		t := string(v.VaccineType)
		if strings.Contains(t, "Rabies") || strings.Contains(t, "Core") {
			protectedPets[v.PetID] = true
		}
	}

	addressByOwner := map[string]string{}
	for _, o := range ownerList {
		addressByOwner[o.ID] = o.Address
	}

	purokStats := map[string]int{}
	for _, p := range petList {
		if addr, ok := addressByOwner[p.OwnerID]; ok && addr != "" {
			purokStats[addr]++
		}
	}

	stats := Stats{
		TotalPets:       len(petList),
		VaccinatedCount: len(protectedPets),
		IncidentCount:   len(incidentList),
		StrayCount:      len(strayList),
		PurokStats:      purokStats,
	}
	if stats.TotalPets > 0 {
		stats.ComplianceRate = int(float64(stats.VaccinatedCount)/float64(stats.TotalPets)*100 + 0.5)
	}
	return stats, nil
}

// Summarize arma el corte de datos y, si hay un generador configurado,
// le pide el resumen ejecutivo. Sin generador (o si falla) cae a un
// resumen plano de los números: el reporte nunca se queda vacío.
func (s *Service) Summarize(ctx context.Context, barangayID string) (Summary, error) {
	if strings.TrimSpace(barangayID) == "" {
		return Summary{Stats: Stats{PurokStats: map[string]int{}}}, nil
	}

	stats, err := s.collect(ctx, barangayID)
	if err != nil {
		return Summary{}, err
	}

	if s.summarizer != nil && s.summarizer.IsConfigured() {
		narrative, err := s.summarizer.Summarize(ctx, buildPrompt(stats))
		if err == nil && narrative != "" {
			return Summary{Stats: stats, Narrative: narrative, AIGenerated: true}, nil
		}
	}

	return Summary{Stats: stats, Narrative: plainNarrative(stats)}, nil
}

func buildPrompt(stats Stats) string {
	var b strings.Builder
	b.WriteString("Act as a professional Veterinary Public Health Analyst for a local Barangay in the Philippines.\n")
	b.WriteString("Write a formal **Executive Summary** addressed to the Barangay Captain.\n\n")
	b.WriteString("**Data Provided:**\n")
	fmt.Fprintf(&b, "- Total Registered Pets: %d\n", stats.TotalPets)
	fmt.Fprintf(&b, "- Fully Vaccinated: %d\n", stats.VaccinatedCount)
	fmt.Fprintf(&b, "- Recent Bite Incidents: %d\n", stats.IncidentCount)
	fmt.Fprintf(&b, "- Stray Animal Reports: %d\n", stats.StrayCount)
	fmt.Fprintf(&b, "- Distribution per Purok: %s\n\n", formatPurokStats(stats.PurokStats))
	b.WriteString("**Instructions:**\n")
	b.WriteString("1. Make it **detailed but concise**. Avoid fluff. Direct to the point.\n")
	b.WriteString("2. Use **Bold** syntax (surround with double asterisks) for Section Headers, Key Metrics, and Risk Levels.\n")
	b.WriteString("3. Do NOT use markdown header symbols (#).\n")
	b.WriteString("4. Structure the report into these specific sections:\n")
	b.WriteString("   - **Situation Overview**: Summary of population and coverage.\n")
	b.WriteString("   - **Public Health Risk Assessment**: Analyze the vaccination gap and incident correlation.\n")
	b.WriteString("   - **Operational Recommendations**: Specific actionable steps for the Barangay Council (e.g., Mass Vaccination, Stray Catching).\n\n")
	b.WriteString("Tone: Official, Urgent (if risk is high), and Professional.\n")
	return b.String()
}

func formatPurokStats(stats map[string]int) string {
	if len(stats) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q: %d", k, stats[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func plainNarrative(stats Stats) string {
	return fmt.Sprintf(
		"**Situation Overview**: The barangay has %d registered pets, of which %d (%d%%) hold active core vaccination coverage. "+
			"**Public Health Risk Assessment**: %d bite incidents and %d stray reports are on record. "+
			"**Operational Recommendations**: Review the vaccination gap and schedule follow-up drives where coverage is low.",
		stats.TotalPets, stats.VaccinatedCount, stats.ComplianceRate, stats.IncidentCount, stats.StrayCount,
	)
}
