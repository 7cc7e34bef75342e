package reports

import (
	"encoding/json"
	"net/http"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reports/summary", summaryHandler(svc))
}

type summaryResponse struct {
	TotalPets       int            `json:"total_pets"`
	VaccinatedCount int            `json:"vaccinated_count"`
	ComplianceRate  int            `json:"compliance_rate"`
	IncidentCount   int            `json:"incident_count"`
	StrayCount      int            `json:"stray_count"`
	PurokStats      map[string]int `json:"purok_stats"`
	Narrative       string         `json:"narrative"`
	AIGenerated     bool           `json:"ai_generated"`
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		summary, err := svc.Summarize(r.Context(), claims.BarangayID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, summaryResponse{
			TotalPets:       summary.Stats.TotalPets,
			VaccinatedCount: summary.Stats.VaccinatedCount,
			ComplianceRate:  summary.Stats.ComplianceRate,
			IncidentCount:   summary.Stats.IncidentCount,
			StrayCount:      summary.Stats.StrayCount,
			PurokStats:      summary.Stats.PurokStats,
			Narrative:       summary.Narrative,
			AIGenerated:     summary.AIGenerated,
		})
	}
}

// writeJSON se repite en cada módulo a propósito: evita un paquete
// compartido para una función de tres líneas.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
