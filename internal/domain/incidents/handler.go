package incidents

import (
	"encoding/json"
	"net/http"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/incidents", func(ir chi.Router) {
		ir.Post("/", createIncidentHandler(svc))
		ir.Get("/", listIncidentsHandler(svc))
		ir.Patch("/{incidentID}/status", updateIncidentStatusHandler(svc))
	})
}

type createIncidentRequest struct {
	PetID          *string `json:"pet_id"`
	VictimName     string  `json:"victim_name"`
	VictimContact  string  `json:"victim_contact"`
	Date           string  `json:"date"` // YYYY-MM-DD
	Location       string  `json:"location"`
	Description    string  `json:"description"`
	BodyPartBitten string  `json:"body_part_bitten"`
	IsProvoked     bool    `json:"is_provoked"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type incidentResponse struct {
	ID                   string    `json:"id"`
	BarangayID           string    `json:"barangay_id"`
	PetID                *string   `json:"pet_id,omitempty"`
	VictimName           string    `json:"victim_name"`
	VictimContact        string    `json:"victim_contact"`
	Date                 time.Time `json:"date"`
	Location             string    `json:"location"`
	Description          string    `json:"description"`
	BodyPartBitten       string    `json:"body_part_bitten"`
	IsProvoked           bool      `json:"is_provoked"`
	Status               string    `json:"status"`
	ObservationStartDate time.Time `json:"observation_start_date"`
}

func createIncidentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createIncidentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		i, err := svc.Create(r.Context(), claims.BarangayID, CreateInput{
			PetID:          req.PetID,
			VictimName:     req.VictimName,
			VictimContact:  req.VictimContact,
			Date:           date,
			Location:       req.Location,
			Description:    req.Description,
			BodyPartBitten: req.BodyPartBitten,
			IsProvoked:     req.IsProvoked,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			case ErrNoTenant:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toIncidentResponse(i))
	}
}

func listIncidentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]incidentResponse, 0, len(items))
		for _, i := range items {
			out = append(out, toIncidentResponse(i))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateIncidentStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		i, err := svc.UpdateStatus(r.Context(), claims.BarangayID, chi.URLParam(r, "incidentID"), Status(req.Status))
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "incident not found", http.StatusNotFound)
			case ErrBadState:
				http.Error(w, err.Error(), http.StatusConflict)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toIncidentResponse(i))
	}
}

func toIncidentResponse(i Incident) incidentResponse {
	return incidentResponse{
		ID:                   i.ID,
		BarangayID:           i.BarangayID,
		PetID:                i.PetID,
		VictimName:           i.VictimName,
		VictimContact:        i.VictimContact,
		Date:                 i.Date,
		Location:             i.Location,
		Description:          i.Description,
		BodyPartBitten:       i.BodyPartBitten,
		IsProvoked:           i.IsProvoked,
		Status:               string(i.Status),
		ObservationStartDate: i.ObservationStartDate,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
