package strays

import (
	"encoding/json"
	"net/http"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/strays", func(sr chi.Router) {
		sr.Post("/", createStrayHandler(svc))
		sr.Get("/", listStraysHandler(svc))
		sr.Patch("/{strayID}/status", updateStrayStatusHandler(svc))
	})
}

type createStrayRequest struct {
	ReporterName    string   `json:"reporter_name"`
	ReporterContact string   `json:"reporter_contact"`
	Species         string   `json:"species"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Photo           string   `json:"photo"`
	IsEarTipped     bool     `json:"is_ear_tipped"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

type updateStrayStatusRequest struct {
	Status string `json:"status"`
}

type strayResponse struct {
	ID              string   `json:"id"`
	ReporterName    string   `json:"reporter_name"`
	ReporterContact string   `json:"reporter_contact,omitempty"`
	Species         string   `json:"species"`
	Location        string   `json:"location"`
	Description     string   `json:"description,omitempty"`
	PhotoURL        string   `json:"photo_url,omitempty"`
	DateReported    string   `json:"date_reported"`
	Status          string   `json:"status"`
	IsEarTipped     bool     `json:"is_ear_tipped"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
}

// createStrayHandler acepta también sesiones Guest: es la vía de
// reportes del portal público.
func createStrayHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createStrayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), claims.BarangayID, claims.Role, CreateInput{
			ReporterName:    req.ReporterName,
			ReporterContact: req.ReporterContact,
			Species:         Species(req.Species),
			Location:        req.Location,
			Description:     req.Description,
			PhotoPayload:    req.Photo,
			IsEarTipped:     req.IsEarTipped,
			Latitude:        req.Latitude,
			Longitude:       req.Longitude,
		})
		if err != nil {
			writeStrayError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toStrayResponse(created))
	}
}

func listStraysHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		barangayID := middleware.BarangayID(r.Context())

		var (
			items []StrayReport
			err   error
		)
		if r.URL.Query().Get("active") == "true" {
			items, err = svc.ListActive(r.Context(), barangayID)
		} else {
			items, err = svc.List(r.Context(), barangayID)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]strayResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toStrayResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateStrayStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updateStrayStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateStatus(
			r.Context(),
			claims.BarangayID,
			chi.URLParam(r, "strayID"),
			Status(req.Status),
		)
		if err != nil {
			writeStrayError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toStrayResponse(updated))
	}
}

func toStrayResponse(s StrayReport) strayResponse {
	return strayResponse{
		ID:              s.ID,
		ReporterName:    s.ReporterName,
		ReporterContact: s.ReporterContact,
		Species:         string(s.Species),
		Location:        s.Location,
		Description:     s.Description,
		PhotoURL:        s.PhotoURL,
		DateReported:    s.DateReported.Format(time.RFC3339),
		Status:          string(s.Status),
		IsEarTipped:     s.IsEarTipped,
		Latitude:        s.Latitude,
		Longitude:       s.Longitude,
	}
}

func writeStrayError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNoTenant:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case ErrBadState:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON se duplica por módulo a propósito (mismo criterio que el
// resto de handlers): evitar helpers compartidos prematuros.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
