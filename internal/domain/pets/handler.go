package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	OwnerID          string `json:"owner_id"`
	Name             string `json:"name"`
	Species          string `json:"species"`
	Breed            string `json:"breed"`
	Color            string `json:"color"`
	Sex              string `json:"sex"`
	BirthDate        string `json:"birth_date"` // YYYY-MM-DD opcional
	IsSpayedNeutered bool   `json:"is_spayed_neutered"`
	Photo            string `json:"photo"` // URL o data: inline
}

type petResponse struct {
	ID               string     `json:"id"`
	BarangayID       string     `json:"barangay_id"`
	OwnerID          string     `json:"owner_id"`
	Name             string     `json:"name"`
	Species          string     `json:"species"`
	Breed            string     `json:"breed"`
	Color            string     `json:"color"`
	Sex              string     `json:"sex"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	IsSpayedNeutered bool       `json:"is_spayed_neutered"`
	PhotoURL         string     `json:"photo_url"`
	RegistrationDate time.Time  `json:"registration_date"`
	Status           string     `json:"status"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
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

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), claims.BarangayID, CreateInput{
			OwnerID:          req.OwnerID,
			Name:             req.Name,
			Species:          Species(req.Species),
			Breed:            req.Breed,
			Color:            req.Color,
			Sex:              Sex(req.Sex),
			BirthDate:        bd,
			IsSpayedNeutered: req.IsSpayedNeutered,
			PhotoPayload:     req.Photo,
		})
		if err != nil {
			switch err {
			case ErrNoTenant:
				http.Error(w, err.Error(), http.StatusConflict)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

type updatePetRequest struct {
	Name             string `json:"name"`
	Breed            string `json:"breed"`
	Color            string `json:"color"`
	Sex              string `json:"sex"`
	BirthDate        string `json:"birth_date"` // YYYY-MM-DD opcional
	IsSpayedNeutered *bool  `json:"is_spayed_neutered"`
	Photo            string `json:"photo"`
	Status           string `json:"status"`
}

func updatePetHandler(svc *Service) http.HandlerFunc {
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

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Update(r.Context(), claims.BarangayID, chi.URLParam(r, "petID"), UpdateInput{
			Name:             req.Name,
			Breed:            req.Breed,
			Color:            req.Color,
			Sex:              Sex(req.Sex),
			BirthDate:        bd,
			IsSpayedNeutered: req.IsSpayedNeutered,
			PhotoPayload:     req.Photo,
			Status:           Status(req.Status),
		})
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrNoTenant:
				http.Error(w, err.Error(), http.StatusConflict)
			case ErrInvalidInput:
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), middleware.BarangayID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
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

		err := svc.Delete(r.Context(), claims.BarangayID, chi.URLParam(r, "petID"))
		if err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			case ErrNoTenant:
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:               p.ID,
		BarangayID:       p.BarangayID,
		OwnerID:          p.OwnerID,
		Name:             p.Name,
		Species:          string(p.Species),
		Breed:            p.Breed,
		Color:            p.Color,
		Sex:              string(p.Sex),
		BirthDate:        p.BirthDate,
		IsSpayedNeutered: p.IsSpayedNeutered,
		PhotoURL:         p.PhotoURL,
		RegistrationDate: p.RegistrationDate,
		Status:           string(p.Status),
	}
}

// writeJSON se duplica por módulo a propósito (mismo criterio que el
// resto de handlers): evitar helpers compartidos prematuros.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
