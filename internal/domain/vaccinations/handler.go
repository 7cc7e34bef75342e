package vaccinations

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Post("/", createVaccinationHandler(svc))
		vr.Get("/", listVaccinationsHandler(svc))
	})

	// historial por mascota (ordenado por fecha desc)
	r.Get("/pets/{petID}/vaccinations", listByPetHandler(svc))
}

type createVaccinationRequest struct {
	PetID        string `json:"pet_id"`
	VaccineName  string `json:"vaccine_name"`
	VaccineType  string `json:"vaccine_type"`
	Manufacturer string `json:"manufacturer"`
	LotNumber    string `json:"lot_number"`

	DateGiven      string `json:"date_given"`      // YYYY-MM-DD
	ExpirationDate string `json:"expiration_date"` // YYYY-MM-DD opcional
	NextDueDate    string `json:"next_due_date"`   // YYYY-MM-DD opcional

	WeightKg    *float64 `json:"weight_kg"`
	Temperature *float64 `json:"temperature"`

	Veterinarian string `json:"veterinarian"`
	VetLicenseNo string `json:"vet_license_no"`
	ClinicName   string `json:"clinic_name"`
	Notes        string `json:"notes"`
}

type vaccinationResponse struct {
	ID           string `json:"id"`
	BarangayID   string `json:"barangay_id"`
	PetID        string `json:"pet_id"`
	VaccineName  string `json:"vaccine_name"`
	VaccineType  string `json:"vaccine_type"`
	Manufacturer string `json:"manufacturer,omitempty"`
	LotNumber    string `json:"lot_number"`

	DateGiven      time.Time  `json:"date_given"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	NextDueDate    *time.Time `json:"next_due_date,omitempty"`

	WeightKg    *float64 `json:"weight_kg,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`

	Veterinarian string `json:"veterinarian"`
	VetLicenseNo string `json:"vet_license_no"`
	ClinicName   string `json:"clinic_name"`
	Notes        string `json:"notes,omitempty"`

	Protected bool `json:"protected"`
}

func createVaccinationHandler(svc *Service) http.HandlerFunc {
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

		var req createVaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dateGiven, err := parseDate(req.DateGiven)
		if err != nil || dateGiven == nil {
			http.Error(w, "date_given must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		expiration, err := parseDate(req.ExpirationDate)
		if err != nil {
			http.Error(w, "expiration_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		nextDue, err := parseDate(req.NextDueDate)
		if err != nil {
			http.Error(w, "next_due_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), claims.BarangayID, CreateInput{
			PetID:          req.PetID,
			VaccineName:    req.VaccineName,
			VaccineType:    VaccineType(req.VaccineType),
			Manufacturer:   req.Manufacturer,
			LotNumber:      req.LotNumber,
			DateGiven:      *dateGiven,
			ExpirationDate: expiration,
			NextDueDate:    nextDue,
			WeightKg:       req.WeightKg,
			Temperature:    req.Temperature,
			Veterinarian:   req.Veterinarian,
			VetLicenseNo:   req.VetLicenseNo,
			ClinicName:     req.ClinicName,
			Notes:          req.Notes,
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

		writeJSON(w, http.StatusCreated, toVaccinationResponse(v, time.Now()))
	}
}

func listVaccinationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func listByPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), middleware.BarangayID(r.Context()), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toResponses(items))
	}
}

func toResponses(items []Vaccination) []vaccinationResponse {
	now := time.Now()
	out := make([]vaccinationResponse, 0, len(items))
	for _, v := range items {
		out = append(out, toVaccinationResponse(v, now))
	}
	return out
}

func toVaccinationResponse(v Vaccination, now time.Time) vaccinationResponse {
	return vaccinationResponse{
		ID:             v.ID,
		BarangayID:     v.BarangayID,
		PetID:          v.PetID,
		VaccineName:    v.VaccineName,
		VaccineType:    string(v.VaccineType),
		Manufacturer:   v.Manufacturer,
		LotNumber:      v.LotNumber,
		DateGiven:      v.DateGiven,
		ExpirationDate: v.ExpirationDate,
		NextDueDate:    v.NextDueDate,
		WeightKg:       v.WeightKg,
		Temperature:    v.Temperature,
		Veterinarian:   v.Veterinarian,
		VetLicenseNo:   v.VetLicenseNo,
		ClinicName:     v.ClinicName,
		Notes:          v.Notes,
		Protected:      v.Protected(now),
	}
}

func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
