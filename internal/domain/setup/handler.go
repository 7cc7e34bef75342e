package setup

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el flujo de registro. Va fuera del middleware
// de tenant: aquí todavía no existe el barangay.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/setup", func(sr chi.Router) {
		sr.Post("/initiate", initiateHandler(svc))
		sr.Post("/verify", verifyHandler(svc))
		sr.Post("/request-token", requestTokenHandler(svc))
		sr.Post("/finalize", finalizeHandler(svc))
	})
}

type locationPayload struct {
	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`
}

func (p locationPayload) details() LocationDetails {
	return LocationDetails{
		Region:   p.Region,
		Province: p.Province,
		City:     p.City,
		Barangay: p.Barangay,
	}
}

type initiateRequest struct {
	Location locationPayload `json:"location"`
}

type verifyRequest struct {
	PublicCode string `json:"public_code"`
	SecretCode string `json:"secret_code"`
}

type finalizeRequest struct {
	AdminFullName string          `json:"admin_full_name"`
	Username      string          `json:"username"`
	Password      string          `json:"password"`
	Token         string          `json:"token"`
	Location      locationPayload `json:"location"`
}

func initiateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req initiateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		publicCode, err := svc.Initiate(r.Context(), req.Location.details())
		if err != nil {
			writeSetupError(w, err)
			return
		}

		// Solo el código público: el secreto va por el canal del
		// operador.
		writeJSON(w, http.StatusCreated, map[string]string{"public_code": publicCode})
	}
}

func verifyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ok, err := svc.Verify(r.Context(), req.PublicCode, req.SecretCode)
		if err != nil {
			writeSetupError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"verified": ok})
	}
}

func requestTokenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RequestAdminToken(r.Context()); err != nil {
			writeSetupError(w, err)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func finalizeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req finalizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, err := svc.Finalize(r.Context(), FinalizeInput{
			AdminFullName: req.AdminFullName,
			Username:      req.Username,
			Password:      req.Password,
			Token:         req.Token,
			Location:      req.Location.details(),
		})
		if err != nil {
			writeSetupError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"barangay_id":    result.BarangayID,
			"community_code": result.Settings.CommunityCode,
			"admin_id":       result.Admin.ID,
		})
	}
}

func writeSetupError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrAlreadyRegistered:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrUsernameTaken:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrBadToken:
		http.Error(w, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON se repite en cada módulo a propósito: evita un paquete
// compartido para una función de tres líneas.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
