package settings

import (
	"encoding/json"
	"net/http"

	"barangay-pet-registry/internal/middleware"
	"barangay-pet-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/settings", func(sr chi.Router) {
		sr.Get("/", getSettingsHandler(svc))
		sr.Patch("/", updateSettingsHandler(svc))
		sr.Post("/rotate-code", rotateCodeHandler(svc))
	})
}

// RegisterPortalRoutes va fuera del middleware de tenant: el visitante
// aún no tiene sesión.
func RegisterPortalRoutes(r chi.Router, svc *Service) {
	r.Post("/portal/enter", enterPortalHandler(svc))
}

type updateSettingsRequest struct {
	BarangayName     string `json:"barangay_name"`
	Municipality     string `json:"municipality"`
	Province         string `json:"province"`
	Logo             string `json:"logo"`
	ReminderDays     *int   `json:"reminder_days"`
	SupportEmail     string `json:"support_email"`
	EmergencyHotline string `json:"emergency_hotline"`
}

type enterPortalRequest struct {
	CommunityCode string `json:"community_code"`
}

type settingsResponse struct {
	BarangayID       string `json:"barangay_id"`
	BarangayName     string `json:"barangay_name"`
	Municipality     string `json:"municipality,omitempty"`
	Province         string `json:"province,omitempty"`
	LogoURL          string `json:"logo_url,omitempty"`
	ReminderDays     int    `json:"reminder_days"`
	SupportEmail     string `json:"support_email,omitempty"`
	EmergencyHotline string `json:"emergency_hotline,omitempty"`
	CommunityCode    string `json:"community_code,omitempty"`
}

func toSettingsResponse(s SystemSettings, includeCode bool) settingsResponse {
	resp := settingsResponse{
		BarangayID:       s.BarangayID,
		BarangayName:     s.BarangayName,
		Municipality:     s.Municipality,
		Province:         s.Province,
		LogoURL:          s.LogoURL,
		ReminderDays:     s.ReminderDays,
		SupportEmail:     s.SupportEmail,
		EmergencyHotline: s.EmergencyHotline,
	}
	if includeCode {
		resp.CommunityCode = s.CommunityCode
	}
	return resp
}

func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		cfg, err := svc.Get(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			writeSettingsError(w, err)
			return
		}

		// El community code solo lo ve staff: al Guest no le sirve y
		// filtrarlo evita que un visitante lo republique.
		writeJSON(w, http.StatusOK, toSettingsResponse(cfg, claims.CanWrite()))
	}
}

func updateSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req updateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		cfg, err := svc.Update(r.Context(), claims.BarangayID, UpdateInput{
			BarangayName:     req.BarangayName,
			Municipality:     req.Municipality,
			Province:         req.Province,
			LogoPayload:      req.Logo,
			ReminderDays:     req.ReminderDays,
			SupportEmail:     req.SupportEmail,
			EmergencyHotline: req.EmergencyHotline,
		})
		if err != nil {
			writeSettingsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSettingsResponse(cfg, true))
	}
}

func rotateCodeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || claims.Role != auth.RoleAdmin {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		cfg, err := svc.RotateCommunityCode(r.Context(), claims.BarangayID)
		if err != nil {
			writeSettingsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toSettingsResponse(cfg, true))
	}
}

func enterPortalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enterPortalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		token, cfg, err := svc.EnterPortal(r.Context(), req.CommunityCode)
		if err != nil {
			writeSettingsError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"token":    token,
			"settings": toSettingsResponse(cfg, false),
		})
	}
}

func writeSettingsError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNoTenant:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case ErrBadCode:
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
