package notifications

import (
	"encoding/json"
	"net/http"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notifications", func(nr chi.Router) {
		nr.Get("/", listNotificationsHandler(svc))
		nr.Post("/{notificationID}/read", markReadHandler(svc))
		nr.Post("/read-all", markAllReadHandler(svc))
	})
}

type notificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	IsRead    bool   `json:"is_read"`
}

func listNotificationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			writeNotificationError(w, err)
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, notificationResponse{
				ID:        n.ID,
				Title:     n.Title,
				Message:   n.Message,
				Type:      string(n.Type),
				Timestamp: n.Timestamp.Format(time.RFC3339),
				IsRead:    n.IsRead,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func markReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		err := svc.MarkRead(r.Context(), claims.BarangayID, chi.URLParam(r, "notificationID"))
		if err != nil {
			writeNotificationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func markAllReadHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		if err := svc.MarkAllRead(r.Context(), claims.BarangayID); err != nil {
			writeNotificationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeNotificationError(w http.ResponseWriter, err error) {
	switch err {
	case ErrNoTenant:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
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
