package announcements

import (
	"encoding/json"
	"net/http"
	"time"

	"barangay-pet-registry/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/announcements", func(ar chi.Router) {
		ar.Post("/", createAnnouncementHandler(svc))
		ar.Get("/", listAnnouncementsHandler(svc))
		ar.Delete("/{announcementID}", deleteAnnouncementHandler(svc))
		ar.Post("/{announcementID}/like", likeAnnouncementHandler(svc))
	})
}

type createAnnouncementRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Photo    string `json:"photo"`
	Link     string `json:"link"`
}

type linkPreviewResponse struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Domain      string `json:"domain"`
}

type announcementResponse struct {
	ID          string               `json:"id"`
	AuthorName  string               `json:"author_name"`
	AuthorRole  string               `json:"author_role"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Category    string               `json:"category"`
	PhotoURL    string               `json:"photo_url,omitempty"`
	LinkPreview *linkPreviewResponse `json:"link_preview,omitempty"`
	DatePosted  string               `json:"date_posted"`
	Likes       int                  `json:"likes"`
}

func toAnnouncementResponse(a Announcement) announcementResponse {
	resp := announcementResponse{
		ID:         a.ID,
		AuthorName: a.AuthorName,
		AuthorRole: a.AuthorRole,
		Title:      a.Title,
		Content:    a.Content,
		Category:   string(a.Category),
		PhotoURL:   a.PhotoURL,
		DatePosted: a.DatePosted.Format(time.RFC3339),
		Likes:      a.Likes,
	}
	if a.LinkPreview != nil {
		resp.LinkPreview = &linkPreviewResponse{
			URL:         a.LinkPreview.URL,
			Title:       a.LinkPreview.Title,
			Description: a.LinkPreview.Description,
			ImageURL:    a.LinkPreview.ImageURL,
			Domain:      a.LinkPreview.Domain,
		}
	}
	return resp
}

func createAnnouncementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		var req createAnnouncementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), claims.BarangayID, claims.UserID, CreateInput{
			Title:        req.Title,
			Content:      req.Content,
			Category:     Category(req.Category),
			PhotoPayload: req.Photo,
			Link:         req.Link,
		})
		if err != nil {
			writeAnnouncementError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnnouncementResponse(created))
	}
}

func listAnnouncementsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			writeAnnouncementError(w, err)
			return
		}

		out := make([]announcementResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnnouncementResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteAnnouncementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		err := svc.Delete(r.Context(), claims.BarangayID, chi.URLParam(r, "announcementID"))
		if err != nil {
			writeAnnouncementError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func likeAnnouncementHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || !claims.CanWrite() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		likes, err := svc.Like(r.Context(), claims.BarangayID, chi.URLParam(r, "announcementID"))
		if err != nil {
			writeAnnouncementError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"likes": likes})
	}
}

func writeAnnouncementError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
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
