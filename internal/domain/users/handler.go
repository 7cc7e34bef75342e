package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"barangay-pet-registry/internal/middleware"
	"barangay-pet-registry/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta la gestión de cuentas. Solo admins pueden
// crear, editar o borrar cuentas del barangay.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc))
	})
}

// RegisterAuthRoutes monta el login fuera del middleware de tenant:
// el login todavía no tiene sesión.
func RegisterAuthRoutes(r chi.Router, svc *Service) {
	r.Post("/auth/login", loginHandler(svc))
}

// RegisterLogoutRoute va dentro del middleware: necesita las claims.
func RegisterLogoutRoute(r chi.Router, svc *Service) {
	r.Post("/auth/logout", logoutHandler(svc))
}

type createUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	Status     string  `json:"status"`
	LastActive *string `json:"last_active,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toUserResponse(u User) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if at := u.LastActive(); at != nil {
		s := at.Format(time.RFC3339)
		resp.LastActive = &s
	}
	return resp
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireAdmin(w, r.Context())
		if !ok {
			return
		}

		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		created, err := svc.Create(r.Context(), claims.BarangayID, CreateInput{
			Username: req.Username,
			FullName: req.FullName,
			Password: req.Password,
			Role:     auth.Role(req.Role),
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(created))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.BarangayID(r.Context()))
		if err != nil {
			writeUserError(w, err)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Get(r.Context(), middleware.BarangayID(r.Context()), chi.URLParam(r, "userID"))
		if err != nil {
			writeUserError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		// Un no-admin solo puede editar su propio perfil, y nunca su
		// rol ni su estado.
		if claims.Role != auth.RoleAdmin {
			if claims.UserID != chi.URLParam(r, "userID") || req.Role != "" || req.Status != "" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		updated, err := svc.Update(r.Context(), claims.BarangayID, chi.URLParam(r, "userID"), UpdateInput{
			FullName: req.FullName,
			Role:     auth.Role(req.Role),
			Status:   Status(req.Status),
			Password: req.Password,
		})
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(updated))
	}
}

func deleteUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireAdmin(w, r.Context())
		if !ok {
			return
		}

		err := svc.Delete(r.Context(), claims.BarangayID, claims.UserID, chi.URLParam(r, "userID"))
		if err != nil {
			writeUserError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		result, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeUserError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"token": result.Token,
			"user":  toUserResponse(result.User),
		})
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			http.Error(w, "missing token", http.StatusBadRequest)
			return
		}

		if err := svc.Logout(r.Context(), token, claims); err != nil {
			writeUserError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func requireAdmin(w http.ResponseWriter, ctx context.Context) (auth.Claims, bool) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok || claims.Role != auth.RoleAdmin {
		http.Error(w, "forbidden", http.StatusForbidden)
		return auth.Claims{}, false
	}
	return claims, true
}

func writeUserError(w http.ResponseWriter, err error) {
	switch err {
	case ErrInvalidInput:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case ErrNoTenant:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case ErrDuplicateUsername:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrSelfDelete:
		http.Error(w, err.Error(), http.StatusConflict)
	case ErrBadCredentials:
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
