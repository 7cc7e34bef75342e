package addresses

import (
	"encoding/json"
	"net/http"

	"barangay-pet-registry/internal/adapters/psgc"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta el cascade de direcciones PSGC que alimenta el
// selector del flujo de setup. Va fuera del middleware de tenant: quien
// registra un barangay todavía no tiene sesión.
func RegisterRoutes(r chi.Router, client *psgc.Client) {
	r.Route("/addresses", func(ar chi.Router) {
		ar.Get("/regions", regionsHandler(client))
		ar.Get("/regions/{code}/provinces", provincesHandler(client))
		ar.Get("/provinces/{code}/cities", citiesHandler(client))
		ar.Get("/cities/{code}/barangays", barangaysHandler(client))
	})
}

type itemResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func regionsHandler(client *psgc.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := client.Regions(r.Context())
		writeItems(w, items, err)
	}
}

func provincesHandler(client *psgc.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := client.Provinces(r.Context(), chi.URLParam(r, "code"))
		writeItems(w, items, err)
	}
}

func citiesHandler(client *psgc.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := client.Cities(r.Context(), chi.URLParam(r, "code"))
		writeItems(w, items, err)
	}
}

func barangaysHandler(client *psgc.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := client.Barangays(r.Context(), chi.URLParam(r, "code"))
		writeItems(w, items, err)
	}
}

func writeItems(w http.ResponseWriter, items []psgc.Item, err error) {
	if err != nil {
		// upstream caído o código inválido: el selector reintenta
		http.Error(w, "address lookup failed", http.StatusBadGateway)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse{Code: it.Code, Name: it.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeJSON se repite en cada módulo a propósito: evita un paquete
// compartido para una función de tres líneas.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
