package inventory

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes paper stock HTTP endpoints. Writes are admin-only.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, requireAdmin func(http.Handler) http.Handler) {
	router.Route("/api/v1/inventory/paper", func(r chi.Router) {
		r.Get("/", h.list)                // GET /api/v1/inventory/paper
		r.Get("/low-stock", h.listLow)    // GET /api/v1/inventory/paper/low-stock
		r.Get("/{quality}", h.get)        // GET /api/v1/inventory/paper/{quality}

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.create)                    // POST /api/v1/inventory/paper
			r.Post("/{quality}/adjust", h.adjust)    // POST /api/v1/inventory/paper/{quality}/adjust
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ps, err := h.service.CreateStock(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "required") || strings.Contains(err.Error(), "must be") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, ps)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ps, err := h.service.GetStock(r.Context(), chi.URLParam(r, "quality"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ps)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.service.ListStock(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stocks)
}

func (h *Handler) listLow(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.service.ListLowStock(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stocks)
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ps, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "quality"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "insufficient stock") {
			code = http.StatusUnprocessableEntity
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, ps)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
