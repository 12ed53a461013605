package ratecard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/printmate/backend/internal/pricing"
)

// Handler exposes rate card HTTP endpoints. Mutating routes are admin-only.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(router *chi.Mux, requireAdmin func(http.Handler) http.Handler) {
	router.Route("/api/v1/rate-cards", func(r chi.Router) {
		r.Get("/active", h.getActive) // GET /api/v1/rate-cards/active

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", h.create)                  // POST   /api/v1/rate-cards
			r.Get("/", h.list)                     // GET    /api/v1/rate-cards
			r.Get("/{id}", h.get)                  // GET    /api/v1/rate-cards/{id}
			r.Post("/{id}/activate", h.activate)   // POST   /api/v1/rate-cards/{id}/activate
			r.Post("/{id}/retire", h.retire)       // POST   /api/v1/rate-cards/{id}/retire
		})
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	rc, err := h.service.CreateRateCard(r.Context(), req)
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, rc)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rc, err := h.service.GetRateCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rc)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.ListRateCards(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, cards)
}

func (h *Handler) getActive(w http.ResponseWriter, r *http.Request) {
	table, id := h.service.ActiveTable(r.Context())
	respond(w, http.StatusOK, map[string]interface{}{
		"rate_card_id": id,
		"table":        table,
	})
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	rc, err := h.service.ActivateRateCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rc)
}

func (h *Handler) retire(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RetireRateCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "rate card retired"})
}

func statusFor(err error) int {
	var cerr *pricing.ConfigurationError
	if errors.As(err, &cerr) {
		return http.StatusUnprocessableEntity
	}
	msg := err.Error()
	if strings.Contains(msg, "not found") {
		return http.StatusNotFound
	}
	if strings.Contains(msg, "required") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
