package client

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/business"
)

type Handler struct {
	svc *business.Service
}

func NewHandler(svc *business.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.register)
	r.Get("/{businessID}", h.get)
}

type registerRequest struct {
	OwnerID    uuid.UUID `json:"owner_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
}

type clientResponse struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	BusinessID uuid.UUID `json:"business_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}

// register marks a counterparty business as a revenue client, which
// relaxes date scoring for its matches.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.OwnerID == uuid.Nil || req.BusinessID == uuid.Nil {
		http.Error(w, "owner_id and business_id are required", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Register(r.Context(), req.OwnerID, req.BusinessID, req.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(chi.URLParam(r, "businessID"))
	if err != nil {
		http.Error(w, "invalid business id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.ClientByBusinessID(r.Context(), businessID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if c == nil {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(c *business.Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		OwnerID:    c.OwnerID,
		BusinessID: c.BusinessID,
		Name:       c.Name,
		CreatedAt:  c.CreatedAt,
	}
}
