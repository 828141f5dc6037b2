package matching

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/matching"
)

const defaultHistoryLimit = 50

// HistorySource serves the recorded merge audit trail.
type HistorySource interface {
	History(ctx context.Context, limit int) ([]matching.MergeRecord, error)
}

type Handler struct {
	svc     *matching.Service
	history HistorySource
}

func NewHandler(svc *matching.Service, history HistorySource) *Handler {
	return &Handler{svc: svc, history: history}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/run", h.run)
	r.Get("/proposals", h.proposals)
	r.Post("/merge", h.merge)
	r.Get("/history", h.mergeHistory)
}

type runRequest struct {
	AdminBusinessID uuid.UUID `json:"admin_business_id"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.svc.AutoMatch(r.Context(), req.AdminBusinessID)
	if err != nil {
		if errors.Is(err, matching.ErrAdminBusinessNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	writeJSON(w, result)
}

func (h *Handler) proposals(w http.ResponseWriter, r *http.Request) {
	adminID, err := uuid.Parse(r.URL.Query().Get("admin_business_id"))
	if err != nil {
		http.Error(w, "admin_business_id query parameter is required", http.StatusBadRequest)
		return
	}

	proposals, err := h.svc.Preview(r.Context(), adminID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if proposals == nil {
		proposals = []matching.Proposal{}
	}

	writeJSON(w, proposals)
}

type mergeRequest struct {
	TransactionChargeID uuid.UUID `json:"transaction_charge_id"`
	DocumentChargeID    uuid.UUID `json:"document_charge_id"`
}

func (h *Handler) merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.TransactionChargeID == uuid.Nil || req.DocumentChargeID == uuid.Nil {
		http.Error(w, "transaction_charge_id and document_charge_id are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Merge(r.Context(), req.DocumentChargeID, req.TransactionChargeID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) mergeHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	records, err := h.history.History(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if records == nil {
		records = []matching.MergeRecord{}
	}

	writeJSON(w, records)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
