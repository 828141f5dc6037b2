package charge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/charge"
)

type Handler struct {
	svc *charge.Service
}

func NewHandler(svc *charge.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
}

type transactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	BusinessID  *uuid.UUID `json:"business_id,omitempty"`
	Date        time.Time  `json:"date"`
	DebitDate   *time.Time `json:"debit_date,omitempty"`
	Description string     `json:"description"`
}

type documentResponse struct {
	ID           uuid.UUID           `json:"id"`
	Type         charge.DocumentType `json:"type"`
	TotalAmount  string              `json:"total_amount"`
	CurrencyCode string              `json:"currency_code"`
	Date         time.Time           `json:"date"`
	CreditorID   *uuid.UUID          `json:"creditor_id,omitempty"`
	DebtorID     *uuid.UUID          `json:"debtor_id,omitempty"`
	SerialNumber string              `json:"serial_number,omitempty"`
}

type chargeResponse struct {
	ID           uuid.UUID             `json:"id"`
	OwnerID      uuid.UUID             `json:"owner_id"`
	CreatedAt    time.Time             `json:"created_at"`
	Transactions []transactionResponse `json:"transactions,omitempty"`
	Documents    []documentResponse    `json:"documents,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, err := uuid.Parse(r.URL.Query().Get("owner_id"))
	if err != nil {
		http.Error(w, "owner_id query parameter is required", http.StatusBadRequest)
		return
	}

	state := charge.MatchState(r.URL.Query().Get("match_state"))
	if state == "" {
		state = charge.MatchStateAny
	}

	charges, err := h.svc.List(r.Context(), charge.ListFilter{OwnerID: ownerID, MatchState: state})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]chargeResponse, 0, len(charges))
	for _, c := range charges {
		resp = append(resp, chargeResponse{ID: c.ID, OwnerID: c.OwnerID, CreatedAt: c.CreatedAt})
	}

	writeJSON(w, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid charge id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if c == nil {
		http.Error(w, "charge not found", http.StatusNotFound)
		return
	}

	txs, err := h.svc.TransactionsByCharge(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	docs, err := h.svc.DocumentsByCharge(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := chargeResponse{ID: c.ID, OwnerID: c.OwnerID, CreatedAt: c.CreatedAt}

	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:          tx.ID,
			Amount:      tx.Amount.String(),
			Currency:    tx.Currency,
			BusinessID:  tx.BusinessID,
			Date:        tx.Date,
			DebitDate:   tx.DebitDate,
			Description: tx.Description,
		})
	}

	for _, doc := range docs {
		resp.Documents = append(resp.Documents, documentResponse{
			ID:           doc.ID,
			Type:         doc.Type,
			TotalAmount:  doc.TotalAmount.String(),
			CurrencyCode: doc.CurrencyCode,
			Date:         doc.Date,
			CreditorID:   doc.CreditorID,
			DebtorID:     doc.DebtorID,
			SerialNumber: doc.SerialNumber,
		})
	}

	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
