package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/charge"
	"github.com/accounter-io/accounter/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	chargeSvc *charge.Service
}

func NewHandler(importSvc *importer.Service, chargeSvc *charge.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		chargeSvc: chargeSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/transactions", h.importTransactions)
}

type importedCharge struct {
	ChargeID    uuid.UUID `json:"charge_id"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
}

type importResponse struct {
	Imported int              `json:"imported"`
	Charges  []importedCharge `json:"charges"`
}

// importTransactions ingests an uploaded bank export. Every parsed row
// becomes its own charge with a single transaction, ready for the
// auto-matcher to pair against document charges.
func (h *Handler) importTransactions(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	ownerID, err := uuid.Parse(r.FormValue("owner_id"))
	if err != nil {
		http.Error(w, "owner_id form value is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file form field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := importResponse{Charges: []importedCharge{}}

	for _, p := range params {
		p.OwnerID = ownerID

		c, err := h.chargeSvc.IngestTransaction(r.Context(), p)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp.Imported++
		resp.Charges = append(resp.Charges, importedCharge{
			ChargeID:    c.ID,
			Amount:      p.Amount.String(),
			Currency:    p.Currency,
			Date:        p.Date,
			Description: p.Description,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
