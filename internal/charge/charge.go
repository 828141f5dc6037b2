package charge

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchState filters charges by how far reconciliation has progressed.
type MatchState string

const (
	// MatchStateUnmatched selects charges backed by exactly one of
	// transactions or documents, but not both and not neither.
	MatchStateUnmatched MatchState = "unmatched"
	MatchStateMatched   MatchState = "matched"
	MatchStateAny       MatchState = "any"
)

// DocumentType classifies an ingested document.
type DocumentType string

const (
	DocTypeInvoice        DocumentType = "INVOICE"
	DocTypeInvoiceReceipt DocumentType = "INVOICE_RECEIPT"
	DocTypeReceipt        DocumentType = "RECEIPT"
	DocTypeCreditInvoice  DocumentType = "CREDIT_INVOICE"
	DocTypeProforma       DocumentType = "PROFORMA"
	DocTypeOther          DocumentType = "OTHER"
	DocTypeUnprocessed    DocumentType = "UNPROCESSED"
)

// Charge groups transactions and documents believed to represent one
// real-world financial event.
type Charge struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Transaction is one raw bank or credit-card movement under a charge.
// Amount is signed: negative for outgoing funds.
type Transaction struct {
	ID          uuid.UUID
	ChargeID    uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	BusinessID  *uuid.UUID // counterparty, when the scraper resolved one
	Date        time.Time  // event date
	DebitDate   *time.Time // settlement date, when known
	Description string
	CreatedAt   time.Time
}

// Document is one raw invoice/receipt record under a charge.
type Document struct {
	ID           uuid.UUID
	ChargeID     uuid.UUID
	Type         DocumentType
	TotalAmount  decimal.Decimal
	CurrencyCode string
	Date         time.Time
	CreditorID   *uuid.UUID
	DebtorID     *uuid.UUID
	SerialNumber string
	VATAmount    *decimal.Decimal
	CreatedAt    time.Time
}
