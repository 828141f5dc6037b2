package matching

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounter-io/accounter/internal/charge"
)

var (
	// ErrMultipleCurrencies means the records under one charge do not agree
	// on a single currency. Upstream ingestion should never produce this.
	ErrMultipleCurrencies = errors.New("charge spans multiple currencies")

	// ErrMultipleBusinesses means the transactions under one charge carry
	// more than one distinct counterparty business.
	ErrMultipleBusinesses = errors.New("charge spans multiple counterparty businesses")

	// ErrNoCounterparty means neither the creditor nor the debtor of a
	// document is the owner business, so no counterparty can be resolved.
	ErrNoCounterparty = errors.New("document has no resolvable counterparty")

	// ErrAmbiguousCounterparty means the owner appears on both sides of a
	// document, or documents under one charge resolve to different
	// counterparties.
	ErrAmbiguousCounterparty = errors.New("document counterparty is ambiguous")

	// ErrEmptyCharge means a charge aggregate was built from zero records.
	ErrEmptyCharge = errors.New("charge has no records")
)

// TransactionCharge is a charge currently backed only by transactions.
type TransactionCharge struct {
	ChargeID     uuid.UUID
	Transactions []*charge.Transaction
}

// DocumentCharge is a charge currently backed only by documents.
type DocumentCharge struct {
	ChargeID  uuid.UUID
	Documents []*charge.Document
}

// AggregatedTransaction summarizes the transactions under one charge.
// Amount is the arithmetic sum of the signed per-transaction amounts.
type AggregatedTransaction struct {
	Amount      decimal.Decimal
	Currency    string
	BusinessID  *uuid.UUID
	Date        time.Time
	DebitDate   *time.Time
	Description string
}

// aggregatedDocument summarizes the documents under one charge, with the
// counterparty already resolved relative to the owner business.
type aggregatedDocument struct {
	Total          decimal.Decimal
	CurrencyCode   string
	CounterpartyID *uuid.UUID
	Date           time.Time
	Type           charge.DocumentType
}

// AggregateTransactions folds the transactions of a charge into one summary.
// All transactions must share one currency and at most one distinct non-null
// counterparty business.
func AggregateTransactions(tc TransactionCharge) (*AggregatedTransaction, error) {
	if len(tc.Transactions) == 0 {
		return nil, fmt.Errorf("aggregating charge %s: %w", tc.ChargeID, ErrEmptyCharge)
	}

	first := tc.Transactions[0]

	agg := &AggregatedTransaction{
		Currency:    first.Currency,
		Date:        first.Date,
		Description: first.Description,
	}

	for _, tx := range tc.Transactions {
		if tx.Currency != agg.Currency {
			return nil, fmt.Errorf("aggregating charge %s: %w", tc.ChargeID, ErrMultipleCurrencies)
		}

		if tx.BusinessID != nil {
			if agg.BusinessID != nil && *agg.BusinessID != *tx.BusinessID {
				return nil, fmt.Errorf("aggregating charge %s: %w", tc.ChargeID, ErrMultipleBusinesses)
			}

			agg.BusinessID = tx.BusinessID
		}

		if agg.DebitDate == nil && tx.DebitDate != nil {
			agg.DebitDate = tx.DebitDate
		}

		agg.Amount = agg.Amount.Add(tx.Amount)
	}

	return agg, nil
}

// resolveCounterparty identifies the non-owner side of a document. The
// owner must appear on exactly one side; the other side is the
// counterparty and may be unknown (nil).
func resolveCounterparty(doc *charge.Document, ownerID uuid.UUID) (*uuid.UUID, error) {
	creditorIsOwner := doc.CreditorID != nil && *doc.CreditorID == ownerID
	debtorIsOwner := doc.DebtorID != nil && *doc.DebtorID == ownerID

	switch {
	case creditorIsOwner && debtorIsOwner:
		return nil, fmt.Errorf("document %s: %w", doc.ID, ErrAmbiguousCounterparty)
	case creditorIsOwner:
		return doc.DebtorID, nil
	case debtorIsOwner:
		return doc.CreditorID, nil
	default:
		return nil, fmt.Errorf("document %s: %w", doc.ID, ErrNoCounterparty)
	}
}

// aggregateDocuments folds the documents of a charge into one summary. All
// documents must share one currency code and resolve to the same
// counterparty relative to the owner.
func aggregateDocuments(dc DocumentCharge, ownerID uuid.UUID) (*aggregatedDocument, error) {
	if len(dc.Documents) == 0 {
		return nil, fmt.Errorf("aggregating charge %s: %w", dc.ChargeID, ErrEmptyCharge)
	}

	first := dc.Documents[0]

	agg := &aggregatedDocument{
		CurrencyCode: first.CurrencyCode,
		Date:         first.Date,
		Type:         first.Type,
	}

	for i, doc := range dc.Documents {
		if doc.CurrencyCode != agg.CurrencyCode {
			return nil, fmt.Errorf("aggregating charge %s: %w", dc.ChargeID, ErrMultipleCurrencies)
		}

		counterparty, err := resolveCounterparty(doc, ownerID)
		if err != nil {
			return nil, fmt.Errorf("aggregating charge %s: %w", dc.ChargeID, err)
		}

		if i == 0 {
			agg.CounterpartyID = counterparty
		} else if !uuidPtrEqual(agg.CounterpartyID, counterparty) {
			return nil, fmt.Errorf("aggregating charge %s: %w", dc.ChargeID, ErrAmbiguousCounterparty)
		}

		agg.Total = agg.Total.Add(doc.TotalAmount)
	}

	return agg, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// flexibleDate reports whether the document type tolerates comparing
// against the transaction's settlement date as well as its event date.
// Invoices are issued against the event itself, so they stay fixed;
// receipts and loosely-typed documents often trail until settlement.
func flexibleDate(t charge.DocumentType) bool {
	switch t {
	case charge.DocTypeInvoice, charge.DocTypeCreditInvoice:
		return false
	default:
		return true
	}
}

// SelectTransactionDate picks the transaction date to compare against a
// document of the given type. Flexible types pick whichever of the event
// date and the settlement date sits closer to the document date.
func SelectTransactionDate(agg *AggregatedTransaction, docType charge.DocumentType, docDate time.Time) time.Time {
	if !flexibleDate(docType) || agg.DebitDate == nil {
		return agg.Date
	}

	eventGap := absDays(agg.Date, docDate)
	debitGap := absDays(*agg.DebitDate, docDate)

	if debitGap < eventGap {
		return *agg.DebitDate
	}

	return agg.Date
}

// candidateDates lists the transaction dates worth scoring against a
// document of the given type, event date first.
func candidateDates(agg *AggregatedTransaction, docType charge.DocumentType) []time.Time {
	dates := []time.Time{agg.Date}

	if flexibleDate(docType) && agg.DebitDate != nil {
		dates = append(dates, *agg.DebitDate)
	}

	return dates
}

func absDays(a, b time.Time) float64 {
	days := a.Sub(b).Hours() / 24
	if days < 0 {
		return -days
	}

	return days
}
