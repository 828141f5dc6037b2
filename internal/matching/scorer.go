package matching

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounter-io/accounter/internal/business"
)

// Component weights. Amount and counterparty identity carry the most
// signal for reconciliation; currency is a hard binary filter; dates are
// noisy because settlement routinely trails invoicing.
const (
	weightAmount   = 0.4
	weightCurrency = 0.2
	weightBusiness = 0.3
	weightDate     = 0.1
)

const (
	// Business-component scores for the non-exact cases. An unknown side
	// gets partial credit; a known mismatch keeps a small non-zero score so
	// cross-entity matches (shared fee ledgers) stay possible.
	businessUnknownScore  = 0.5
	businessMismatchScore = 0.2

	// Amount differences at or beyond this share of the larger amount
	// zero the component.
	amountZeroRatio = 0.5

	// A gap of this many days zeroes the date component.
	dateDecayDays = 30
)

//go:generate mockgen -source=scorer.go -destination=scorer_mock.go -package=matching

// ClientLookup resolves whether a counterparty business is a registered
// client. A nil client means the business is not registered.
type ClientLookup interface {
	ClientByBusinessID(ctx context.Context, businessID uuid.UUID) (*business.Client, error)
}

// Components breaks a confidence score into its weighted factors, each in
// [0.0, 1.0].
type Components struct {
	Amount   float64 `json:"amount"`
	Currency float64 `json:"currency"`
	Business float64 `json:"business"`
	Date     float64 `json:"date"`
}

// MatchResult is the scored comparison of one transaction charge against
// one document charge. ChargeID identifies the document charge.
type MatchResult struct {
	ChargeID        uuid.UUID  `json:"charge_id"`
	ConfidenceScore float64    `json:"confidence_score"`
	Components      Components `json:"components"`
}

// ScoreMatch computes the confidence that a transaction charge and a
// document charge represent the same financial event. It is pure: the only
// external effect is the injected client lookup, used to relax date
// strictness for registered clients.
//
// It fails when either charge violates the single-currency or
// single-business invariants, or when a document's creditor/debtor pair
// cannot be resolved against the owner business.
func ScoreMatch(ctx context.Context, tc TransactionCharge, dc DocumentCharge, ownerID uuid.UUID, clients ClientLookup) (MatchResult, error) {
	aggTx, err := AggregateTransactions(tc)
	if err != nil {
		return MatchResult{}, err
	}

	aggDoc, err := aggregateDocuments(dc, ownerID)
	if err != nil {
		return MatchResult{}, err
	}

	components := Components{
		Amount:   amountScore(aggTx.Amount, aggDoc.Total),
		Currency: currencyScore(aggTx.Currency, aggDoc.CurrencyCode),
		Business: businessScore(aggTx.BusinessID, aggDoc.CounterpartyID),
	}

	components.Date, err = dateScore(ctx, aggTx, aggDoc, clients)
	if err != nil {
		return MatchResult{}, fmt.Errorf("scoring date for charge %s: %w", dc.ChargeID, err)
	}

	confidence := components.Amount*weightAmount +
		components.Currency*weightCurrency +
		components.Business*weightBusiness +
		components.Date*weightDate

	return MatchResult{
		ChargeID:        dc.ChargeID,
		ConfidenceScore: confidence,
		Components:      components,
	}, nil
}

// amountScore compares absolute aggregated amounts, so credit invoices and
// negative-signed transactions line up with their positive counterparts.
// Differences within one currency unit score 0.9 or better; beyond that
// the score decays linearly with the relative difference and zeroes at
// half of the larger amount.
func amountScore(txAmount, docTotal decimal.Decimal) float64 {
	a := txAmount.Abs()
	b := docTotal.Abs()

	diff := a.Sub(b).Abs()
	if diff.IsZero() {
		return 1.0
	}

	if diff.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 1.0 - diff.InexactFloat64()/10
	}

	larger := a
	if b.GreaterThan(a) {
		larger = b
	}

	ratio := diff.Div(larger).InexactFloat64()
	if ratio >= amountZeroRatio {
		return 0.0
	}

	return clamp(1.0-ratio/amountZeroRatio, 0.0, 0.9)
}

// currencyScore is binary: no partial credit across currencies.
func currencyScore(txCurrency, docCurrency string) float64 {
	if txCurrency == docCurrency {
		return 1.0
	}

	return 0.0
}

func businessScore(txBusiness, docCounterparty *uuid.UUID) float64 {
	switch {
	case txBusiness == nil || docCounterparty == nil:
		return businessUnknownScore
	case *txBusiness == *docCounterparty:
		return 1.0
	default:
		return businessMismatchScore
	}
}

// dateScore applies linear decay over the day gap, scoring every
// candidate transaction date for the document type and keeping the best.
// A same-business pair whose counterparty is a registered client scores a
// flat 1.0: client invoicing cycles are intentionally decoupled from
// settlement timing.
func dateScore(ctx context.Context, aggTx *AggregatedTransaction, aggDoc *aggregatedDocument, clients ClientLookup) (float64, error) {
	sameBusiness := uuidPtrEqual(aggTx.BusinessID, aggDoc.CounterpartyID) && aggDoc.CounterpartyID != nil

	if sameBusiness && clients != nil {
		client, err := clients.ClientByBusinessID(ctx, *aggDoc.CounterpartyID)
		if err != nil {
			return 0, fmt.Errorf("looking up client %s: %w", *aggDoc.CounterpartyID, err)
		}

		if client != nil {
			return 1.0, nil
		}
	}

	best := 0.0

	for _, date := range candidateDates(aggTx, aggDoc.Type) {
		score := clamp(1.0-absDays(date, aggDoc.Date)/dateDecayDays, 0.0, 1.0)
		if score > best {
			best = score
		}
	}

	return best, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
