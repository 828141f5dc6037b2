package matching_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/accounter-io/accounter/internal/business"
	"github.com/accounter-io/accounter/internal/charge"
	"github.com/accounter-io/accounter/internal/matching"
)

var (
	ownerID        = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	counterpartyID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	otherBizID     = uuid.MustParse("33333333-3333-3333-3333-333333333333")

	jan15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
)

func txCharge(amount string, currency string, businessID *uuid.UUID, date time.Time, debitDate *time.Time) matching.TransactionCharge {
	return matching.TransactionCharge{
		ChargeID: uuid.New(),
		Transactions: []*charge.Transaction{{
			ID:          uuid.New(),
			Amount:      decimal.RequireFromString(amount),
			Currency:    currency,
			BusinessID:  businessID,
			Date:        date,
			DebitDate:   debitDate,
			Description: "ACME LTD",
		}},
	}
}

func docCharge(total string, currency string, docType charge.DocumentType, date time.Time, creditor, debtor *uuid.UUID) matching.DocumentCharge {
	return matching.DocumentCharge{
		ChargeID: uuid.New(),
		Documents: []*charge.Document{{
			ID:           uuid.New(),
			Type:         docType,
			TotalAmount:  decimal.RequireFromString(total),
			CurrencyCode: currency,
			Date:         date,
			CreditorID:   creditor,
			DebtorID:     debtor,
			SerialNumber: "INV-1001",
		}},
	}
}

func noClients(t *testing.T) *matching.MockClientLookup {
	t.Helper()

	ctrl := gomock.NewController(t)
	lookup := matching.NewMockClientLookup(ctrl)
	lookup.EXPECT().
		ClientByBusinessID(gomock.Any(), gomock.Any()).
		Return(nil, nil).
		AnyTimes()

	return lookup
}

func TestScoreMatch_PerfectMatch(t *testing.T) {
	tc := txCharge("-100", "USD", &counterpartyID, jan15, nil)
	dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

	got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
	require.NoError(t, err)

	assert.Equal(t, dc.ChargeID, got.ChargeID)
	assert.Equal(t, 1.0, got.Components.Amount)
	assert.Equal(t, 1.0, got.Components.Currency)
	assert.Equal(t, 1.0, got.Components.Business)
	assert.Equal(t, 1.0, got.Components.Date)
	assert.GreaterOrEqual(t, got.ConfidenceScore, 0.95)
}

func TestScoreMatch_Deterministic(t *testing.T) {
	tc := txCharge("250.50", "EUR", &counterpartyID, jan15, nil)
	dc := docCharge("251", "EUR", charge.DocTypeInvoice, jan15.AddDate(0, 0, 3), &counterpartyID, &ownerID)

	first, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
	require.NoError(t, err)

	second, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreMatch_AmountComponent(t *testing.T) {
	type testCase struct {
		name      string
		txAmount  string
		docTotal  string
		docType   charge.DocumentType
		wantExact float64
		wantMin   float64
		wantMax   float64
	}

	tests := []testCase{
		{
			name:      "ExactMatch",
			txAmount:  "100",
			docTotal:  "100",
			docType:   charge.DocTypeInvoice,
			wantExact: 1.0,
		},
		{
			name:     "SubUnitDifference",
			txAmount: "100.40",
			docTotal: "100",
			docType:  charge.DocTypeInvoice,
			wantMin:  0.9,
			wantMax:  1.0,
		},
		{
			name:      "OneUnitDifference",
			txAmount:  "101",
			docTotal:  "100",
			docType:   charge.DocTypeInvoice,
			wantExact: 0.9,
		},
		{
			name:      "FiftyPercentMismatch",
			txAmount:  "50",
			docTotal:  "100",
			docType:   charge.DocTypeInvoice,
			wantExact: 0.0,
		},
		{
			name:      "CreditInvoiceSignInsensitive",
			txAmount:  "200",
			docTotal:  "-200",
			docType:   charge.DocTypeCreditInvoice,
			wantExact: 1.0,
		},
		{
			name:    "LargeAmountSmallRelativeGap",
			txAmount: "10000",
			docTotal: "10150",
			docType:  charge.DocTypeInvoice,
			wantMin:  0.8,
			wantMax:  0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := txCharge(tt.txAmount, "USD", &counterpartyID, jan15, nil)
			dc := docCharge(tt.docTotal, "USD", tt.docType, jan15, &counterpartyID, &ownerID)

			got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
			require.NoError(t, err)

			if tt.wantMax > 0 {
				assert.GreaterOrEqual(t, got.Components.Amount, tt.wantMin)
				assert.LessOrEqual(t, got.Components.Amount, tt.wantMax)

				return
			}

			assert.InDelta(t, tt.wantExact, got.Components.Amount, 1e-9)
		})
	}
}

func TestScoreMatch_CurrencyComponentIsBinary(t *testing.T) {
	tc := txCharge("100", "USD", &counterpartyID, jan15, nil)

	match := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)
	mismatch := docCharge("100", "ILS", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

	got, err := matching.ScoreMatch(context.Background(), tc, match, ownerID, noClients(t))
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Components.Currency)

	got, err = matching.ScoreMatch(context.Background(), tc, mismatch, ownerID, noClients(t))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Components.Currency)
}

func TestScoreMatch_BusinessComponent(t *testing.T) {
	type testCase struct {
		name       string
		txBusiness *uuid.UUID
		creditor   *uuid.UUID
		want       float64
	}

	tests := []testCase{
		{
			name:       "SameBusiness",
			txBusiness: &counterpartyID,
			creditor:   &counterpartyID,
			want:       1.0,
		},
		{
			name:       "UnknownTransactionBusiness",
			txBusiness: nil,
			creditor:   &counterpartyID,
			want:       0.5,
		},
		{
			name:       "UnknownDocumentCounterparty",
			txBusiness: &counterpartyID,
			creditor:   nil,
			want:       0.5,
		},
		{
			name:       "Mismatch",
			txBusiness: &otherBizID,
			creditor:   &counterpartyID,
			want:       0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := txCharge("100", "USD", tt.txBusiness, jan15, nil)
			dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, tt.creditor, &ownerID)

			got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
			require.NoError(t, err)

			assert.Equal(t, tt.want, got.Components.Business)
		})
	}
}

func TestScoreMatch_DateComponent(t *testing.T) {
	t.Run("RegisteredClientFlatScore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		lookup := matching.NewMockClientLookup(ctrl)
		lookup.EXPECT().
			ClientByBusinessID(gomock.Any(), counterpartyID).
			Return(&business.Client{BusinessID: counterpartyID, Name: "ACME"}, nil)

		// 90-day gap would zero the score under linear decay.
		tc := txCharge("100", "USD", &counterpartyID, jan15.AddDate(0, 3, 0), nil)
		dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

		got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, lookup)
		require.NoError(t, err)

		assert.Equal(t, 1.0, got.Components.Date)
	})

	t.Run("NonClientLinearDecay", func(t *testing.T) {
		tc := txCharge("100", "USD", &counterpartyID, jan15.AddDate(0, 0, 28), nil)
		dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

		got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
		require.NoError(t, err)

		// 1 - 28/30
		assert.InDelta(t, 0.0667, got.Components.Date, 0.001)
	})

	t.Run("ThirtyDayGapZeroes", func(t *testing.T) {
		tc := txCharge("100", "USD", &counterpartyID, jan15.AddDate(0, 0, 30), nil)
		dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

		got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
		require.NoError(t, err)

		assert.Equal(t, 0.0, got.Components.Date)
	})

	t.Run("ReceiptUsesCloserDebitDate", func(t *testing.T) {
		debit := jan15 // settlement lands on the document date
		tc := txCharge("100", "USD", &counterpartyID, jan15.AddDate(0, 0, -20), &debit)
		dc := docCharge("100", "USD", charge.DocTypeReceipt, jan15, &counterpartyID, &ownerID)

		got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
		require.NoError(t, err)

		assert.Equal(t, 1.0, got.Components.Date)
	})

	t.Run("InvoiceIgnoresDebitDate", func(t *testing.T) {
		debit := jan15
		tc := txCharge("100", "USD", &counterpartyID, jan15.AddDate(0, 0, -15), &debit)
		dc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)

		got, err := matching.ScoreMatch(context.Background(), tc, dc, ownerID, noClients(t))
		require.NoError(t, err)

		// 1 - 15/30, the event date gap
		assert.InDelta(t, 0.5, got.Components.Date, 1e-9)
	})
}

func TestScoreMatch_InvariantErrors(t *testing.T) {
	type testCase struct {
		name    string
		tc      matching.TransactionCharge
		dc      matching.DocumentCharge
		wantErr error
	}

	dualCurrencyTx := txCharge("100", "USD", &counterpartyID, jan15, nil)
	dualCurrencyTx.Transactions = append(dualCurrencyTx.Transactions, &charge.Transaction{
		ID:       uuid.New(),
		Amount:   decimal.NewFromInt(50),
		Currency: "EUR",
		Date:     jan15,
	})

	dualBusinessTx := txCharge("100", "USD", &counterpartyID, jan15, nil)
	dualBusinessTx.Transactions = append(dualBusinessTx.Transactions, &charge.Transaction{
		ID:         uuid.New(),
		Amount:     decimal.NewFromInt(50),
		Currency:   "USD",
		BusinessID: &otherBizID,
		Date:       jan15,
	})

	dualCurrencyDoc := docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID)
	dualCurrencyDoc.Documents = append(dualCurrencyDoc.Documents, &charge.Document{
		ID:           uuid.New(),
		Type:         charge.DocTypeInvoice,
		TotalAmount:  decimal.NewFromInt(50),
		CurrencyCode: "ILS",
		Date:         jan15,
		CreditorID:   &counterpartyID,
		DebtorID:     &ownerID,
	})

	tests := []testCase{
		{
			name:    "MultipleTransactionCurrencies",
			tc:      dualCurrencyTx,
			dc:      docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID),
			wantErr: matching.ErrMultipleCurrencies,
		},
		{
			name:    "MultipleTransactionBusinesses",
			tc:      dualBusinessTx,
			dc:      docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &ownerID),
			wantErr: matching.ErrMultipleBusinesses,
		},
		{
			name:    "MultipleDocumentCurrencies",
			tc:      txCharge("100", "USD", &counterpartyID, jan15, nil),
			dc:      dualCurrencyDoc,
			wantErr: matching.ErrMultipleCurrencies,
		},
		{
			name:    "OwnerOnNeitherSide",
			tc:      txCharge("100", "USD", &counterpartyID, jan15, nil),
			dc:      docCharge("100", "USD", charge.DocTypeInvoice, jan15, &counterpartyID, &otherBizID),
			wantErr: matching.ErrNoCounterparty,
		},
		{
			name:    "OwnerOnBothSides",
			tc:      txCharge("100", "USD", &counterpartyID, jan15, nil),
			dc:      docCharge("100", "USD", charge.DocTypeInvoice, jan15, &ownerID, &ownerID),
			wantErr: matching.ErrAmbiguousCounterparty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matching.ScoreMatch(context.Background(), tt.tc, tt.dc, ownerID, noClients(t))

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSelectTransactionDate(t *testing.T) {
	debit := jan15.AddDate(0, 0, 2)

	agg, err := matching.AggregateTransactions(txCharge("100", "USD", nil, jan15.AddDate(0, 0, -20), &debit))
	require.NoError(t, err)

	t.Run("FixedTypeKeepsEventDate", func(t *testing.T) {
		got := matching.SelectTransactionDate(agg, charge.DocTypeInvoice, jan15)
		assert.Equal(t, agg.Date, got)
	})

	t.Run("FlexibleTypePicksCloserDate", func(t *testing.T) {
		got := matching.SelectTransactionDate(agg, charge.DocTypeReceipt, jan15)
		assert.Equal(t, debit, got)
	})

	t.Run("FlexibleTypeWithoutDebitDate", func(t *testing.T) {
		noDebit, err := matching.AggregateTransactions(txCharge("100", "USD", nil, jan15, nil))
		require.NoError(t, err)

		got := matching.SelectTransactionDate(noDebit, charge.DocTypeUnprocessed, jan15.AddDate(0, 0, 9))
		assert.Equal(t, noDebit.Date, got)
	})
}
