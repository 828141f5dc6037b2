package charge

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=charge
type Repository interface {
	CreateCharge(ctx context.Context, c *Charge) error
	GetCharge(ctx context.Context, id uuid.UUID) (*Charge, error)
	ListCharges(ctx context.Context, filter ListFilter) ([]*Charge, error)

	TransactionsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*Transaction, error)
	DocumentsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*Document, error)

	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateDocument(ctx context.Context, doc *Document) error

	// MergeCharges repoints every transaction and document under the
	// absorbed charges onto survivingID and deletes the absorbed charge
	// rows, all in one database transaction.
	MergeCharges(ctx context.Context, absorbedIDs []uuid.UUID, survivingID uuid.UUID) error
}

// ListFilter narrows ListCharges. OwnerID is required.
type ListFilter struct {
	OwnerID    uuid.UUID
	MatchState MatchState
	StartDate  *time.Time
	EndDate    *time.Time
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns charges for an owner, optionally filtered by match state.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Charge, error) {
	if filter.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("listing charges: owner id is required")
	}

	return s.repo.ListCharges(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Charge, error) {
	return s.repo.GetCharge(ctx, id)
}

// UnmatchedCharges returns the owner's charges backed by exactly one of
// transactions or documents, in stable provider order.
func (s *Service) UnmatchedCharges(ctx context.Context, ownerID uuid.UUID) ([]*Charge, error) {
	return s.repo.ListCharges(ctx, ListFilter{OwnerID: ownerID, MatchState: MatchStateUnmatched})
}

func (s *Service) TransactionsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*Transaction, error) {
	return s.repo.TransactionsByCharge(ctx, chargeID)
}

func (s *Service) DocumentsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*Document, error) {
	return s.repo.DocumentsByCharge(ctx, chargeID)
}

// CreateTransactionParams describes one ingested bank movement.
type CreateTransactionParams struct {
	OwnerID     uuid.UUID
	Amount      decimal.Decimal
	Currency    string
	BusinessID  *uuid.UUID
	Date        time.Time
	DebitDate   *time.Time
	Description string
}

// IngestTransaction creates a fresh charge owned by params.OwnerID and a
// single transaction under it. Reconciliation later merges these
// one-transaction charges with document charges.
func (s *Service) IngestTransaction(ctx context.Context, params CreateTransactionParams) (*Charge, error) {
	c := &Charge{OwnerID: params.OwnerID}
	if err := s.repo.CreateCharge(ctx, c); err != nil {
		return nil, fmt.Errorf("creating charge: %w", err)
	}

	tx := &Transaction{
		ChargeID:    c.ID,
		Amount:      params.Amount,
		Currency:    params.Currency,
		BusinessID:  params.BusinessID,
		Date:        params.Date,
		DebitDate:   params.DebitDate,
		Description: params.Description,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return c, nil
}

// CreateDocumentParams describes one ingested document.
type CreateDocumentParams struct {
	OwnerID      uuid.UUID
	Type         DocumentType
	TotalAmount  decimal.Decimal
	CurrencyCode string
	Date         time.Time
	CreditorID   *uuid.UUID
	DebtorID     *uuid.UUID
	SerialNumber string
	VATAmount    *decimal.Decimal
}

// IngestDocument creates a fresh charge and a single document under it.
func (s *Service) IngestDocument(ctx context.Context, params CreateDocumentParams) (*Charge, error) {
	c := &Charge{OwnerID: params.OwnerID}
	if err := s.repo.CreateCharge(ctx, c); err != nil {
		return nil, fmt.Errorf("creating charge: %w", err)
	}

	doc := &Document{
		ChargeID:     c.ID,
		Type:         params.Type,
		TotalAmount:  params.TotalAmount,
		CurrencyCode: params.CurrencyCode,
		Date:         params.Date,
		CreditorID:   params.CreditorID,
		DebtorID:     params.DebtorID,
		SerialNumber: params.SerialNumber,
		VATAmount:    params.VATAmount,
	}
	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("creating document: %w", err)
	}

	return c, nil
}

// MergeCharges absorbs the given charges into survivingID.
func (s *Service) MergeCharges(ctx context.Context, absorbedIDs []uuid.UUID, survivingID uuid.UUID) error {
	if len(absorbedIDs) == 0 {
		return nil
	}

	return s.repo.MergeCharges(ctx, absorbedIDs, survivingID)
}
