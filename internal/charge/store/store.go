package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accounter-io/accounter/internal/charge"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateCharge(ctx context.Context, c *charge.Charge) error {
	query := `
		INSERT INTO charges (owner_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, c.OwnerID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating charge: %w", err)
	}

	return nil
}

func (s *Store) GetCharge(ctx context.Context, id uuid.UUID) (*charge.Charge, error) {
	query := `SELECT id, owner_id, created_at, updated_at FROM charges WHERE id = $1`

	var c charge.Charge
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("getting charge: %w", err)
	}

	return &c, nil
}

// matchStatePredicate maps a MatchState onto a SQL condition over the
// presence of transactions and documents under the charge.
func matchStatePredicate(state charge.MatchState) string {
	hasTx := `EXISTS (SELECT 1 FROM transactions t WHERE t.charge_id = c.id)`
	hasDocs := `EXISTS (SELECT 1 FROM documents d WHERE d.charge_id = c.id)`

	switch state {
	case charge.MatchStateUnmatched:
		// Exactly one side populated.
		return `(` + hasTx + `) <> (` + hasDocs + `)`
	case charge.MatchStateMatched:
		return `(` + hasTx + `) AND (` + hasDocs + `)`
	default:
		return `TRUE`
	}
}

func (s *Store) ListCharges(ctx context.Context, filter charge.ListFilter) ([]*charge.Charge, error) {
	query := `
		SELECT c.id, c.owner_id, c.created_at, c.updated_at
		FROM charges c
		WHERE c.owner_id = $1 AND ` + matchStatePredicate(filter.MatchState) + `
	`

	args := []any{filter.OwnerID}

	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND c.created_at >= $%d", len(args))
	}

	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND c.created_at <= $%d", len(args))
	}

	query += " ORDER BY c.created_at, c.id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing charges: %w", err)
	}
	defer rows.Close()

	var charges []*charge.Charge

	for rows.Next() {
		var c charge.Charge
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning charge: %w", err)
		}

		charges = append(charges, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating charges: %w", err)
	}

	return charges, nil
}

// scanTransaction reads a transaction row.
// Expected column order: id, charge_id, amount, currency, business_id,
// event_date, debit_date, description, created_at.
func scanTransaction(s scanner) (*charge.Transaction, error) {
	var tx charge.Transaction

	var amount string

	var desc sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.ChargeID, &amount, &tx.Currency, &tx.BusinessID,
		&tx.Date, &tx.DebitDate, &desc, &tx.CreatedAt,
	); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
	}

	tx.Amount = d
	tx.Description = desc.String

	return &tx, nil
}

func (s *Store) TransactionsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*charge.Transaction, error) {
	query := `
		SELECT id, charge_id, amount, currency, business_id, event_date, debit_date, description, created_at
		FROM transactions
		WHERE charge_id = $1
		ORDER BY event_date, id
	`

	rows, err := s.db.QueryContext(ctx, query, chargeID)
	if err != nil {
		return nil, fmt.Errorf("loading transactions: %w", err)
	}
	defer rows.Close()

	var txs []*charge.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

// scanDocument reads a document row.
// Expected column order: id, charge_id, type, total_amount, currency_code,
// date, creditor_id, debtor_id, serial_number, vat_amount, created_at.
func scanDocument(s scanner) (*charge.Document, error) {
	var doc charge.Document

	var typeStr, total string

	var serial, vat sql.NullString

	if err := s.Scan(
		&doc.ID, &doc.ChargeID, &typeStr, &total, &doc.CurrencyCode,
		&doc.Date, &doc.CreditorID, &doc.DebtorID, &serial, &vat, &doc.CreatedAt,
	); err != nil {
		return nil, err
	}

	d, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("parsing total amount %q: %w", total, err)
	}

	doc.Type = charge.DocumentType(typeStr)
	doc.TotalAmount = d
	doc.SerialNumber = serial.String

	if vat.Valid {
		v, err := decimal.NewFromString(vat.String)
		if err != nil {
			return nil, fmt.Errorf("parsing vat amount %q: %w", vat.String, err)
		}

		doc.VATAmount = &v
	}

	return &doc, nil
}

func (s *Store) DocumentsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*charge.Document, error) {
	query := `
		SELECT id, charge_id, type, total_amount, currency_code, date, creditor_id, debtor_id, serial_number, vat_amount, created_at
		FROM documents
		WHERE charge_id = $1
		ORDER BY date, id
	`

	rows, err := s.db.QueryContext(ctx, query, chargeID)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}
	defer rows.Close()

	var docs []*charge.Document

	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *charge.Transaction) error {
	query := `
		INSERT INTO transactions (charge_id, amount, currency, business_id, event_date, debit_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.ChargeID,
		tx.Amount.String(),
		tx.Currency,
		tx.BusinessID,
		tx.Date,
		tx.DebitDate,
		tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateDocument(ctx context.Context, doc *charge.Document) error {
	var vat *string

	if doc.VATAmount != nil {
		v := doc.VATAmount.String()
		vat = &v
	}

	query := `
		INSERT INTO documents (charge_id, type, total_amount, currency_code, date, creditor_id, debtor_id, serial_number, vat_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		doc.ChargeID,
		doc.Type,
		doc.TotalAmount.String(),
		doc.CurrencyCode,
		doc.Date,
		doc.CreditorID,
		doc.DebtorID,
		doc.SerialNumber,
		vat,
	).Scan(&doc.ID, &doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating document: %w", err)
	}

	return nil
}

// MergeCharges repoints all rows under the absorbed charges onto the
// surviving charge and deletes the absorbed charges, atomically.
func (s *Store) MergeCharges(ctx context.Context, absorbedIDs []uuid.UUID, survivingID uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning merge: %w", err)
	}
	defer dbTx.Rollback() //nolint:errcheck // no-op after commit

	ids := make([]string, 0, len(absorbedIDs))
	for _, id := range absorbedIDs {
		ids = append(ids, id.String())
	}

	steps := []string{
		`UPDATE transactions SET charge_id = $1 WHERE charge_id = ANY($2::uuid[])`,
		`UPDATE documents SET charge_id = $1 WHERE charge_id = ANY($2::uuid[])`,
	}

	for _, step := range steps {
		if _, err := dbTx.ExecContext(ctx, step, survivingID, ids); err != nil {
			return fmt.Errorf("repointing rows: %w", err)
		}
	}

	res, err := dbTx.ExecContext(ctx, `DELETE FROM charges WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return fmt.Errorf("deleting absorbed charges: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n != int64(len(absorbedIDs)) {
		return fmt.Errorf("deleting absorbed charges: expected %d rows, deleted %d", len(absorbedIDs), n)
	}

	if _, err := dbTx.ExecContext(ctx, `UPDATE charges SET updated_at = NOW() WHERE id = $1`, survivingID); err != nil {
		return fmt.Errorf("touching surviving charge: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing merge: %w", err)
	}

	return nil
}
