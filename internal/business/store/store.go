package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/business"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindClientByBusinessID(ctx context.Context, businessID uuid.UUID) (*business.Client, error) {
	query := `
		SELECT id, owner_id, business_id, name, created_at
		FROM clients
		WHERE business_id = $1
	`

	var c business.Client

	err := s.db.QueryRowContext(ctx, query, businessID).
		Scan(&c.ID, &c.OwnerID, &c.BusinessID, &c.Name, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("finding client: %w", err)
	}

	return &c, nil
}

func (s *Store) CreateClient(ctx context.Context, client *business.Client) error {
	query := `
		INSERT INTO clients (owner_id, business_id, name, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, client.OwnerID, client.BusinessID, client.Name).
		Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}
