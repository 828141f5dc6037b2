package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/accounter-io/accounter/internal/matching"
)

// Store persists executed merge decisions so auto-match runs can be
// audited after the fact.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RecordMerge(ctx context.Context, rec matching.MergeRecord) error {
	query := `
		INSERT INTO merge_audit (surviving_charge_id, confidence_score, merged_charge_ids, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	ids := make([]string, 0, len(rec.MergedChargeIDs))
	for _, id := range rec.MergedChargeIDs {
		ids = append(ids, id.String())
	}

	_, err := s.db.ExecContext(ctx, query, rec.ChargeID, rec.ConfidenceScore, ids)
	if err != nil {
		return fmt.Errorf("recording merge: %w", err)
	}

	return nil
}

// History returns the most recent recorded merges, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]matching.MergeRecord, error) {
	query := `
		SELECT surviving_charge_id, confidence_score, array_to_string(merged_charge_ids, ',')
		FROM merge_audit
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying merge history: %w", err)
	}
	defer rows.Close()

	var records []matching.MergeRecord

	for rows.Next() {
		var rec matching.MergeRecord

		var mergedRaw string

		if err := rows.Scan(&rec.ChargeID, &rec.ConfidenceScore, &mergedRaw); err != nil {
			return nil, fmt.Errorf("scanning merge record: %w", err)
		}

		for _, raw := range strings.Split(mergedRaw, ",") {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, fmt.Errorf("parsing merged charge id: %w", err)
			}

			rec.MergedChargeIDs = append(rec.MergedChargeIDs, id)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating merge records: %w", err)
	}

	return records, nil
}
