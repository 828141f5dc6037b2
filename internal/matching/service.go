package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/accounter-io/accounter/internal/charge"
)

// ErrAdminBusinessNotFound means a run was requested without the admin
// business on whose behalf charges are reconciled.
var ErrAdminBusinessNotFound = errors.New("admin business not found")

const (
	// DefaultAcceptThreshold is the confidence a pair must reach before a
	// merge is executed without review.
	DefaultAcceptThreshold = 0.95

	// DefaultReviewThreshold is the confidence floor for surfacing a pair
	// as a proposal in the review UI.
	DefaultReviewThreshold = 0.5

	// Two qualifying candidates closer than this are treated as a tie.
	tieTolerance = 1e-3

	maxConcurrentLoads = 8
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=matching

// ChargeSource loads the unmatched charge pool and the raw records under
// each charge.
type ChargeSource interface {
	UnmatchedCharges(ctx context.Context, ownerID uuid.UUID) ([]*charge.Charge, error)
	TransactionsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*charge.Transaction, error)
	DocumentsByCharge(ctx context.Context, chargeID uuid.UUID) ([]*charge.Document, error)
}

// MergeExecutor absorbs charges into a surviving charge. It owns its own
// atomicity; a failed call leaves both charges eligible for a later
// pairing attempt.
type MergeExecutor interface {
	MergeCharges(ctx context.Context, absorbedIDs []uuid.UUID, survivingID uuid.UUID) error
}

// MergeRecorder persists executed merge decisions for later audit.
type MergeRecorder interface {
	RecordMerge(ctx context.Context, rec MergeRecord) error
}

// Config tunes the matching thresholds. Zero values fall back to the
// package defaults; a nil Recorder disables the audit trail.
type Config struct {
	AcceptThreshold float64
	ReviewThreshold float64
	Recorder        MergeRecorder
}

type Service struct {
	charges  ChargeSource
	clients  ClientLookup
	merger   MergeExecutor
	recorder MergeRecorder

	acceptThreshold float64
	reviewThreshold float64
}

func NewService(charges ChargeSource, clients ClientLookup, merger MergeExecutor, cfg Config) *Service {
	if cfg.AcceptThreshold == 0 {
		cfg.AcceptThreshold = DefaultAcceptThreshold
	}

	if cfg.ReviewThreshold == 0 {
		cfg.ReviewThreshold = DefaultReviewThreshold
	}

	return &Service{
		charges:         charges,
		clients:         clients,
		merger:          merger,
		recorder:        cfg.Recorder,
		acceptThreshold: cfg.AcceptThreshold,
		reviewThreshold: cfg.ReviewThreshold,
	}
}

// MergeRecord documents one executed merge: the surviving transaction
// charge, the confidence that triggered it, and the absorbed charge ids.
type MergeRecord struct {
	ChargeID        uuid.UUID   `json:"charge_id"`
	ConfidenceScore float64     `json:"confidence_score"`
	MergedChargeIDs []uuid.UUID `json:"merged_charge_ids"`
}

// RunResult aggregates one auto-match run. Errors holds per-pair merge
// failures; they never abort the run.
type RunResult struct {
	TotalMatches   int           `json:"total_matches"`
	MergedCharges  []MergeRecord `json:"merged_charges"`
	SkippedCharges []uuid.UUID   `json:"skipped_charges"`
	Errors         []string      `json:"errors"`
}

// candidate is one unmatched charge, classified by which side backs it.
// Exactly one of tx/doc is set.
type candidate struct {
	chargeID uuid.UUID
	tx       *TransactionCharge
	doc      *DocumentCharge
}

// AutoMatch scores every unmatched transaction charge of the admin
// business against every unmatched document charge and merges the pairs
// that clear the acceptance threshold. Matching is greedy and
// order-dependent: charges leave the pool only on a successful merge, and
// a tie at the top score skips the current charge rather than guessing.
func (s *Service) AutoMatch(ctx context.Context, adminBusinessID uuid.UUID) (*RunResult, error) {
	if adminBusinessID == uuid.Nil {
		return nil, ErrAdminBusinessNotFound
	}

	pool, err := s.loadCandidates(ctx, adminBusinessID)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		MergedCharges:  []MergeRecord{},
		SkippedCharges: []uuid.UUID{},
		Errors:         []string{},
	}

	// Charges merged in this run, excluded from all further scoring.
	// Updated only together with a successful merge.
	merged := make(map[uuid.UUID]bool)

	for _, cur := range pool {
		if merged[cur.chargeID] {
			continue
		}

		best, tie, err := s.bestCandidate(ctx, cur, pool, merged, adminBusinessID)
		if err != nil {
			return nil, err
		}

		if best == nil {
			continue // no candidate above threshold: a normal outcome
		}

		if tie {
			result.SkippedCharges = append(result.SkippedCharges, cur.chargeID)
			slog.Debug("skipping ambiguous charge", "charge_id", cur.chargeID)

			continue
		}

		// Documents merge into the transaction charge: settled bank
		// activity anchors the surviving id.
		surviving := best.txCharge.ChargeID
		absorbed := best.docCharge.ChargeID

		if err := s.merger.MergeCharges(ctx, []uuid.UUID{absorbed}, surviving); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to merge charge %s into charge %s: %v", absorbed, surviving, err))

			continue
		}

		rec := MergeRecord{
			ChargeID:        surviving,
			ConfidenceScore: best.result.ConfidenceScore,
			MergedChargeIDs: []uuid.UUID{absorbed},
		}

		result.TotalMatches++
		result.MergedCharges = append(result.MergedCharges, rec)

		if s.recorder != nil {
			if err := s.recorder.RecordMerge(ctx, rec); err != nil {
				slog.Warn("recording merge failed", "charge_id", surviving, "error", err)
			}
		}

		merged[surviving] = true
		merged[absorbed] = true

		slog.Info("merged charges",
			"surviving", surviving,
			"absorbed", absorbed,
			"confidence", best.result.ConfidenceScore)
	}

	return result, nil
}

// scoredPair orients one scored pairing: txCharge survives, docCharge is
// absorbed, regardless of which side was being iterated.
type scoredPair struct {
	txCharge  *TransactionCharge
	docCharge *DocumentCharge
	result    MatchResult
}

// bestCandidate scans every opposite-type candidate still in the pool and
// returns the single best pairing above the acceptance threshold. tie
// reports that two or more qualifying candidates are indistinguishable at
// the top, in which case the caller must skip rather than guess.
func (s *Service) bestCandidate(ctx context.Context, cur *candidate, pool []*candidate, merged map[uuid.UUID]bool, ownerID uuid.UUID) (best *scoredPair, tie bool, err error) {
	for _, other := range pool {
		if other.chargeID == cur.chargeID || merged[other.chargeID] {
			continue
		}

		pair, ok := orient(cur, other)
		if !ok {
			continue // same side, not a pairing
		}

		pair.result, err = ScoreMatch(ctx, *pair.txCharge, *pair.docCharge, ownerID, s.clients)
		if err != nil {
			return nil, false, err
		}

		if pair.result.ConfidenceScore < s.acceptThreshold {
			continue
		}

		switch {
		case best == nil:
			best = pair
			tie = false
		case pair.result.ConfidenceScore > best.result.ConfidenceScore+tieTolerance:
			best = pair
			tie = false
		case pair.result.ConfidenceScore >= best.result.ConfidenceScore-tieTolerance:
			tie = true
		}
	}

	return best, tie, nil
}

// orient pairs the current charge with an opposite-type candidate.
func orient(cur, other *candidate) (*scoredPair, bool) {
	switch {
	case cur.tx != nil && other.doc != nil:
		return &scoredPair{txCharge: cur.tx, docCharge: other.doc}, true
	case cur.doc != nil && other.tx != nil:
		return &scoredPair{txCharge: other.tx, docCharge: cur.doc}, true
	default:
		return nil, false
	}
}

// loadCandidates pulls the unmatched charge pool and loads each charge's
// records. Loads fan out concurrently per charge; classification preserves
// provider order because the decision loop is order-dependent.
// Aggregation invariants are checked here, before any merge side effect.
func (s *Service) loadCandidates(ctx context.Context, ownerID uuid.UUID) ([]*candidate, error) {
	charges, err := s.charges.UnmatchedCharges(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading unmatched charges: %w", err)
	}

	candidates := make([]*candidate, len(charges))

	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for i, c := range charges {
		g.Go(func() error {
			txs, err := s.charges.TransactionsByCharge(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("loading transactions for charge %s: %w", c.ID, err)
			}

			docs, err := s.charges.DocumentsByCharge(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("loading documents for charge %s: %w", c.ID, err)
			}

			cand, err := classify(c.ID, ownerID, txs, docs)
			if err != nil {
				return err
			}

			mu.Lock()
			candidates[i] = cand
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop charges the unmatched filter let through with neither or both
	// sides populated (possible when rows changed between queries).
	pool := make([]*candidate, 0, len(candidates))

	for _, cand := range candidates {
		if cand != nil {
			pool = append(pool, cand)
		}
	}

	return pool, nil
}

// classify builds the typed aggregate for a charge and validates the
// scoring invariants up front.
func classify(chargeID, ownerID uuid.UUID, txs []*charge.Transaction, docs []*charge.Document) (*candidate, error) {
	switch {
	case len(txs) > 0 && len(docs) == 0:
		tc := &TransactionCharge{ChargeID: chargeID, Transactions: txs}
		if _, err := AggregateTransactions(*tc); err != nil {
			return nil, err
		}

		return &candidate{chargeID: chargeID, tx: tc}, nil

	case len(docs) > 0 && len(txs) == 0:
		dc := &DocumentCharge{ChargeID: chargeID, Documents: docs}
		if _, err := aggregateDocuments(*dc, ownerID); err != nil {
			return nil, err
		}

		return &candidate{chargeID: chargeID, doc: dc}, nil

	default:
		return nil, nil
	}
}

// Proposal is one scored pairing surfaced for operator review.
type Proposal struct {
	TransactionChargeID uuid.UUID  `json:"transaction_charge_id"`
	DocumentChargeID    uuid.UUID  `json:"document_charge_id"`
	ConfidenceScore     float64    `json:"confidence_score"`
	Components          Components `json:"components"`
	Description         string     `json:"description"`
	Amount              string     `json:"amount"`
	Currency            string     `json:"currency"`
}

// Preview scores every cross-type pairing without executing merges and
// returns the pairs at or above the review threshold, highest confidence
// first. The review UI feeds accepted proposals back through Merge.
func (s *Service) Preview(ctx context.Context, adminBusinessID uuid.UUID) ([]Proposal, error) {
	if adminBusinessID == uuid.Nil {
		return nil, ErrAdminBusinessNotFound
	}

	pool, err := s.loadCandidates(ctx, adminBusinessID)
	if err != nil {
		return nil, err
	}

	var proposals []Proposal

	for _, cur := range pool {
		if cur.tx == nil {
			continue
		}

		agg, err := AggregateTransactions(*cur.tx)
		if err != nil {
			return nil, err
		}

		for _, other := range pool {
			if other.doc == nil {
				continue
			}

			res, err := ScoreMatch(ctx, *cur.tx, *other.doc, adminBusinessID, s.clients)
			if err != nil {
				return nil, err
			}

			if res.ConfidenceScore < s.reviewThreshold {
				continue
			}

			proposals = append(proposals, Proposal{
				TransactionChargeID: cur.tx.ChargeID,
				DocumentChargeID:    other.doc.ChargeID,
				ConfidenceScore:     res.ConfidenceScore,
				Components:          res.Components,
				Description:         agg.Description,
				Amount:              agg.Amount.String(),
				Currency:            agg.Currency,
			})
		}
	}

	sort.SliceStable(proposals, func(i, j int) bool {
		return proposals[i].ConfidenceScore > proposals[j].ConfidenceScore
	})

	return proposals, nil
}

// Merge executes one reviewed proposal.
func (s *Service) Merge(ctx context.Context, docChargeID, txChargeID uuid.UUID) error {
	return s.merger.MergeCharges(ctx, []uuid.UUID{docChargeID}, txChargeID)
}
