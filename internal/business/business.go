package business

import (
	"time"

	"github.com/google/uuid"
)

// Client is a counterparty business registered as a revenue-generating
// client of the owner, as opposed to an ordinary vendor. Registration
// relaxes the date component of match scoring: client invoicing cycles are
// decoupled from settlement timing.
type Client struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	BusinessID uuid.UUID
	Name       string
	CreatedAt  time.Time
}
