package importer

import (
	"io"

	"github.com/accounter-io/accounter/internal/charge"
)

// Importer parses one bank or card export into transaction parameters.
// OwnerID is left empty; the caller assigns it before ingestion.
type Importer interface {
	Parse(r io.Reader) ([]charge.CreateTransactionParams, error)
}
