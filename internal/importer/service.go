package importer

import (
	"fmt"
	"io"

	"github.com/accounter-io/accounter/internal/charge"
	"github.com/accounter-io/accounter/internal/encoding"
	"github.com/accounter-io/accounter/internal/importer/bankcsv"
)

type Service struct {
	bankImporter Importer
}

func NewService() *Service {
	return &Service{
		bankImporter: bankcsv.New(),
	}
}

// Import decodes an uploaded export to UTF-8 and parses it. The column
// profile is auto-detected from the header row.
func (s *Service) Import(r io.Reader) ([]charge.CreateTransactionParams, error) {
	utf8Reader, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	return s.bankImporter.Parse(utf8Reader)
}
