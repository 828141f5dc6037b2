package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accounter-io/accounter/internal/charge"
)

// dateLayouts covers the formats the supported banks export.
var dateLayouts = []string{"02/01/2006", "02-01-2006", "2006-01-02"}

type Importer struct{}

func New() *Importer {
	return &Importer{}
}

// Parse auto-detects the export profile from the header row and parses
// every data row into transaction parameters. Rows before the header
// (report titles, account info) and footer rows are skipped.
func (i *Importer) Parse(r io.Reader) ([]charge.CreateTransactionParams, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	var (
		profile *Profile
		cols    map[string]int
		params  []charge.CreateTransactionParams
	)

	for _, row := range rows {
		if profile == nil {
			profile, cols = detectProfile(row)
			continue
		}

		p, ok := parseRow(row, *profile, cols)
		if !ok {
			continue // footer or malformed row
		}

		params = append(params, p)
	}

	if profile == nil {
		return nil, fmt.Errorf("no known bank export format detected")
	}

	return params, nil
}

// detectProfile checks whether the row is the header of a known profile
// and returns the profile plus a column-name index.
func detectProfile(row []string) (*Profile, map[string]int) {
	index := make(map[string]int, len(row))
	for i, col := range row {
		index[strings.TrimSpace(col)] = i
	}

	for _, p := range profiles {
		matched := true

		for _, col := range p.requiredCols() {
			if _, ok := index[col]; !ok {
				matched = false
				break
			}
		}

		if matched {
			return &p, index
		}
	}

	return nil, nil
}

func parseRow(row []string, p Profile, cols map[string]int) (charge.CreateTransactionParams, bool) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[idx])
	}

	date, ok := parseDate(field(p.DateCol))
	if !ok {
		return charge.CreateTransactionParams{}, false
	}

	amount, ok := parseAmount(p, field)
	if !ok {
		return charge.CreateTransactionParams{}, false
	}

	params := charge.CreateTransactionParams{
		Amount:      amount,
		Currency:    p.Currency,
		Date:        date,
		Description: field(p.DescCol),
	}

	if p.CurrencyCol != "" {
		if currency := field(p.CurrencyCol); currency != "" {
			params.Currency = currency
		}
	}

	if p.DebitDateCol != "" {
		if debitDate, ok := parseDate(field(p.DebitDateCol)); ok {
			params.DebitDate = &debitDate
		}
	}

	return params, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if date, err := time.Parse(layout, s); err == nil {
			return date, true
		}
	}

	return time.Time{}, false
}

// parseAmount extracts the signed amount. Split-column profiles record
// debits as negative movements.
func parseAmount(p Profile, field func(string) string) (decimal.Decimal, bool) {
	switch p.AmountMode {
	case amountSplit:
		if debit := field(p.DebitCol); debit != "" {
			d, ok := parseDecimal(debit)
			return d.Neg(), ok
		}

		if credit := field(p.CreditCol); credit != "" {
			return parseDecimal(credit)
		}

		return decimal.Decimal{}, false
	default:
		return parseDecimal(field(p.AmountCol))
	}
}

// parseDecimal parses amounts like "1,234.56" or "-29.90", dropping
// thousands separators and currency symbols.
func parseDecimal(s string) (decimal.Decimal, bool) {
	clean := strings.NewReplacer(",", "", "₪", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Decimal{}, false
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}

	return d, true
}
