package bankcsv

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one signed column.
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one bank export format.
// Adding a new format is just adding a new Profile to the profiles slice.
type Profile struct {
	Name         string
	DateCol      string
	DebitDateCol string // optional settlement-date column
	DescCol      string
	CurrencyCol  string // optional; Currency is the default when absent
	Currency     string
	AmountMode   amountMode
	AmountCol    string // used when AmountMode == amountSingle
	DebitCol     string // used when AmountMode == amountSplit
	CreditCol    string // used when AmountMode == amountSplit
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first to avoid false matches.
var profiles = []Profile{
	{
		Name:         "hapoalim",
		DateCol:      "תאריך",
		DebitDateCol: "תאריך ערך",
		DescCol:      "תיאור הפעולה",
		Currency:     "ILS",
		AmountMode:   amountSplit,
		DebitCol:     "חובה",
		CreditCol:    "זכות",
	},
	{
		Name:        "isracard",
		DateCol:     "תאריך עסקה",
		DescCol:     "שם בית עסק",
		CurrencyCol: "מטבע",
		Currency:    "ILS",
		AmountMode:  amountSingle,
		AmountCol:   "סכום חיוב",
	},
	{
		Name:       "leumi",
		DateCol:    "תאריך",
		DescCol:    "תיאור",
		Currency:   "ILS",
		AmountMode: amountSingle,
		AmountCol:  "סכום",
	},
}
