package bankcsv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HapoalimSplitColumns(t *testing.T) {
	input := "דוח תנועות בחשבון\n" +
		"תאריך,תיאור הפעולה,חובה,זכות,תאריך ערך\n" +
		"15/01/2024,העברה לספק,\"1,350.00\",,16/01/2024\n" +
		"20/01/2024,תקבול מלקוח,,500.00,20/01/2024\n" +
		"סך הכל,,850.00,,\n"

	got, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "-1350", got[0].Amount.String())
	assert.Equal(t, "ILS", got[0].Currency)
	assert.Equal(t, "העברה לספק", got[0].Description)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got[0].Date)
	require.NotNil(t, got[0].DebitDate)
	assert.Equal(t, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), *got[0].DebitDate)

	assert.Equal(t, "500", got[1].Amount.String())
}

func TestParse_IsracardCurrencyColumn(t *testing.T) {
	input := "תאריך עסקה,שם בית עסק,סכום חיוב,מטבע\n" +
		"03/02/2024,AWS,-120.40,USD\n" +
		"04/02/2024,סופר שכונתי,-89.90,\n"

	got, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "USD", got[0].Currency)
	assert.Equal(t, "-120.4", got[0].Amount.String())
	// Empty currency cell falls back to the profile default.
	assert.Equal(t, "ILS", got[1].Currency)
}

func TestParse_LeumiSingleColumn(t *testing.T) {
	input := "תאריך,תיאור,סכום\n" +
		"01-03-2024,שכירות משרד,-4200.00\n"

	got, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "-4200", got[0].Amount.String())
	assert.Equal(t, "שכירות משרד", got[0].Description)
}

func TestParse_UnknownFormat(t *testing.T) {
	input := "Date,Payee,Total\n2024-01-01,ACME,10.00\n"

	_, err := New().Parse(strings.NewReader(input))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known bank export format")
}
