package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/accounter-io/accounter/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Hebrew characters should pass through unchanged.
	input := "תאריך,תיאור,סכום\n15/01/2024,חשמל,120.50\n"

	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	content := "תאריך,סכום\n"
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(content)...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	content := "תאריך,סכום\n15/01/2024,120.50\n"

	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	encoded, err := enc.Bytes([]byte(content))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(encoded))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestNewUTF8Reader_Windows1255(t *testing.T) {
	// A windows-1255 encoded export: Hebrew header plus enough rows for
	// the heuristic to land on a Hebrew codepage.
	content := "תאריך,תיאור הפעולה,חובה,זכות\n" +
		"15/01/2024,העברה לספק ציוד משרדי,350.00,\n" +
		"16/01/2024,תשלום מלקוח תוכנה בעמ,,1200.00\n" +
		"17/01/2024,עמלת ניהול חשבון עסקי,29.90,\n"

	encoded, err := charmap.Windows1255.NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(encoded))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}
