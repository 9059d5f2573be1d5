package statement_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReader(t *testing.T, input string) *statement.Reader {
	t.Helper()
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	return r
}

func readAll(t *testing.T, r *statement.Reader) []statement.RawRow {
	t.Helper()
	var rows []statement.RawRow
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestNewReader_AliasHeader(t *testing.T) {
	input := "Post Date,Description,Amount\n07/01/2025,Starbucks,-5.00\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	m := r.Mapping()
	assert.False(t, m.Positional)
	assert.Equal(t, ',', int32(m.Delimiter))
	assert.Equal(t, 0, m.Date)
	assert.Equal(t, 1, m.Description)
	assert.Equal(t, 2, m.Amount)
	assert.Equal(t, -1, m.Debit)
	assert.Equal(t, -1, m.Credit)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Starbucks", rows[0].Field(m.Description))
}

func TestNewReader_SkipsLeadingBannerLines(t *testing.T) {
	input := "\n\n\nPost Date,Description,Amount\n07/01/2025,Starbucks,-5.00\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "07/01/2025", rows[0].Field(r.Mapping().Date))
}

func TestNewReader_DelimiterOnlyBannerLines(t *testing.T) {
	input := ",,,,\n ,, \nDate;Description;Amount\n07/01/2025;Kroger;-12.34\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, ';', int32(r.Mapping().Delimiter))
	rows := readAll(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kroger", rows[0].Field(r.Mapping().Description))
}

func TestNewReader_TabDelimited(t *testing.T) {
	input := "Date\tDescription\tAmount\n07/01/2025\tKroger\t-12.34\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, '\t', int32(r.Mapping().Delimiter))
}

// A header line whose second field parses as a number is data, not a header:
// the detector must fall back to positional mapping and re-serve the line.
func TestNewReader_HeaderlessPositionalFallback(t *testing.T) {
	input := "Branch Cash Withdrawal 07/01 12:00:00 POS WALMART 123 GA,-10.00\nSTARBUCKS 456,-5.00\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	m := r.Mapping()
	assert.True(t, m.Positional)
	assert.Equal(t, 0, m.Description)
	assert.Equal(t, 1, m.Amount)

	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "-10.00", rows[0].Field(m.Amount))
	assert.Contains(t, rows[0].Field(m.Description), "WALMART")
}

func TestNewReader_HeaderMissingBoundary(t *testing.T) {
	// Second field "-5.00" parses as a plain number, so alias mapping must not
	// be attempted even though the first field says "Date".
	input := "Date,-5.00\n07/02,-6.00\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.True(t, r.Mapping().Positional)
	rows := readAll(t, r)
	require.Len(t, rows, 2)
	assert.Equal(t, "Date", rows[0].Field(0))
}

func TestNewReader_SplitDebitCreditColumns(t *testing.T) {
	input := "Transaction Date,Details,Debit,Credit\n07/01/2025,Paycheck,,1500.00\n07/02/2025,Kroger,42.10,\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	m := r.Mapping()
	assert.True(t, m.HasSplitColumns())
	assert.Equal(t, 2, m.Debit)
	assert.Equal(t, 3, m.Credit)
	assert.Equal(t, -1, m.Amount)
	assert.Equal(t, 0, m.Date)
	assert.Equal(t, 1, m.Description)
}

func TestNewReader_SubstringFallbackMapping(t *testing.T) {
	input := "Settlement Date Thing,Merchant Desc,Total Amount\n07/01/2025,Kroger,-12.34\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	m := r.Mapping()
	assert.Equal(t, 0, m.Date)
	assert.Equal(t, 1, m.Description)
	assert.Equal(t, 2, m.Amount)
}

func TestNewReader_SchemaErrorOnUnusableColumns(t *testing.T) {
	input := "Foo,Bar\nalpha,beta\n"
	_, err := statement.NewReader(strings.NewReader(input))
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

func TestNewReader_EmptyStream(t *testing.T) {
	_, err := statement.NewReader(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

// Detecting the same byte stream twice must yield an identical mapping.
func TestNewReader_Idempotent(t *testing.T) {
	input := "Run Date,Memo,Withdrawal,Deposit,Type\n07/01/2025,Kroger,42.10,,debit\n"

	r1, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)
	r2, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, r1.Mapping(), r2.Mapping())
}

func TestReader_SkipsBlankDataLines(t *testing.T) {
	input := "Date,Description,Amount\n07/01/2025,Kroger,-12.34\n\n07/02/2025,Shell,-30.00\n"
	r, err := statement.NewReader(strings.NewReader(input))
	require.NoError(t, err)

	rows := readAll(t, r)
	assert.Len(t, rows, 2)
}
