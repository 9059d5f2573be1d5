package statement_test

import (
	"testing"
	"time"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/jmwalsh/budgetbook/internal/statement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"plain", "10.50", dec("10.50")},
		{"negative", "-5.00", dec("-5.00")},
		{"currency symbol", "$1,234.56", dec("1234.56")},
		{"parenthesis negative", "(42.00)", dec("-42.00")},
		{"parenthesis with symbol", "($1,000.00)", dec("-1000.00")},
		{"whitespace", "  7.25 ", dec("7.25")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := statement.ParseAmount(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "-", "N/A"} {
		_, err := statement.ParseAmount(raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "raw=%q", raw)
	}
}

func TestMergeSplitAmount(t *testing.T) {
	got, err := statement.MergeSplitAmount("", "1500.00")
	require.NoError(t, err)
	assert.True(t, dec("1500.00").Equal(got))

	got, err = statement.MergeSplitAmount("42.10", "")
	require.NoError(t, err)
	assert.True(t, dec("-42.10").Equal(got))

	// Credit wins when both are present.
	got, err = statement.MergeSplitAmount("42.10", "10.00")
	require.NoError(t, err)
	assert.True(t, dec("10.00").Equal(got))

	// Debits are coerced negative even when the bank already signed them.
	got, err = statement.MergeSplitAmount("-42.10", "")
	require.NoError(t, err)
	assert.True(t, dec("-42.10").Equal(got))

	_, err = statement.MergeSplitAmount("", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolveSignClass(t *testing.T) {
	tests := []struct {
		name   string
		hint   string
		column string
		amount decimal.Decimal
		want   statement.SignClass
	}{
		{"hint income", "income", "", dec("-5"), statement.ClassIncome},
		{"hint deposit", "Direct Deposit", "", dec("-5"), statement.ClassIncome},
		{"hint withdraw", "withdrawal", "", dec("5"), statement.ClassExpense},
		{"hint debit", "DEBIT", "", dec("5"), statement.ClassExpense},
		{"column debit forces expense", "", "Debit Amount", dec("5"), statement.ClassExpense},
		{"column credit forces income", "", "credit", dec("-5"), statement.ClassIncome},
		{"negative is expense", "", "Amount", dec("-5"), statement.ClassExpense},
		{"positive is income", "", "Amount", dec("5"), statement.ClassIncome},
		{"zero is income", "", "Amount", decimal.Zero, statement.ClassIncome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statement.ResolveSignClass(tt.hint, tt.column, tt.amount))
		})
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"07/01/2025", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"2025-07-01", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"07/01/25", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"07/01", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"7/1/2025", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		// December statement imported in July reads as last December.
		{"12/15", time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := statement.ParseDate(tt.raw, now)
		require.NoError(t, err, "raw=%q", tt.raw)
		assert.True(t, tt.want.Equal(got), "raw=%q want %s got %s", tt.raw, tt.want, got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	now := time.Now()
	for _, raw := range []string{"", "yesterday", "13/45/2020"} {
		_, err := statement.ParseDate(raw, now)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "raw=%q", raw)
	}
}

func TestParseDate_FutureRejected(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	for _, raw := range []string{"08/01/2025", "2026-01-01"} {
		_, err := statement.ParseDate(raw, now)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "raw=%q", raw)
	}
}

func TestParseRow_SingleAmountColumn(t *testing.T) {
	input := "Post Date,Description,Amount\n"
	r := mustReader(t, input+"07/01/2025,Starbucks,-5.00\n")
	row, err := r.Next()
	require.NoError(t, err)

	parsed, err := statement.ParseRow(r.Mapping(), row, time.Now())
	require.NoError(t, err)
	assert.True(t, dec("5.00").Equal(parsed.Amount))
	assert.Equal(t, statement.ClassExpense, parsed.Class)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), parsed.Date)
	assert.Equal(t, "STARBUCKS", parsed.Merchant)
	assert.Equal(t, "Starbucks", parsed.RawDescription)
}

func TestParseRow_PositionalWithEmbeddedDate(t *testing.T) {
	r := mustReader(t, "Branch Cash Withdrawal 07/01 12:00:00 POS WALMART 123 GA,-10.00\n")
	row, err := r.Next()
	require.NoError(t, err)

	now := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)
	parsed, err := statement.ParseRow(r.Mapping(), row, now)
	require.NoError(t, err)
	assert.Equal(t, "WALMART", parsed.Merchant)
	assert.True(t, dec("10.00").Equal(parsed.Amount))
	assert.Equal(t, statement.ClassExpense, parsed.Class)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), parsed.Date)
}

func TestParseRow_SplitColumns(t *testing.T) {
	input := "Transaction Date,Details,Debit,Credit\n07/01/2025,Paycheck,,1500.00\n07/02/2025,Kroger,42.10,\n"
	r := mustReader(t, input)

	row, err := r.Next()
	require.NoError(t, err)
	parsed, err := statement.ParseRow(r.Mapping(), row, time.Now())
	require.NoError(t, err)
	assert.Equal(t, statement.ClassIncome, parsed.Class)
	assert.True(t, dec("1500.00").Equal(parsed.Amount))

	row, err = r.Next()
	require.NoError(t, err)
	parsed, err = statement.ParseRow(r.Mapping(), row, time.Now())
	require.NoError(t, err)
	assert.Equal(t, statement.ClassExpense, parsed.Class)
	assert.True(t, dec("42.10").Equal(parsed.Amount))
}

func TestParseRow_BadAmountSkips(t *testing.T) {
	r := mustReader(t, "Date,Description,Amount\n07/01/2025,Kroger,oops\n")
	row, err := r.Next()
	require.NoError(t, err)
	_, err = statement.ParseRow(r.Mapping(), row, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
