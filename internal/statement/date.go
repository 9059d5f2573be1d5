package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/shopspring/decimal"
)

// dateFormats is the ordered list of layouts tried for statement dates. The
// first successful parse wins. Layouts without a year take the current year.
var dateFormats = []struct {
	layout   string
	yearless bool
}{
	{"01/02/2006", false},
	{"1/2/2006", false},
	{"2006-01-02", false},
	{"01/02/06", false},
	{"01/02", true},
	{"1/2", true},
}

// ParseDate parses a statement cell into a calendar date. now supplies the
// implied year for month/day-only values; a yearless date that would land
// after now belongs to the previous year (a December statement imported in
// January). Statements record history, so a date still in the future after
// that is rejected.
func ParseDate(raw string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", apperrors.ErrValidation)
	}
	for _, f := range dateFormats {
		t, err := time.Parse(f.layout, s)
		if err != nil {
			continue
		}
		if f.yearless {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			if t.After(now) {
				t = t.AddDate(-1, 0, 0)
			}
		}
		if t.After(now) {
			return time.Time{}, fmt.Errorf("%w: date %q is in the future", apperrors.ErrValidation, raw)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: date %q matched no known format", apperrors.ErrValidation, raw)
}

// ParsedTransaction is the canonical output of row normalization, transient
// until the import orchestrator persists it.
type ParsedTransaction struct {
	Amount         decimal.Decimal // non-negative
	Class          SignClass
	Date           time.Time
	Merchant       string
	RawDescription string
	CategoryGuess  string
}

// ParseRow normalizes one data row under the given schema mapping. The
// returned error means the row should be skipped, not the import aborted.
func ParseRow(m SchemaMapping, row RawRow, now time.Time) (ParsedTransaction, error) {
	rawDesc := row.Field(m.Description)

	var (
		amount decimal.Decimal
		err    error
	)
	if m.HasSplitColumns() {
		amount, err = MergeSplitAmount(row.Field(m.Debit), row.Field(m.Credit))
	} else {
		amount, err = ParseAmount(row.Field(m.Amount))
	}
	if err != nil {
		return ParsedTransaction{}, err
	}

	parsed := ParseDescription(rawDesc)

	// The date column when mapped, else the MM/DD token embedded in the
	// description (common in single-column exports).
	dateCell := row.Field(m.Date)
	if dateCell == "" {
		dateCell = parsed.Date
	}
	date, err := ParseDate(dateCell, now)
	if err != nil {
		return ParsedTransaction{}, err
	}

	class := ResolveSignClass(row.Field(m.TypeHint), m.AmountColumnName(), amount)

	return ParsedTransaction{
		Amount:         amount.Abs(),
		Class:          class,
		Date:           date,
		Merchant:       parsed.Merchant,
		RawDescription: strings.TrimSpace(rawDesc),
	}, nil
}
