package statement

import (
	"fmt"
	"strings"

	"github.com/jmwalsh/budgetbook/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SignClass is the income/expense classification of a parsed row before it is
// mapped to a full transaction type.
type SignClass string

const (
	ClassIncome  SignClass = "income"
	ClassExpense SignClass = "expense"
)

// ParseAmount parses a statement cell into a signed decimal. It strips
// currency symbols and thousands separators and honors the
// parenthesis-negative convention.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", apperrors.ErrValidation)
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}

	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, s)
	if s == "" || s == "-" {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrValidation, raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a number", apperrors.ErrValidation, raw)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// MergeSplitAmount collapses separate debit/credit cells into one signed
// amount: the credit value when present, else the negated debit value. Debits
// are coerced negative and credits positive regardless of how the bank signed
// them.
func MergeSplitAmount(debitCell, creditCell string) (decimal.Decimal, error) {
	if strings.TrimSpace(creditCell) != "" {
		d, err := ParseAmount(creditCell)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Abs(), nil
	}
	if strings.TrimSpace(debitCell) != "" {
		d, err := ParseAmount(debitCell)
		if err != nil {
			return decimal.Zero, err
		}
		return d.Abs().Neg(), nil
	}
	return decimal.Zero, fmt.Errorf("%w: both debit and credit cells empty", apperrors.ErrValidation)
}

// ResolveSignClass decides whether a row is income- or expense-class. An
// explicit textual type hint wins over sign inference; a single amount column
// literally named debit*/credit* forces the class; otherwise the amount's
// sign decides.
func ResolveSignClass(typeHint, amountColumnName string, amount decimal.Decimal) SignClass {
	hint := strings.ToLower(strings.TrimSpace(typeHint))
	if hint != "" {
		switch {
		case strings.Contains(hint, "income"), strings.Contains(hint, "credit"), strings.Contains(hint, "deposit"):
			return ClassIncome
		case strings.Contains(hint, "withdraw"), strings.Contains(hint, "debit"), strings.Contains(hint, "expense"):
			return ClassExpense
		}
	}

	col := strings.ToLower(strings.TrimSpace(amountColumnName))
	switch {
	case strings.HasPrefix(col, "debit"):
		return ClassExpense
	case strings.HasPrefix(col, "credit"):
		return ClassIncome
	}

	if amount.Sign() < 0 {
		return ClassExpense
	}
	return ClassIncome
}
