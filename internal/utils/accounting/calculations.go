package accounting

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryNumberPrefix and EntryNumberWidth shape generated journal entry numbers (J-000001).
const (
	EntryNumberPrefix = "J-"
	EntryNumberWidth  = 6
)

// ValidateEntryLines checks the lines of one manual journal entry: at least two
// lines, each with exactly one positive side, and total debits equal to total credits.
func ValidateEntryLines(lines []domain.JournalEntry) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsPositive() == line.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("%w: debits %s, credits %s", apperrors.ErrUnbalancedEntry, totalDebit.String(), totalCredit.String())
	}
	return nil
}

// SplitAmount turns an amount and direction into the (debit, credit) pair of an entry line.
func SplitAmount(amount decimal.Decimal, direction domain.EntryDirection) (decimal.Decimal, decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	switch direction {
	case domain.Debit:
		return amount, decimal.Zero, nil
	case domain.Credit:
		return decimal.Zero, amount, nil
	default:
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, direction)
	}
}

// NextSequentialCode returns prefix followed by one more than the highest numeric
// suffix among existing, zero padded to width. Codes with non-numeric suffixes are ignored.
func NextSequentialCode(existing []string, prefix string, width int) string {
	highest := 0
	for _, code := range existing {
		suffix, ok := strings.CutPrefix(code, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		highest = max(highest, n)
	}
	return fmt.Sprintf("%s%0*d", prefix, width, highest+1)
}
