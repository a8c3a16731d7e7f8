package accounting

import (
	"testing"

	"github.com/SscSPs/buildledger/internal/apperrors"
	"github.com/SscSPs/buildledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(debit, credit int64) domain.JournalEntry {
	return domain.JournalEntry{Debit: decimal.NewFromInt(debit), Credit: decimal.NewFromInt(credit)}
}

func TestValidateEntryLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalEntry
		wantErr error
	}{
		{"balanced", []domain.JournalEntry{line(100, 0), line(0, 60), line(0, 40)}, nil},
		{"unbalanced", []domain.JournalEntry{line(100, 0), line(0, 90)}, apperrors.ErrUnbalancedEntry},
		{"single line", []domain.JournalEntry{line(100, 0)}, apperrors.ErrValidation},
		{"both sides", []domain.JournalEntry{line(100, 100), line(0, 0)}, apperrors.ErrValidation},
		{"zero line", []domain.JournalEntry{line(100, 0), line(0, 100), line(0, 0)}, apperrors.ErrValidation},
		{"negative", []domain.JournalEntry{line(-5, 0), line(0, -5)}, apperrors.ErrValidation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEntryLines(tc.lines)
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateEntryLines_UnbalancedIsValidation(t *testing.T) {
	err := ValidateEntryLines([]domain.JournalEntry{line(10, 0), line(0, 5)})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSplitAmount(t *testing.T) {
	d, c, err := SplitAmount(decimal.NewFromInt(50), domain.Debit)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(50)))
	assert.True(t, c.IsZero())

	d, c, err = SplitAmount(decimal.NewFromInt(50), domain.Credit)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
	assert.True(t, c.Equal(decimal.NewFromInt(50)))

	_, _, err = SplitAmount(decimal.Zero, domain.Debit)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = SplitAmount(decimal.NewFromInt(1), "SIDEWAYS")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNextSequentialCode(t *testing.T) {
	assert.Equal(t, "J-000001", NextSequentialCode(nil, EntryNumberPrefix, EntryNumberWidth))
	assert.Equal(t, "J-000008", NextSequentialCode([]string{"J-000002", "J-000007", "J-000003"}, EntryNumberPrefix, EntryNumberWidth))
	assert.Equal(t, "J-000004", NextSequentialCode([]string{"J-000003", "J-manual", "OPENING"}, EntryNumberPrefix, EntryNumberWidth))
	assert.Equal(t, "J-1000000", NextSequentialCode([]string{"J-999999"}, EntryNumberPrefix, EntryNumberWidth))
}
