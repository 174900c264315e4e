package accounting

import (
	"fmt"

	"github.com/finken/finken_backend/internal/apperrors"
	"github.com/finken/finken_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the accounting sign convention to a line amount:
// a line on the account's normal side grows the balance, the opposite side
// shrinks it. The same rule drives posting, the ledger view, and the
// reconciliation job, so it lives in one place.
func SignedAmount(amount decimal.Decimal, side, normalSide domain.EntrySide) decimal.Decimal {
	if side == normalSide {
		return amount
	}
	return amount.Neg()
}

// SignedPostingAmount returns the balance effect of a ledger posting for an
// account with the given normal side.
func SignedPostingAmount(p domain.LedgerPosting, normalSide domain.EntrySide) decimal.Decimal {
	if normalSide == domain.Debit {
		return p.Debit.Sub(p.Credit)
	}
	return p.Credit.Sub(p.Debit)
}

// SumsBySide returns the debit and credit totals of a line set.
func SumsBySide(lines []domain.JournalEntryLine) (debits, credits decimal.Decimal) {
	for _, line := range lines {
		if line.Side == domain.Debit {
			debits = debits.Add(line.Amount)
		} else {
			credits = credits.Add(line.Amount)
		}
	}
	return debits, credits
}

// ValidateLines enforces the structural and balancing rules for a candidate
// journal entry line set:
//   - at least two lines, with at least one debit and one credit,
//   - every line references an account, has a recognised side, and carries a
//     strictly positive amount,
//   - the debit total equals the credit total exactly (no rounding tolerance).
//
// It is a pure function; account existence is the caller's concern. All
// failures wrap apperrors.ErrValidation.
func ValidateLines(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}

	debitSeen, creditSeen := false, false
	for i, line := range lines {
		if line.AccountID == "" {
			return fmt.Errorf("%w: line %d is missing an account reference", apperrors.ErrValidation, i+1)
		}
		if !line.Side.Valid() {
			return fmt.Errorf("%w: line %d has invalid type %q, must be DEBIT or CREDIT", apperrors.ErrValidation, i+1, line.Side)
		}
		if line.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: line %d amount %s must be strictly positive", apperrors.ErrValidation, i+1, line.Amount.String())
		}
		if line.Side == domain.Debit {
			debitSeen = true
		} else {
			creditSeen = true
		}
	}

	if !debitSeen || !creditSeen {
		return fmt.Errorf("%w: journal entry must have at least one debit and one credit line", apperrors.ErrValidation)
	}

	debits, credits := SumsBySide(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: journal entry does not balance, debits total %s but credits total %s",
			apperrors.ErrValidation, debits.String(), credits.String())
	}

	return nil
}
