package accounting

import (
	"errors"
	"fmt"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// ErrUnbalanced is returned when an entry's debits and credits disagree.
// It is never coerced into balance: disagreement means a programming
// error in whoever assembled the lines.
var ErrUnbalanced = errors.New("entry debits and credits do not balance")

// ErrTooFewLines is returned for entries with fewer than two lines.
var ErrTooFewLines = errors.New("entry must have at least two lines")

// ValidateEntryBalance checks the double-entry invariant over a set of
// lines: at least two lines, every line strictly one-sided with a
// positive amount, and sum(debit) == sum(credit).
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < 2 {
		return ErrTooFewLines
	}

	var debits, credits domain.Money
	for _, line := range lines {
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("line for account %s carries a negative amount", line.AccountID)
		}
		if (line.Debit > 0) == (line.Credit > 0) {
			return fmt.Errorf("line for account %s must have exactly one of debit/credit set", line.AccountID)
		}
		debits += line.Debit
		credits += line.Credit
	}

	if debits != credits {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s", ErrUnbalanced, debits, credits)
	}
	return nil
}

// EntryAmount computes the economic value of a balanced entry: the sum
// of its debit side, which for a balanced entry equals the credit side.
func EntryAmount(lines []domain.JournalEntryLine) domain.Money {
	var total domain.Money
	for _, line := range lines {
		total += line.Debit
	}
	return total
}

// RunningBalances folds lines (already ordered by entry date then
// creation order) into the balance after each line, signed per the
// account's normal-balance side.
func RunningBalances(lines []domain.JournalEntryLine, accountType domain.AccountType, opening domain.Money) []domain.Money {
	balances := make([]domain.Money, len(lines))
	balance := opening
	for i, line := range lines {
		balance += line.SignedAmount(accountType)
		balances[i] = balance
	}
	return balances
}
