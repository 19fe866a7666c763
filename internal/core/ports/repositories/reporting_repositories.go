package repositories

import (
	"context"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// ReportingRepository answers the read-only aggregation queries. All of
// its SQL excludes voided entries and their reversing entries, so every
// result reflects only live postings.
type ReportingRepository interface {
	// GetAccountBalance computes the derived balance of one account as
	// of a date (inclusive), signed per the account's normal side.
	// A zero asOf means "all history".
	GetAccountBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (domain.Money, error)

	// GetAccountLedger returns statement rows for one account ordered
	// by (entry_date, created_at), with per-row running balances that
	// start from the balance before the from date. branchID filters
	// when non-empty.
	GetAccountLedger(ctx context.Context, companyID string, accountID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)

	// GetTypeTotals sums period activity for income and expense
	// accounts (income = credit-debit, expense = debit-credit).
	GetTypeTotals(ctx context.Context, companyID string, from, to time.Time) (income domain.Money, expense domain.Money, err error)

	// GetCounterpartOutstanding groups the open amounts on one role
	// account (Accounts Receivable or Payable) by counterpart.
	GetCounterpartOutstanding(ctx context.Context, companyID string, account domain.Account) ([]domain.CounterpartOutstanding, error)

	// GetBalancesByClass returns derived balances for every active
	// account of a payment class (cash, bank, mobile wallet).
	GetBalancesByClass(ctx context.Context, companyID string, class domain.AccountClass) ([]domain.AccountBalance, error)

	// GetReferenceTypeTotal sums entry amounts for one source kind in a
	// date range, powering the per-module dashboard cards.
	GetReferenceTypeTotal(ctx context.Context, companyID string, refType domain.ReferenceType, from, to time.Time) (domain.Money, error)
}
