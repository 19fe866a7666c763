package services

import (
	"context"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// ReportingSvcFacade answers the read-only projections computed from the
// stored lines. Nothing here mutates ledger state.
type ReportingSvcFacade interface {
	// RunningBalance returns the derived balance of one account as of a
	// date (inclusive); zero asOf means all history.
	RunningBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (domain.Money, error)

	// AccountLedger returns the statement view of one account with
	// per-row running balances.
	AccountLedger(ctx context.Context, companyID string, accountID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerRow, *string, error)

	// Summary computes the dashboard cards for a date range.
	Summary(ctx context.Context, companyID string, from, to time.Time) (*domain.DashboardSummary, error)

	// SummaryByReferenceType totals entry amounts of one source kind.
	SummaryByReferenceType(ctx context.Context, companyID string, refType domain.ReferenceType, from, to time.Time) (domain.Money, error)

	// NetProfit is total income minus total expense for the range.
	NetProfit(ctx context.Context, companyID string, from, to time.Time) (domain.Money, error)

	// Receivables groups open customer dues by counterpart.
	Receivables(ctx context.Context, companyID string) ([]domain.CounterpartOutstanding, error)

	// Payables groups open supplier dues by counterpart.
	Payables(ctx context.Context, companyID string) ([]domain.CounterpartOutstanding, error)

	// CashSummary returns balances of cash-class accounts.
	CashSummary(ctx context.Context, companyID string) ([]domain.AccountBalance, error)

	// BankSummary returns balances of bank-class accounts.
	BankSummary(ctx context.Context, companyID string) ([]domain.AccountBalance, error)

	// DayBook lists entries (with lines) chronologically for a range.
	DayBook(ctx context.Context, companyID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}
