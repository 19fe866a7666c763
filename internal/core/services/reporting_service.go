package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
)

// reportingService answers the derived read-only projections. Every
// figure is computed from the stored lines on each call; nothing here
// maintains materialized balances.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	entryRepo     portsrepo.EntryRepositoryFacade
	accountSvc    portssvc.AccountSvcFacade
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		entryRepo:     entryRepo,
		accountSvc:    accountSvc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// RunningBalance returns the derived balance of one account as of a
// date (inclusive); a zero asOf covers all history.
func (s *reportingService) RunningBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (domain.Money, error) {
	// Scope check first so a foreign account reads as not found rather
	// than as zero.
	if _, err := s.accountSvc.GetAccountByID(ctx, companyID, accountID); err != nil {
		return 0, err
	}

	balance, err := s.reportingRepo.GetAccountBalance(ctx, companyID, accountID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// AccountLedger returns the statement view of one account with per-row
// running balances.
func (s *reportingService) AccountLedger(ctx context.Context, companyID string, accountID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountSvc.GetAccountByID(ctx, companyID, accountID); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, next, err := s.reportingRepo.GetAccountLedger(ctx, companyID, accountID, branchID, from, to, limit, nextToken)
	if err != nil {
		logger.Error("Failed to build account ledger", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, nil, fmt.Errorf("failed to build ledger for account %s: %w", accountID, err)
	}
	return rows, next, nil
}

// Summary computes the dashboard cards for a date range. The income and
// expense cards cover the period; receivables, payables and the payment
// account balances are point-in-time as of now.
func (s *reportingService) Summary(ctx context.Context, companyID string, from, to time.Time) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	income, expense, err := s.reportingRepo.GetTypeTotals(ctx, companyID, from, to)
	if err != nil {
		logger.Error("Failed to compute type totals", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to compute income/expense totals: %w", err)
	}

	summary := &domain.DashboardSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		NetProfit:    income - expense,
	}

	if rows, err := s.Receivables(ctx, companyID); err == nil {
		for _, r := range rows {
			summary.Receivables += r.Outstanding
		}
	} else if !roleUnconfigured(err) {
		return nil, err
	}
	if rows, err := s.Payables(ctx, companyID); err == nil {
		for _, r := range rows {
			summary.Payables += r.Outstanding
		}
	} else if !roleUnconfigured(err) {
		return nil, err
	}

	cash, err := s.reportingRepo.GetBalancesByClass(ctx, companyID, domain.ClassCash)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cash balances: %w", err)
	}
	for _, b := range cash {
		summary.CashBalance += b.Balance
	}
	bank, err := s.reportingRepo.GetBalancesByClass(ctx, companyID, domain.ClassBank)
	if err != nil {
		return nil, fmt.Errorf("failed to compute bank balances: %w", err)
	}
	for _, b := range bank {
		summary.BankBalance += b.Balance
	}

	return summary, nil
}

// roleUnconfigured reports whether err stems from a company that never
// bound the role account the report depends on. The dashboard shows a
// zero card in that case instead of failing wholesale.
func roleUnconfigured(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

// SummaryByReferenceType totals entry amounts of one source kind.
func (s *reportingService) SummaryByReferenceType(ctx context.Context, companyID string, refType domain.ReferenceType, from, to time.Time) (domain.Money, error) {
	total, err := s.reportingRepo.GetReferenceTypeTotal(ctx, companyID, refType, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to total %s entries: %w", refType, err)
	}
	return total, nil
}

// NetProfit is total income minus total expense for the range.
func (s *reportingService) NetProfit(ctx context.Context, companyID string, from, to time.Time) (domain.Money, error) {
	income, expense, err := s.reportingRepo.GetTypeTotals(ctx, companyID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to compute income/expense totals: %w", err)
	}
	return income - expense, nil
}

// Receivables groups open customer dues by counterpart.
func (s *reportingService) Receivables(ctx context.Context, companyID string) ([]domain.CounterpartOutstanding, error) {
	return s.counterpartReport(ctx, companyID, domain.RoleAccountsReceivable)
}

// Payables groups open supplier dues by counterpart.
func (s *reportingService) Payables(ctx context.Context, companyID string) ([]domain.CounterpartOutstanding, error) {
	return s.counterpartReport(ctx, companyID, domain.RoleAccountsPayable)
}

func (s *reportingService) counterpartReport(ctx context.Context, companyID string, role domain.AccountRole) ([]domain.CounterpartOutstanding, error) {
	account, err := s.accountSvc.ResolveRoleAccount(ctx, companyID, role)
	if err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.GetCounterpartOutstanding(ctx, companyID, *account)
	if err != nil {
		return nil, fmt.Errorf("failed to group outstanding on %s: %w", role, err)
	}
	return rows, nil
}

// CashSummary returns balances of cash-class accounts.
func (s *reportingService) CashSummary(ctx context.Context, companyID string) ([]domain.AccountBalance, error) {
	return s.classSummary(ctx, companyID, domain.ClassCash)
}

// BankSummary returns balances of bank-class accounts.
func (s *reportingService) BankSummary(ctx context.Context, companyID string) ([]domain.AccountBalance, error) {
	return s.classSummary(ctx, companyID, domain.ClassBank)
}

func (s *reportingService) classSummary(ctx context.Context, companyID string, class domain.AccountClass) ([]domain.AccountBalance, error) {
	balances, err := s.reportingRepo.GetBalancesByClass(ctx, companyID, class)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s balances: %w", class, err)
	}
	return balances, nil
}

// DayBook lists entries with their lines chronologically for a range.
func (s *reportingService) DayBook(ctx context.Context, companyID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if limit <= 0 {
		limit = 50
	}

	entries, next, err := s.entryRepo.ListEntries(ctx, companyID, branchID, from, to, limit, nextToken)
	if err != nil {
		logger.Error("Failed to list day book entries", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return entries, next, nil
	}

	entryIDs := make([]string, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
	}
	linesMap, err := s.entryRepo.FindLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		logger.Warn("Failed to fetch lines for day book entries", slog.String("error", err.Error()))
		// The headers are still a useful day book on their own.
		return entries, next, nil
	}
	for i := range entries {
		entries[i].Lines = linesMap[entries[i].EntryID]
	}

	return entries, next, nil
}
