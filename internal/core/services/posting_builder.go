package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/utils/accounting"
)

var (
	ErrInvalidAmount     = errors.New("posting amount must be positive")
	ErrSameAccount       = errors.New("debit and credit accounts must differ")
	ErrAccountNotFound   = errors.New("account not found")
	ErrCompanyMismatch   = errors.New("account belongs to a different company")
	ErrInactiveAccount   = errors.New("account is inactive")
	ErrUnknownEventKind  = errors.New("unknown posting event kind")
	ErrMissingEntryDate  = errors.New("posting date is required")
	ErrRoleNotConfigured = errors.New("posting role has no account configured")
)

// postingBuilder translates business events into balanced journal
// entries. It is pure apart from account lookups: it never writes, so
// the ledger service can rebuild and retry the same event safely.
type postingBuilder struct {
	accountSvc portssvc.AccountSvcFacade
}

func newPostingBuilder(accountSvc portssvc.AccountSvcFacade) *postingBuilder {
	return &postingBuilder{accountSvc: accountSvc}
}

// accountPair is the resolved debit/credit destination of an event.
type accountPair struct {
	debitAccountID  string
	creditAccountID string
}

// resolveAccounts maps each event variant onto its debit/credit pair.
// The switch is exhaustive over the sealed event set; a new variant
// that reaches the default case is a programming error.
func (b *postingBuilder) resolveAccounts(ctx context.Context, event domain.PostingEvent) (accountPair, error) {
	switch e := event.(type) {
	case domain.ManualJournalEvent:
		return accountPair{debitAccountID: e.DebitAccountID, creditAccountID: e.CreditAccountID}, nil

	case domain.TransferEvent:
		// Money moves into the destination: debit grows the target
		// asset account, credit shrinks the source.
		return accountPair{debitAccountID: e.ToAccountID, creditAccountID: e.FromAccountID}, nil

	case domain.SupplierPaymentEvent:
		payable, err := b.roleAccount(ctx, e.CompanyID, domain.RoleAccountsPayable)
		if err != nil {
			return accountPair{}, err
		}
		return accountPair{debitAccountID: payable, creditAccountID: e.PaymentAccountID}, nil

	case domain.WorkerPaymentEvent:
		role := domain.RoleSalaryExpense
		if e.Accrued {
			role = domain.RoleWorkerPayable
		}
		debit, err := b.roleAccount(ctx, e.CompanyID, role)
		if err != nil {
			return accountPair{}, err
		}
		return accountPair{debitAccountID: debit, creditAccountID: e.PaymentAccountID}, nil

	case domain.ExpenseEvent:
		return accountPair{debitAccountID: e.ExpenseAccountID, creditAccountID: e.PaymentAccountID}, nil

	case domain.CustomerReceiptEvent:
		receivable, err := b.roleAccount(ctx, e.CompanyID, domain.RoleAccountsReceivable)
		if err != nil {
			return accountPair{}, err
		}
		return accountPair{debitAccountID: e.PaymentAccountID, creditAccountID: receivable}, nil

	case domain.SourceDocumentEvent:
		return accountPair{debitAccountID: e.DebitAccountID, creditAccountID: e.CreditAccountID}, nil

	default:
		return accountPair{}, fmt.Errorf("%w: %T", ErrUnknownEventKind, event)
	}
}

func (b *postingBuilder) roleAccount(ctx context.Context, companyID string, role domain.AccountRole) (string, error) {
	account, err := b.accountSvc.ResolveRoleAccount(ctx, companyID, role)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRoleNotConfigured, role, err)
	}
	return account.AccountID, nil
}

// BuildEntry validates the event and assembles the balanced entry with
// its two lines. EntryNo and EntrySeq stay empty: the store allocates
// them inside the commit transaction.
func (b *postingBuilder) BuildEntry(ctx context.Context, event domain.PostingEvent, creatorUserID string, now time.Time) (*domain.JournalEntry, []domain.JournalEntryLine, error) {
	base := event.Base()

	if !base.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: got %s", ErrInvalidAmount, base.Amount)
	}
	if base.Date.IsZero() {
		return nil, nil, ErrMissingEntryDate
	}

	pair, err := b.resolveAccounts(ctx, event)
	if err != nil {
		return nil, nil, err
	}
	if pair.debitAccountID == pair.creditAccountID {
		return nil, nil, fmt.Errorf("%w: account %s on both sides", ErrSameAccount, pair.debitAccountID)
	}

	accountsMap, err := b.accountSvc.GetAccountsByIDs(ctx, []string{pair.debitAccountID, pair.creditAccountID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch accounts for posting: %w", err)
	}
	for _, accountID := range []string{pair.debitAccountID, pair.creditAccountID} {
		acc, found := accountsMap[accountID]
		if !found {
			return nil, nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, accountID)
		}
		if acc.CompanyID != base.CompanyID {
			return nil, nil, fmt.Errorf("%w: ID %s", ErrCompanyMismatch, accountID)
		}
		if !acc.IsActive {
			return nil, nil, fmt.Errorf("%w: ID %s", ErrInactiveAccount, accountID)
		}
	}

	entryID := uuid.NewString()
	lines := []domain.JournalEntryLine{
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   pair.debitAccountID,
			Debit:       base.Amount,
			Description: base.Description,
			CreatedAt:   now,
		},
		{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   pair.creditAccountID,
			Credit:      base.Amount,
			Description: base.Description,
			CreatedAt:   now,
		},
	}

	// A builder bug can only surface as an unbalanced set here, so the
	// cross-check is cheap and final.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, nil, err
	}

	entry := &domain.JournalEntry{
		EntryID:       entryID,
		CompanyID:     base.CompanyID,
		BranchID:      base.BranchID,
		EntrySeries:   event.Series(),
		EntryDate:     base.Date,
		Description:   base.Description,
		ReferenceType: event.Kind(),
		ReferenceID:   base.ReferenceID,
		CounterpartID: base.CounterpartID,
		Amount:        accounting.EntryAmount(lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	return entry, lines, nil
}
