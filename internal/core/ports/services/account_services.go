package services

import (
	"context"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	"github.com/ThreadBooks/thread_books_app/internal/dto"
)

// AccountSvcFacade is the chart-of-accounts registry surface used by
// handlers and by the posting builder.
type AccountSvcFacade interface {
	// CreateAccount registers a new account in a company's chart.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID fetches one account, scoped to the company.
	GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error)

	// GetAccountsByIDs batch-fetches accounts for posting validation.
	// Rows come back as stored, so callers can tell a missing account
	// from one that belongs to another company.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts lists active accounts of a company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)

	// UpdateAccount changes name/description of an account.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-deletes an account.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error

	// SetRoleAccount binds a posting role (e.g. ACCOUNTS_PAYABLE) to an
	// account, replacing any previous binding.
	SetRoleAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string, userID string) error

	// ResolveRoleAccount resolves the account configured for a role.
	ResolveRoleAccount(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error)

	// EnsureDefaultAccounts seeds the mandatory chart for a new company
	// (Cash, Bank, Mobile Wallet, Accounts Receivable, Accounts
	// Payable) and binds the AR/AP roles. Idempotent.
	EnsureDefaultAccounts(ctx context.Context, companyID string, creatorUserID string) ([]domain.Account, error)
}
