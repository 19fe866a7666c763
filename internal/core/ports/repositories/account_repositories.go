package repositories

import (
	"context"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human-readable code within a company.
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	// IDs with no matching row are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of active accounts for a company.
	ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details
	// (name, description, active flag). Type and code are immutable.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive. Accounts
	// referenced by posted lines are never physically deleted.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRoleRepository manages the explicit role -> account mapping a
// company configures at setup time.
type AccountRoleRepository interface {
	// SetRoleAccount binds a posting role to an account for a company,
	// replacing any previous binding.
	SetRoleAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string, userID string, now time.Time) error

	// FindRoleAccount resolves the account bound to a role. Returns
	// apperrors.ErrNotFound when the company never configured the role.
	FindRoleAccount(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountRoleRepository
}
