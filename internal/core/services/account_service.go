package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
	portssvc "github.com/ThreadBooks/thread_books_app/internal/core/ports/services"
	"github.com/ThreadBooks/thread_books_app/internal/dto"
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrInvalidRole        = errors.New("invalid posting role")
)

// defaultAccountSeed describes one row of the mandatory chart seeded
// for every new company.
type defaultAccountSeed struct {
	Code        string
	Name        string
	AccountType domain.AccountType
	Class       domain.AccountClass
	Role        domain.AccountRole // bound after creation when non-empty
}

// defaultChart is the minimum chart a company needs before any posting
// can succeed: the three payment accounts plus the two role accounts
// the builder resolves receivables and payables through.
var defaultChart = []defaultAccountSeed{
	{Code: "1000", Name: "Cash", AccountType: domain.Asset, Class: domain.ClassCash},
	{Code: "1010", Name: "Bank", AccountType: domain.Asset, Class: domain.ClassBank},
	{Code: "1020", Name: "Mobile Wallet", AccountType: domain.Asset, Class: domain.ClassMobileWallet},
	{Code: "1100", Name: "Accounts Receivable", AccountType: domain.Asset, Role: domain.RoleAccountsReceivable},
	{Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, Role: domain.RoleAccountsPayable},
}

// accountService implements the chart-of-accounts registry.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account registry service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the company's chart. Codes
// are unique per company; a clash surfaces as apperrors.ErrDuplicate.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAccountType, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		BranchID:    req.BranchID,
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Class:       req.Class,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Account code already taken", slog.String("code", req.Code), slog.String("company_id", companyID))
			return nil, fmt.Errorf("%w: code %s", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID fetches one account, scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	if account.CompanyID != companyID {
		// Obscure cross company existence.
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs batch-fetches accounts by ID. Missing IDs are simply
// absent from the map; company scoping is the caller's job, so the
// posting builder can report a cross-company account distinctly from an
// unknown one.
func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accountsMap, nil
}

// ListAccounts lists active accounts of a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount changes the mutable details of an account. Code and
// type stay fixed once the account exists, so historical lines keep
// their meaning.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. Posted lines keep pointing
// at it; it just stops accepting new postings and drops out of listings.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetAccountByID(ctx, companyID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SetRoleAccount binds a posting role to an account, replacing any
// previous binding for that role.
func (s *accountService) SetRoleAccount(ctx context.Context, companyID string, role domain.AccountRole, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !role.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	account, err := s.GetAccountByID(ctx, companyID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return fmt.Errorf("%w: ID %s", ErrInactiveAccount, accountID)
	}

	if err := s.accountRepo.SetRoleAccount(ctx, companyID, role, accountID, userID, time.Now().UTC()); err != nil {
		logger.Error("Failed to set role account", slog.String("error", err.Error()), slog.String("role", string(role)))
		return fmt.Errorf("failed to set role account: %w", err)
	}

	logger.Info("Role account bound", slog.String("role", string(role)), slog.String("account_id", accountID))
	return nil
}

// ResolveRoleAccount resolves the account configured for a role. An
// unmapped role fails fast rather than matching an account by name.
func (s *accountService) ResolveRoleAccount(ctx context.Context, companyID string, role domain.AccountRole) (*domain.Account, error) {
	account, err := s.accountRepo.FindRoleAccount(ctx, companyID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve role %s: %w", role, err)
	}
	return account, nil
}

// EnsureDefaultAccounts seeds the mandatory chart for a new company and
// binds the receivable/payable roles. Accounts whose code already
// exists are left untouched, so the call is idempotent.
func (s *accountService) EnsureDefaultAccounts(ctx context.Context, companyID string, creatorUserID string) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ensured := make([]domain.Account, 0, len(defaultChart))

	for _, seed := range defaultChart {
		existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, seed.Code)
		if err == nil {
			ensured = append(ensured, *existing)
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check default account %s: %w", seed.Code, err)
		}

		account := domain.Account{
			AccountID:   uuid.NewString(),
			CompanyID:   companyID,
			Code:        seed.Code,
			Name:        seed.Name,
			AccountType: seed.AccountType,
			Class:       seed.Class,
			IsActive:    true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			// A concurrent setup call may have seeded the same code.
			if errors.Is(err, apperrors.ErrDuplicate) {
				existing, ferr := s.accountRepo.FindAccountByCode(ctx, companyID, seed.Code)
				if ferr != nil {
					return nil, fmt.Errorf("failed to re-read default account %s: %w", seed.Code, ferr)
				}
				ensured = append(ensured, *existing)
				continue
			}
			logger.Error("Failed to seed default account", slog.String("error", err.Error()), slog.String("code", seed.Code))
			return nil, fmt.Errorf("failed to seed default account %s: %w", seed.Code, err)
		}
		ensured = append(ensured, account)
	}

	// Bind roles to whichever account now owns the role's code.
	for i, seed := range defaultChart {
		if seed.Role == "" {
			continue
		}
		if _, err := s.accountRepo.FindRoleAccount(ctx, companyID, seed.Role); err == nil {
			continue
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check role %s: %w", seed.Role, err)
		}
		if err := s.accountRepo.SetRoleAccount(ctx, companyID, seed.Role, ensured[i].AccountID, creatorUserID, now); err != nil {
			return nil, fmt.Errorf("failed to bind role %s: %w", seed.Role, err)
		}
	}

	logger.Info("Default accounts ensured", slog.String("company_id", companyID), slog.Int("count", len(ensured)))
	return ensured, nil
}
