package dto

import (
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code        string              `json:"code" binding:"required"`
	Name        string              `json:"name" binding:"required"`
	AccountType domain.AccountType  `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Class       domain.AccountClass `json:"class" binding:"omitempty,oneof=CASH BANK MOBILE_WALLET"`
	BranchID    string              `json:"branchID"`    // Optional branch scope
	Description string              `json:"description"` // Optional
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// SetRoleAccountRequest binds a posting role to an account.
type SetRoleAccountRequest struct {
	Role      domain.AccountRole `json:"role" binding:"required,oneof=ACCOUNTS_RECEIVABLE ACCOUNTS_PAYABLE WORKER_PAYABLE SALARY_EXPENSE"`
	AccountID string             `json:"accountID" binding:"required"`
}

// AccountResponse mirrors domain.Account for API consumers.
type AccountResponse struct {
	AccountID   string              `json:"accountID"`
	CompanyID   string              `json:"companyID"`
	BranchID    string              `json:"branchID,omitempty"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	AccountType domain.AccountType  `json:"accountType"`
	Class       domain.AccountClass `json:"class,omitempty"`
	Description string              `json:"description,omitempty"`
	IsActive    bool                `json:"isActive"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		CompanyID:   acc.CompanyID,
		BranchID:    acc.BranchID,
		Code:        acc.Code,
		Name:        acc.Name,
		AccountType: acc.AccountType,
		Class:       acc.Class,
		Description: acc.Description,
		IsActive:    acc.IsActive,
		CreatedAt:   acc.CreatedAt,
		CreatedBy:   acc.CreatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
