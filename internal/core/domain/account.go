package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalBalanceDebit reports whether the account type grows on the
// debit side (asset, expense) as opposed to the credit side
// (liability, income, equity).
func (t AccountType) NormalBalanceDebit() bool {
	return t == Asset || t == Expense
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// AccountClass flags payment accounts for the cash/bank summary views.
// Empty for ordinary accounts.
type AccountClass string

const (
	ClassCash         AccountClass = "CASH"
	ClassBank         AccountClass = "BANK"
	ClassMobileWallet AccountClass = "MOBILE_WALLET"
)

// AccountRole names the fixed posting roles that business events resolve
// through. Each company maps every role it uses to exactly one account at
// setup time; a missing mapping fails fast instead of matching by name.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "ACCOUNTS_RECEIVABLE"
	RoleAccountsPayable    AccountRole = "ACCOUNTS_PAYABLE"
	RoleWorkerPayable      AccountRole = "WORKER_PAYABLE"
	RoleSalaryExpense      AccountRole = "SALARY_EXPENSE"
)

// Valid reports whether r is a known posting role.
func (r AccountRole) Valid() bool {
	switch r {
	case RoleAccountsReceivable, RoleAccountsPayable, RoleWorkerPayable, RoleSalaryExpense:
		return true
	}
	return false
}

// Account represents one node of a company's chart of accounts.
// This is the primary representation used by services.
type Account struct {
	AccountID   string       `json:"accountID"`   // Primary Key (UUID)
	CompanyID   string       `json:"companyID"`   // Owning company scope (NON-NULL)
	BranchID    string       `json:"branchID"`    // Optional branch scope
	Code        string       `json:"code"`        // Human-readable code, unique per company (e.g. "1100")
	Name        string       `json:"name"`        // User-defined name
	AccountType AccountType  `json:"accountType"` // ASSET, LIABILITY, etc. Never changes once lines reference the account.
	Class       AccountClass `json:"class"`       // CASH/BANK/MOBILE_WALLET for payment accounts, else empty
	Description string       `json:"description"` // Nullable user description
	IsActive    bool         `json:"isActive"`    // Soft-deactivate flag; referenced accounts are never deleted
	AuditFields
}
