package domain

import "time"

// LedgerRow is one statement line of an account ledger, carrying the
// running balance after the line was applied.
type LedgerRow struct {
	EntryID        string        `json:"entryID"`
	EntryNo        string        `json:"entryNo"`
	EntryDate      time.Time     `json:"entryDate"`
	Description    string        `json:"description"`
	ReferenceType  ReferenceType `json:"referenceType"`
	BranchID       string        `json:"branchID"`
	Debit          Money         `json:"debit"`
	Credit         Money         `json:"credit"`
	RunningBalance Money         `json:"runningBalance"`
	CreatedBy      string        `json:"createdBy"`
}

// AccountBalance pairs an account with its derived balance, signed per
// the account's normal-balance side.
type AccountBalance struct {
	AccountID   string       `json:"accountID"`
	Code        string       `json:"code"`
	Name        string       `json:"name"`
	AccountType AccountType  `json:"accountType"`
	Class       AccountClass `json:"class"`
	Balance     Money        `json:"balance"`
}

// CounterpartOutstanding is one row of the receivables/payables views:
// the open amount a counterpart still owes (or is owed).
type CounterpartOutstanding struct {
	CounterpartID string `json:"counterpartID"`
	Outstanding   Money  `json:"outstanding"`
}

// DashboardSummary backs the dashboard cards for one date range.
type DashboardSummary struct {
	TotalIncome  Money `json:"totalIncome"`
	TotalExpense Money `json:"totalExpense"`
	NetProfit    Money `json:"netProfit"`
	Receivables  Money `json:"receivables"`
	Payables     Money `json:"payables"`
	CashBalance  Money `json:"cashBalance"`
	BankBalance  Money `json:"bankBalance"`
}
