package dto

import (
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRowResponse is one statement row of an account ledger.
type LedgerRowResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNo        string          `json:"entryNo"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description,omitempty"`
	ReferenceType  string          `json:"referenceType"`
	BranchID       string          `json:"branchID,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse wraps a page of statement rows.
type AccountLedgerResponse struct {
	AccountID string              `json:"accountID"`
	Rows      []LedgerRowResponse `json:"rows"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToAccountLedgerResponse converts ledger rows to the statement DTO.
func ToAccountLedgerResponse(accountID string, rows []domain.LedgerRow, nextToken *string) AccountLedgerResponse {
	out := AccountLedgerResponse{AccountID: accountID, Rows: make([]LedgerRowResponse, len(rows)), NextToken: nextToken}
	for i, r := range rows {
		out.Rows[i] = LedgerRowResponse{
			EntryID:        r.EntryID,
			EntryNo:        r.EntryNo,
			EntryDate:      r.EntryDate,
			Description:    r.Description,
			ReferenceType:  string(r.ReferenceType),
			BranchID:       r.BranchID,
			Debit:          r.Debit.Decimal(),
			Credit:         r.Credit.Decimal(),
			RunningBalance: r.RunningBalance.Decimal(),
		}
	}
	return out
}

// BalanceResponse is a single derived account balance.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      *time.Time      `json:"asOf,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
}

// SummaryResponse backs the dashboard cards.
type SummaryResponse struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	Receivables  decimal.Decimal `json:"receivables"`
	Payables     decimal.Decimal `json:"payables"`
	CashBalance  decimal.Decimal `json:"cashBalance"`
	BankBalance  decimal.Decimal `json:"bankBalance"`
}

// ToSummaryResponse converts the domain summary for a range.
func ToSummaryResponse(s *domain.DashboardSummary, from, to time.Time) SummaryResponse {
	return SummaryResponse{
		From:         from,
		To:           to,
		TotalIncome:  s.TotalIncome.Decimal(),
		TotalExpense: s.TotalExpense.Decimal(),
		NetProfit:    s.NetProfit.Decimal(),
		Receivables:  s.Receivables.Decimal(),
		Payables:     s.Payables.Decimal(),
		CashBalance:  s.CashBalance.Decimal(),
		BankBalance:  s.BankBalance.Decimal(),
	}
}

// CounterpartRowResponse is one receivables/payables row.
type CounterpartRowResponse struct {
	CounterpartID string          `json:"counterpartID"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// OutstandingResponse wraps a receivables or payables report.
type OutstandingResponse struct {
	Rows  []CounterpartRowResponse `json:"rows"`
	Total decimal.Decimal          `json:"total"`
}

// ToOutstandingResponse converts counterpart rows plus their total.
func ToOutstandingResponse(rows []domain.CounterpartOutstanding) OutstandingResponse {
	out := OutstandingResponse{Rows: make([]CounterpartRowResponse, len(rows))}
	var total domain.Money
	for i, r := range rows {
		out.Rows[i] = CounterpartRowResponse{CounterpartID: r.CounterpartID, Outstanding: r.Outstanding.Decimal()}
		total += r.Outstanding
	}
	out.Total = total.Decimal()
	return out
}

// AccountBalanceRowResponse is one cash/bank summary row.
type AccountBalanceRowResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// ClassSummaryResponse wraps a cash or bank summary.
type ClassSummaryResponse struct {
	Accounts []AccountBalanceRowResponse `json:"accounts"`
	Total    decimal.Decimal             `json:"total"`
}

// ToClassSummaryResponse converts class balances plus their total.
func ToClassSummaryResponse(balances []domain.AccountBalance) ClassSummaryResponse {
	out := ClassSummaryResponse{Accounts: make([]AccountBalanceRowResponse, len(balances))}
	var total domain.Money
	for i, b := range balances {
		out.Accounts[i] = AccountBalanceRowResponse{AccountID: b.AccountID, Code: b.Code, Name: b.Name, Balance: b.Balance.Decimal()}
		total += b.Balance
	}
	out.Total = total.Decimal()
	return out
}
