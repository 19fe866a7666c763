package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryDate accepts both date-only ("2024-03-10") and RFC3339 payloads.
// Posting dates carry day granularity, so callers should not have to
// invent a time of day.
type EntryDate struct {
	time.Time
}

func (d *EntryDate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q, want 2006-01-02 or RFC3339: %w", s, err)
	}
	d.Time = t
	return nil
}

func (d EntryDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// PostingBase carries the fields every posting request shares. Amounts
// arrive as display decimals ("500.00") and are converted to minor
// units at this boundary.
type PostingBase struct {
	Date          EntryDate       `json:"date" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,money"`
	Description   string          `json:"description"`
	BranchID      string          `json:"branchID"`
	ReferenceID   string          `json:"referenceID"`   // Originating record, part of the idempotency key
	CounterpartID string          `json:"counterpartID"` // Customer/supplier/worker being settled
}

func (b PostingBase) eventBase(companyID string) domain.EventBase {
	return domain.EventBase{
		CompanyID:     companyID,
		BranchID:      b.BranchID,
		Date:          b.Date.Time,
		Amount:        domain.MoneyFromDecimal(b.Amount),
		Description:   b.Description,
		ReferenceID:   b.ReferenceID,
		CounterpartID: b.CounterpartID,
	}
}

// ManualJournalRequest posts a user-chosen debit/credit pair.
type ManualJournalRequest struct {
	PostingBase
	DebitAccountID  string `json:"debitAccountID" binding:"required"`
	CreditAccountID string `json:"creditAccountID" binding:"required"`
}

// ToEvent converts the request into its domain event.
func (r ManualJournalRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.ManualJournalEvent{
		EventBase:       r.eventBase(companyID),
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
	}
}

// TransferRequest moves money between two payment accounts.
type TransferRequest struct {
	PostingBase
	FromAccountID string `json:"fromAccountID" binding:"required"`
	ToAccountID   string `json:"toAccountID" binding:"required"`
}

func (r TransferRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.TransferEvent{
		EventBase:     r.eventBase(companyID),
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
	}
}

// SupplierPaymentRequest settles supplier dues from a payment account.
type SupplierPaymentRequest struct {
	PostingBase
	PaymentAccountID string `json:"paymentAccountID" binding:"required"`
}

func (r SupplierPaymentRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.SupplierPaymentEvent{
		EventBase:        r.eventBase(companyID),
		PaymentAccountID: r.PaymentAccountID,
	}
}

// WorkerPaymentRequest pays a worker, optionally against accrued dues.
type WorkerPaymentRequest struct {
	PostingBase
	PaymentAccountID string `json:"paymentAccountID" binding:"required"`
	Accrued          bool   `json:"accrued"`
}

func (r WorkerPaymentRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.WorkerPaymentEvent{
		EventBase:        r.eventBase(companyID),
		PaymentAccountID: r.PaymentAccountID,
		Accrued:          r.Accrued,
	}
}

// ExpenseRequest records an expense paid from a payment account.
type ExpenseRequest struct {
	PostingBase
	ExpenseAccountID string `json:"expenseAccountID" binding:"required"`
	PaymentAccountID string `json:"paymentAccountID" binding:"required"`
}

func (r ExpenseRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.ExpenseEvent{
		EventBase:        r.eventBase(companyID),
		ExpenseAccountID: r.ExpenseAccountID,
		PaymentAccountID: r.PaymentAccountID,
	}
}

// CustomerReceiptRequest collects customer dues into a payment account.
type CustomerReceiptRequest struct {
	PostingBase
	PaymentAccountID string `json:"paymentAccountID" binding:"required"`
}

func (r CustomerReceiptRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.CustomerReceiptEvent{
		EventBase:        r.eventBase(companyID),
		PaymentAccountID: r.PaymentAccountID,
	}
}

// SourceDocumentRequest is the generic endpoint used by the other
// modules (sales, purchases, rentals, returns) whose account pair the
// module determines itself.
type SourceDocumentRequest struct {
	PostingBase
	Kind            domain.ReferenceType `json:"kind" binding:"required,oneof=sale sale_return purchase purchase_return rental extra_expense"`
	DebitAccountID  string               `json:"debitAccountID" binding:"required"`
	CreditAccountID string               `json:"creditAccountID" binding:"required"`
}

func (r SourceDocumentRequest) ToEvent(companyID string) domain.PostingEvent {
	return domain.SourceDocumentEvent{
		EventBase:       r.eventBase(companyID),
		KindTag:         r.Kind,
		DebitAccountID:  r.DebitAccountID,
		CreditAccountID: r.CreditAccountID,
	}
}
