package domain

import "time"

// PostingEvent is the sealed set of business events the posting builder
// accepts. Each variant carries only the fields its debit/credit
// resolution needs, so "which accounts does this event touch" is an
// exhaustive type switch rather than a runtime branch over a loose map.
type PostingEvent interface {
	// Kind returns the reference type recorded on the resulting entry.
	Kind() ReferenceType
	// Series returns the document number series the entry draws from.
	Series() string
	// Base returns the fields shared by every variant. Satisfied by
	// embedding EventBase, so the variant set stays closed in practice.
	Base() EventBase
}

// EventBase carries the fields shared by every posting event.
type EventBase struct {
	CompanyID   string
	BranchID    string
	Date        time.Time
	Amount      Money
	Description string
	// ReferenceID identifies the originating record (sale, payment,
	// payroll run). Together with the event kind it forms the
	// idempotency key: a second posting for the same pair is rejected
	// unless the first was voided.
	ReferenceID string
	// CounterpartID is the customer/supplier/worker the entry settles
	// against; it drives the receivables/payables grouping.
	CounterpartID string
}

func (b EventBase) Base() EventBase { return b }

// ManualJournalEvent debits and credits two user-chosen accounts.
type ManualJournalEvent struct {
	EventBase
	DebitAccountID  string
	CreditAccountID string
}

func (e ManualJournalEvent) Kind() ReferenceType { return RefManualJournal }
func (e ManualJournalEvent) Series() string      { return SeriesJournal }

// TransferEvent moves money between two payment accounts:
// debit destination, credit source.
type TransferEvent struct {
	EventBase
	FromAccountID string
	ToAccountID   string
}

func (e TransferEvent) Kind() ReferenceType { return RefTransfer }
func (e TransferEvent) Series() string      { return SeriesJournal }

// SupplierPaymentEvent settles supplier dues:
// debit Accounts Payable, credit the payment account.
type SupplierPaymentEvent struct {
	EventBase
	PaymentAccountID string
}

func (e SupplierPaymentEvent) Kind() ReferenceType { return RefSupplierPayment }
func (e SupplierPaymentEvent) Series() string      { return SeriesPayment }

// WorkerPaymentEvent pays a worker. When the wages were accrued earlier
// the debit lands on Worker Payable; a direct payout debits Salary
// Expense. Credit side is the payment account either way.
type WorkerPaymentEvent struct {
	EventBase
	PaymentAccountID string
	Accrued          bool
}

func (e WorkerPaymentEvent) Kind() ReferenceType { return RefWorkerPayment }
func (e WorkerPaymentEvent) Series() string      { return SeriesPayment }

// ExpenseEvent records an expense paid from a payment account:
// debit the expense account, credit the payment account.
type ExpenseEvent struct {
	EventBase
	ExpenseAccountID string
	PaymentAccountID string
}

func (e ExpenseEvent) Kind() ReferenceType { return RefExpense }
func (e ExpenseEvent) Series() string      { return SeriesExpense }

// SourceDocumentEvent is posted by the surrounding modules (sales,
// purchases, rentals, returns) for documents whose account pair the
// module itself determines, e.g. a completed sale debiting Accounts
// Receivable and crediting a sales income account. KindTag must come
// from the known reference-type vocabulary.
type SourceDocumentEvent struct {
	EventBase
	KindTag         ReferenceType
	DebitAccountID  string
	CreditAccountID string
}

func (e SourceDocumentEvent) Kind() ReferenceType { return e.KindTag }
func (e SourceDocumentEvent) Series() string      { return SeriesJournal }

// CustomerReceiptEvent collects customer dues:
// debit the payment account, credit Accounts Receivable.
type CustomerReceiptEvent struct {
	EventBase
	PaymentAccountID string
}

func (e CustomerReceiptEvent) Kind() ReferenceType { return RefCustomerReceipt }
func (e CustomerReceiptEvent) Series() string      { return SeriesReceipt }
