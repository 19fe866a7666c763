package domain

import "time"

// ReferenceType tags a journal entry with the business event that
// produced it. The vocabulary mirrors the source modules of the
// surrounding application; the ledger core itself only interprets
// ReferenceVoid (reversing entries).
type ReferenceType string

const (
	RefManualJournal   ReferenceType = "manual_journal"
	RefTransfer        ReferenceType = "transfer"
	RefSupplierPayment ReferenceType = "supplier_payment"
	RefWorkerPayment   ReferenceType = "worker_payment"
	RefExpense         ReferenceType = "expense"
	RefCustomerReceipt ReferenceType = "customer_receipt"
	ReferenceVoid      ReferenceType = "void"

	// Source kinds posted by the out-of-scope modules through the
	// ledger API. They carry no special handling here beyond tagging.
	RefSale           ReferenceType = "sale"
	RefSaleReturn     ReferenceType = "sale_return"
	RefPurchase       ReferenceType = "purchase"
	RefPurchaseReturn ReferenceType = "purchase_return"
	RefRental         ReferenceType = "rental"
	RefExtraExpense   ReferenceType = "extra_expense"
)

// Document number series prefixes per event family.
const (
	SeriesJournal = "JE-"
	SeriesExpense = "EXP-"
	SeriesPayment = "PAY-"
	SeriesReceipt = "RCP-"
)

// JournalEntry represents a single, balanced financial document composed
// of two or more lines. Entries are append-only: after creation the only
// permitted mutation is flipping Voided and linking the reversing entry.
type JournalEntry struct {
	EntryID       string        `json:"entryID"`     // Primary Key (UUID)
	CompanyID     string        `json:"companyID"`   // Owning company scope (NON-NULL)
	BranchID      string        `json:"branchID"`    // Optional branch scope
	EntryNo       string        `json:"entryNo"`     // Allocated document reference, unique per company (e.g. "JE-0007")
	EntrySeries   string        `json:"entrySeries"` // Series prefix the number was drawn from
	EntrySeq      int64         `json:"entrySeq"`    // Numeric part of EntryNo
	EntryDate     time.Time     `json:"entryDate"`   // Date the business event occurred
	Description   string        `json:"description"`
	ReferenceType ReferenceType `json:"referenceType"`
	ReferenceID   string        `json:"referenceID"`   // Originating record ID; empty for pure manual entries
	CounterpartID string        `json:"counterpartID"` // Customer/supplier/worker the entry settles against, if any
	Amount        Money         `json:"amount"`        // Economic value of the document (sum of debits)
	Voided        bool          `json:"voided"`
	// Reversal linkage. A reversing entry points at its original via
	// OriginalEntryID; the original points forward via ReversingEntryID.
	OriginalEntryID  *string `json:"originalEntryID,omitempty"`
	ReversingEntryID *string `json:"reversingEntryID,omitempty"`
	AuditFields
	Lines []JournalEntryLine `json:"lines,omitempty"` // Often loaded separately
}

// IsReversal reports whether the entry offsets another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}

// JournalEntryLine is a single debit or credit against one account.
// Lines have no existence outside their entry. Exactly one of Debit and
// Credit is non-zero.
type JournalEntryLine struct {
	LineID      string    `json:"lineID"`  // Primary Key (UUID)
	EntryID     string    `json:"entryID"` // FK -> JournalEntry.EntryID (Not Null)
	AccountID   string    `json:"accountID"`
	Debit       Money     `json:"debit"`  // >= 0
	Credit      Money     `json:"credit"` // >= 0
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SignedAmount folds the line onto the account's normal-balance side:
// positive when the line increases the account, negative when it
// decreases it.
func (l JournalEntryLine) SignedAmount(accountType AccountType) Money {
	if accountType.NormalBalanceDebit() {
		return l.Debit - l.Credit
	}
	return l.Credit - l.Debit
}
