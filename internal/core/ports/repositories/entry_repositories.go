package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// Errors surfaced by the ledger store. They live with the port so both
// the pgsql implementation and the services can match on them without
// depending on each other.
var (
	// ErrUnbalancedEntry means sum(debit) != sum(credit) at commit
	// time. The store rejects, it never silently corrects.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

	// ErrAllocationConflict means a concurrent posting won the race for
	// the next document number. The caller retries the whole commit
	// with a fresh number; the uniqueness constraint guarantees a
	// duplicate can never land.
	ErrAllocationConflict = errors.New("document number already allocated")

	// ErrDuplicateReference means an entry for the same
	// (reference_type, reference_id) source document already exists
	// and was not voided.
	ErrDuplicateReference = errors.New("source document already posted")
)

// EntryReader defines read operations for journal entry data.
type EntryReader interface {
	// FindEntryByID retrieves a specific entry header by ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves all lines of one entry in creation order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error)

	// FindEntryBySource retrieves the non-void entry posted for a
	// source document, or apperrors.ErrNotFound.
	FindEntryBySource(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error)

	// FindEntryByNo retrieves the entry carrying a document number
	// within a company, voided or not, or apperrors.ErrNotFound.
	FindEntryByNo(ctx context.Context, companyID string, entryNo string) (*domain.JournalEntry, error)

	// ListEntries retrieves the day book: entries of a company within a
	// date range, chronological, token-paginated. branchID filters when
	// non-empty.
	ListEntries(ctx context.Context, companyID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines the atomic write operations of the ledger store.
type EntryWriter interface {
	// SaveEntry persists the entry with all its lines in one
	// transaction: it allocates the next document number for the
	// entry's series (filling EntryNo/EntrySeq on the passed entry),
	// re-checks the balance invariant, and inserts everything or
	// nothing. Returns ErrUnbalancedEntry, ErrAllocationConflict or
	// ErrDuplicateReference as applicable.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalEntryLine) error

	// VoidEntry atomically flags the original entry voided, links it to
	// the reversing entry, and persists the reversing entry with its
	// lines (allocating its number) in the same transaction.
	VoidEntry(ctx context.Context, originalEntryID string, reversing *domain.JournalEntry, lines []domain.JournalEntryLine, userID string, now time.Time) error
}

// EntryRepositoryFacade combines the journal entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
