package services

import (
	"context"

	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
)

// LedgerSvcFacade posts business events as balanced journal entries and
// voids previously posted entries.
type LedgerSvcFacade interface {
	// Post translates one business event into a balanced entry and
	// commits it atomically, allocating the next document number for
	// the event's series. Number allocation races are retried a bounded
	// number of times before surfacing ErrAllocationConflict.
	Post(ctx context.Context, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error)

	// GetEntry fetches an entry with its lines, scoped to the company.
	GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error)

	// GetEntryBySource fetches the live entry posted for a source
	// document, so the originating module can link back to it.
	GetEntryBySource(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error)

	// GetEntryByNo fetches an entry by its document number, e.g.
	// "JE-0007". The number is canonicalized before lookup, so JE-7
	// finds the same entry.
	GetEntryByNo(ctx context.Context, companyID string, entryNo string) (*domain.JournalEntry, error)

	// VoidEntry flags the entry void and posts the offsetting entry in
	// one transaction. Returns the reversing entry.
	VoidEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error)
}
