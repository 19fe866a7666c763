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
	"github.com/ThreadBooks/thread_books_app/internal/middleware"
	"github.com/ThreadBooks/thread_books_app/internal/utils/docnum"
)

var (
	ErrInvalidEntryNo   = errors.New("malformed document number")
	ErrEntryVoided      = errors.New("entry is already voided")
	ErrVoidOfReversal   = errors.New("reversing entries cannot be voided")
	ErrPostingExhausted = errors.New("posting retries exhausted on number allocation")
)

// ledgerService posts business events as balanced entries and voids
// previously posted ones.
type ledgerService struct {
	entryRepo  portsrepo.EntryRepositoryFacade
	builder    *postingBuilder
	retryLimit int
}

// NewLedgerService creates the ledger posting service. retryLimit
// bounds how many times a commit is retried when a concurrent posting
// wins the race for the next document number.
func NewLedgerService(entryRepo portsrepo.EntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, retryLimit int) portssvc.LedgerSvcFacade {
	if retryLimit < 1 {
		retryLimit = 3
	}
	return &ledgerService{
		entryRepo:  entryRepo,
		builder:    newPostingBuilder(accountSvc),
		retryLimit: retryLimit,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Post translates the event into a balanced entry and commits it. The
// entry together with its lines lands in one transaction; a number
// allocation race rebuilds nothing, it just re-runs the commit which
// picks a fresh number.
func (s *ledgerService) Post(ctx context.Context, event domain.PostingEvent, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	entry, lines, err := s.builder.BuildEntry(ctx, event, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.retryLimit; attempt++ {
		err = s.entryRepo.SaveEntry(ctx, entry, lines)
		if err == nil {
			logger.Info("Entry posted",
				slog.String("entry_id", entry.EntryID),
				slog.String("entry_no", entry.EntryNo),
				slog.String("reference_type", string(entry.ReferenceType)),
				slog.String("company_id", entry.CompanyID))
			entry.Lines = lines
			return entry, nil
		}
		if errors.Is(err, portsrepo.ErrDuplicateReference) {
			logger.Warn("Duplicate source document posting rejected",
				slog.String("reference_type", string(entry.ReferenceType)),
				slog.String("reference_id", entry.ReferenceID))
			return nil, fmt.Errorf("%w: %s %s", apperrors.ErrDuplicate, entry.ReferenceType, entry.ReferenceID)
		}
		if !errors.Is(err, portsrepo.ErrAllocationConflict) {
			logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
			return nil, fmt.Errorf("failed to save entry: %w", err)
		}
		logger.Warn("Document number allocation conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("series", entry.EntrySeries))
		lastErr = err
	}

	logger.Error("Posting gave up after allocation conflicts", slog.Int("attempts", s.retryLimit))
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrPostingExhausted, s.retryLimit, lastErr)
}

// GetEntry fetches an entry with its lines, scoped to the company.
func (s *ledgerService) GetEntry(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		// Obscure cross company existence.
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// GetEntryBySource fetches the live entry posted for a source document
// with its lines.
func (s *ledgerService) GetEntryBySource(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryBySource(ctx, companyID, refType, refID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by source",
				slog.String("error", err.Error()),
				slog.String("reference_type", string(refType)),
				slog.String("reference_id", refID))
		}
		return nil, fmt.Errorf("failed to find entry for %s %s: %w", refType, refID, err)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entry.EntryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// GetEntryByNo fetches an entry by its document number with its lines.
// The number is parsed and re-formatted first, so unpadded input like
// "JE-7" resolves to the stored "JE-0007".
func (s *ledgerService) GetEntryByNo(ctx context.Context, companyID string, entryNo string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	series, seq, err := docnum.Parse(entryNo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEntryNo, err)
	}

	entry, err := s.entryRepo.FindEntryByNo(ctx, companyID, docnum.Format(series, seq))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by number", slog.String("error", err.Error()), slog.String("entry_no", entryNo))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryNo, err)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entry.EntryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entry.EntryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entry.EntryID, apperrors.ErrInternal)
	}
	entry.Lines = lines
	return entry, nil
}

// VoidEntry flags the entry void and posts an offsetting entry with
// every line's sides swapped, both in one transaction. The original
// rows are never rewritten, so any balance computed before the void is
// still reproducible.
func (s *ledgerService) VoidEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch entry for void", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	if original.Voided {
		return nil, fmt.Errorf("%w: %s", ErrEntryVoided, entryID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", ErrVoidOfReversal, entryID)
	}

	originalLines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for void", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	reversingID := uuid.NewString()

	reversingLines := make([]domain.JournalEntryLine, len(originalLines))
	for i, line := range originalLines {
		reversingLines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     reversingID,
			AccountID:   line.AccountID,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
			CreatedAt:   now,
		}
	}

	reversing := &domain.JournalEntry{
		EntryID:         reversingID,
		CompanyID:       original.CompanyID,
		BranchID:        original.BranchID,
		EntrySeries:     original.EntrySeries,
		EntryDate:       original.EntryDate,
		Description:     fmt.Sprintf("Void of %s: %s", original.EntryNo, original.Description),
		ReferenceType:   domain.ReferenceVoid,
		ReferenceID:     original.EntryID,
		CounterpartID:   original.CounterpartID,
		Amount:          original.Amount,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	var lastErr error
	for attempt := 1; attempt <= s.retryLimit; attempt++ {
		err = s.entryRepo.VoidEntry(ctx, original.EntryID, reversing, reversingLines, userID, now)
		if err == nil {
			logger.Info("Entry voided",
				slog.String("entry_id", original.EntryID),
				slog.String("reversing_entry_id", reversing.EntryID),
				slog.String("reversing_entry_no", reversing.EntryNo))
			reversing.Lines = reversingLines
			return reversing, nil
		}
		if !errors.Is(err, portsrepo.ErrAllocationConflict) {
			logger.Error("Failed to void entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
			return nil, fmt.Errorf("failed to void entry %s: %w", entryID, err)
		}
		logger.Warn("Document number allocation conflict on void, retrying", slog.Int("attempt", attempt))
		lastErr = err
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrPostingExhausted, s.retryLimit, lastErr)
}
