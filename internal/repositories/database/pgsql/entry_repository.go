package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
	"github.com/ThreadBooks/thread_books_app/internal/utils/accounting"
	"github.com/ThreadBooks/thread_books_app/internal/utils/docnum"
	"github.com/ThreadBooks/thread_books_app/internal/utils/pagination"
)

// Constraint names the commit path maps onto port errors. They must
// match the migration definitions.
const (
	constraintEntryNo = "uq_journal_entries_entry_no"
	constraintSource  = "uq_journal_entries_source"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

const entryColumns = `
	entry_id, company_id, branch_id, entry_no, entry_series, entry_seq, entry_date, description,
	reference_type, reference_id, counterpart_id, amount, voided, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

// scanEntry reads one entry row into its domain form.
func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var branchID, description, referenceID, counterpartID sql.NullString
	var originalID, reversingID sql.NullString
	var amount int64
	err := row.Scan(
		&e.EntryID,
		&e.CompanyID,
		&branchID,
		&e.EntryNo,
		&e.EntrySeries,
		&e.EntrySeq,
		&e.EntryDate,
		&description,
		&e.ReferenceType,
		&referenceID,
		&counterpartID,
		&amount,
		&e.Voided,
		&originalID,
		&reversingID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.BranchID = branchID.String
	e.Description = description.String
	e.ReferenceID = referenceID.String
	e.CounterpartID = counterpartID.String
	e.Amount = domain.Money(amount)
	if originalID.Valid {
		e.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		e.ReversingEntryID = &reversingID.String
	}
	return &e, nil
}

// allocateEntryNo issues the next document number for the entry's
// series inside tx and fills EntryNo/EntrySeq on the entry. The read is
// not locked: a concurrent allocation of the same number is caught by
// the unique constraint at insert time and surfaces as
// ErrAllocationConflict for the caller to retry.
func allocateEntryNo(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	var maxSeq int64
	query := `
		SELECT COALESCE(MAX(entry_seq), 0)
		FROM journal_entries
		WHERE company_id = $1 AND entry_series = $2;
	`
	if err := tx.QueryRow(ctx, query, entry.CompanyID, entry.EntrySeries).Scan(&maxSeq); err != nil {
		return apperrors.NewAppError(500, "failed to read max sequence for series "+entry.EntrySeries, err)
	}
	entry.EntrySeq = docnum.Next(maxSeq)
	entry.EntryNo = docnum.Format(entry.EntrySeries, entry.EntrySeq)
	return nil
}

// insertEntry writes the entry header inside tx, translating unique
// violations into the port errors.
func insertEntry(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.CompanyID,
		nullIfEmpty(entry.BranchID),
		entry.EntryNo,
		entry.EntrySeries,
		entry.EntrySeq,
		entry.EntryDate,
		nullIfEmpty(entry.Description),
		entry.ReferenceType,
		nullIfEmpty(entry.ReferenceID),
		nullIfEmpty(entry.CounterpartID),
		int64(entry.Amount),
		entry.Voided,
		entry.OriginalEntryID,
		entry.ReversingEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			switch pgErr.ConstraintName {
			case constraintEntryNo:
				return portsrepo.ErrAllocationConflict
			case constraintSource:
				return portsrepo.ErrDuplicateReference
			}
		}
		return apperrors.NewAppError(500, "failed to insert entry "+entry.EntryID, err)
	}
	return nil
}

// insertLines batches the line inserts inside tx.
func insertLines(ctx context.Context, tx pgx.Tx, lines []domain.JournalEntryLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, debit, credit, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		batch.Queue(query,
			line.LineID,
			line.EntryID,
			line.AccountID,
			int64(line.Debit),
			int64(line.Credit),
			nullIfEmpty(line.Description),
			line.CreatedAt,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line insert batch", err)
	}
	return nil
}

// SaveEntry persists the entry with all its lines in one transaction,
// allocating the next document number for the entry's series. The
// balance invariant is re-checked at this last gate so no caller bug
// can land lopsided rows.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalEntryLine) error {
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return fmt.Errorf("%w: %w", portsrepo.ErrUnbalancedEntry, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := allocateEntryNo(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// VoidEntry atomically flags the original entry voided, links it to the
// reversing entry, and persists the reversing entry with its lines.
func (r *PgxEntryRepository) VoidEntry(ctx context.Context, originalEntryID string, reversing *domain.JournalEntry, lines []domain.JournalEntryLine, userID string, now time.Time) error {
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return fmt.Errorf("%w: %w", portsrepo.ErrUnbalancedEntry, err)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Flag the original first. The voided = FALSE guard makes a lost
	// race against a concurrent void show up as zero rows here instead
	// of a second reversing entry.
	flagQuery := `
		UPDATE journal_entries
		SET voided = TRUE, reversing_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND voided = FALSE;
	`
	tag, err := tx.Exec(ctx, flagQuery, originalEntryID, reversing.EntryID, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to flag entry "+originalEntryID+" voided", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is already voided or missing", apperrors.ErrConflict, originalEntryID)
	}

	if err := allocateEntryNo(ctx, tx, reversing); err != nil {
		return err
	}
	if err := insertEntry(ctx, tx, reversing); err != nil {
		return err
	}
	if err := insertLines(ctx, tx, lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific entry header by ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	return entry, nil
}

// FindEntryBySource retrieves the live entry posted for a source
// document, or apperrors.ErrNotFound.
func (r *PgxEntryRepository) FindEntryBySource(ctx context.Context, companyID string, refType domain.ReferenceType, refID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND reference_type = $2 AND reference_id = $3 AND voided = FALSE;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, refType, refID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry for source "+string(refType)+"/"+refID, err)
	}
	return entry, nil
}

// FindEntryByNo retrieves the entry carrying a document number within a
// company. Voided entries are findable: the number stays a valid
// reference after a void.
func (r *PgxEntryRepository) FindEntryByNo(ctx context.Context, companyID string, entryNo string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND entry_no = $2;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, entryNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry "+entryNo, err)
	}
	return entry, nil
}

// FindLinesByEntryID retrieves all lines of one entry in creation order.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	linesMap, err := r.FindLinesByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	return linesMap[entryID], nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by
// entry ID.
func (r *PgxEntryRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalEntryLine{}, nil
	}
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, created_at
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY created_at, line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entry lines", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	for rows.Next() {
		var l domain.JournalEntryLine
		var debit, credit int64
		var description sql.NullString
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &debit, &credit, &description, &l.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		l.Debit = domain.Money(debit)
		l.Credit = domain.Money(credit)
		l.Description = description.String
		linesMap[l.EntryID] = append(linesMap[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry line rows", err)
	}
	return linesMap, nil
}

// ListEntries retrieves the day book: entries of a company within a
// date range, chronological, token-paginated.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, companyID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells us whether a next page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1`
	args := []interface{}{companyID}

	if branchID != "" {
		args = append(args, branchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if !from.IsZero() {
		args = append(args, from)
		query += ` AND entry_date >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += ` AND entry_date <= $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastEntryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastDate, lastCreatedAt, lastEntryID)
		// entry_id breaks ties between entries sharing a creation
		// instant, so the strict comparison never skips rows.
		query += fmt.Sprintf(` AND (entry_date, created_at, entry_id) > ($%d, $%d, $%d)`, len(args)-2, len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY entry_date, created_at, entry_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list entries for company "+companyID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}
