package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ThreadBooks/thread_books_app/internal/apperrors"
	"github.com/ThreadBooks/thread_books_app/internal/core/domain"
	portsrepo "github.com/ThreadBooks/thread_books_app/internal/core/ports/repositories"
	"github.com/ThreadBooks/thread_books_app/internal/utils/pagination"
)

// liveEntry is the filter every aggregation applies: voided originals
// and their reversing entries both drop out, so live figures never see
// either half of a void pair.
const liveEntry = `e.voided = FALSE AND e.original_entry_id IS NULL`

// signedSum folds lines onto the account's normal-balance side using
// the joined account row.
const signedSum = `CASE WHEN a.account_type IN ('ASSET', 'EXPENSE') THEN l.debit - l.credit ELSE l.credit - l.debit END`

// reportingRepository implements the read-only aggregation queries.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountBalance computes the derived balance of one account as of a
// date (inclusive), signed per the account's normal side. A zero asOf
// means all history.
func (r *reportingRepository) GetAccountBalance(ctx context.Context, companyID string, accountID string, asOf time.Time) (domain.Money, error) {
	query := `
		SELECT COALESCE(SUM(` + signedSum + `), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND ` + liveEntry + `
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3);
	`
	var asOfArg interface{}
	if !asOf.IsZero() {
		asOfArg = asOf
	}

	var balance int64
	if err := r.Pool.QueryRow(ctx, query, companyID, accountID, asOfArg).Scan(&balance); err != nil {
		return 0, fmt.Errorf("error computing balance for account %s: %w", accountID, err)
	}
	return domain.Money(balance), nil
}

// GetAccountLedger returns statement rows for one account ordered by
// (entry_date, created_at), with per-row running balances starting from
// the balance before the page.
func (r *reportingRepository) GetAccountLedger(ctx context.Context, companyID string, accountID string, branchID string, from, to time.Time, limit int, nextToken *string) ([]domain.LedgerRow, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	fetchLimit := limit + 1

	var accountType domain.AccountType
	err := r.Pool.QueryRow(ctx, `SELECT account_type FROM accounts WHERE account_id = $1 AND company_id = $2;`, accountID, companyID).Scan(&accountType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, fmt.Errorf("error reading account %s: %w", accountID, err)
	}

	// The opening balance covers everything before the page: before the
	// from date on the first page, up to and including the cursor row on
	// later ones. Each page then folds forward from there. It applies
	// the same branch filter as the row query so a branch statement's
	// running balances never mix in other branches' history.
	var cursorDate, cursorCreated time.Time
	var cursorLineID string
	hasCursor := false
	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorCreated, cursorLineID, err = pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		hasCursor = true
	}

	openingQuery := `
		SELECT COALESCE(SUM(` + signedSum + `), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND ` + liveEntry
	openingArgs := []interface{}{companyID, accountID}
	if branchID != "" {
		openingArgs = append(openingArgs, branchID)
		openingQuery += ` AND e.branch_id = $` + strconv.Itoa(len(openingArgs))
	}
	if hasCursor {
		openingArgs = append(openingArgs, cursorDate, cursorCreated, cursorLineID)
		openingQuery += fmt.Sprintf(` AND (e.entry_date, l.created_at, l.line_id) <= ($%d, $%d, $%d)`, len(openingArgs)-2, len(openingArgs)-1, len(openingArgs))
	} else if !from.IsZero() {
		openingArgs = append(openingArgs, from)
		openingQuery += ` AND e.entry_date < $` + strconv.Itoa(len(openingArgs))
	}

	var opening int64
	if err := r.Pool.QueryRow(ctx, openingQuery+`;`, openingArgs...).Scan(&opening); err != nil {
		return nil, nil, fmt.Errorf("error computing opening balance for account %s: %w", accountID, err)
	}

	query := `
		SELECT e.entry_id, e.entry_no, e.entry_date, COALESCE(e.description, ''), e.reference_type,
		       COALESCE(e.branch_id, ''), l.debit, l.credit, l.created_at, l.line_id, e.created_by
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND ` + liveEntry
	args := []interface{}{companyID, accountID}
	if branchID != "" {
		args = append(args, branchID)
		query += ` AND e.branch_id = $` + strconv.Itoa(len(args))
	}
	if !from.IsZero() {
		args = append(args, from)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if hasCursor {
		args = append(args, cursorDate, cursorCreated, cursorLineID)
		query += fmt.Sprintf(` AND (e.entry_date, l.created_at, l.line_id) > ($%d, $%d, $%d)`, len(args)-2, len(args)-1, len(args))
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY e.entry_date, l.created_at, l.line_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying ledger for account %s: %w", accountID, err)
	}
	defer rows.Close()

	result := []domain.LedgerRow{}
	lineCreated := []time.Time{}
	lineIDs := []string{}
	for rows.Next() {
		var row domain.LedgerRow
		var debit, credit int64
		var createdAt time.Time
		var lineID string
		if err := rows.Scan(&row.EntryID, &row.EntryNo, &row.EntryDate, &row.Description, &row.ReferenceType,
			&row.BranchID, &debit, &credit, &createdAt, &lineID, &row.CreatedBy); err != nil {
			return nil, nil, fmt.Errorf("error scanning ledger row: %w", err)
		}
		row.Debit = domain.Money(debit)
		row.Credit = domain.Money(credit)
		result = append(result, row)
		lineCreated = append(lineCreated, createdAt)
		lineIDs = append(lineIDs, lineID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	var token *string
	if len(result) > limit {
		result = result[:limit]
		t := pagination.EncodeToken(result[limit-1].EntryDate, lineCreated[limit-1], lineIDs[limit-1])
		token = &t
	}

	balance := domain.Money(opening)
	for i := range result {
		line := domain.JournalEntryLine{Debit: result[i].Debit, Credit: result[i].Credit}
		balance += line.SignedAmount(accountType)
		result[i].RunningBalance = balance
	}
	return result, token, nil
}

// GetTypeTotals sums period activity for income and expense accounts.
func (r *reportingRepository) GetTypeTotals(ctx context.Context, companyID string, from, to time.Time) (domain.Money, domain.Money, error) {
	query := `
		SELECT a.account_type, COALESCE(SUM(` + signedSum + `), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.company_id = $1 AND ` + liveEntry + `
			AND a.account_type IN ('INCOME', 'EXPENSE')
			AND ($2::timestamptz IS NULL OR e.entry_date >= $2)
			AND ($3::timestamptz IS NULL OR e.entry_date <= $3)
		GROUP BY a.account_type;
	`
	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.Pool.Query(ctx, query, companyID, fromArg, toArg)
	if err != nil {
		return 0, 0, fmt.Errorf("error querying type totals: %w", err)
	}
	defer rows.Close()

	var income, expense domain.Money
	for rows.Next() {
		var accountType domain.AccountType
		var total int64
		if err := rows.Scan(&accountType, &total); err != nil {
			return 0, 0, fmt.Errorf("error scanning type total row: %w", err)
		}
		switch accountType {
		case domain.Income:
			income = domain.Money(total)
		case domain.Expense:
			expense = domain.Money(total)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("error iterating type total rows: %w", err)
	}
	return income, expense, nil
}

// GetCounterpartOutstanding groups the open amounts on one role account
// by counterpart. Counterparts that net to zero drop out.
func (r *reportingRepository) GetCounterpartOutstanding(ctx context.Context, companyID string, account domain.Account) ([]domain.CounterpartOutstanding, error) {
	signed := `l.credit - l.debit`
	if account.AccountType.NormalBalanceDebit() {
		signed = `l.debit - l.credit`
	}
	query := `
		SELECT e.counterpart_id, SUM(` + signed + `) AS outstanding
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1 AND l.account_id = $2 AND ` + liveEntry + `
			AND e.counterpart_id IS NOT NULL
		GROUP BY e.counterpart_id
		HAVING SUM(` + signed + `) <> 0
		ORDER BY outstanding DESC;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("error querying counterpart outstanding: %w", err)
	}
	defer rows.Close()

	result := []domain.CounterpartOutstanding{}
	for rows.Next() {
		var row domain.CounterpartOutstanding
		var outstanding int64
		if err := rows.Scan(&row.CounterpartID, &outstanding); err != nil {
			return nil, fmt.Errorf("error scanning counterpart row: %w", err)
		}
		row.Outstanding = domain.Money(outstanding)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counterpart rows: %w", err)
	}
	return result, nil
}

// GetBalancesByClass returns derived balances for every active account
// of a payment class, including accounts with no lines yet.
func (r *reportingRepository) GetBalancesByClass(ctx context.Context, companyID string, class domain.AccountClass) ([]domain.AccountBalance, error) {
	query := `
		SELECT a.account_id, a.code, a.name, a.account_type, a.class,
		       COALESCE(SUM(` + signedSum + `), 0) AS balance
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_id, l.debit, l.credit
			FROM journal_entry_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.company_id = $1 AND ` + liveEntry + `
		) l ON l.account_id = a.account_id
		WHERE a.company_id = $1 AND a.class = $2 AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.class
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, class)
	if err != nil {
		return nil, fmt.Errorf("error querying %s balances: %w", class, err)
	}
	defer rows.Close()

	result := []domain.AccountBalance{}
	for rows.Next() {
		var row domain.AccountBalance
		var balance int64
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &row.AccountType, &row.Class, &balance); err != nil {
			return nil, fmt.Errorf("error scanning class balance row: %w", err)
		}
		row.Balance = domain.Money(balance)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class balance rows: %w", err)
	}
	return result, nil
}

// GetReferenceTypeTotal sums entry amounts for one source kind in a
// date range.
func (r *reportingRepository) GetReferenceTypeTotal(ctx context.Context, companyID string, refType domain.ReferenceType, from, to time.Time) (domain.Money, error) {
	query := `
		SELECT COALESCE(SUM(e.amount), 0)
		FROM journal_entries e
		WHERE e.company_id = $1 AND e.reference_type = $2 AND ` + liveEntry + `
			AND ($3::timestamptz IS NULL OR e.entry_date >= $3)
			AND ($4::timestamptz IS NULL OR e.entry_date <= $4);
	`
	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, query, companyID, refType, fromArg, toArg).Scan(&total); err != nil {
		return 0, fmt.Errorf("error totalling %s entries: %w", refType, err)
	}
	return domain.Money(total), nil
}
