// Package transactionrepo manages repository layer of the transaction log.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/dbpkg"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const transactionColumns = `
	id, account_id, direction, amount, balance_after, status,
	description, decided_by, decision_note, created_at
`

func scanTransaction(row *sql.Row) (domain.Transaction, error) {
	var (
		t            domain.Transaction
		description  sql.NullString
		decidedBy    sql.NullString
		decisionNote sql.NullString
	)

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Direction,
		&t.Amount,
		&t.BalanceAfter,
		&t.Status,
		&description,
		&decidedBy,
		&decisionNote,
		&t.CreatedAt,
	)

	t.Description = description.String
	t.DecidedBy = decidedBy.String
	t.DecisionNote = decisionNote.String

	return t, err
}

const createQuery = `
INSERT INTO
    transactions (account_id, direction, amount, balance_after, status, description)
VALUES
    ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING` + transactionColumns

// Create appends the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Direction,
		arg.Amount,
		arg.BalanceAfter,
		arg.Status,
		arg.Description,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			case "transactions_direction_check":
				return t, domain.ErrInvalidDirection
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getForUpdateQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE id = $1
FOR UPDATE
`

// GetForUpdate returns the transaction with the given id locking its row
// until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, id)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT` + transactionColumns + `
FROM transactions
WHERE
    ($1 = 0 OR account_id = $1)
    AND ($2 = '' OR direction = $2)
    AND ($3 = '' OR status = $3)
ORDER BY created_at DESC, id DESC
LIMIT $4 OFFSET $5
`

// List returns the specified page of transaction records, newest first,
// optionally filtered by account, direction and status.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery,
		arg.AccountID,
		arg.Direction,
		arg.Status,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var (
			t            domain.Transaction
			description  sql.NullString
			decidedBy    sql.NullString
			decisionNote sql.NullString
		)

		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Direction,
			&t.Amount,
			&t.BalanceAfter,
			&t.Status,
			&description,
			&decidedBy,
			&decisionNote,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.Description = description.String
		t.DecidedBy = decidedBy.String
		t.DecisionNote = decisionNote.String

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const decideQuery = `
UPDATE transactions
SET status = $2, decided_by = $3, decision_note = NULLIF($4, '')
WHERE id = $1 AND status = 'PENDING'
RETURNING` + transactionColumns

// Decide transitions a PENDING transaction to the given terminal status
// stamping the approver and the note. Deciding a transaction that is not
// pending returns ErrTransactionDecided.
func (r *RepoPGS) Decide(ctx context.Context, id int64, status, decidedBy, note string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, decideQuery, id, status, decidedBy, note)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			if decided, getErr := r.Get(ctx, id); getErr == nil {
				// Expose the decided state so callers can report the no-op.
				return decided, domain.ErrTransactionDecided
			}

			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const settleQuery = `
UPDATE transactions
SET status = 'APPROVED', balance_after = $2, decided_by = $3, decision_note = NULLIF($4, '')
WHERE id = $1 AND status = 'PENDING'
RETURNING` + transactionColumns

// Settle transitions a PENDING transaction to APPROVED stamping the
// authoritative post-settlement balance, the approver and the note.
func (r *RepoPGS) Settle(ctx context.Context, id int64, balanceAfter, decidedBy, note string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, settleQuery, id, balanceAfter, decidedBy, note)

	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			if _, getErr := r.Get(ctx, id); getErr == nil {
				return t, domain.ErrTransactionDecided
			}

			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}
