// Package auditrepo manages repository layer of the manager audit trail.
package auditrepo

import (
	"context"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/dbpkg"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates audit trail repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns audit RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    manager_actions (manager, action, target_user, target_account, target_transaction, note)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, manager, action, target_user, target_account, target_transaction, note, created_at
`

// Create appends the manager action record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateActionParams) (domain.ManagerAction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Manager,
		arg.Action,
		arg.TargetUser,
		arg.TargetAccount,
		arg.TargetTransaction,
		arg.Note,
	)

	var a domain.ManagerAction

	err := row.Scan(
		&a.ID,
		&a.Manager,
		&a.Action,
		&a.TargetUser,
		&a.TargetAccount,
		&a.TargetTransaction,
		&a.Note,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, manager, action, target_user, target_account, target_transaction, note, created_at
FROM manager_actions
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`

// List returns the specified page of manager actions, newest first.
func (r *RepoPGS) List(ctx context.Context, limit, offset int32) ([]domain.ManagerAction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.ManagerAction{}

	for rows.Next() {
		var a domain.ManagerAction
		if err := rows.Scan(
			&a.ID,
			&a.Manager,
			&a.Action,
			&a.TargetUser,
			&a.TargetAccount,
			&a.TargetTransaction,
			&a.Note,
			&a.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
