// Package statsrepo manages repository layer of system-wide statistics.
package statsrepo

import (
	"context"
	"time"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/dbpkg"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// LargeTransactionThreshold flags transactions worth extra manager attention.
const LargeTransactionThreshold = "50000.00"

// RepoPGS facilitates statistics repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns stats RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const overviewQuery = `
SELECT
	(SELECT count(*) FROM users WHERE role = 'customer'),
	(SELECT count(*) FROM accounts),
	(SELECT count(*) FROM accounts WHERE status = 'FROZEN'),
	(SELECT COALESCE(sum(balance), 0)::text FROM accounts),
	(SELECT count(*) FROM transactions),
	(SELECT COALESCE(sum(amount), 0)::text FROM transactions
		WHERE direction = 'DEPOSIT' AND status IN ('COMPLETED', 'APPROVED')),
	(SELECT COALESCE(sum(amount), 0)::text FROM transactions
		WHERE direction = 'WITHDRAW' AND status IN ('COMPLETED', 'APPROVED')),
	(SELECT count(*) FROM transactions WHERE status = 'PENDING'),
	(SELECT count(*) FROM transactions WHERE created_at >= date_trunc('day', now())),
	(SELECT count(*) FROM transactions WHERE amount >= $1)
`

// Overview returns system-wide totals for the manager dashboard.
func (r *RepoPGS) Overview(ctx context.Context) (domain.StatsOverview, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, overviewQuery, LargeTransactionThreshold)

	var o domain.StatsOverview

	err := row.Scan(
		&o.TotalCustomers,
		&o.TotalAccounts,
		&o.FrozenAccounts,
		&o.TotalBalance,
		&o.TotalTransactions,
		&o.TotalDeposits,
		&o.TotalWithdrawals,
		&o.PendingTransactions,
		&o.TodayTransactions,
		&o.LargeTransactions,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return o, errorspkg.ErrInternal
	}

	return o, nil
}

const reportQuery = `
SELECT
	count(*),
	COALESCE(sum(amount) FILTER (WHERE direction = 'DEPOSIT'), 0)::text,
	COALESCE(sum(amount) FILTER (WHERE direction = 'WITHDRAW'), 0)::text
FROM transactions
WHERE status IN ('COMPLETED', 'APPROVED') AND created_at >= $1
`

// Report returns settled transaction sums since the given time.
func (r *RepoPGS) Report(ctx context.Context, since time.Time) (domain.PeriodReport, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, reportQuery, since)

	var p domain.PeriodReport

	err := row.Scan(
		&p.Transactions,
		&p.Deposits,
		&p.Withdrawals,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return p, errorspkg.ErrInternal
	}

	return p, nil
}
