// Package ledgerrepo manages the atomic balance mutation and transaction
// log append of the ledger core.
package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/go-teller/teller-bank/internal/accountrepo"
	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/transactionrepo"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/moneypkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS with a connection to start transactions.
func NewRepoPGS(conn *sql.DB) *RepoPGS {
	return &RepoPGS{conn: conn}
}

// newBalance returns the account balance after applying the amount in the
// given direction, enforcing the frozen and non-negative balance invariants.
func newBalance(account domain.Account, direction, amount string) (string, error) {
	if account.Status == domain.StatusFrozen {
		return "", domain.ErrAccountFrozen
	}

	balance, err := moneypkg.Parse(account.Balance)
	if err != nil {
		return "", errorspkg.ErrInternal
	}

	delta, err := moneypkg.Parse(amount)
	if err != nil {
		return "", domain.ErrInvalidAmount
	}

	var next decimal.Decimal

	switch direction {
	case domain.DirectionDeposit:
		next = balance.Add(delta)
	case domain.DirectionWithdraw:
		next = balance.Sub(delta)
	default:
		return "", domain.ErrInvalidDirection
	}

	if next.IsNegative() {
		return "", domain.ErrInsufficientBalance
	}

	return next.StringFixed(2), nil
}

// Apply mutates the account balance and appends a COMPLETED transaction
// record carrying the new balance within a single db transaction.
//
// The account row is locked first so concurrent applies against the same
// account serialize; any failure rolls the whole unit back.
func (r *RepoPGS) Apply(ctx context.Context, arg domain.ApplyParams) (domain.LedgerTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return result, err
	}

	balance, err := newBalance(account, arg.Direction, arg.Amount)
	if err != nil {
		l.Info().Err(err).Int32("account_id", arg.AccountID).Send()
		return result, err
	}

	result.Account, err = accountRepo.SetBalance(ctx, balance, arg.AccountID)
	if err != nil {
		return result, err
	}

	result.Transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID:    arg.AccountID,
		Direction:    arg.Direction,
		Amount:       arg.Amount,
		BalanceAfter: balance,
		Status:       domain.StatusCompleted,
		Description:  arg.Description,
	})
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// Submit appends a PENDING transaction record without mutating the balance.
// The recorded balance_after is speculative until the transaction settles.
func (r *RepoPGS) Submit(ctx context.Context, arg domain.ApplyParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var transaction domain.Transaction

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return transaction, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	account, err := accountRepo.GetForUpdate(ctx, arg.AccountID)
	if err != nil {
		return transaction, err
	}

	balance, err := newBalance(account, arg.Direction, arg.Amount)
	if err != nil {
		l.Info().Err(err).Int32("account_id", arg.AccountID).Send()
		return transaction, err
	}

	transaction, err = transactionRepo.Create(ctx, domain.CreateTransactionParams{
		AccountID:    arg.AccountID,
		Direction:    arg.Direction,
		Amount:       arg.Amount,
		BalanceAfter: balance,
		Status:       domain.StatusPending,
		Description:  arg.Description,
	})
	if err != nil {
		return transaction, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return transaction, errorspkg.ErrInternal
	}

	return transaction, nil
}

// Settle approves a PENDING transaction applying its funds: within a single
// db transaction it locks the transaction and the account, re-validates the
// frozen and balance invariants against the current state, persists the new
// balance and stamps the authoritative balance_after together with the
// approver and the note.
func (r *RepoPGS) Settle(ctx context.Context, id int64, decidedBy, note string) (domain.LedgerTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.LedgerTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		_ = tx.Rollback()
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	transaction, err := transactionRepo.GetForUpdate(ctx, id)
	if err != nil {
		return result, err
	}

	if transaction.Status != domain.StatusPending {
		// Expose the decided state so callers can report the no-op.
		result.Transaction = transaction
		return result, domain.ErrTransactionDecided
	}

	account, err := accountRepo.GetForUpdate(ctx, transaction.AccountID)
	if err != nil {
		return result, err
	}

	balance, err := newBalance(account, transaction.Direction, transaction.Amount)
	if err != nil {
		l.Info().Err(err).Int64("transaction_id", id).Send()
		return result, err
	}

	result.Account, err = accountRepo.SetBalance(ctx, balance, transaction.AccountID)
	if err != nil {
		return result, err
	}

	result.Transaction, err = transactionRepo.Settle(ctx, id, balance, decidedBy, note)
	if err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}
