// Package ledgerservice manages business logic layer of balance mutations.
package ledgerservice

import (
	"context"
	"time"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/moneypkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Per-transaction amount ceiling.
var transactionCeiling = decimal.RequireFromString("1000000.00")

// Repo provides the atomic ledger interface needed by ledger service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Repo interface {
	Apply(ctx context.Context, arg domain.ApplyParams) (domain.LedgerTxResult, error)
	Submit(ctx context.Context, arg domain.ApplyParams) (domain.Transaction, error)
}

// TransactionRepo provides transaction log access needed by ledger service layer.
type TransactionRepo interface {
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// AccountGetter provides account lookups needed by ledger service layer.
type AccountGetter interface {
	Get(ctx context.Context, id int32) (domain.Account, error)
}

// Service facilitates ledger service layer logic.
type Service struct {
	repo         Repo
	transactions TransactionRepo
	accounts     AccountGetter
}

// New returns ledger service struct to manage ledger bussines logic.
func New(lr Repo, tr TransactionRepo, ag AccountGetter) *Service {
	return &Service{repo: lr, transactions: tr, accounts: ag}
}

// validate checks the mutation parameters and the caller's ownership of the
// target account. Frozen status and balance sufficiency are rechecked under
// row lock inside the repository.
func (s *Service) validate(ctx context.Context, owner string, arg domain.ApplyParams) error {
	l := zerolog.Ctx(ctx)

	amount, err := moneypkg.Parse(arg.Amount)
	if err != nil || !amount.IsPositive() {
		l.Info().Err(domain.ErrInvalidAmount).Str("amount", arg.Amount).Send()
		return domain.ErrInvalidAmount
	}

	if amount.GreaterThan(transactionCeiling) {
		l.Info().Err(domain.ErrAmountOverLimit).Str("amount", arg.Amount).Send()
		return domain.ErrAmountOverLimit
	}

	if arg.Direction != domain.DirectionDeposit && arg.Direction != domain.DirectionWithdraw {
		l.Info().Err(domain.ErrInvalidDirection).Str("direction", arg.Direction).Send()
		return domain.ErrInvalidDirection
	}

	account, err := s.accounts.Get(ctx, arg.AccountID)
	if err != nil {
		return err
	}

	if account.Owner != owner {
		l.Warn().Err(domain.ErrAccountOwnerMismatch).
			Str("owner", owner).
			Int32("account_id", arg.AccountID).
			Send()

		return domain.ErrAccountOwnerMismatch
	}

	return nil
}

// Apply atomically mutates the account balance and appends a completed
// transaction record.
func (s *Service) Apply(ctx context.Context, owner string, arg domain.ApplyParams) (domain.LedgerTxResult, error) {
	if err := s.validate(ctx, owner, arg); err != nil {
		return domain.LedgerTxResult{}, err
	}

	return s.repo.Apply(ctx, arg)
}

// Submit records a pending transaction for manager approval without touching
// the account balance.
func (s *Service) Submit(ctx context.Context, owner string, arg domain.ApplyParams) (domain.Transaction, error) {
	if err := s.validate(ctx, owner, arg); err != nil {
		return domain.Transaction{}, err
	}

	return s.repo.Submit(ctx, arg)
}

// HistoryParams is the input data to page through an account's history.
type HistoryParams struct {
	AccountID int32
	Direction string
	Status    string
	PageSize  int32
	PageID    int32
}

// History returns the caller's transaction records, newest first.
func (s *Service) History(ctx context.Context, owner string, arg HistoryParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, arg.AccountID)
	if err != nil {
		return nil, err
	}

	if account.Owner != owner {
		l.Warn().Err(domain.ErrAccountOwnerMismatch).
			Str("owner", owner).
			Int32("account_id", arg.AccountID).
			Send()

		return nil, domain.ErrAccountOwnerMismatch
	}

	return s.transactions.List(ctx, domain.ListTransactionsParams{
		AccountID: arg.AccountID,
		Direction: arg.Direction,
		Status:    arg.Status,
		Limit:     arg.PageSize,
		Offset:    (arg.PageID - 1) * arg.PageSize,
	})
}

// Browse returns transaction records across all accounts. Reserved for
// privileged callers, routes enforce the role.
func (s *Service) Browse(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, arg)
}

// Receipt returns a snapshot of the caller's transaction.
func (s *Service) Receipt(ctx context.Context, owner string, transactionID int64) (domain.Receipt, error) {
	l := zerolog.Ctx(ctx)

	transaction, err := s.transactions.Get(ctx, transactionID)
	if err != nil {
		return domain.Receipt{}, err
	}

	account, err := s.accounts.Get(ctx, transaction.AccountID)
	if err != nil {
		return domain.Receipt{}, err
	}

	if account.Owner != owner {
		l.Warn().Err(domain.ErrAccountOwnerMismatch).
			Str("owner", owner).
			Int64("transaction_id", transactionID).
			Send()

		return domain.Receipt{}, domain.ErrAccountOwnerMismatch
	}

	return domain.Receipt{
		TransactionID: transaction.ID,
		AccountNumber: account.Number,
		Direction:     transaction.Direction,
		Amount:        transaction.Amount,
		BalanceAfter:  transaction.BalanceAfter,
		Status:        transaction.Status,
		Description:   transaction.Description,
		CreatedAt:     transaction.CreatedAt,
		IssuedAt:      time.Now(),
	}, nil
}
