// Package approvalservice manages business logic layer of the approval queue.
package approvalservice

import (
	"context"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/rs/zerolog"
)

// LedgerRepo settles approved transactions atomically.
//
//go:generate mockgen -source service.go -destination service_mock.go -package approvalservice
type LedgerRepo interface {
	Settle(ctx context.Context, id int64, decidedBy, note string) (domain.LedgerTxResult, error)
}

// TransactionRepo provides transaction log access needed by approval service layer.
type TransactionRepo interface {
	Decide(ctx context.Context, id int64, status, decidedBy, note string) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
}

// Recorder provides the audit trail interface needed by approval service layer.
type Recorder interface {
	Record(ctx context.Context, arg domain.CreateActionParams) error
}

// Service facilitates approval service layer logic.
type Service struct {
	ledger       LedgerRepo
	transactions TransactionRepo
	audit        Recorder
}

// New returns approval service struct to manage approval bussines logic.
func New(lr LedgerRepo, tr TransactionRepo, audit Recorder) *Service {
	return &Service{ledger: lr, transactions: tr, audit: audit}
}

// ListPending returns the requested page of transactions awaiting a decision,
// newest first.
func (s *Service) ListPending(ctx context.Context, pageSize, pageID int32) ([]domain.Transaction, error) {
	return s.transactions.List(ctx, domain.ListTransactionsParams{
		Status: domain.StatusPending,
		Limit:  pageSize,
		Offset: (pageID - 1) * pageSize,
	})
}

// Approve settles a pending transaction, applying its amount to the account
// balance, and records the decision. Approving an already decided transaction
// is a no-op signalled by ErrTransactionDecided.
func (s *Service) Approve(ctx context.Context, manager string, id int64, note string) (domain.LedgerTxResult, error) {
	l := zerolog.Ctx(ctx)

	res, err := s.ledger.Settle(ctx, id, manager, note)
	if err != nil {
		if err == domain.ErrTransactionDecided {
			l.Info().Err(err).Int64("transaction_id", id).Send()
		}

		return res, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:           manager,
		Action:            domain.ActionApproveTransaction,
		TargetUser:        &res.Account.Owner,
		TargetAccount:     &res.Account.ID,
		TargetTransaction: &res.Transaction.ID,
		Note:              "Approved " + res.Transaction.Direction + " of " + res.Transaction.Amount,
	})
	if err != nil {
		return res, err
	}

	return res, nil
}

// Reject declines a pending transaction without touching the account balance
// and records the decision. Rejecting an already decided transaction is a
// no-op signalled by ErrTransactionDecided.
func (s *Service) Reject(ctx context.Context, manager string, id int64, note string) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	transaction, err := s.transactions.Decide(ctx, id, domain.StatusRejected, manager, note)
	if err != nil {
		if err == domain.ErrTransactionDecided {
			l.Info().Err(err).Int64("transaction_id", id).Send()
		}

		return transaction, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:           manager,
		Action:            domain.ActionRejectTransaction,
		TargetAccount:     &transaction.AccountID,
		TargetTransaction: &transaction.ID,
		Note:              "Rejected " + transaction.Direction + " of " + transaction.Amount,
	})
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}
