package domain

import (
	"errors"
	"time"
)

// Transaction directions.
const (
	DirectionDeposit  = "DEPOSIT"
	DirectionWithdraw = "WITHDRAW"
)

// Transaction statuses. Approved, rejected and completed are terminal.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCompleted = "COMPLETED"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount indicates a malformed or non-positive amount.
	ErrInvalidAmount = errors.New("amount must be a positive number with at most 2 decimal places")
	// ErrAmountOverLimit indicates that the amount exceeds the per-transaction ceiling.
	ErrAmountOverLimit = errors.New("amount exceeds the per-transaction limit")
	// ErrInvalidDirection indicates an unknown transaction direction.
	ErrInvalidDirection = errors.New("invalid transaction direction")

	// ErrTransactionDecided warns that the transaction is not pending approval.
	// Deciding it again is a no-op.
	ErrTransactionDecided = errors.New("transaction is not pending approval")
)

// Transaction holds a single balance-affecting event of an account.
//
// BalanceAfter is the account balance at the instant the transaction was
// applied. For a PENDING transaction it is a speculative value that becomes
// authoritative only on approval.
type Transaction struct {
	ID           int64     `json:"id"`
	AccountID    int32     `json:"account_id"`
	Direction    string    `json:"direction"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Status       string    `json:"status"`
	Description  string    `json:"description,omitempty"`
	DecidedBy    string    `json:"decided_by,omitempty"`
	DecisionNote string    `json:"decision_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateTransactionParams is the input data to append a transaction record.
type CreateTransactionParams struct {
	AccountID    int32  `json:"account_id"`
	Direction    string `json:"direction"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
	Status       string `json:"status"`
	Description  string `json:"description"`
}

// ListTransactionsParams is the input data to browse transaction records.
// Zero values mean no filtering on that field.
type ListTransactionsParams struct {
	AccountID int32  `json:"account_id"`
	Direction string `json:"direction"`
	Status    string `json:"status"`
	Limit     int32  `json:"limit"`
	Offset    int32  `json:"offset"`
}

// ApplyParams is the input data for a balance mutation.
type ApplyParams struct {
	AccountID   int32  `json:"account_id"`
	Direction   string `json:"direction"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// LedgerTxResult is the result of an atomic balance mutation.
type LedgerTxResult struct {
	Transaction Transaction `json:"transaction"`
	Account     Account     `json:"account"`
}

// Receipt is a read-only snapshot of a single transaction.
type Receipt struct {
	TransactionID int64     `json:"transaction_id"`
	AccountNumber string    `json:"account_number"`
	Direction     string    `json:"direction"`
	Amount        string    `json:"amount"`
	BalanceAfter  string    `json:"balance_after"`
	Status        string    `json:"status"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	IssuedAt      time.Time `json:"issued_at"`
}
