// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

// Account statuses.
const (
	StatusActive = "ACTIVE"
	StatusFrozen = "FROZEN"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the owner already has an account.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrDuplicateAccountNumber indicates that account number generation ran out of retries.
	ErrDuplicateAccountNumber = errors.New("could not allocate a unique account number")
	// ErrAccountFrozen indicates that the account is frozen and blocks all balance mutations.
	ErrAccountFrozen = errors.New("account is frozen")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAccountOwnerMismatch indicates that the account belongs to another owner.
	ErrAccountOwnerMismatch = errors.New("account does not belong to the authenticated user")

	// ErrAlreadyFrozen warns that the account is already frozen. Freezing again is a no-op.
	ErrAlreadyFrozen = errors.New("account is already frozen")
	// ErrAlreadyActive warns that the account is already active. Unfreezing again is a no-op.
	ErrAlreadyActive = errors.New("account is already active")
)

// Account holds the single balance of its owner.
type Account struct {
	ID             int32     `json:"id"`
	Number         string    `json:"number"`
	Owner          string    `json:"owner"`
	Balance        string    `json:"balance"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
}
