package test

import (
	"time"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/randompkg"
)

// RandomAccount returns a random active account owned by the given owner.
func RandomAccount(owner string) domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Number:    "ACC" + randompkg.Digits(7),
		Owner:     owner,
		Balance:   randompkg.MoneyAmountBetween(1000, 10_000),
		Status:    domain.StatusActive,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns a random COMPLETED transaction of the given account.
func RandomTransaction(accountID int32) domain.Transaction {
	return domain.Transaction{
		ID:           int64(randompkg.IntBetween(1, 1000)),
		AccountID:    accountID,
		Direction:    domain.DirectionDeposit,
		Amount:       randompkg.MoneyAmountBetween(10, 1000),
		BalanceAfter: randompkg.MoneyAmountBetween(1000, 10_000),
		Status:       domain.StatusCompleted,
		CreatedAt:    time.Now().Truncate(time.Second).UTC(),
	}
}
