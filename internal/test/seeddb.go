// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-teller/teller-bank/internal/accountrepo"
	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/transactionrepo"
	"github.com/go-teller/teller-bank/internal/userrepo"
	"github.com/go-teller/teller-bank/pkg/dbpkg"
	"github.com/go-teller/teller-bank/pkg/passpkg"
	"github.com/go-teller/teller-bank/pkg/randompkg"
)

// SeedUser creates a random customer inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           domain.RoleCustomer,
	}

	userRepo := userrepo.NewRepoPGS(tx)
	user, err := userRepo.Create(context.Background(), arg)

	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedManager creates a random manager inside a test transaction.
func SeedManager(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
		Role:           domain.RoleManager,
		EmployeeID:     "EMP" + randompkg.Digits(5),
	}

	userRepo := userrepo.NewRepoPGS(tx)
	user, err := userRepo.Create(context.Background(), arg)

	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates a zero balance account inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, owner string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	number := "ACC" + randompkg.Digits(7)

	account, err := accountRepo.Create(context.Background(), number, owner)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v) returned error: %v",
			number, owner, err)
	}

	return account
}

// SeedAccountWith1000Balance creates an account with 1000.00 on balance
// inside a test transaction.
func SeedAccountWith1000Balance(t *testing.T, tx dbpkg.SQLInterface, owner string) domain.Account {
	t.Helper()

	account := SeedAccount(t, tx, owner)

	accountRepo := accountrepo.NewRepoPGS(tx)

	const balance = "1000.00"

	account, err := accountRepo.SetBalance(context.Background(), balance, account.ID)
	if err != nil {
		t.Fatalf("accountRepo.SetBalance(context.Background(), %v, %v) returned error: %v",
			balance, account.ID, err)
	}

	return account
}

// SeedTransaction creates a transaction record inside a test transaction.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateTransactionParams) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewRepoPGS(tx)

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}

// SeedPendingTransaction creates a PENDING transaction record for the given
// account inside a test transaction.
func SeedPendingTransaction(t *testing.T, tx dbpkg.SQLInterface, account domain.Account, direction, amount string) domain.Transaction {
	t.Helper()

	return SeedTransaction(t, tx, domain.CreateTransactionParams{
		AccountID:    account.ID,
		Direction:    direction,
		Amount:       amount,
		BalanceAfter: account.Balance,
		Status:       domain.StatusPending,
	})
}
