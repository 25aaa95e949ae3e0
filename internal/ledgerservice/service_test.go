package ledgerservice

import (
	"context"
	"testing"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/test"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)

	okArg := domain.ApplyParams{
		AccountID: account.ID,
		Direction: domain.DirectionDeposit,
		Amount:    "100.00",
	}

	testCases := []struct {
		name       string
		owner      string
		arg        domain.ApplyParams
		buildStubs func(repo *MockRepo, accounts *MockAccountGetter)
		wantError  error
	}{
		{
			name:  "OK",
			owner: owner,
			arg:   okArg,
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					Apply(gomock.Any(), gomock.Eq(okArg)).
					Times(1).
					Return(domain.LedgerTxResult{Account: account}, nil)
			},
		},
		{
			name:  "NegativeAmount",
			owner: owner,
			arg: domain.ApplyParams{
				AccountID: account.ID,
				Direction: domain.DirectionDeposit,
				Amount:    "-5.00",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {},
			wantError:  domain.ErrInvalidAmount,
		},
		{
			name:  "MalformedAmount",
			owner: owner,
			arg: domain.ApplyParams{
				AccountID: account.ID,
				Direction: domain.DirectionDeposit,
				Amount:    "ten dollars",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {},
			wantError:  domain.ErrInvalidAmount,
		},
		{
			name:  "OverCeiling",
			owner: owner,
			arg: domain.ApplyParams{
				AccountID: account.ID,
				Direction: domain.DirectionDeposit,
				Amount:    "1000000.01",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {},
			wantError:  domain.ErrAmountOverLimit,
		},
		{
			name:  "AtCeiling",
			owner: owner,
			arg: domain.ApplyParams{
				AccountID: account.ID,
				Direction: domain.DirectionDeposit,
				Amount:    "1000000.00",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					Apply(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.LedgerTxResult{Account: account}, nil)
			},
		},
		{
			name:  "BadDirection",
			owner: owner,
			arg: domain.ApplyParams{
				AccountID: account.ID,
				Direction: "SIDEWAYS",
				Amount:    "100.00",
			},
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {},
			wantError:  domain.ErrInvalidDirection,
		},
		{
			name:  "NotOwner",
			owner: "intruder",
			arg:   okArg,
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					Apply(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrAccountOwnerMismatch,
		},
		{
			name:  "AccountNotFound",
			owner: owner,
			arg:   okArg,
			buildStubs: func(repo *MockRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantError: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			transactions := NewMockTransactionRepo(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			service := New(repo, transactions, accounts)

			tc.buildStubs(repo, accounts)

			_, err := service.Apply(context.Background(), tc.owner, tc.arg)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSubmit(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)

	arg := domain.ApplyParams{
		AccountID: account.ID,
		Direction: domain.DirectionWithdraw,
		Amount:    "200.00",
	}

	pending := test.RandomTransaction(account.ID)
	pending.Status = domain.StatusPending

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountGetter(ctrl)
	service := New(repo, NewMockTransactionRepo(ctrl), accounts)

	accounts.EXPECT().
		Get(gomock.Any(), gomock.Eq(account.ID)).
		Times(1).
		Return(account, nil)

	repo.EXPECT().
		Submit(gomock.Any(), gomock.Eq(arg)).
		Times(1).
		Return(pending, nil)

	got, err := service.Submit(context.Background(), owner, arg)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, got.Status)
}

func TestHistory(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)

	testCases := []struct {
		name       string
		owner      string
		buildStubs func(transactions *MockTransactionRepo, accounts *MockAccountGetter)
		wantError  error
	}{
		{
			name:  "OK",
			owner: owner,
			buildStubs: func(transactions *MockTransactionRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				transactions.EXPECT().
					List(gomock.Any(), gomock.Eq(domain.ListTransactionsParams{
						AccountID: account.ID,
						Direction: domain.DirectionDeposit,
						Limit:     5,
						Offset:    5,
					})).
					Times(1).
					Return([]domain.Transaction{test.RandomTransaction(account.ID)}, nil)
			},
		},
		{
			name:  "NotOwner",
			owner: "intruder",
			buildStubs: func(transactions *MockTransactionRepo, accounts *MockAccountGetter) {
				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				transactions.EXPECT().
					List(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrAccountOwnerMismatch,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactions := NewMockTransactionRepo(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			service := New(NewMockRepo(ctrl), transactions, accounts)

			tc.buildStubs(transactions, accounts)

			got, err := service.History(context.Background(), tc.owner, HistoryParams{
				AccountID: account.ID,
				Direction: domain.DirectionDeposit,
				PageSize:  5,
				PageID:    2,
			})
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Len(t, got, 1)
		})
	}
}

func TestReceipt(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)
	transaction := test.RandomTransaction(account.ID)

	testCases := []struct {
		name       string
		owner      string
		buildStubs func(transactions *MockTransactionRepo, accounts *MockAccountGetter)
		wantError  error
	}{
		{
			name:  "OK",
			owner: owner,
			buildStubs: func(transactions *MockTransactionRepo, accounts *MockAccountGetter) {
				transactions.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.ID)).
					Times(1).
					Return(transaction, nil)

				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name:  "NotOwner",
			owner: "intruder",
			buildStubs: func(transactions *MockTransactionRepo, accounts *MockAccountGetter) {
				transactions.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.ID)).
					Times(1).
					Return(transaction, nil)

				accounts.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)
			},
			wantError: domain.ErrAccountOwnerMismatch,
		},
		{
			name:  "TransactionNotFound",
			owner: owner,
			buildStubs: func(transactions *MockTransactionRepo, accounts *MockAccountGetter) {
				transactions.EXPECT().
					Get(gomock.Any(), gomock.Eq(transaction.ID)).
					Times(1).
					Return(domain.Transaction{}, domain.ErrTransactionNotFound)
			},
			wantError: domain.ErrTransactionNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactions := NewMockTransactionRepo(ctrl)
			accounts := NewMockAccountGetter(ctrl)
			service := New(NewMockRepo(ctrl), transactions, accounts)

			tc.buildStubs(transactions, accounts)

			receipt, err := service.Receipt(context.Background(), tc.owner, transaction.ID)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, transaction.ID, receipt.TransactionID)
			require.Equal(t, account.Number, receipt.AccountNumber)
			require.Equal(t, transaction.Amount, receipt.Amount)
			require.Equal(t, transaction.Status, receipt.Status)
			require.NotZero(t, receipt.IssuedAt)
		})
	}
}
