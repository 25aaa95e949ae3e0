package approvalservice

import (
	"context"
	"testing"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/test"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestListPending(t *testing.T) {
	t.Parallel()

	account := test.RandomAccount(randompkg.Owner())

	pending := test.RandomTransaction(account.ID)
	pending.Status = domain.StatusPending

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transactions := NewMockTransactionRepo(ctrl)
	service := New(NewMockLedgerRepo(ctrl), transactions, NewMockRecorder(ctrl))

	transactions.EXPECT().
		List(gomock.Any(), gomock.Eq(domain.ListTransactionsParams{
			Status: domain.StatusPending,
			Limit:  10,
			Offset: 0,
		})).
		Times(1).
		Return([]domain.Transaction{pending}, nil)

	got, err := service.ListPending(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, domain.StatusPending, got[0].Status)
}

func TestApprove(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()
	account := test.RandomAccount(randompkg.Owner())

	approved := test.RandomTransaction(account.ID)
	approved.Status = domain.StatusApproved
	approved.DecidedBy = manager

	res := domain.LedgerTxResult{Account: account, Transaction: approved}

	testCases := []struct {
		name       string
		buildStubs func(ledger *MockLedgerRepo, audit *MockRecorder)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(ledger *MockLedgerRepo, audit *MockRecorder) {
				ledger.EXPECT().
					Settle(gomock.Any(), gomock.Eq(approved.ID), gomock.Eq(manager), gomock.Eq("ok")).
					Times(1).
					Return(res, nil)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
						Manager:           manager,
						Action:            domain.ActionApproveTransaction,
						TargetUser:        &res.Account.Owner,
						TargetAccount:     &res.Account.ID,
						TargetTransaction: &res.Transaction.ID,
						Note:              "Approved " + approved.Direction + " of " + approved.Amount,
					})).
					Times(1).
					Return(nil)
			},
		},
		{
			name: "AlreadyDecidedWarns",
			buildStubs: func(ledger *MockLedgerRepo, audit *MockRecorder) {
				ledger.EXPECT().
					Settle(gomock.Any(), gomock.Eq(approved.ID), gomock.Eq(manager), gomock.Eq("ok")).
					Times(1).
					Return(res, domain.ErrTransactionDecided)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrTransactionDecided,
		},
		{
			name: "InsufficientBalance",
			buildStubs: func(ledger *MockLedgerRepo, audit *MockRecorder) {
				ledger.EXPECT().
					Settle(gomock.Any(), gomock.Eq(approved.ID), gomock.Eq(manager), gomock.Eq("ok")).
					Times(1).
					Return(domain.LedgerTxResult{}, domain.ErrInsufficientBalance)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrInsufficientBalance,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			ledger := NewMockLedgerRepo(ctrl)
			audit := NewMockRecorder(ctrl)
			service := New(ledger, NewMockTransactionRepo(ctrl), audit)

			tc.buildStubs(ledger, audit)

			got, err := service.Approve(context.Background(), manager, approved.ID, "ok")
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.StatusApproved, got.Transaction.Status)
			require.Equal(t, manager, got.Transaction.DecidedBy)
		})
	}
}

func TestReject(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()
	account := test.RandomAccount(randompkg.Owner())

	rejected := test.RandomTransaction(account.ID)
	rejected.Status = domain.StatusRejected
	rejected.DecidedBy = manager
	rejected.DecisionNote = "suspicious"

	testCases := []struct {
		name       string
		buildStubs func(transactions *MockTransactionRepo, audit *MockRecorder)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(transactions *MockTransactionRepo, audit *MockRecorder) {
				transactions.EXPECT().
					Decide(gomock.Any(), gomock.Eq(rejected.ID), gomock.Eq(domain.StatusRejected), gomock.Eq(manager), gomock.Eq("suspicious")).
					Times(1).
					Return(rejected, nil)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
						Manager:           manager,
						Action:            domain.ActionRejectTransaction,
						TargetAccount:     &rejected.AccountID,
						TargetTransaction: &rejected.ID,
						Note:              "Rejected " + rejected.Direction + " of " + rejected.Amount,
					})).
					Times(1).
					Return(nil)
			},
		},
		{
			name: "AlreadyDecidedWarns",
			buildStubs: func(transactions *MockTransactionRepo, audit *MockRecorder) {
				transactions.EXPECT().
					Decide(gomock.Any(), gomock.Eq(rejected.ID), gomock.Eq(domain.StatusRejected), gomock.Eq(manager), gomock.Eq("suspicious")).
					Times(1).
					Return(rejected, domain.ErrTransactionDecided)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrTransactionDecided,
		},
		{
			name: "NotFound",
			buildStubs: func(transactions *MockTransactionRepo, audit *MockRecorder) {
				transactions.EXPECT().
					Decide(gomock.Any(), gomock.Eq(rejected.ID), gomock.Eq(domain.StatusRejected), gomock.Eq(manager), gomock.Eq("suspicious")).
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
			audit := NewMockRecorder(ctrl)
			service := New(NewMockLedgerRepo(ctrl), transactions, audit)

			tc.buildStubs(transactions, audit)

			got, err := service.Reject(context.Background(), manager, rejected.ID, "suspicious")
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, domain.StatusRejected, got.Status)
			require.Equal(t, "suspicious", got.DecisionNote)
		})
	}
}
