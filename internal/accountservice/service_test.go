package accountservice

import (
	"context"
	"strings"
	"testing"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/test"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
)

func TestCreate(t *testing.T) {
	t.Parallel()

	owner := randompkg.Owner()
	account := test.RandomAccount(owner)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					NumberExists(gomock.Any(), accountNumberMatcher{}).
					Times(1).
					Return(false, nil)

				repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "RetriesTakenNumber",
			buildStubs: func(repo *MockRepo) {
				taken := repo.EXPECT().
					NumberExists(gomock.Any(), accountNumberMatcher{}).
					Times(1).
					Return(true, nil)

				repo.EXPECT().
					NumberExists(gomock.Any(), accountNumberMatcher{}).
					After(taken).
					Times(1).
					Return(false, nil)

				repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "RetriesLostRace",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					NumberExists(gomock.Any(), accountNumberMatcher{}).
					Times(2).
					Return(false, nil)

				lost := repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner)).
					Times(1).
					Return(domain.Account{}, domain.ErrDuplicateAccountNumber)

				repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner)).
					After(lost).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "NumberExistsError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					NumberExists(gomock.Any(), accountNumberMatcher{}).
					Times(1).
					Return(false, errorspkg.ErrInternal)
			},
			wantError: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			audit := NewMockRecorder(ctrl)
			service := New(repo, audit)

			tc.buildStubs(repo)

			got, err := service.Create(context.Background(), owner)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.Create(ctx, %v) got error %v, want %v", owner, err, tc.wantError)
			}

			if !cmp.Equal(got, account) {
				t.Errorf("service.Create(ctx, %v) = %+v, want %+v", owner, got, account)
			}
		})
	}
}

type accountNumberMatcher struct{}

func (accountNumberMatcher) Matches(x interface{}) bool {
	number, ok := x.(string)
	if !ok {
		return false
	}

	if !strings.HasPrefix(number, numberPrefix) {
		return false
	}

	digits := strings.TrimPrefix(number, numberPrefix)
	if len(digits) != numberDigits {
		return false
	}

	return strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) == -1
}

func (accountNumberMatcher) String() string {
	return "matches a generated account number"
}

func TestFreeze(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()
	account := test.RandomAccount(randompkg.Owner())
	frozen := account
	frozen.Status = domain.StatusFrozen

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, audit *MockRecorder)
		wantStatus string
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, audit *MockRecorder) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					SetStatus(gomock.Any(), gomock.Eq(domain.StatusFrozen), gomock.Eq(account.ID)).
					Times(1).
					Return(frozen, nil)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
						Manager:       manager,
						Action:        domain.ActionFreezeAccount,
						TargetUser:    &frozen.Owner,
						TargetAccount: &frozen.ID,
						Note:          "Frozen account " + frozen.Number + ". Reason: fraud review",
					})).
					Times(1).
					Return(nil)
			},
			wantStatus: domain.StatusFrozen,
		},
		{
			name: "AlreadyFrozenWarns",
			buildStubs: func(repo *MockRepo, audit *MockRecorder) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(frozen, nil)

				repo.EXPECT().
					SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrAlreadyFrozen,
		},
		{
			name: "NotFound",
			buildStubs: func(repo *MockRepo, audit *MockRecorder) {
				repo.EXPECT().
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
			audit := NewMockRecorder(ctrl)
			service := New(repo, audit)

			tc.buildStubs(repo, audit)

			got, err := service.Freeze(context.Background(), manager, account.ID, "fraud review")
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.Freeze(ctx, %v, %v) got error %v, want %v", manager, account.ID, err, tc.wantError)
			}

			if got.Status != tc.wantStatus {
				t.Errorf("service.Freeze(ctx, %v, %v).Status = %v, want %v", manager, account.ID, got.Status, tc.wantStatus)
			}
		})
	}
}

func TestUnfreeze(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()
	account := test.RandomAccount(randompkg.Owner())
	frozen := account
	frozen.Status = domain.StatusFrozen

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, audit *MockRecorder)
		wantStatus string
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, audit *MockRecorder) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(frozen, nil)

				repo.EXPECT().
					SetStatus(gomock.Any(), gomock.Eq(domain.StatusActive), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
						Manager:       manager,
						Action:        domain.ActionUnfreezeAccount,
						TargetUser:    &account.Owner,
						TargetAccount: &account.ID,
						Note:          "Unfrozen account " + account.Number,
					})).
					Times(1).
					Return(nil)
			},
			wantStatus: domain.StatusActive,
		},
		{
			name: "AlreadyActiveWarns",
			buildStubs: func(repo *MockRepo, audit *MockRecorder) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(account, nil)

				repo.EXPECT().
					SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(0)

				audit.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrAlreadyActive,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			audit := NewMockRecorder(ctrl)
			service := New(repo, audit)

			tc.buildStubs(repo, audit)

			got, err := service.Unfreeze(context.Background(), manager, account.ID)
			if err != nil {
				if err == tc.wantError {
					return
				}

				t.Fatalf("service.Unfreeze(ctx, %v, %v) got error %v, want %v", manager, account.ID, err, tc.wantError)
			}

			if got.Status != tc.wantStatus {
				t.Errorf("service.Unfreeze(ctx, %v, %v).Status = %v, want %v", manager, account.ID, got.Status, tc.wantStatus)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()
	account := test.RandomAccount(randompkg.Owner())

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	audit := NewMockRecorder(ctrl)
	service := New(repo, audit)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(account.ID)).
		Times(1).
		Return(account, nil)

	audit.EXPECT().
		Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
			Manager:       manager,
			Action:        domain.ActionViewAccount,
			TargetUser:    &account.Owner,
			TargetAccount: &account.ID,
			Note:          "Viewed account details: " + account.Number,
		})).
		Times(1).
		Return(nil)

	got, err := service.Inspect(context.Background(), manager, account.ID)
	if err != nil {
		t.Fatalf("service.Inspect(ctx, %v, %v) returned error: %v", manager, account.ID, err)
	}

	if !cmp.Equal(got, account) {
		t.Errorf("service.Inspect(ctx, %v, %v) = %+v, want %+v", manager, account.ID, got, account)
	}
}
