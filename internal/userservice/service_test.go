package userservice

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/internal/test"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/passpkg"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type eqCreateUserParamsMatcher struct {
	arg      domain.CreateUserParams
	password string
}

func (e eqCreateUserParamsMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateUserParams)
	if !ok {
		return false
	}

	err := passpkg.Check(e.password, arg.HashedPassword)
	if err != nil {
		return false
	}

	e.arg.HashedPassword = arg.HashedPassword

	return e.arg == arg
}

func (e eqCreateUserParamsMatcher) String() string {
	return fmt.Sprintf("matches arg %v and password %v", e.arg, e.password)
}

func randomCustomerParams() CreateCustomerParams {
	return CreateCustomerParams{
		Username: randompkg.Owner(),
		Password: randompkg.String(10),
		FullName: randompkg.Owner(),
		Email:    randompkg.Email(),
	}
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	arg := randomCustomerParams()

	user := domain.User{
		Username: arg.Username,
		FullName: arg.FullName,
		Email:    arg.Email,
		Role:     domain.RoleCustomer,
	}

	account := test.RandomAccount(arg.Username)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo, accounts *MockAccountProvisioner)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				repo.EXPECT().
					Create(gomock.Any(), eqCreateUserParamsMatcher{
						arg: domain.CreateUserParams{
							Username: arg.Username,
							FullName: arg.FullName,
							Email:    arg.Email,
							Role:     domain.RoleCustomer,
						},
						password: arg.Password,
					}).
					Times(1).
					Return(user, nil)

				accounts.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg.Username)).
					Times(1).
					Return(account, nil)
			},
		},
		{
			name: "UsernameTaken",
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrUsernameAlreadyExists)

				accounts.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(0)
			},
			wantError: domain.ErrUsernameAlreadyExists,
		},
		{
			name: "ProvisioningFails",
			buildStubs: func(repo *MockRepo, accounts *MockAccountProvisioner) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(user, nil)

				accounts.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg.Username)).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
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
			accounts := NewMockAccountProvisioner(ctrl)
			audit := NewMockRecorder(ctrl)
			service := New(repo, accounts, audit)

			tc.buildStubs(repo, accounts)

			gotUser, gotAccount, err := service.CreateCustomer(context.Background(), arg)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, arg.Username, gotUser.Username)
			require.Equal(t, domain.RoleCustomer, gotUser.Role)
			require.Empty(t, gotUser.EmployeeID)
			require.Equal(t, account, gotAccount)
		})
	}
}

func TestCreateManager(t *testing.T) {
	t.Parallel()

	arg := CreateManagerParams{
		Username:   randompkg.Owner(),
		Password:   randompkg.String(10),
		FullName:   randompkg.Owner(),
		Email:      randompkg.Email(),
		EmployeeID: "EMP" + randompkg.Digits(5),
	}

	user := domain.User{
		Username:   arg.Username,
		FullName:   arg.FullName,
		Email:      arg.Email,
		Role:       domain.RoleManager,
		EmployeeID: arg.EmployeeID,
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	accounts := NewMockAccountProvisioner(ctrl)
	audit := NewMockRecorder(ctrl)
	service := New(repo, accounts, audit)

	repo.EXPECT().
		Create(gomock.Any(), eqCreateUserParamsMatcher{
			arg: domain.CreateUserParams{
				Username:   arg.Username,
				FullName:   arg.FullName,
				Email:      arg.Email,
				Role:       domain.RoleManager,
				EmployeeID: arg.EmployeeID,
			},
			password: arg.Password,
		}).
		Times(1).
		Return(user, nil)

	// Managers do not own accounts.
	accounts.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Times(0)

	got, err := service.CreateManager(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, arg.Username, got.Username)
	require.Equal(t, domain.RoleManager, got.Role)
	require.Equal(t, arg.EmployeeID, got.EmployeeID)
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	require.NoError(t, err)

	user := domain.User{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		Role:           domain.RoleCustomer,
	}

	testCases := []struct {
		name       string
		password   string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name:     "OK",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(user.Username)).
					Times(1).
					Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			password: "incorrect",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(user.Username)).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrWrongPassword,
		},
		{
			name:     "UserNotFound",
			password: password,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(user.Username)).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			service := New(repo, NewMockAccountProvisioner(ctrl), NewMockRecorder(ctrl))

			tc.buildStubs(repo)

			got, err := service.CheckPassword(context.Background(), user.Username, tc.password)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, user.Username, got.Username)
		})
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	manager := randompkg.Owner()

	user := domain.User{
		Username: randompkg.Owner(),
		Role:     domain.RoleCustomer,
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	audit := NewMockRecorder(ctrl)
	service := New(repo, NewMockAccountProvisioner(ctrl), audit)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(user.Username)).
		Times(1).
		Return(user, nil)

	audit.EXPECT().
		Record(gomock.Any(), gomock.Eq(domain.CreateActionParams{
			Manager:    manager,
			Action:     domain.ActionViewUser,
			TargetUser: &user.Username,
			Note:       "Viewed user details: " + user.Username,
		})).
		Times(1).
		Return(nil)

	got, err := service.Inspect(context.Background(), manager, user.Username)
	require.NoError(t, err)
	require.Equal(t, user.Username, got.Username)
}

func TestListCustomers(t *testing.T) {
	t.Parallel()

	users := []domain.User{
		{Username: randompkg.Owner(), HashedPassword: "secret", Role: domain.RoleCustomer},
		{Username: randompkg.Owner(), HashedPassword: "secret", Role: domain.RoleCustomer},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo, NewMockAccountProvisioner(ctrl), NewMockRecorder(ctrl))

	repo.EXPECT().
		ListCustomers(gomock.Any(), gomock.Eq(int32(10)), gomock.Eq(int32(10))).
		Times(1).
		Return(users, nil)

	got, err := service.ListCustomers(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, wop := range got {
		require.Equal(t, users[i].Username, wop.Username)
	}
}
