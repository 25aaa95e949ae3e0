package auditservice

import (
	"context"
	"testing"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	t.Parallel()

	arg := domain.CreateActionParams{
		Manager: randompkg.Owner(),
		Action:  domain.ActionViewUser,
		Note:    randompkg.String(12),
	}

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		wantError  error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.ManagerAction{ID: 1, Manager: arg.Manager, Action: arg.Action}, nil)
			},
		},
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Eq(arg)).
					Times(1).
					Return(domain.ManagerAction{}, errorspkg.ErrInternal)
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
			service := New(repo)

			tc.buildStubs(repo)

			err := service.Record(context.Background(), arg)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	actions := []domain.ManagerAction{{ID: 2}, {ID: 1}}

	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(20)), gomock.Eq(int32(20))).
		Times(1).
		Return(actions, nil)

	got, err := service.List(context.Background(), 20, 2)
	require.NoError(t, err)
	require.Equal(t, actions, got)
}
