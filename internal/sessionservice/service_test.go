package sessionservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/configpkg"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/go-teller/teller-bank/pkg/tokenpkg"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, repo Repo) *Service {
	tokenMaker, err := tokenpkg.NewPasetoMaker(randompkg.String(32))
	require.NoError(t, err)

	config := configpkg.Config{
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
	}

	service, err := New(repo, config, tokenMaker)
	require.NoError(t, err)

	return service
}

func TestCreate(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := newTestService(t, repo)

	repo.EXPECT().
		Create(gomock.Any(), gomock.AssignableToTypeOf(domain.CreateSessionParams{})).
		Times(1).
		DoAndReturn(func(_ context.Context, arg domain.CreateSessionParams) (domain.Session, error) {
			require.Equal(t, username, arg.Username)
			require.NotEqual(t, uuid.Nil, arg.ID)
			require.NotEmpty(t, arg.RefreshToken)
			require.WithinDuration(t, time.Now().Add(time.Hour), arg.ExpiresAt, time.Minute)

			return domain.Session{
				ID:           arg.ID,
				Username:     arg.Username,
				RefreshToken: arg.RefreshToken,
				ExpiresAt:    arg.ExpiresAt,
			}, nil
		})

	accessToken, expiredAt, sess, err := service.Create(context.Background(), domain.CreateSessionParams{
		Username: username,
		Role:     domain.RoleCustomer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.WithinDuration(t, time.Now().Add(time.Minute), expiredAt, time.Minute)
	require.Equal(t, username, sess.Username)

	payload, err := service.TokenMaker.VerifyToken(accessToken)
	require.NoError(t, err)
	require.Equal(t, username, payload.Username)
	require.Equal(t, domain.RoleCustomer, payload.Role)
}

func TestRenewAccessToken(t *testing.T) {
	t.Parallel()

	username := randompkg.Owner()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := newTestService(t, repo)

	refreshToken, refreshPayload, err := service.TokenMaker.CreateToken(username, domain.RoleCustomer, time.Hour)
	require.NoError(t, err)

	sess := domain.Session{
		ID:           refreshPayload.ID,
		Username:     username,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshPayload.ExpiredAt,
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
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(sess, nil)
			},
		},
		{
			name: "SessionNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(domain.Session{}, domain.ErrSessionNotFound)
			},
			wantError: domain.ErrSessionNotFound,
		},
		{
			name: "BlockedSession",
			buildStubs: func(repo *MockRepo) {
				blocked := sess
				blocked.IsBlocked = true

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(blocked, nil)
			},
			wantError: domain.ErrBlockedSession,
		},
		{
			name: "InvalidUser",
			buildStubs: func(repo *MockRepo) {
				other := sess
				other.Username = "somebody-else"

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(other, nil)
			},
			wantError: domain.ErrInvalidUser,
		},
		{
			name: "MismatchedRefreshToken",
			buildStubs: func(repo *MockRepo) {
				mismatched := sess
				mismatched.RefreshToken = "tampered"

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(mismatched, nil)
			},
			wantError: domain.ErrMismatchedRefreshToken,
		},
		{
			name: "ExpiredSession",
			buildStubs: func(repo *MockRepo) {
				expired := sess
				expired.ExpiresAt = time.Now().Add(-time.Minute)

				repo.EXPECT().
					Get(gomock.Any(), gomock.Eq(refreshPayload.ID)).
					Times(1).
					Return(expired, nil)
			},
			wantError: domain.ErrExpiredSession,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			tc.buildStubs(repo)

			accessToken, expiredAt, err := service.RenewAccessToken(context.Background(), refreshToken)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, accessToken)
			require.WithinDuration(t, time.Now().Add(time.Minute), expiredAt, time.Minute)

			payload, err := service.TokenMaker.VerifyToken(accessToken)
			require.NoError(t, err)
			require.Equal(t, username, payload.Username)
		})
	}
}

func TestRenewAccessTokenInvalidToken(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := newTestService(t, repo)

	repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Times(0)

	_, _, err := service.RenewAccessToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, tokenpkg.ErrInvalidToken)
}
