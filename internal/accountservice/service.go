// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/randompkg"
	"github.com/rs/zerolog"
)

const (
	numberPrefix = "ACC"
	numberDigits = 7

	// The 7-digit numeral space holds 10M identifiers. Retries are bounded
	// so that space exhaustion surfaces as an error instead of spinning.
	maxNumberAttempts = 100
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number, owner string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByOwner(ctx context.Context, owner string) (domain.Account, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	SetStatus(ctx context.Context, status string, id int32) (domain.Account, error)
	List(ctx context.Context, status string, limit, offset int32) ([]domain.Account, error)
}

// Recorder provides the audit trail interface needed by account service layer.
type Recorder interface {
	Record(ctx context.Context, arg domain.CreateActionParams) error
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	audit Recorder
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, audit Recorder) *Service {
	return &Service{repo: ar, audit: audit}
}

// Create creates and returns an active zero balance account for the given
// owner under a freshly generated unique account number.
func (s *Service) Create(ctx context.Context, owner string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := numberPrefix + randompkg.Digits(numberDigits)

		exists, err := s.repo.NumberExists(ctx, number)
		if err != nil {
			return domain.Account{}, err
		}

		if exists {
			continue
		}

		account, err := s.repo.Create(ctx, number, owner)
		if err == domain.ErrDuplicateAccountNumber {
			// Lost the race for this number, sample again.
			continue
		}

		return account, err
	}

	l.Error().Err(domain.ErrDuplicateAccountNumber).Str("owner", owner).Send()

	return domain.Account{}, domain.ErrDuplicateAccountNumber
}

// Get returns the account with the given ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByOwner returns the account owned by the given user.
func (s *Service) GetByOwner(ctx context.Context, owner string) (domain.Account, error) {
	return s.repo.GetByOwner(ctx, owner)
}

// List returns the requested page of accounts, optionally filtered by status.
func (s *Service) List(ctx context.Context, status string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, status, limit, offset)
}

// Freeze blocks all balance mutations of the account and records the action.
// Freezing an already frozen account is a no-op signalled by ErrAlreadyFrozen.
func (s *Service) Freeze(ctx context.Context, manager string, id int32, reason string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if account.Status == domain.StatusFrozen {
		l.Info().Err(domain.ErrAlreadyFrozen).Int32("account_id", id).Send()
		return account, domain.ErrAlreadyFrozen
	}

	account, err = s.repo.SetStatus(ctx, domain.StatusFrozen, id)
	if err != nil {
		return account, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:       manager,
		Action:        domain.ActionFreezeAccount,
		TargetUser:    &account.Owner,
		TargetAccount: &account.ID,
		Note:          "Frozen account " + account.Number + ". Reason: " + reason,
	})
	if err != nil {
		return account, err
	}

	return account, nil
}

// Unfreeze reactivates the account and records the action. Unfreezing an
// already active account is a no-op signalled by ErrAlreadyActive.
func (s *Service) Unfreeze(ctx context.Context, manager string, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	if account.Status == domain.StatusActive {
		l.Info().Err(domain.ErrAlreadyActive).Int32("account_id", id).Send()
		return account, domain.ErrAlreadyActive
	}

	account, err = s.repo.SetStatus(ctx, domain.StatusActive, id)
	if err != nil {
		return account, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:       manager,
		Action:        domain.ActionUnfreezeAccount,
		TargetUser:    &account.Owner,
		TargetAccount: &account.ID,
		Note:          "Unfrozen account " + account.Number,
	})
	if err != nil {
		return account, err
	}

	return account, nil
}

// Inspect returns the account with the given ID recording the privileged view.
func (s *Service) Inspect(ctx context.Context, manager string, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:       manager,
		Action:        domain.ActionViewAccount,
		TargetUser:    &account.Owner,
		TargetAccount: &account.ID,
		Note:          "Viewed account details: " + account.Number,
	})
	if err != nil {
		return account, err
	}

	return account, nil
}
