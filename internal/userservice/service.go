// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/go-teller/teller-bank/pkg/errorspkg"
	"github.com/go-teller/teller-bank/pkg/passpkg"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, username string) (domain.User, error)
	ListCustomers(ctx context.Context, limit, offset int32) ([]domain.User, error)
}

// AccountProvisioner opens the single account a new customer owns.
type AccountProvisioner interface {
	Create(ctx context.Context, owner string) (domain.Account, error)
}

// Recorder provides the audit trail interface needed by user service layer.
type Recorder interface {
	Record(ctx context.Context, arg domain.CreateActionParams) error
}

// Service facilitates user service layer logic.
type Service struct {
	repo     Repo
	accounts AccountProvisioner
	audit    Recorder
}

// New returns user service struct to manage user bussines logic.
func New(ur Repo, accounts AccountProvisioner, audit Recorder) *Service {
	return &Service{repo: ur, accounts: accounts, audit: audit}
}

// CreateCustomerParams is the input data to register a customer.
type CreateCustomerParams struct {
	Username string
	Password string
	FullName string
	Email    string
}

// CreateCustomer registers a customer and opens their account.
func (s *Service) CreateCustomer(ctx context.Context, arg CreateCustomerParams) (domain.UserWithoutPassword, domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var wop domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return wop, domain.Account{}, errorspkg.ErrInternal
	}

	user, err := s.repo.Create(ctx, domain.CreateUserParams{
		Username:       arg.Username,
		HashedPassword: hashedPassword,
		FullName:       arg.FullName,
		Email:          arg.Email,
		Role:           domain.RoleCustomer,
	})
	if err != nil {
		return wop, domain.Account{}, err
	}

	account, err := s.accounts.Create(ctx, user.Username)
	if err != nil {
		l.Error().Err(err).Str("username", user.Username).Msg("account provisioning failed")
		return wop, domain.Account{}, err
	}

	return withoutPassword(user), account, nil
}

// CreateManagerParams is the input data to register a manager.
type CreateManagerParams struct {
	Username   string
	Password   string
	FullName   string
	Email      string
	EmployeeID string
}

// CreateManager registers a manager. Managers do not own accounts.
func (s *Service) CreateManager(ctx context.Context, arg CreateManagerParams) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var wop domain.UserWithoutPassword

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return wop, errorspkg.ErrInternal
	}

	user, err := s.repo.Create(ctx, domain.CreateUserParams{
		Username:       arg.Username,
		HashedPassword: hashedPassword,
		FullName:       arg.FullName,
		Email:          arg.Email,
		Role:           domain.RoleManager,
		EmployeeID:     arg.EmployeeID,
	})
	if err != nil {
		return wop, err
	}

	return withoutPassword(user), nil
}

// CheckPassword verifies the user's password and returns the user on success.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (domain.UserWithoutPassword, error) {
	l := zerolog.Ctx(ctx)

	var wop domain.UserWithoutPassword

	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return wop, err
	}

	err = passpkg.Check(password, user.HashedPassword)
	if err != nil {
		l.Info().Err(domain.ErrWrongPassword).Str("username", username).Send()
		return wop, domain.ErrWrongPassword
	}

	return withoutPassword(user), nil
}

// Get returns the user with the given username.
func (s *Service) Get(ctx context.Context, username string) (domain.UserWithoutPassword, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return withoutPassword(user), nil
}

// Inspect returns the user with the given username recording the privileged view.
func (s *Service) Inspect(ctx context.Context, manager, username string) (domain.UserWithoutPassword, error) {
	user, err := s.repo.Get(ctx, username)
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	err = s.audit.Record(ctx, domain.CreateActionParams{
		Manager:    manager,
		Action:     domain.ActionViewUser,
		TargetUser: &user.Username,
		Note:       "Viewed user details: " + user.Username,
	})
	if err != nil {
		return domain.UserWithoutPassword{}, err
	}

	return withoutPassword(user), nil
}

// ListCustomers returns the requested page of customers.
func (s *Service) ListCustomers(ctx context.Context, pageSize, pageID int32) ([]domain.UserWithoutPassword, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	users, err := s.repo.ListCustomers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	wops := make([]domain.UserWithoutPassword, 0, len(users))
	for _, user := range users {
		wops = append(wops, withoutPassword(user))
	}

	return wops, nil
}

func withoutPassword(user domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		Username:   user.Username,
		FullName:   user.FullName,
		Email:      user.Email,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
		CreatedAt:  user.CreatedAt,
	}
}
