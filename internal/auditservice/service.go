// Package auditservice manages business logic layer of the audit trail.
package auditservice

import (
	"context"

	"github.com/go-teller/teller-bank/internal/domain"
	"github.com/rs/zerolog"
)

// Repo provides data access layer interface needed by audit service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package auditservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateActionParams) (domain.ManagerAction, error)
	List(ctx context.Context, limit, offset int32) ([]domain.ManagerAction, error)
}

// Service facilitates audit service layer logic.
type Service struct {
	repo Repo
}

// New returns audit service struct to manage audit bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Record appends a manager action to the audit trail.
func (s *Service) Record(ctx context.Context, arg domain.CreateActionParams) error {
	l := zerolog.Ctx(ctx)

	action, err := s.repo.Create(ctx, arg)
	if err != nil {
		return err
	}

	l.Info().
		Str("manager", action.Manager).
		Str("action", action.Action).
		Int64("action_id", action.ID).
		Msg("manager action recorded")

	return nil
}

// List returns the requested page of manager actions, newest first.
func (s *Service) List(ctx context.Context, pageSize, pageID int32) ([]domain.ManagerAction, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.repo.List(ctx, limit, offset)
}
