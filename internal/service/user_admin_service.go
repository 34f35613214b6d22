package service

import (
	"context"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
)

type UserAdminService interface {
	List(ctx context.Context, actor model.Permissions) ([]*model.User, error)
	ChangeRole(ctx context.Context, actor model.Permissions, id uuid.UUID, role model.Role) (*model.User, error)
	RoleCounts(ctx context.Context, actor model.Permissions) (model.RoleCounts, error)
}

type UserAdminServiceImpl struct {
	repo repository.UserRepository
}

func NewUserAdminService(repo repository.UserRepository) UserAdminService {
	return &UserAdminServiceImpl{repo: repo}
}

func (s *UserAdminServiceImpl) List(ctx context.Context, actor model.Permissions) ([]*model.User, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.List(ctx)
}

func (s *UserAdminServiceImpl) ChangeRole(ctx context.Context, actor model.Permissions, id uuid.UUID, role model.Role) (*model.User, error) {
	if !actor.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	if !role.IsValid() {
		return nil, apperrors.NewValidationError("invalid role")
	}
	return s.repo.Update(ctx, id, model.UpdateUserParams{Role: &role})
}

func (s *UserAdminServiceImpl) RoleCounts(ctx context.Context, actor model.Permissions) (model.RoleCounts, error) {
	if !actor.IsAdmin {
		return model.RoleCounts{}, apperrors.ErrForbidden
	}
	return s.repo.RoleCounts(ctx)
}
