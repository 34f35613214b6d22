package service

import (
	"context"
	"fmt"
	"strings"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ResourceAdminService interface {
	Create(ctx context.Context, actor model.Permissions, input model.ResourceInput) (*model.Resource, error)
	Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.ResourceInput) (*model.Resource, error)
	Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error
	List(ctx context.Context, actor model.Permissions) ([]*model.Resource, error)
}

type ResourceAdminServiceImpl struct {
	repo   repository.ResourceRepository
	policy *bluemonday.Policy
}

func NewResourceAdminService(repo repository.ResourceRepository) ResourceAdminService {
	return &ResourceAdminServiceImpl{
		repo:   repo,
		policy: bluemonday.UGCPolicy(),
	}
}

func (s *ResourceAdminServiceImpl) Create(ctx context.Context, actor model.Permissions, input model.ResourceInput) (*model.Resource, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	res, err := s.build(&model.Resource{CreatedBy: actor.UserID}, input)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	return created, nil
}

func (s *ResourceAdminServiceImpl) Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.ResourceInput) (*model.Resource, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	res, err := s.build(&model.Resource{ID: id}, input)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, res)
}

func (s *ResourceAdminServiceImpl) Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error {
	if !actor.IsOrganizer {
		return apperrors.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *ResourceAdminServiceImpl) List(ctx context.Context, actor model.Permissions) ([]*model.Resource, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	items, _, err := s.repo.Search(ctx, model.ResourceFilter{})
	return items, err
}

func (s *ResourceAdminServiceImpl) build(res *model.Resource, input model.ResourceInput) (*model.Resource, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}
	if !input.ResourceType.IsValid() {
		return nil, apperrors.NewValidationError("invalid resource type")
	}

	res.Title = title
	res.ResourceType = input.ResourceType
	res.Description = trimStringToNil(s.policy.Sanitize(input.Description))
	res.URL = trimStringToNil(input.URL)
	res.FilePath = trimStringToNil(input.FilePath)
	res.EventID = input.EventID
	return res, nil
}
