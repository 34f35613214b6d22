package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
)

type EventAdminService interface {
	Create(ctx context.Context, actor model.Permissions, input model.EventInput) (*model.Event, error)
	Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.EventInput) (*model.Event, error)
	UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.EventStatus) error
	Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error
	// ListAll 後台列表，依建立時間降冪
	ListAll(ctx context.Context, actor model.Permissions) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, actor model.Permissions) ([]*model.Event, error)
}

type EventAdminServiceImpl struct {
	repo repository.EventRepository
	now  func() time.Time
}

func NewEventAdminService(repo repository.EventRepository) EventAdminService {
	return NewEventAdminServiceWithClock(repo, time.Now)
}

func NewEventAdminServiceWithClock(repo repository.EventRepository, now func() time.Time) EventAdminService {
	return &EventAdminServiceImpl{repo: repo, now: now}
}

func (s *EventAdminServiceImpl) Create(ctx context.Context, actor model.Permissions, input model.EventInput) (*model.Event, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	if input.StartDate.Before(s.now()) {
		return nil, apperrors.NewValidationError("start date cannot be in the past")
	}

	event := applyEventInput(&model.Event{OrganizerID: actor.UserID}, input)
	if event.Status == "" {
		event.Status = model.EventStatusDraft
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (s *EventAdminServiceImpl) Update(ctx context.Context, actor model.Permissions, id uuid.UUID, input model.EventInput) (*model.Event, error) {
	existing, err := s.ownedEvent(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	// 未帶 status 時沿用原本的狀態
	return s.repo.Update(ctx, applyEventInput(existing, input))
}

func (s *EventAdminServiceImpl) UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.EventStatus) error {
	if !status.IsValid() {
		return apperrors.NewValidationError("invalid event status")
	}
	if _, err := s.ownedEvent(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *EventAdminServiceImpl) Delete(ctx context.Context, actor model.Permissions, id uuid.UUID) error {
	if _, err := s.ownedEvent(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *EventAdminServiceImpl) ListAll(ctx context.Context, actor model.Permissions) ([]*model.Event, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

func (s *EventAdminServiceImpl) ListByOrganizer(ctx context.Context, actor model.Permissions) ([]*model.Event, error) {
	if !actor.Authenticated() {
		return nil, apperrors.ErrUnauthenticated
	}
	return s.repo.ListByOrganizer(ctx, actor.UserID)
}

// ownedEvent organizer 只能動自己的活動，admin 不受限
func (s *EventAdminServiceImpl) ownedEvent(ctx context.Context, actor model.Permissions, id uuid.UUID) (*model.Event, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && event.OrganizerID != actor.UserID {
		return nil, apperrors.ErrForbidden
	}
	return event, nil
}

func validateEventInput(input model.EventInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.NewValidationError("title is required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return apperrors.NewValidationError("start and end dates are required")
	}
	if !input.EndDate.After(input.StartDate) {
		return apperrors.NewValidationError("end date must be after start date")
	}
	if input.MaxParticipants != nil && *input.MaxParticipants <= 0 {
		return apperrors.NewValidationError("max participants must be positive")
	}
	if input.Status != "" && !input.Status.IsValid() {
		return apperrors.NewValidationError("invalid event status")
	}
	return nil
}

func applyEventInput(event *model.Event, input model.EventInput) *model.Event {
	event.Title = strings.TrimSpace(input.Title)
	event.Description = strings.TrimSpace(input.Description)
	event.StartDate = input.StartDate.UTC()
	event.EndDate = input.EndDate.UTC()
	event.Location = trimToNil(input.Location)
	event.IsVirtual = input.IsVirtual
	event.ImageURL = trimToNil(input.ImageURL)
	event.MaxParticipants = input.MaxParticipants
	event.TermsAndConditions = trimToNil(input.TermsAndConditions)
	if input.Status != "" {
		event.Status = input.Status
	}
	return event
}

// trimToNil 空白字串視為 NULL
func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimStringToNil(s string) *string {
	return trimToNil(&s)
}
