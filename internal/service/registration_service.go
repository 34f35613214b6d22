package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type RegistrationService interface {
	Availability(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID) (*model.Availability, error)
	// Register 檢查名額與重複報名後寫入；真正的唯一性由 DB 索引保證
	Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error)
	ListAll(ctx context.Context, actor model.Permissions) ([]*model.Registration, error)
	UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.RegistrationStatus) error
	StatusCounts(ctx context.Context, actor model.Permissions) (model.RegistrationStatusCounts, error)
}

type RegistrationServiceImpl struct {
	repo      repository.RegistrationRepository
	eventRepo repository.EventRepository
}

func NewRegistrationService(repo repository.RegistrationRepository, eventRepo repository.EventRepository) RegistrationService {
	return &RegistrationServiceImpl{repo: repo, eventRepo: eventRepo}
}

func (s *RegistrationServiceImpl) Availability(ctx context.Context, eventID uuid.UUID, userID *uuid.UUID) (*model.Availability, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var count int
	var already bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = s.repo.CountRegistered(gctx, eventID)
		return err
	})
	if userID != nil {
		g.Go(func() error {
			var err error
			already, err = s.repo.ExistsActive(gctx, eventID, *userID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("registration availability: %w", err)
	}

	return &model.Availability{
		Registered:        count,
		SpotsLeft:         spotsLeft(event.MaxParticipants, count),
		AlreadyRegistered: already,
	}, nil
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, req model.RegisterRequest) (*model.Registration, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FullName == "" || req.Email == "" {
		return nil, apperrors.NewValidationError("name and email are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, apperrors.NewValidationError("email is not valid")
	}
	if req.UserID == nil {
		return nil, apperrors.ErrUnauthenticated
	}

	event, err := s.eventRepo.FindByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventStatusPublished {
		return nil, apperrors.ErrEventNotFound
	}

	avail, err := s.Availability(ctx, req.EventID, req.UserID)
	if err != nil {
		return nil, err
	}
	if avail.SpotsLeft != nil && *avail.SpotsLeft <= 0 {
		return nil, apperrors.ErrEventFull
	}
	if avail.AlreadyRegistered {
		return nil, apperrors.ErrAlreadyRegistered
	}

	reg, err := s.repo.Create(ctx, &model.Registration{
		EventID:           req.EventID,
		UserID:            req.UserID,
		Email:             req.Email,
		FullName:          req.FullName,
		Phone:             trimToNil(req.Phone),
		Company:           trimToNil(req.Company),
		Position:          trimToNil(req.Position),
		TermsAccepted:     true,
		PrivacyAccepted:   true,
		MarketingAccepted: false,
		Status:            model.RegistrationStatusRegistered,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyRegistered) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

func (s *RegistrationServiceImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Registration, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *RegistrationServiceImpl) ListAll(ctx context.Context, actor model.Permissions) ([]*model.Registration, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	return s.repo.ListAll(ctx)
}

func (s *RegistrationServiceImpl) UpdateStatus(ctx context.Context, actor model.Permissions, id uuid.UUID, status model.RegistrationStatus) error {
	if !actor.IsOrganizer {
		return apperrors.ErrForbidden
	}
	if !status.IsValid() {
		return apperrors.NewValidationError("invalid registration status")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *RegistrationServiceImpl) StatusCounts(ctx context.Context, actor model.Permissions) (model.RegistrationStatusCounts, error) {
	if !actor.IsOrganizer {
		return model.RegistrationStatusCounts{}, apperrors.ErrForbidden
	}
	return s.repo.StatusCounts(ctx)
}

// spotsLeft nil 表示不限人數
func spotsLeft(max *int, registered int) *int {
	if max == nil {
		return nil
	}
	left := *max - registered
	if left < 0 {
		left = 0
	}
	return &left
}
