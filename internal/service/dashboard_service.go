package service

import (
	"context"
	"math"
	"time"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	recentEventsLimit = 5
	topEventsLimit    = 5
	analyticsMonths   = 6
)

type DashboardService interface {
	Overview(ctx context.Context, actor model.Permissions) (*model.DashboardOverview, error)
	Analytics(ctx context.Context, actor model.Permissions) (*model.DashboardAnalytics, error)
}

type DashboardServiceImpl struct {
	eventRepo        repository.EventRepository
	registrationRepo repository.RegistrationRepository
	feedbackRepo     repository.FeedbackRepository
	now              func() time.Time
	log              *zap.Logger
}

func NewDashboardService(
	eventRepo repository.EventRepository,
	registrationRepo repository.RegistrationRepository,
	feedbackRepo repository.FeedbackRepository,
) DashboardService {
	return NewDashboardServiceWithClock(eventRepo, registrationRepo, feedbackRepo, time.Now)
}

func NewDashboardServiceWithClock(
	eventRepo repository.EventRepository,
	registrationRepo repository.RegistrationRepository,
	feedbackRepo repository.FeedbackRepository,
	now func() time.Time,
) DashboardService {
	return &DashboardServiceImpl{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		feedbackRepo:     feedbackRepo,
		now:              now,
		log:              logger.WithComponent("dashboard"),
	}
}

// Overview 各查詢平行進行，失敗的部分記 log 後以 0 呈現
func (s *DashboardServiceImpl) Overview(ctx context.Context, actor model.Permissions) (*model.DashboardOverview, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	now := s.now().UTC()
	overview := &model.DashboardOverview{RecentEvents: []*model.Event{}}

	var g errgroup.Group
	g.Go(func() error {
		counts, err := s.eventRepo.Counts(ctx, now)
		if err != nil {
			s.logFailure("Overview", "event_counts", err)
			return nil
		}
		overview.TotalEvents = counts.Total
		overview.PublishedEvents = counts.Published
		overview.UpcomingEvents = counts.Upcoming
		return nil
	})
	g.Go(func() error {
		n, err := s.registrationRepo.CountAll(ctx)
		if err != nil {
			s.logFailure("Overview", "participants", err)
			return nil
		}
		overview.TotalParticipants = n
		return nil
	})
	g.Go(func() error {
		events, err := s.eventRepo.ListAll(ctx)
		if err != nil {
			s.logFailure("Overview", "recent_events", err)
			return nil
		}
		if len(events) > recentEventsLimit {
			events = events[:recentEventsLimit]
		}
		overview.RecentEvents = events
		return nil
	})
	_ = g.Wait()

	return overview, nil
}

func (s *DashboardServiceImpl) Analytics(ctx context.Context, actor model.Permissions) (*model.DashboardAnalytics, error) {
	if !actor.IsOrganizer {
		return nil, apperrors.ErrForbidden
	}
	now := s.now().UTC()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(analyticsMonths - 1), 0)
	analytics := &model.DashboardAnalytics{TopEvents: []*model.EventParticipation{}}

	var months []model.MonthCount
	var g errgroup.Group
	g.Go(func() error {
		counts, err := s.eventRepo.Counts(ctx, now)
		if err != nil {
			s.logFailure("Analytics", "event_counts", err)
			return nil
		}
		analytics.TotalEvents = counts.Total
		return nil
	})
	g.Go(func() error {
		n, err := s.registrationRepo.CountAll(ctx)
		if err != nil {
			s.logFailure("Analytics", "participants", err)
			return nil
		}
		analytics.TotalParticipants = n
		return nil
	})
	g.Go(func() error {
		n, avg, err := s.feedbackRepo.Stats(ctx)
		if err != nil {
			s.logFailure("Analytics", "feedback", err)
			return nil
		}
		analytics.TotalFeedback = n
		analytics.AvgRating = math.Round(avg*10) / 10
		return nil
	})
	g.Go(func() error {
		var err error
		months, err = s.eventRepo.CountByMonth(ctx, firstMonth)
		if err != nil {
			s.logFailure("Analytics", "events_by_month", err)
		}
		return nil
	})
	g.Go(func() error {
		top, err := s.registrationRepo.TopEvents(ctx, topEventsLimit)
		if err != nil {
			s.logFailure("Analytics", "top_events", err)
			return nil
		}
		analytics.TopEvents = top
		return nil
	})
	_ = g.Wait()

	analytics.EventsByMonth = fillMonths(firstMonth, analyticsMonths, months)
	return analytics, nil
}

func (s *DashboardServiceImpl) logFailure(operation, part string, err error) {
	s.log.Error("dashboard query failed",
		zap.String("operation", operation),
		zap.String("part", part),
		zap.Error(err),
	)
}

// fillMonths 補齊沒有活動的月份（count 0），由舊到新
func fillMonths(first time.Time, n int, counts []model.MonthCount) []model.MonthCount {
	byMonth := make(map[string]int, len(counts))
	for _, c := range counts {
		byMonth[c.Month] = c.Count
	}
	out := make([]model.MonthCount, 0, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0).Format("2006-01")
		out = append(out, model.MonthCount{Month: m, Count: byMonth[m]})
	}
	return out
}
