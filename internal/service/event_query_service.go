package service

import (
	"context"
	"strings"
	"time"

	"community-events/internal/cache"
	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultUpcomingLimit = 6

// EventPageQuery 公開列表的查詢參數
type EventPageQuery struct {
	Term     string
	Type     model.EventType
	Page     int
	PageSize int
}

func (q EventPageQuery) normalize() (EventPageQuery, model.PageRequest) {
	q.Term = strings.TrimSpace(q.Term)
	if q.Type == "" {
		q.Type = model.EventTypeAll
	}
	req := model.PageRequest{Page: q.Page, PageSize: q.PageSize}.Normalize()
	q.Page, q.PageSize = req.Page, req.PageSize
	return q, req
}

type EventQueryService interface {
	// ListPage 合併模式：upcoming 升冪接 past 降冪，再於記憶體內分頁
	ListPage(ctx context.Context, q EventPageQuery) model.Page[*model.Event]
	// ListPhasePage 單一階段；auto 在第一頁沒有 upcoming 時改查 past
	ListPhasePage(ctx context.Context, q EventPageQuery, when model.EventPhase) model.EventPhasePage
	Upcoming(ctx context.Context, limit int, fallbackToPast bool) []*model.Event
	GetPublished(ctx context.Context, id uuid.UUID) (*model.Event, error)
}

type EventQueryServiceImpl struct {
	repo  repository.EventRepository
	cache cache.QueryCache
	now   func() time.Time
	log   *zap.Logger
}

func NewEventQueryService(repo repository.EventRepository, queryCache cache.QueryCache) EventQueryService {
	return NewEventQueryServiceWithClock(repo, queryCache, time.Now)
}

func NewEventQueryServiceWithClock(repo repository.EventRepository, queryCache cache.QueryCache, now func() time.Time) EventQueryService {
	return &EventQueryServiceImpl{
		repo:  repo,
		cache: queryCache,
		now:   now,
		log:   logger.WithComponent("event_query"),
	}
}

func (s *EventQueryServiceImpl) baseFilter(q EventPageQuery, phase model.EventPhase, now time.Time) model.EventFilter {
	return model.EventFilter{
		Term:      q.Term,
		Type:      q.Type,
		Phase:     phase,
		Now:       now,
		Published: true,
	}
}

func (s *EventQueryServiceImpl) ListPage(ctx context.Context, q EventPageQuery) model.Page[*model.Event] {
	q, req := q.normalize()
	key := cache.EventsPageKey(q.Term, string(q.Type), req.Page, req.PageSize)

	page, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) (model.Page[*model.Event], error) {
		return s.loadCombined(ctx, q, req)
	})
	if err != nil {
		s.log.Error("failed to fetch events page", zap.String("operation", "ListPage"), zap.Error(err))
		return model.EmptyPage[*model.Event](req)
	}
	return page
}

func (s *EventQueryServiceImpl) loadCombined(ctx context.Context, q EventPageQuery, req model.PageRequest) (model.Page[*model.Event], error) {
	now := s.now().UTC()

	var upcoming, past []*model.Event
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		upcoming, _, err = s.repo.Search(gctx, s.baseFilter(q, model.EventPhaseUpcoming, now))
		return err
	})
	g.Go(func() error {
		var err error
		past, _, err = s.repo.Search(gctx, s.baseFilter(q, model.EventPhasePast, now))
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Page[*model.Event]{}, err
	}

	all := make([]*model.Event, 0, len(upcoming)+len(past))
	for _, e := range upcoming {
		all = append(all, tagUpcoming(e, true))
	}
	for _, e := range past {
		all = append(all, tagUpcoming(e, false))
	}

	return model.Page[*model.Event]{
		Items:    slicePage(all, req),
		Total:    len(all),
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *EventQueryServiceImpl) ListPhasePage(ctx context.Context, q EventPageQuery, when model.EventPhase) model.EventPhasePage {
	q, req := q.normalize()
	key := cache.EventsPhaseKey(string(when), q.Term, string(q.Type), req.Page, req.PageSize)

	page, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) (model.EventPhasePage, error) {
		return s.loadPhase(ctx, q, req, when)
	})
	if err != nil {
		s.log.Error("failed to fetch events phase page",
			zap.String("operation", "ListPhasePage"),
			zap.String("when", string(when)),
			zap.Error(err),
		)
		return model.EventPhasePage{Page: model.EmptyPage[*model.Event](req)}
	}
	return page
}

func (s *EventQueryServiceImpl) loadPhase(ctx context.Context, q EventPageQuery, req model.PageRequest, when model.EventPhase) (model.EventPhasePage, error) {
	now := s.now().UTC()

	phase := when
	if phase == model.EventPhaseAuto {
		phase = model.EventPhaseUpcoming
	}

	filter := s.baseFilter(q, phase, now)
	filter.Limit = req.PageSize
	filter.Offset = req.Offset()

	events, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return model.EventPhasePage{}, err
	}

	fallback := false
	if when == model.EventPhaseAuto && req.Page == 1 && len(events) == 0 {
		filter.Phase = model.EventPhasePast
		events, total, err = s.repo.Search(ctx, filter)
		if err != nil {
			return model.EventPhasePage{}, err
		}
		fallback = true
	}

	for _, e := range events {
		tagUpcoming(e, !e.StartDate.Before(now))
	}

	return model.EventPhasePage{
		Page: model.Page[*model.Event]{
			Items:    events,
			Total:    total,
			Page:     req.Page,
			PageSize: req.PageSize,
		},
		IsFallbackPast: fallback,
	}, nil
}

func (s *EventQueryServiceImpl) Upcoming(ctx context.Context, limit int, fallbackToPast bool) []*model.Event {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	key := cache.UpcomingEventsKey(limit, fallbackToPast)

	events, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]*model.Event, error) {
		now := s.now().UTC()
		filter := model.EventFilter{Type: model.EventTypeAll, Phase: model.EventPhaseUpcoming, Now: now, Published: true, Limit: limit}

		events, _, err := s.repo.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 && fallbackToPast {
			filter.Phase = model.EventPhasePast
			if events, _, err = s.repo.Search(ctx, filter); err != nil {
				return nil, err
			}
		}
		for _, e := range events {
			tagUpcoming(e, !e.StartDate.Before(now))
		}
		return events, nil
	})
	if err != nil {
		s.log.Error("failed to fetch upcoming events", zap.String("operation", "Upcoming"), zap.Error(err))
		return []*model.Event{}
	}
	return events
}

// GetPublished 詳情頁只顯示 published 活動
func (s *EventQueryServiceImpl) GetPublished(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status != model.EventStatusPublished {
		return nil, apperrors.ErrEventNotFound
	}
	return tagUpcoming(event, !event.StartDate.Before(s.now().UTC())), nil
}

func tagUpcoming(e *model.Event, upcoming bool) *model.Event {
	e.IsUpcoming = &upcoming
	return e
}

// slicePage 記憶體內分頁，超出範圍回傳空 slice
func slicePage[T any](items []T, req model.PageRequest) []T {
	start := req.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
