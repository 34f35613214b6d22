package service

import (
	"context"
	"strings"
	"sync"

	"community-events/internal/cache"
	"community-events/internal/model"
	"community-events/internal/repository"
	"community-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultLatestResources = 3

type ResourcePageQuery struct {
	Term     string
	Type     string // all 或 ResourceType
	Page     int
	PageSize int
}

type ResourceQueryService interface {
	ListPage(ctx context.Context, q ResourcePageQuery) model.Page[*model.Resource]
	// TypeCounts 每個類型各自計數，並加上 all
	TypeCounts(ctx context.Context, term string) model.ResourceTypeCounts
	Latest(ctx context.Context, limit int) []*model.Resource
	Get(ctx context.Context, id uuid.UUID) (*model.Resource, error)
}

type ResourceQueryServiceImpl struct {
	repo  repository.ResourceRepository
	cache cache.QueryCache
	log   *zap.Logger
}

func NewResourceQueryService(repo repository.ResourceRepository, queryCache cache.QueryCache) ResourceQueryService {
	return &ResourceQueryServiceImpl{
		repo:  repo,
		cache: queryCache,
		log:   logger.WithComponent("resource_query"),
	}
}

func (s *ResourceQueryServiceImpl) ListPage(ctx context.Context, q ResourcePageQuery) model.Page[*model.Resource] {
	req := model.PageRequest{Page: q.Page, PageSize: q.PageSize}.Normalize()
	term := strings.TrimSpace(q.Term)

	filter := model.ResourceFilter{Term: term, Limit: req.PageSize, Offset: req.Offset()}
	typeKey := model.ResourceTypeAll
	if rt, ok := model.ParseResourceType(q.Type); ok {
		filter.Type = &rt
		typeKey = string(rt)
	}

	key := cache.ResourcesPageKey(term, typeKey, req.Page, req.PageSize)
	page, err := cache.Remember(ctx, s.cache, key, func(ctx context.Context) (model.Page[*model.Resource], error) {
		items, total, err := s.repo.Search(ctx, filter)
		if err != nil {
			return model.Page[*model.Resource]{}, err
		}
		return model.Page[*model.Resource]{Items: items, Total: total, Page: req.Page, PageSize: req.PageSize}, nil
	})
	if err != nil {
		s.log.Error("failed to fetch resources page", zap.String("operation", "ListPage"), zap.Error(err))
		return model.EmptyPage[*model.Resource](req)
	}
	return page
}

func (s *ResourceQueryServiceImpl) TypeCounts(ctx context.Context, term string) model.ResourceTypeCounts {
	term = strings.TrimSpace(term)

	// 有 bucket 失敗時仍回傳（該 bucket 為 0），但不寫入 cache
	counts, err := cache.Remember(ctx, s.cache, cache.ResourceCountsKey(term), func(ctx context.Context) (model.ResourceTypeCounts, error) {
		return s.loadCounts(ctx, term)
	})
	if err != nil {
		s.log.Warn("resource counts incomplete", zap.String("operation", "TypeCounts"), zap.Error(err))
	}
	return counts
}

// loadCounts 各 bucket 平行查詢；失敗的 bucket 記 log 並回報 0
func (s *ResourceQueryServiceImpl) loadCounts(ctx context.Context, term string) (model.ResourceTypeCounts, error) {
	counts := make(model.ResourceTypeCounts, len(model.ResourceTypes)+1)
	var mu sync.Mutex
	var firstErr error

	var g errgroup.Group
	count := func(bucket string, filter model.ResourceFilter) {
		g.Go(func() error {
			n, err := s.repo.Count(ctx, filter)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.log.Error("failed to count resources",
					zap.String("operation", "TypeCounts"),
					zap.String("bucket", bucket),
					zap.Error(err),
				)
				if firstErr == nil {
					firstErr = err
				}
				n = 0
			}
			counts[bucket] = n
			return nil
		})
	}

	for _, rt := range model.ResourceTypes {
		rt := rt
		count(string(rt), model.ResourceFilter{Term: term, Type: &rt})
	}
	count(model.ResourceTypeAll, model.ResourceFilter{Term: term})
	_ = g.Wait()

	return counts, firstErr
}

func (s *ResourceQueryServiceImpl) Latest(ctx context.Context, limit int) []*model.Resource {
	if limit <= 0 {
		limit = DefaultLatestResources
	}
	items, err := cache.Remember(ctx, s.cache, cache.LatestResourcesKey(limit), func(ctx context.Context) ([]*model.Resource, error) {
		items, _, err := s.repo.Search(ctx, model.ResourceFilter{Limit: limit})
		return items, err
	})
	if err != nil {
		s.log.Error("failed to fetch latest resources", zap.String("operation", "Latest"), zap.Error(err))
		return []*model.Resource{}
	}
	return items
}

func (s *ResourceQueryServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	return s.repo.FindByID(ctx, id)
}
