package service

import (
	"context"
	"strings"

	"community-events/internal/model"
	"community-events/internal/repository"
)

type CommunityService interface {
	// ListPublic 公開的個人檔案，term 比對姓名、公司、職稱、簡介、技能、興趣
	ListPublic(ctx context.Context, term string) ([]*model.Profile, error)
}

type CommunityServiceImpl struct {
	profileRepo repository.ProfileRepository
}

func NewCommunityService(profileRepo repository.ProfileRepository) CommunityService {
	return &CommunityServiceImpl{profileRepo: profileRepo}
}

func (s *CommunityServiceImpl) ListPublic(ctx context.Context, term string) ([]*model.Profile, error) {
	profiles, err := s.profileRepo.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return profiles, nil
	}

	matched := make([]*model.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Matches(term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
