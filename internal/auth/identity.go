package auth

import (
	"context"
	"errors"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Identity 是解析後的使用者資料與權限
type Identity struct {
	User        *model.User       `json:"userData"`
	Profile     *model.Profile    `json:"profile"`
	Permissions model.Permissions `json:"permissions"`
}

type identityLoader struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	log      *zap.Logger
}

// fetch 平行讀取 user 與 profile；user 失敗時 userData 為 nil，只有 participant 權限
func (l identityLoader) fetch(ctx context.Context, userID uuid.UUID) Identity {
	var user *model.User
	var profile *model.Profile

	var g errgroup.Group
	g.Go(func() error {
		u, err := l.users.FindByID(ctx, userID)
		if err != nil {
			l.log.Error("Failed to fetch user data", zap.String("user_id", userID.String()), zap.Error(err))
			return nil
		}
		user = u
		return nil
	})
	g.Go(func() error {
		p, err := l.profiles.FindByUserID(ctx, userID)
		if err != nil {
			// 沒有 profile 不算錯誤
			if !errors.Is(err, apperrors.ErrProfileNotFound) {
				l.log.Warn("Failed to fetch profile", zap.String("user_id", userID.String()), zap.Error(err))
			}
			return nil
		}
		profile = p
		return nil
	})
	_ = g.Wait()

	return buildIdentity(userID, user, profile)
}

func buildIdentity(userID uuid.UUID, user *model.User, profile *model.Profile) Identity {
	role := model.RoleParticipant
	if user != nil {
		role = user.Role
	}
	return Identity{
		User:        user,
		Profile:     profile,
		Permissions: model.PermissionsFor(userID, role),
	}
}
