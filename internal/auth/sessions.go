package auth

import (
	"context"

	"community-events/internal/model"
	"community-events/internal/repository"
	"community-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions 是 HTTP 層使用的無狀態版本：每個 request 以 token 取得 session，
// 身分與權限走同一份快照快取。
type Sessions struct {
	provider IdentityProvider
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cache    PermissionCache
	loader   identityLoader
	log      *zap.Logger
}

func NewSessions(provider IdentityProvider, users repository.UserRepository, profiles repository.ProfileRepository, cache PermissionCache) *Sessions {
	log := logger.WithComponent("sessions")
	return &Sessions{
		provider: provider,
		users:    users,
		profiles: profiles,
		cache:    cache,
		loader:   identityLoader{users: users, profiles: profiles, log: log},
		log:      log,
	}
}

func (s *Sessions) SignIn(ctx context.Context, email, password string) (*Session, Identity, error) {
	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, Identity{}, err
	}
	// 登入一律重新抓取
	identity := s.loader.fetch(ctx, session.UserID)
	s.save(ctx, identity)
	return session, identity, nil
}

func (s *Sessions) Authenticate(ctx context.Context, token string) (*Session, error) {
	return s.provider.Session(ctx, token)
}

// Lookup 先看快照，沒有或過期時重新抓取並寫回
func (s *Sessions) Lookup(ctx context.Context, userID uuid.UUID) Identity {
	if snap, ok := s.cache.Load(ctx, userID); ok {
		return buildIdentity(userID, snap.Data.UserData, snap.Data.Profile)
	}
	identity := s.loader.fetch(ctx, userID)
	s.save(ctx, identity)
	return identity
}

func (s *Sessions) SignOut(ctx context.Context, session *Session) error {
	s.cache.Clear(ctx, session.UserID)
	return s.provider.SignOut(ctx, session.Token)
}

func (s *Sessions) UpdateUserData(ctx context.Context, session *Session, params model.UpdateUserParams) (*model.User, error) {
	params.Role = nil // 角色只能由 admin 變更
	user, err := s.users.Update(ctx, session.UserID, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx, session)
	return user, nil
}

func (s *Sessions) UpdateProfile(ctx context.Context, session *Session, params model.UpdateProfileParams) (*model.Profile, error) {
	profile, err := s.profiles.Upsert(ctx, session.UserID, params)
	if err != nil {
		return nil, err
	}
	s.Invalidate(ctx, session)
	return profile, nil
}

// Invalidate 清掉快照並通知訂閱者（例如 admin 改了角色之後）
func (s *Sessions) Invalidate(ctx context.Context, session *Session) {
	s.cache.Clear(ctx, session.UserID)
	s.provider.NotifyUserUpdated(session)
}

// ForgetUser 只清快照；沒有 session 可通知時使用
func (s *Sessions) ForgetUser(ctx context.Context, userID uuid.UUID) {
	s.cache.Clear(ctx, userID)
}

func (s *Sessions) save(ctx context.Context, identity Identity) {
	if identity.User == nil {
		return
	}
	s.cache.Save(ctx, identity.Permissions.UserID, SnapshotData{UserData: identity.User, Profile: identity.Profile})
}
