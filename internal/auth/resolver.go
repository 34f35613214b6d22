package auth

import (
	"context"
	"sync"
	"time"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"go.uber.org/zap"
)

const backgroundRefreshTimeout = 10 * time.Second

type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Snapshot 是 Resolver 某一時間點的狀態（複本）
type Snapshot struct {
	State   State    `json:"state"`
	Loading bool     `json:"loading"`
	Session *Session `json:"session,omitempty"`
	Identity
}

// Resolver 維護單一 client session 的身分與權限；
// 首次解析時先套用新鮮的快取快照，再於背景重新抓取並覆蓋。
// 給長時間存在的 client session 使用（CLI、SDK）；HTTP 每個 request 走 Sessions。
type Resolver struct {
	provider IdentityProvider
	users    repository.UserRepository
	profiles repository.ProfileRepository
	cache    PermissionCache
	loader   identityLoader
	log      *zap.Logger

	mu          sync.RWMutex
	state       State
	session     *Session
	identity    Identity
	resolved    bool
	generation  uint64
	unsubscribe func()

	background sync.WaitGroup
}

func NewResolver(provider IdentityProvider, users repository.UserRepository, profiles repository.ProfileRepository, cache PermissionCache) *Resolver {
	log := logger.WithComponent("resolver")
	return &Resolver{
		provider: provider,
		users:    users,
		profiles: profiles,
		cache:    cache,
		loader:   identityLoader{users: users, profiles: profiles, log: log},
		log:      log,
		state:    StateUninitialized,
	}
}

// Start 讀取既有 session（token 可為空），之後訂閱 provider 的狀態變化
func (r *Resolver) Start(ctx context.Context, token string) {
	session, err := r.provider.Session(ctx, token)
	if err != nil {
		r.becomeAnonymous(ctx, nil)
	} else {
		r.resolve(ctx, session)
	}

	r.mu.Lock()
	if r.unsubscribe == nil {
		r.unsubscribe = r.provider.OnAuthStateChange(r.onAuthStateChange)
	}
	r.mu.Unlock()
}

// Close 取消訂閱並等待背景更新結束
func (r *Resolver) Close() {
	r.mu.Lock()
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
	r.background.Wait()
}

// Wait blocks until in-flight background refreshes finish.
func (r *Resolver) Wait() {
	r.background.Wait()
}

func (r *Resolver) State() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		State:    r.state,
		Loading:  r.state == StateLoading || r.state == StateUninitialized,
		Session:  r.session,
		Identity: r.identity,
	}
}

func (r *Resolver) SignIn(ctx context.Context, email, password string) (Snapshot, error) {
	session, err := r.provider.SignIn(ctx, email, password)
	if err != nil {
		return r.State(), err
	}
	r.resolve(ctx, session)
	return r.State(), nil
}

// SignOut 快照與狀態同步清除，provider 失敗也會轉為 anonymous
func (r *Resolver) SignOut(ctx context.Context) error {
	r.mu.RLock()
	session := r.session
	r.mu.RUnlock()

	var err error
	if session != nil {
		err = r.provider.SignOut(ctx, session.Token)
		if err != nil {
			r.log.Warn("Provider sign-out failed", zap.Error(err))
		}
	}
	r.becomeAnonymous(ctx, session)
	return err
}

func (r *Resolver) UpdateUserData(ctx context.Context, params model.UpdateUserParams) (*model.User, error) {
	session, err := r.currentSession()
	if err != nil {
		return nil, err
	}
	params.Role = nil // 角色只能由 admin 變更
	user, err := r.users.Update(ctx, session.UserID, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.session != nil && r.session.Token == session.Token {
		r.identity = buildIdentity(session.UserID, user, r.identity.Profile)
		r.cache.Save(ctx, session.UserID, SnapshotData{UserData: user, Profile: r.identity.Profile})
	}
	r.mu.Unlock()
	return user, nil
}

func (r *Resolver) UpdateProfile(ctx context.Context, params model.UpdateProfileParams) (*model.Profile, error) {
	session, err := r.currentSession()
	if err != nil {
		return nil, err
	}
	profile, err := r.profiles.Upsert(ctx, session.UserID, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.session != nil && r.session.Token == session.Token {
		r.identity.Profile = profile
		if r.identity.User != nil {
			r.cache.Save(ctx, session.UserID, SnapshotData{UserData: r.identity.User, Profile: profile})
		}
	}
	r.mu.Unlock()
	return profile, nil
}

func (r *Resolver) currentSession() (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state != StateAuthenticated || r.session == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return r.session, nil
}

func (r *Resolver) onAuthStateChange(event AuthEvent, session *Session) {
	if session == nil {
		return
	}
	r.mu.RLock()
	mine := r.session != nil && r.session.Token == session.Token
	r.mu.RUnlock()
	if !mine {
		return
	}

	ctx := context.Background()
	switch event {
	case EventSignedOut:
		r.becomeAnonymous(ctx, session)
	case EventUserUpdated:
		r.resolve(ctx, session)
	}
}

// resolve 進入 loading，然後套用快取或重新抓取
func (r *Resolver) resolve(ctx context.Context, session *Session) {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	first := !r.resolved
	r.resolved = true
	r.state = StateLoading
	r.session = session
	r.mu.Unlock()

	if first {
		if snap, ok := r.cache.Load(ctx, session.UserID); ok {
			r.apply(ctx, gen, buildIdentity(session.UserID, snap.Data.UserData, snap.Data.Profile), false)

			r.background.Add(1)
			go func() {
				defer r.background.Done()
				bctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), backgroundRefreshTimeout)
				defer cancel()
				r.apply(bctx, gen, r.loader.fetch(bctx, session.UserID), true)
			}()
			return
		}
	}

	r.apply(ctx, gen, r.loader.fetch(ctx, session.UserID), true)
}

// apply 只接受目前這一代的結果，被取代的舊結果直接丟棄。
// 快照寫入與 becomeAnonymous 的清除都在鎖內，登出後不會被舊結果寫回。
func (r *Resolver) apply(ctx context.Context, gen uint64, identity Identity, save bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.generation {
		return
	}
	r.identity = identity
	r.state = StateAuthenticated
	if save && identity.User != nil {
		r.cache.Save(ctx, identity.Permissions.UserID, SnapshotData{UserData: identity.User, Profile: identity.Profile})
	}
}

func (r *Resolver) becomeAnonymous(ctx context.Context, session *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session != nil {
		r.cache.Clear(ctx, session.UserID)
	}
	r.generation++
	r.resolved = true
	r.state = StateAnonymous
	r.session = nil
	r.identity = Identity{}
}
