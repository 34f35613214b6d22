package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"community-events/internal/model"
	"community-events/internal/repository"
	apperrors "community-events/pkg/app_errors"
	"community-events/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Session struct {
	Token     string     `json:"token"`
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

type AuthEvent string

const (
	EventSignedIn    AuthEvent = "SIGNED_IN"
	EventSignedOut   AuthEvent = "SIGNED_OUT"
	EventUserUpdated AuthEvent = "USER_UPDATED"
)

type AuthStateListener func(event AuthEvent, session *Session)

// IdentityProvider 身分驗證邊界：登入、取得 session、登出、狀態訂閱
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	Session(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	// NotifyUserUpdated tells subscribers that the profile data behind session changed.
	NotifyUserUpdated(session *Session)
	OnAuthStateChange(listener AuthStateListener) (unsubscribe func())
}

// LocalProvider 以 users 表 + bcrypt 驗證，簽發 JWT
type LocalProvider struct {
	users  repository.UserRepository
	tokens *TokenIssuer
	log    *zap.Logger

	mu        sync.RWMutex
	revoked   map[string]time.Time // token -> 原本的到期時間
	listeners map[int]AuthStateListener
	nextID    int
}

func NewLocalProvider(users repository.UserRepository, tokens *TokenIssuer) *LocalProvider {
	return &LocalProvider{
		users:     users,
		tokens:    tokens,
		log:       logger.WithComponent("auth"),
		revoked:   make(map[string]time.Time),
		listeners: make(map[int]AuthStateListener),
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := p.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	session := &Session{Token: token, UserID: user.ID, Email: user.Email, Role: user.Role, ExpiresAt: expiresAt}

	p.log.Info("User signed in", zap.String("user_id", user.ID.String()))
	p.emit(EventSignedIn, session)
	return session, nil
}

func (p *LocalProvider) Session(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	session, err := p.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	_, revoked := p.revoked[token]
	p.mu.RUnlock()
	if revoked {
		return nil, apperrors.ErrUnauthenticated
	}
	return session, nil
}

// SignOut 撤銷 token；已失效的 token 視為已登出
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	session, err := p.Session(ctx, token)
	if err != nil {
		return nil
	}

	now := time.Now()
	p.mu.Lock()
	for t, exp := range p.revoked {
		if exp.Before(now) {
			delete(p.revoked, t)
		}
	}
	p.revoked[token] = session.ExpiresAt
	p.mu.Unlock()

	p.emit(EventSignedOut, session)
	return nil
}

func (p *LocalProvider) NotifyUserUpdated(session *Session) {
	p.emit(EventUserUpdated, session)
}

func (p *LocalProvider) OnAuthStateChange(listener AuthStateListener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// emit 不持鎖呼叫 listener，listener 內可以再呼叫 provider
func (p *LocalProvider) emit(event AuthEvent, session *Session) {
	p.mu.RLock()
	listeners := make([]AuthStateListener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.RUnlock()

	for _, l := range listeners {
		l(event, session)
	}
}
