package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"community-events/internal/auth"
	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	InvalidJSON = `{"invalid": json}`
)

// create JSON request body
func createJSONRequest(data interface{}) *bytes.Buffer {
	if s, ok := data.(string); ok {
		return bytes.NewBufferString(s)
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return bytes.NewBuffer([]byte(""))
	}
	return bytes.NewBuffer(jsonData)
}

// create HTTP request with JSON body
func createJSONHTTPRequest(method, url string, data interface{}) *http.Request {
	var body *bytes.Buffer
	if data == nil {
		body = bytes.NewBuffer(nil)
	} else {
		body = createJSONRequest(data)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func httpGet(router http.Handler, url string) *httptest.ResponseRecorder {
	return serve(router, createJSONHTTPRequest("GET", url, nil))
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, w)["error"]
}

type fakeLogin struct {
	session  *auth.Session
	identity auth.Identity
}

// fakeSessions 測試用的 session 來源，token 直接對應到身分
type fakeSessions struct {
	mu        sync.Mutex
	byToken   map[string]fakeLogin
	byEmail   map[string]string
	forgotten []uuid.UUID
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{
		byToken: make(map[string]fakeLogin),
		byEmail: make(map[string]string),
	}
}

func (f *fakeSessions) login(role model.Role) (string, auth.Identity) {
	user := &model.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Role: role}
	token := "token-" + user.ID.String()
	identity := auth.Identity{User: user, Permissions: model.PermissionsFor(user.ID, role)}

	f.mu.Lock()
	f.byToken[token] = fakeLogin{
		session:  &auth.Session{Token: token, UserID: user.ID, Email: user.Email, Role: role, ExpiresAt: time.Now().Add(time.Hour)},
		identity: identity,
	}
	f.byEmail[user.Email] = token
	f.mu.Unlock()
	return token, identity
}

func (f *fakeSessions) Authenticate(ctx context.Context, token string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.byToken[token]
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return l.session, nil
}

func (f *fakeSessions) Lookup(ctx context.Context, userID uuid.UUID) auth.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.byToken {
		if l.session.UserID == userID {
			return l.identity
		}
	}
	return auth.Identity{Permissions: model.PermissionsFor(userID, model.RoleParticipant)}
}

func (f *fakeSessions) SignIn(ctx context.Context, email, password string) (*auth.Session, auth.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token, ok := f.byEmail[email]
	if !ok || password != "correct-horse" {
		return nil, auth.Identity{}, apperrors.ErrInvalidCredentials
	}
	l := f.byToken[token]
	return l.session, l.identity, nil
}

func (f *fakeSessions) SignOut(ctx context.Context, session *auth.Session) error {
	f.mu.Lock()
	delete(f.byToken, session.Token)
	f.mu.Unlock()
	return nil
}

func (f *fakeSessions) UpdateUserData(ctx context.Context, session *auth.Session, params model.UpdateUserParams) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := *f.byToken[session.Token].identity.User
	if params.FullName != nil {
		user.FullName = params.FullName
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	return &user, nil
}

func (f *fakeSessions) UpdateProfile(ctx context.Context, session *auth.Session, params model.UpdateProfileParams) (*model.Profile, error) {
	profile := &model.Profile{ID: uuid.New(), UserID: session.UserID, Company: params.Company}
	if params.IsPublic != nil {
		profile.IsPublic = *params.IsPublic
	}
	return profile, nil
}

func (f *fakeSessions) ForgetUser(ctx context.Context, userID uuid.UUID) {
	f.mu.Lock()
	f.forgotten = append(f.forgotten, userID)
	f.mu.Unlock()
}

type routeRegistrar interface {
	RegisterRoutes(r *gin.Engine)
}

func setupTestRouter(sessions *fakeSessions, handlers ...routeRegistrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Authenticate(sessions))
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	return router
}
