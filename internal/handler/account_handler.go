package handler

import (
	"context"
	"net/http"

	"community-events/internal/auth"
	"community-events/internal/model"
	"community-events/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountSessions 登入、登出與自助更新
type AccountSessions interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, auth.Identity, error)
	SignOut(ctx context.Context, session *auth.Session) error
	UpdateUserData(ctx context.Context, session *auth.Session, params model.UpdateUserParams) (*model.User, error)
	UpdateProfile(ctx context.Context, session *auth.Session, params model.UpdateProfileParams) (*model.Profile, error)
}

type AccountHandler struct {
	sessions      AccountSessions
	registrations service.RegistrationService
	events        service.EventAdminService
}

func NewAccountHandler(sessions AccountSessions, registrations service.RegistrationService, events service.EventAdminService) *AccountHandler {
	return &AccountHandler{sessions: sessions, registrations: registrations, events: events}
}

func (h *AccountHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("auth/sign-in", h.SignIn)
		router.POST("auth/sign-out", RequireAuth(), h.SignOut)
		router.GET("auth/me", RequireAuth(), h.Me)
		router.PUT("auth/me", RequireAuth(), h.UpdateMe)
		router.PUT("auth/me/profile", RequireAuth(), h.UpdateProfile)
		router.GET("me/registrations", RequireAuth(), h.MyRegistrations)
		router.GET("me/events", RequireOrganizer(), h.MyEvents)
	}
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInResponse struct {
	Session *auth.Session `json:"session"`
	auth.Identity
}

func (h *AccountHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	session, identity, err := h.sessions.SignIn(c, req.Email, req.Password)
	if err != nil {
		handleError(c, err, "SignIn")
		return
	}
	c.JSON(http.StatusOK, SignInResponse{Session: session, Identity: identity})
}

func (h *AccountHandler) SignOut(c *gin.Context) {
	session, _ := currentSession(c)
	if err := h.sessions.SignOut(c, session); err != nil {
		handleError(c, err, "SignOut")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AccountHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentIdentity(c))
}

func (h *AccountHandler) UpdateMe(c *gin.Context) {
	var params model.UpdateUserParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	session, _ := currentSession(c)
	user, err := h.sessions.UpdateUserData(c, session, params)
	if err != nil {
		handleError(c, err, "UpdateMe")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	var params model.UpdateProfileParams
	if err := BindJson(c, &params); err != nil {
		return
	}
	session, _ := currentSession(c)
	profile, err := h.sessions.UpdateProfile(c, session, params)
	if err != nil {
		handleError(c, err, "UpdateProfile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AccountHandler) MyRegistrations(c *gin.Context) {
	session, _ := currentSession(c)
	registrations, err := h.registrations.ListByUser(c, session.UserID)
	if err != nil {
		handleError(c, err, "MyRegistrations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": registrations})
}

func (h *AccountHandler) MyEvents(c *gin.Context) {
	events, err := h.events.ListByOrganizer(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "MyEvents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": events})
}
