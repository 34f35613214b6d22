package handler

import (
	"net/http"

	"community-events/internal/model"
	"community-events/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EventHandler struct {
	queries       service.EventQueryService
	registrations service.RegistrationService
}

func NewEventHandler(queries service.EventQueryService, registrations service.RegistrationService) *EventHandler {
	return &EventHandler{queries: queries, registrations: registrations}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/phase", h.ListPhase)
		router.GET("events/upcoming", h.Upcoming)
		router.GET("events/:id", h.Get)
		router.GET("events/:id/availability", h.Availability)
		router.POST("events/:id/registrations", RequireAuth(), h.Register)
	}
}

type phaseQuery struct {
	listQuery
	When string `form:"when"`
}

type upcomingQuery struct {
	Limit    int  `form:"limit"`
	Fallback bool `form:"fallback"`
}

// RegisterRequest 報名表單
type RegisterRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Company  *string `json:"company"`
	Position *string `json:"position"`
}

func toEventPageQuery(q listQuery) service.EventPageQuery {
	return service.EventPageQuery{
		Term:     q.Q,
		Type:     model.ParseEventType(q.Type),
		Page:     q.page(),
		PageSize: q.pageSize(),
	}
}

func (h *EventHandler) List(c *gin.Context) {
	var q listQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	c.JSON(http.StatusOK, h.queries.ListPage(c, toEventPageQuery(q)))
}

func (h *EventHandler) ListPhase(c *gin.Context) {
	var q phaseQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	c.JSON(http.StatusOK, h.queries.ListPhasePage(c, toEventPageQuery(q.listQuery), model.ParseEventPhase(q.When)))
}

func (h *EventHandler) Upcoming(c *gin.Context) {
	var q upcomingQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	if q.Limit <= 0 {
		q.Limit = service.DefaultUpcomingLimit
	}
	c.JSON(http.StatusOK, gin.H{"items": h.queries.Upcoming(c, q.Limit, q.Fallback)})
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	event, err := h.queries.GetPublished(c, id)
	if err != nil {
		handleError(c, err, "GetEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Availability(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var userID *uuid.UUID
	if session, ok := currentSession(c); ok {
		userID = &session.UserID
	}
	availability, err := h.registrations.Availability(c, id, userID)
	if err != nil {
		handleError(c, err, "Availability")
		return
	}
	c.JSON(http.StatusOK, availability)
}

func (h *EventHandler) Register(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req RegisterRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	session, _ := currentSession(c)

	registration, err := h.registrations.Register(c, model.RegisterRequest{
		EventID:  id,
		UserID:   &session.UserID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Company:  req.Company,
		Position: req.Position,
	})
	if err != nil {
		handleError(c, err, "Register")
		return
	}
	c.JSON(http.StatusCreated, registration)
}
