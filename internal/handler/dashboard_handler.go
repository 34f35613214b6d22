package handler

import (
	"net/http"

	"community-events/internal/model"
	"community-events/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 後台（organizer 以上）
type DashboardHandler struct {
	events        service.EventAdminService
	registrations service.RegistrationService
	resources     service.ResourceAdminService
	stats         service.DashboardService
}

func NewDashboardHandler(
	events service.EventAdminService,
	registrations service.RegistrationService,
	resources service.ResourceAdminService,
	stats service.DashboardService,
) *DashboardHandler {
	return &DashboardHandler{
		events:        events,
		registrations: registrations,
		resources:     resources,
		stats:         stats,
	}
}

func (h *DashboardHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/dashboard", RequireOrganizer())
	{
		router.GET("events", h.ListEvents)
		router.POST("events", h.CreateEvent)
		router.PUT("events/:id", h.UpdateEvent)
		router.DELETE("events/:id", h.DeleteEvent)
		router.PUT("events/:id/status", h.UpdateEventStatus)

		router.GET("participants", h.ListParticipants)
		router.GET("participants/counts", h.ParticipantCounts)
		router.PUT("participants/:id/status", h.UpdateParticipantStatus)

		router.GET("resources", h.ListResources)
		router.POST("resources", h.CreateResource)
		router.PUT("resources/:id", h.UpdateResource)
		router.DELETE("resources/:id", h.DeleteResource)

		router.GET("overview", h.Overview)
		router.GET("analytics", h.Analytics)
	}
}

type eventStatusRequest struct {
	Status model.EventStatus `json:"status" binding:"required"`
}

type registrationStatusRequest struct {
	Status model.RegistrationStatus `json:"status" binding:"required"`
}

func (h *DashboardHandler) ListEvents(c *gin.Context) {
	events, err := h.events.ListAll(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": events})
}

func (h *DashboardHandler) CreateEvent(c *gin.Context) {
	var input model.EventInput
	if err := BindJson(c, &input); err != nil {
		return
	}
	event, err := h.events.Create(c, currentPermissions(c), input)
	if err != nil {
		handleError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *DashboardHandler) UpdateEvent(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var input model.EventInput
	if err := BindJson(c, &input); err != nil {
		return
	}
	event, err := h.events.Update(c, currentPermissions(c), id, input)
	if err != nil {
		handleError(c, err, "UpdateEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *DashboardHandler) DeleteEvent(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.events.Delete(c, currentPermissions(c), id); err != nil {
		handleError(c, err, "DeleteEvent")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) UpdateEventStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req eventStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.events.UpdateStatus(c, currentPermissions(c), id, req.Status); err != nil {
		handleError(c, err, "UpdateEventStatus")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) ListParticipants(c *gin.Context) {
	registrations, err := h.registrations.ListAll(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "ListParticipants")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": registrations})
}

func (h *DashboardHandler) ParticipantCounts(c *gin.Context) {
	counts, err := h.registrations.StatusCounts(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "ParticipantCounts")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *DashboardHandler) UpdateParticipantStatus(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req registrationStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.registrations.UpdateStatus(c, currentPermissions(c), id, req.Status); err != nil {
		handleError(c, err, "UpdateParticipantStatus")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) ListResources(c *gin.Context) {
	resources, err := h.resources.List(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "ListResources")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resources})
}

func (h *DashboardHandler) CreateResource(c *gin.Context) {
	var input model.ResourceInput
	if err := BindJson(c, &input); err != nil {
		return
	}
	resource, err := h.resources.Create(c, currentPermissions(c), input)
	if err != nil {
		handleError(c, err, "CreateResource")
		return
	}
	c.JSON(http.StatusCreated, resource)
}

func (h *DashboardHandler) UpdateResource(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	var input model.ResourceInput
	if err := BindJson(c, &input); err != nil {
		return
	}
	resource, err := h.resources.Update(c, currentPermissions(c), id, input)
	if err != nil {
		handleError(c, err, "UpdateResource")
		return
	}
	c.JSON(http.StatusOK, resource)
}

func (h *DashboardHandler) DeleteResource(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}
	if err := h.resources.Delete(c, currentPermissions(c), id); err != nil {
		handleError(c, err, "DeleteResource")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.stats.Overview(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "Overview")
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) Analytics(c *gin.Context) {
	analytics, err := h.stats.Analytics(c, currentPermissions(c))
	if err != nil {
		handleError(c, err, "Analytics")
		return
	}
	c.JSON(http.StatusOK, analytics)
}
