package handler

import (
	"net/http"
	"testing"
	"time"

	"community-events/internal/mocks/services"
	"community-events/internal/model"
	apperrors "community-events/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dashboardMocks struct {
	events        *services.EventAdminServiceMock
	registrations *services.RegistrationServiceMock
	resources     *services.ResourceAdminServiceMock
	stats         *services.DashboardServiceMock
}

func setupDashboardTestRouter() (*fakeSessions, dashboardMocks, *gin.Engine) {
	sessions := newFakeSessions()
	m := dashboardMocks{
		events:        services.NewEventAdminServiceMock(),
		registrations: services.NewRegistrationServiceMock(),
		resources:     services.NewResourceAdminServiceMock(),
		stats:         services.NewDashboardServiceMock(),
	}
	router := setupTestRouter(sessions, NewDashboardHandler(m.events, m.registrations, m.resources, m.stats))
	return sessions, m, router
}

func TestDashboardHandler_RoleGate(t *testing.T) {
	sessions, m, router := setupDashboardTestRouter()
	token, _ := sessions.login(model.RoleParticipant)

	w := serve(router, createJSONHTTPRequest("GET", "/api/v1/dashboard/overview", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(router, withToken(createJSONHTTPRequest("GET", "/api/v1/dashboard/overview", nil), token))
	assert.Equal(t, http.StatusForbidden, w.Code)
	m.stats.AssertNotCalled(t, "Overview", mock.Anything, mock.Anything)
}

func TestDashboardHandler_Events(t *testing.T) {
	start := time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)
	input := model.EventInput{
		Title:     "Go meetup",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
		IsVirtual: true,
	}

	t.Run("Create", func(t *testing.T) {
		sessions, m, router := setupDashboardTestRouter()
		token, identity := sessions.login(model.RoleOrganizer)
		m.events.On("Create", mock.Anything, identity.Permissions, input).
			Return(&model.Event{ID: uuid.New(), Title: "Go meetup", Status: model.EventStatusDraft}, nil).Once()

		w := serve(router, withToken(createJSONHTTPRequest("POST", "/api/v1/dashboard/events", input), token))

		require.Equal(t, http.StatusCreated, w.Code)
		event := decodeBody[model.Event](t, w)
		assert.Equal(t, model.EventStatusDraft, event.Status)
		m.events.AssertExpectations(t)
	})

	t.Run("Failed - Validation", func(t *testing.T) {
		sessions, m, router := setupDashboardTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)
		m.events.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewValidationError("end date must be after start date")).Once()

		w := serve(router, withToken(createJSONHTTPRequest("POST", "/api/v1/dashboard/events", input), token))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "end date must be after start date", errorMessage(t, w))
	})

	t.Run("Failed - NotOwner", func(t *testing.T) {
		sessions, m, router := setupDashboardTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)
		id := uuid.New()
		m.events.On("Update", mock.Anything, mock.Anything, id, input).Return(nil, apperrors.ErrForbidden).Once()

		w := serve(router, withToken(createJSONHTTPRequest("PUT", "/api/v1/dashboard/events/"+id.String(), input), token))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		sessions, m, router := setupDashboardTestRouter()
		token, _ := sessions.login(model.RoleAdmin)
		id := uuid.New()
		m.events.On("UpdateStatus", mock.Anything, mock.Anything, id, model.EventStatusPublished).Return(nil).Once()

		w := serve(router, withToken(createJSONHTTPRequest("PUT", "/api/v1/dashboard/events/"+id.String()+"/status",
			map[string]string{"status": "published"}), token))

		assert.Equal(t, http.StatusNoContent, w.Code)
		m.events.AssertExpectations(t)
	})

	t.Run("Delete", func(t *testing.T) {
		sessions, m, router := setupDashboardTestRouter()
		token, _ := sessions.login(model.RoleOrganizer)
		id := uuid.New()
		m.events.On("Delete", mock.Anything, mock.Anything, id).Return(apperrors.ErrEventNotFound).Once()

		w := serve(router, withToken(createJSONHTTPRequest("DELETE", "/api/v1/dashboard/events/"+id.String(), nil), token))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDashboardHandler_Participants(t *testing.T) {
	sessions, m, router := setupDashboardTestRouter()
	token, _ := sessions.login(model.RoleOrganizer)
	id := uuid.New()
	m.registrations.On("UpdateStatus", mock.Anything, mock.Anything, id, model.RegistrationStatusAttended).Return(nil).Once()
	m.registrations.On("StatusCounts", mock.Anything, mock.Anything).
		Return(model.RegistrationStatusCounts{Registered: 4, Attended: 1}, nil).Once()

	w := serve(router, withToken(createJSONHTTPRequest("PUT", "/api/v1/dashboard/participants/"+id.String()+"/status",
		map[string]string{"status": "attended"}), token))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(router, withToken(createJSONHTTPRequest("GET", "/api/v1/dashboard/participants/counts", nil), token))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"registered":4,"attended":1,"cancelled":0}`, w.Body.String())

	w = serve(router, withToken(createJSONHTTPRequest("PUT", "/api/v1/dashboard/participants/"+id.String()+"/status",
		map[string]string{}), token))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.registrations.AssertExpectations(t)
}

func TestDashboardHandler_Resources(t *testing.T) {
	sessions, m, router := setupDashboardTestRouter()
	token, _ := sessions.login(model.RoleOrganizer)
	input := model.ResourceInput{Title: "Slides", ResourceType: model.ResourceTypeDocument}
	m.resources.On("Create", mock.Anything, mock.Anything, input).
		Return(&model.Resource{ID: uuid.New(), Title: "Slides", ResourceType: model.ResourceTypeDocument}, nil).Once()
	id := uuid.New()
	m.resources.On("Delete", mock.Anything, mock.Anything, id).Return(nil).Once()

	w := serve(router, withToken(createJSONHTTPRequest("POST", "/api/v1/dashboard/resources", input), token))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(router, withToken(createJSONHTTPRequest("DELETE", "/api/v1/dashboard/resources/"+id.String(), nil), token))
	assert.Equal(t, http.StatusNoContent, w.Code)
	m.resources.AssertExpectations(t)
}

func TestDashboardHandler_Stats(t *testing.T) {
	sessions, m, router := setupDashboardTestRouter()
	token, _ := sessions.login(model.RoleOrganizer)
	m.stats.On("Overview", mock.Anything, mock.Anything).Return(&model.DashboardOverview{
		TotalEvents:  3,
		RecentEvents: []*model.Event{},
	}, nil).Once()
	m.stats.On("Analytics", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInternalServerError).Once()

	w := serve(router, withToken(createJSONHTTPRequest("GET", "/api/v1/dashboard/overview", nil), token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decodeBody[model.DashboardOverview](t, w).TotalEvents)

	w = serve(router, withToken(createJSONHTTPRequest("GET", "/api/v1/dashboard/analytics", nil), token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", errorMessage(t, w))
}
