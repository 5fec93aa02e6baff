package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/meeting"
	pkgvalidator "github.com/taskscribe-dev/taskscribe/pkg/validator"
)

type mockMeetingService struct {
	mock.Mock
}

func (m *mockMeetingService) CreateMeeting(ctx context.Context, manager *entities.User, in meeting.CreateInput) (*meeting.CreateResult, error) {
	args := m.Called(ctx, manager, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*meeting.CreateResult), args.Error(1)
}

func (m *mockMeetingService) ListForUser(ctx context.Context, user *entities.User, limit, offset int) ([]*entities.Meeting, error) {
	args := m.Called(ctx, user, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Meeting), args.Error(1)
}

func newMeetingContext(t *testing.T, body string, manager *entities.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = pkgvalidator.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	if manager != nil {
		c.Set("auth.user", manager)
	}
	return c, rec
}

func TestMeetingCreate_ManagerComesFromToken(t *testing.T) {
	manager := &entities.User{ID: uuid.New(), Email: "boss@example.com", Role: entities.RoleManager}
	created := entities.NewMeeting(manager.ID, "Planning", "transcript", time.Now(), nil)

	svc := new(mockMeetingService)
	svc.On("CreateMeeting", mock.Anything, manager, mock.MatchedBy(func(in meeting.CreateInput) bool {
		return in.Title == "Planning" && in.Transcript == "transcript"
	})).Return(&meeting.CreateResult{Meeting: created, TasksCreated: 2, TotalTasksAttempted: 3}, nil)

	h := NewMeeting(svc, zap.NewNop())

	// A manager_id in the body must be ignored; identity is the token's.
	body := `{"title":"Planning","transcript":"transcript","date":"2025-09-15T10:00:00Z","manager_id":"` + uuid.NewString() + `"}`
	c, rec := newMeetingContext(t, body, manager)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		TasksCreated        int `json:"tasks_created"`
		TotalTasksAttempted int `json:"total_tasks_attempted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.TasksCreated)
	require.Equal(t, 3, resp.TotalTasksAttempted)

	svc.AssertExpectations(t)
}

func TestMeetingCreate_MissingFields(t *testing.T) {
	manager := &entities.User{ID: uuid.New(), Role: entities.RoleManager}

	h := NewMeeting(new(mockMeetingService), zap.NewNop())

	c, rec := newMeetingContext(t, `{"title":"No transcript"}`, manager)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeetingCreate_Unauthenticated(t *testing.T) {
	h := NewMeeting(new(mockMeetingService), zap.NewNop())

	c, rec := newMeetingContext(t, `{"title":"x","transcript":"y","date":"2025-09-15T10:00:00Z"}`, nil)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
