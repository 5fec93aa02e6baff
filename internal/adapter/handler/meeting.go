package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/errors"
	meetingdto "github.com/taskscribe-dev/taskscribe/internal/adapter/dto/meeting"
	httpmw "github.com/taskscribe-dev/taskscribe/internal/infrastructure/http/middleware"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/meeting"
)

// Meeting handles meeting HTTP requests
type Meeting struct {
	svc    meeting.Service
	logger *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(svc meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		svc:    svc,
		logger: logger,
	}
}

// Create submits a meeting transcript and runs the extraction pipeline
// @Summary      Create meeting
// @Description  Persists the meeting, extracts tasks from the transcript, assigns them to registered users, and returns the aggregate
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingdto.CreateMeetingRequest  true  "Meeting payload"
// @Success      201      {object}  meetingdto.CreateMeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Missing required fields"
// @Failure      403      {object}  map[string]interface{}  "Caller is not a manager"
// @Failure      500      {object}  map[string]interface{}  "Pipeline infrastructure failure"
// @Router       /meetings [post]
func (h *Meeting) Create(c echo.Context) error {
	manager, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrMissingFields(err.Error()))
	}

	result, err := h.svc.CreateMeeting(c.Request().Context(), manager, meeting.CreateInput{
		Title:      req.Title,
		Transcript: req.Transcript,
		Date:       req.Date,
		Tags:       req.Tags,
	})
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMeetingCreationFailed(err))
	}

	return HandleJSON(h.logger, c, http.StatusCreated, &meetingdto.CreateMeetingResponse{
		Meeting:             result.Meeting,
		TasksCreated:        result.TasksCreated,
		TotalTasksAttempted: result.TotalTasksAttempted,
	})
}

// List returns the meetings visible to the caller
// @Summary      List meetings
// @Description  Managers see meetings they created; employees see meetings that assigned them a task
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  meetingdto.ListMeetingsResponse
// @Failure      401        {object}  map[string]interface{}  "Not authenticated"
// @Router       /meetings [get]
func (h *Meeting) List(c echo.Context) error {
	user, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req meetingdto.ListMeetingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	meetings, err := h.svc.ListForUser(c.Request().Context(), user, req.PageSize, (req.Page-1)*req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusOK, &meetingdto.ListMeetingsResponse{
		Meetings: meetings,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
}
