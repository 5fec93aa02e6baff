package meeting

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/domain/repositories"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/extraction"
)

// Mailer delivers notification emails. Implemented by the Resend client.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// ResolverCache caches email-to-user-ID resolution between requests.
// Implementations must treat every failure as a miss.
type ResolverCache interface {
	GetUserID(ctx context.Context, email string) (uuid.UUID, bool)
	SetUserID(ctx context.Context, email string, id uuid.UUID)
}

// TranscriptArchiver stores raw transcript snapshots in object storage.
type TranscriptArchiver interface {
	ArchiveTranscript(ctx context.Context, meetingID uuid.UUID, transcript string) error
}

// CreateInput carries a validated meeting submission. The manager comes from
// the authenticated request context, never from the request body.
type CreateInput struct {
	Title      string
	Transcript string
	Date       time.Time
	Tags       []string
}

// CreateResult is the aggregate returned to the caller. TasksCreated may be
// lower than TotalTasksAttempted when candidates were dropped or failed.
type CreateResult struct {
	Meeting             *entities.Meeting
	TasksCreated        int
	TotalTasksAttempted int
}

// Service orchestrates the transcript-to-task pipeline and meeting queries
type Service interface {
	CreateMeeting(ctx context.Context, manager *entities.User, in CreateInput) (*CreateResult, error)
	ListForUser(ctx context.Context, user *entities.User, limit, offset int) ([]*entities.Meeting, error)
}

type service struct {
	meetingRepo repositories.MeetingRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
	extractor   extraction.Service
	mailer      Mailer
	cache       ResolverCache      // optional
	archiver    TranscriptArchiver // optional
	logger      *zap.Logger

	// Bounds concurrent fan-out units per request.
	fanoutSemaphore chan struct{}
}

// NewService constructs the meeting service. cache and archiver may be nil.
func NewService(
	meetingRepo repositories.MeetingRepository,
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	extractor extraction.Service,
	mailer Mailer,
	cache ResolverCache,
	archiver TranscriptArchiver,
	logger *zap.Logger,
) Service {
	return &service{
		meetingRepo:     meetingRepo,
		taskRepo:        taskRepo,
		userRepo:        userRepo,
		extractor:       extractor,
		mailer:          mailer,
		cache:           cache,
		archiver:        archiver,
		logger:          logger,
		fanoutSemaphore: make(chan struct{}, 4),
	}
}

// resolvedCandidate pairs an extraction row with the user its email resolved to.
type resolvedCandidate struct {
	candidate extraction.Candidate
	userID    uuid.UUID
	email     string
}

// fanoutResult is the tagged outcome of one fan-out unit.
type fanoutResult struct {
	taskID uuid.UUID
	entry  entities.SummaryEntry
	err    error
}

// CreateMeeting runs the full pipeline: persist the meeting, extract
// candidates, resolve assignees, fan out task creation and notifications, and
// back-fill the meeting with the results. Extraction and per-task failures
// are contained; only meeting persistence failures abort the request.
func (s *service) CreateMeeting(ctx context.Context, manager *entities.User, in CreateInput) (*CreateResult, error) {
	meeting := entities.NewMeeting(manager.ID, in.Title, in.Transcript, in.Date, in.Tags)
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to persist meeting: %w", err)
	}

	if s.archiver != nil {
		if err := s.archiver.ArchiveTranscript(ctx, meeting.ID, in.Transcript); err != nil {
			s.logger.Warn("failed to archive transcript",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err),
			)
		}
	}

	candidates := s.extractor.Extract(ctx, extraction.Input{
		Title:      in.Title,
		Date:       in.Date,
		Tags:       in.Tags,
		Transcript: in.Transcript,
	})

	resolved := s.resolveCandidates(ctx, candidates)

	taskIDs, summary := s.fanOut(ctx, meeting, resolved)

	meeting.AttachResults(taskIDs, summary)
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to save meeting results: %w", err)
	}

	s.logger.Info("meeting processed",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("tasks_created", len(taskIDs)),
		zap.Int("tasks_attempted", len(candidates)),
	)

	return &CreateResult{
		Meeting:             meeting,
		TasksCreated:        len(taskIDs),
		TotalTasksAttempted: len(candidates),
	}, nil
}

// resolveCandidates maps candidate emails to registered users. Candidates
// without an email or with an unknown email are dropped.
func (s *service) resolveCandidates(ctx context.Context, candidates []extraction.Candidate) []resolvedCandidate {
	resolved := make([]resolvedCandidate, 0, len(candidates))

	for _, c := range candidates {
		if c.AssignedToEmail == "" {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(c.AssignedToEmail))

		userID, ok := s.lookupUser(ctx, email)
		if !ok {
			s.logger.Warn("dropping candidate with unresolvable assignee",
				zap.String("assignee_email", email),
			)
			continue
		}

		resolved = append(resolved, resolvedCandidate{
			candidate: c,
			userID:    userID,
			email:     email,
		})
	}

	return resolved
}

func (s *service) lookupUser(ctx context.Context, email string) (uuid.UUID, bool) {
	if s.cache != nil {
		if id, ok := s.cache.GetUserID(ctx, email); ok {
			return id, true
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return uuid.Nil, false
	}

	if s.cache != nil {
		s.cache.SetUserID(ctx, email, user.ID)
	}
	return user.ID, true
}

// fanOut processes each resolved candidate concurrently: create the task,
// send the notification best-effort, and build a summary entry. Results are
// collected in candidate order; a failed unit contributes nothing and does
// not disturb its siblings.
func (s *service) fanOut(ctx context.Context, meeting *entities.Meeting, resolved []resolvedCandidate) ([]uuid.UUID, []entities.SummaryEntry) {
	results := make([]fanoutResult, len(resolved))

	var wg sync.WaitGroup
	for i, rc := range resolved {
		wg.Add(1)
		go func(i int, rc resolvedCandidate) {
			defer wg.Done()

			s.fanoutSemaphore <- struct{}{}
			defer func() { <-s.fanoutSemaphore }()

			results[i] = s.processCandidate(ctx, meeting, rc)
		}(i, rc)
	}
	wg.Wait()

	taskIDs := make([]uuid.UUID, 0, len(resolved))
	summary := make([]entities.SummaryEntry, 0, len(resolved))
	for _, res := range results {
		if res.err != nil {
			continue
		}
		taskIDs = append(taskIDs, res.taskID)
		summary = append(summary, res.entry)
	}
	return taskIDs, summary
}

// processCandidate is one fan-out unit.
func (s *service) processCandidate(ctx context.Context, meeting *entities.Meeting, rc resolvedCandidate) fanoutResult {
	deadline := extraction.ParseDeadline(rc.candidate.Deadline)

	task := entities.NewTask(meeting.ID, rc.userID, rc.candidate.Description, deadline)
	if err := s.taskRepo.Create(ctx, task); err != nil {
		s.logger.Error("failed to create task",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("assignee_email", rc.email),
			zap.Error(err),
		)
		return fanoutResult{err: err}
	}

	// Notification is best-effort; a delivery failure never loses the task.
	subject := fmt.Sprintf("New Task Assignment: %s", rc.candidate.Description)
	html := buildNotificationHTML(rc.candidate.Description, meeting.Title, deadline)
	if err := s.mailer.Send(ctx, rc.email, subject, html); err != nil {
		s.logger.Warn("failed to send task notification",
			zap.String("task_id", task.ID.String()),
			zap.String("recipient", rc.email),
			zap.Error(err),
		)
	}

	return fanoutResult{
		taskID: task.ID,
		entry: entities.SummaryEntry{
			Description:     rc.candidate.Description,
			AssignedTo:      rc.userID,
			AssignedToEmail: rc.email,
			Deadline:        deadline,
			Status:          entities.TaskStatusPending,
		},
	}
}

// ListForUser returns the meetings visible to the user: their own for
// managers, the ones they were assigned tasks from for employees.
func (s *service) ListForUser(ctx context.Context, user *entities.User, limit, offset int) ([]*entities.Meeting, error) {
	if user.Role == entities.RoleManager {
		return s.meetingRepo.ListByManager(ctx, user.ID, limit, offset)
	}
	return s.meetingRepo.ListByAssignee(ctx, user.ID, limit, offset)
}

func buildNotificationHTML(description, meetingTitle string, deadline *time.Time) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #2563eb;">New Task Assignment</h2>`)
	b.WriteString(`<div style="background-color: #f3f4f6; padding: 20px; border-radius: 8px;">`)
	fmt.Fprintf(&b, `<h3 style="margin-top: 0;">%s</h3>`, description)
	fmt.Fprintf(&b, `<p><strong>Meeting:</strong> %s</p>`, meetingTitle)
	if deadline != nil {
		fmt.Fprintf(&b, `<p><strong>Deadline:</strong> %s</p>`, deadline.Format("January 2, 2006 at 03:04 PM"))
	}
	b.WriteString(`<p><strong>Status:</strong> Pending</p>`)
	b.WriteString(`<div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #e5e7eb;">`)
	b.WriteString(`<p style="color: #4b5563; font-size: 14px;">This task was automatically created from your meeting notes.</p>`)
	b.WriteString(`</div></div></div>`)

	return b.String()
}
