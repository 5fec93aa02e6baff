package meeting

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/extraction"
)

type mockMeetingRepo struct {
	mock.Mock
}

func (m *mockMeetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}

func (m *mockMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) Update(ctx context.Context, meeting *entities.Meeting) error {
	return m.Called(ctx, meeting).Error(0)
}

func (m *mockMeetingRepo) ListByManager(ctx context.Context, managerID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	args := m.Called(ctx, managerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Meeting), args.Error(1)
}

func (m *mockMeetingRepo) ListByAssignee(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Meeting, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Meeting), args.Error(1)
}

// mockTaskRepo records created tasks and can fail selected descriptions.
type mockTaskRepo struct {
	mu      sync.Mutex
	created []*entities.Task
	failFor map[string]error
}

func (m *mockTaskRepo) Create(_ context.Context, task *entities.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[task.Description]; ok {
		return err
	}
	m.created = append(m.created, task)
	return nil
}

func (m *mockTaskRepo) FindByID(context.Context, uuid.UUID) (*entities.Task, error) {
	return nil, entities.ErrTaskNotFound
}

func (m *mockTaskRepo) FindByIDAndAssignee(context.Context, uuid.UUID, uuid.UUID) (*entities.Task, error) {
	return nil, entities.ErrTaskNotFound
}

func (m *mockTaskRepo) Update(context.Context, *entities.Task) error { return nil }

func (m *mockTaskRepo) List(context.Context, int, int) ([]*entities.Task, error) {
	return nil, nil
}

func (m *mockTaskRepo) ListByAssignee(context.Context, uuid.UUID, int, int) ([]*entities.Task, error) {
	return nil, nil
}

// mockUserRepo resolves a fixed email-to-user directory.
type mockUserRepo struct {
	byEmail map[string]*entities.User
}

func (m *mockUserRepo) Create(context.Context, *entities.User) error { return nil }

func (m *mockUserRepo) FindByID(context.Context, uuid.UUID) (*entities.User, error) {
	return nil, entities.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, entities.ErrUserNotFound
}

type stubExtractor struct {
	candidates []extraction.Candidate
}

func (s *stubExtractor) Extract(context.Context, extraction.Input) []extraction.Candidate {
	return s.candidates
}

// mockMailer records recipients and can fail selected addresses.
type mockMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (m *mockMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newTestUser(email string, role entities.UserRole) *entities.User {
	return &entities.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: email,
		Role:  role,
	}
}

func newTestService(t *testing.T, meetingRepo *mockMeetingRepo, taskRepo *mockTaskRepo, userRepo *mockUserRepo, extractor *stubExtractor, mailer *mockMailer) Service {
	t.Helper()
	return NewService(meetingRepo, taskRepo, userRepo, extractor, mailer, nil, nil, zap.NewNop())
}

func TestCreateMeeting_FullPipeline(t *testing.T) {
	alice := newTestUser("alice@example.com", entities.RoleEmployee)
	bob := newTestUser("bob@test.org", entities.RoleEmployee)
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	taskRepo := &mockTaskRepo{}
	userRepo := &mockUserRepo{byEmail: map[string]*entities.User{
		"alice@example.com": alice,
		"bob@test.org":      bob,
	}}
	extractor := &stubExtractor{candidates: []extraction.Candidate{
		{Description: "Review PR", AssignedToEmail: "Alice@Example.com", Deadline: "2025-09-20"},
		{Description: "Deploy staging", AssignedToEmail: "bob@test.org"},
	}}
	mailer := &mockMailer{}

	svc := newTestService(t, meetingRepo, taskRepo, userRepo, extractor, mailer)

	result, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Sprint Planning",
		Transcript: "some transcript",
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 2, result.TasksCreated)
	require.Equal(t, 2, result.TotalTasksAttempted)
	require.Len(t, taskRepo.created, 2)
	require.Len(t, result.Meeting.TaskIDs, 2)
	require.Len(t, result.Meeting.Summary, 2)

	// Summary keeps candidate order and normalizes emails.
	require.Equal(t, "Review PR", result.Meeting.Summary[0].Description)
	require.Equal(t, "alice@example.com", result.Meeting.Summary[0].AssignedToEmail)
	require.Equal(t, alice.ID, result.Meeting.Summary[0].AssignedTo)
	require.Equal(t, "bob@test.org", result.Meeting.Summary[1].AssignedToEmail)

	require.ElementsMatch(t, []string{"alice@example.com", "bob@test.org"}, mailer.sent)

	meetingRepo.AssertExpectations(t)
}

func TestCreateMeeting_UnresolvableAssigneesDropped(t *testing.T) {
	alice := newTestUser("alice@example.com", entities.RoleEmployee)
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	taskRepo := &mockTaskRepo{}
	userRepo := &mockUserRepo{byEmail: map[string]*entities.User{
		"alice@example.com": alice,
	}}
	extractor := &stubExtractor{candidates: []extraction.Candidate{
		{Description: "Known assignee", AssignedToEmail: "alice@example.com"},
		{Description: "Unknown assignee", AssignedToEmail: "ghost@example.com"},
		{Description: "No assignee", AssignedToEmail: ""},
	}}
	mailer := &mockMailer{}

	svc := newTestService(t, meetingRepo, taskRepo, userRepo, extractor, mailer)

	result, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Standup",
		Transcript: "t",
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.TasksCreated)
	require.Equal(t, 3, result.TotalTasksAttempted)
	require.Len(t, taskRepo.created, 1)
	require.Equal(t, "Known assignee", taskRepo.created[0].Description)
}

func TestCreateMeeting_NoCandidatesStillSucceeds(t *testing.T) {
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(t, meetingRepo, &mockTaskRepo{}, &mockUserRepo{}, &stubExtractor{}, &mockMailer{})

	result, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Quiet meeting",
		Transcript: "nothing actionable",
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 0, result.TasksCreated)
	require.Equal(t, 0, result.TotalTasksAttempted)
	require.NotNil(t, result.Meeting.TaskIDs)
	require.Len(t, result.Meeting.TaskIDs, 0)
}

func TestCreateMeeting_TaskFailureDoesNotDisturbSiblings(t *testing.T) {
	alice := newTestUser("alice@example.com", entities.RoleEmployee)
	bob := newTestUser("bob@test.org", entities.RoleEmployee)
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	taskRepo := &mockTaskRepo{failFor: map[string]error{
		"Doomed task": errors.New("insert failed"),
	}}
	userRepo := &mockUserRepo{byEmail: map[string]*entities.User{
		"alice@example.com": alice,
		"bob@test.org":      bob,
	}}
	extractor := &stubExtractor{candidates: []extraction.Candidate{
		{Description: "Doomed task", AssignedToEmail: "alice@example.com"},
		{Description: "Healthy task", AssignedToEmail: "bob@test.org"},
	}}
	mailer := &mockMailer{}

	svc := newTestService(t, meetingRepo, taskRepo, userRepo, extractor, mailer)

	result, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Risky meeting",
		Transcript: "t",
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.TasksCreated)
	require.Equal(t, 2, result.TotalTasksAttempted)
	require.Len(t, result.Meeting.Summary, 1)
	require.Equal(t, "Healthy task", result.Meeting.Summary[0].Description)
	require.Equal(t, []string{"bob@test.org"}, mailer.sent)
}

func TestCreateMeeting_EmailFailureKeepsTask(t *testing.T) {
	alice := newTestUser("alice@example.com", entities.RoleEmployee)
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	meetingRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	taskRepo := &mockTaskRepo{}
	userRepo := &mockUserRepo{byEmail: map[string]*entities.User{
		"alice@example.com": alice,
	}}
	extractor := &stubExtractor{candidates: []extraction.Candidate{
		{Description: "Task with broken email", AssignedToEmail: "alice@example.com"},
	}}
	mailer := &mockMailer{failFor: map[string]error{
		"alice@example.com": errors.New("delivery failed"),
	}}

	svc := newTestService(t, meetingRepo, taskRepo, userRepo, extractor, mailer)

	result, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Meeting",
		Transcript: "t",
		Date:       time.Now(),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.TasksCreated)
	require.Len(t, taskRepo.created, 1)
}

func TestCreateMeeting_MeetingPersistFailureAborts(t *testing.T) {
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := newTestService(t, meetingRepo, &mockTaskRepo{}, &mockUserRepo{}, &stubExtractor{}, &mockMailer{})

	_, err := svc.CreateMeeting(context.Background(), manager, CreateInput{
		Title:      "Meeting",
		Transcript: "t",
		Date:       time.Now(),
	})
	require.Error(t, err)
}

func TestListForUser_ManagerSeesOwnMeetings(t *testing.T) {
	manager := newTestUser("boss@example.com", entities.RoleManager)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("ListByManager", mock.Anything, manager.ID, 20, 0).
		Return([]*entities.Meeting{{ID: uuid.New()}}, nil)

	svc := newTestService(t, meetingRepo, &mockTaskRepo{}, &mockUserRepo{}, &stubExtractor{}, &mockMailer{})

	meetings, err := svc.ListForUser(context.Background(), manager, 20, 0)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	meetingRepo.AssertExpectations(t)
}

func TestListForUser_EmployeeSeesAssignedMeetings(t *testing.T) {
	employee := newTestUser("alice@example.com", entities.RoleEmployee)

	meetingRepo := new(mockMeetingRepo)
	meetingRepo.On("ListByAssignee", mock.Anything, employee.ID, 20, 0).
		Return([]*entities.Meeting{}, nil)

	svc := newTestService(t, meetingRepo, &mockTaskRepo{}, &mockUserRepo{}, &stubExtractor{}, &mockMailer{})

	meetings, err := svc.ListForUser(context.Background(), employee, 20, 0)
	require.NoError(t, err)
	require.Empty(t, meetings)
	meetingRepo.AssertExpectations(t)
}
