package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/taskscribe-dev/taskscribe/errors"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func newTestJWTManager() *jwt.Manager {
	return jwt.NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestSignup_Success(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, entities.ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, newTestJWTManager(), zap.NewNop())

	result, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Alice",
		Email:    "Alice@Example.COM",
		Password: "s3cret-pass",
		Role:     entities.RoleEmployee,
	})
	require.NoError(t, err)

	require.Equal(t, "alice@example.com", result.User.Email)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Equal(t, int(time.Hour.Seconds()), result.ExpiresIn)

	// Stored hash verifies against the plaintext password.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.User.PasswordHash), []byte("s3cret-pass")))

	repo.AssertExpectations(t)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	existing := entities.NewUser("Alice", "alice@example.com", "hash", entities.RoleEmployee)

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(existing, nil)

	svc := NewService(repo, newTestJWTManager(), zap.NewNop())

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     entities.RoleEmployee,
	})
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestSignup_InvalidRole(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, entities.ErrUserNotFound)

	svc := NewService(repo, newTestJWTManager(), zap.NewNop())

	_, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     entities.UserRole("admin"),
	})
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := entities.NewUser("Alice", "alice@example.com", string(hash), entities.RoleEmployee)

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)

	svc := NewService(repo, newTestJWTManager(), zap.NewNop())

	result, err := svc.Login(context.Background(), "Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := entities.NewUser("Alice", "alice@example.com", string(hash), entities.RoleEmployee)

	repo := new(mockUserRepo)
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, entities.ErrUserNotFound)

	svc := NewService(repo, newTestJWTManager(), zap.NewNop())

	_, wrongPassErr := svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	_, unknownErr := svc.Login(context.Background(), "ghost@example.com", "whatever")

	require.Error(t, wrongPassErr)
	require.Error(t, unknownErr)
	require.Equal(t, wrongPassErr.Error(), unknownErr.Error())
}

func TestRefresh_Success(t *testing.T) {
	user := entities.NewUser("Alice", "alice@example.com", "hash", entities.RoleEmployee)
	mgr := newTestJWTManager()

	refreshToken, err := mgr.GenerateRefreshToken(user.ID)
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := NewService(repo, mgr, zap.NewNop())

	result, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, user.ID, result.User.ID)
}

func TestRefresh_InvalidToken(t *testing.T) {
	svc := NewService(new(mockUserRepo), newTestJWTManager(), zap.NewNop())

	_, err := svc.Refresh(context.Background(), "not-a-token")
	require.Error(t, err)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)
}
