package auth

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/taskscribe-dev/taskscribe/errors"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	"github.com/taskscribe-dev/taskscribe/internal/domain/repositories"
	"github.com/taskscribe-dev/taskscribe/pkg/jwt"
)

// SignupInput carries a validated signup request
type SignupInput struct {
	Name       string
	Email      string
	Password   string
	Role       entities.UserRole
	Department string
	Position   string
}

// AuthResult is the outcome of signup, login, or refresh
type AuthResult struct {
	User         *entities.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// Service handles password authentication and token issuance
type Service interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
}

type service struct {
	userRepo   repositories.UserRepository
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewService constructs an auth service
func NewService(userRepo repositories.UserRepository, jwtManager *jwt.Manager, logger *zap.Logger) Service {
	return &service{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Signup registers a new account and issues tokens.
func (s *service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrUserAlreadyExists(email)
	} else if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, apperrors.ErrInternal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	user := entities.NewUser(in.Name, email, string(hash), in.Role)
	user.Department = in.Department
	user.Position = in.Position
	if err := user.Validate(); err != nil {
		return nil, apperrors.ErrInvalidArgument(err.Error())
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return s.issueTokens(user)
}

// Login verifies credentials and issues tokens. Unknown email and wrong
// password produce the same error.
func (s *service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials()
		}
		return nil, apperrors.ErrInternal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials()
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken()
		}
		return nil, apperrors.ErrInternal(err)
	}

	return s.issueTokens(user)
}

func (s *service) issueTokens(user *entities.User) (*AuthResult, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtManager.GetAccessExpiry().Seconds()),
	}, nil
}
