package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/taskscribe-dev/taskscribe/errors"
	authdto "github.com/taskscribe-dev/taskscribe/internal/adapter/dto/auth"
	"github.com/taskscribe-dev/taskscribe/internal/domain/entities"
	httpmw "github.com/taskscribe-dev/taskscribe/internal/infrastructure/http/middleware"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/auth"
)

// Auth handles authentication HTTP requests
type Auth struct {
	svc    auth.Service
	logger *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(svc auth.Service, logger *zap.Logger) *Auth {
	return &Auth{
		svc:    svc,
		logger: logger,
	}
}

// Signup registers a new account
// @Summary      Register account
// @Description  Creates a manager or employee account and returns tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authdto.SignupRequest  true  "Signup payload"
// @Success      201      {object}  authdto.AuthResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid payload"
// @Failure      409      {object}  map[string]interface{}  "Email already registered"
// @Router       /auth/signup [post]
func (h *Auth) Signup(c echo.Context) error {
	var req authdto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.Signup(c.Request().Context(), auth.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       entities.UserRole(req.Role),
		Department: req.Department,
		Position:   req.Position,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusCreated, toAuthResponse(result))
}

// Login authenticates an account
// @Summary      Login
// @Description  Verifies credentials and returns tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authdto.LoginRequest  true  "Login payload"
// @Success      200      {object}  authdto.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid email or password"
// @Router       /auth/login [post]
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusOK, toAuthResponse(result))
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      authdto.RefreshTokenRequest  true  "Refresh payload"
// @Success      200      {object}  authdto.AuthResponse
// @Failure      401      {object}  map[string]interface{}  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authdto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	result, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleJSON(h.logger, c, http.StatusOK, toAuthResponse(result))
}

// Me returns the authenticated user
// @Summary      Current user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authdto.UserResponse
// @Failure      401  {object}  map[string]interface{}  "Not authenticated"
// @Router       /auth/me [get]
func (h *Auth) Me(c echo.Context) error {
	user, ok := httpmw.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	return HandleJSON(h.logger, c, http.StatusOK, authdto.NewUserResponse(user))
}

func toAuthResponse(result *auth.AuthResult) *authdto.AuthResponse {
	return &authdto.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		TokenType:    "Bearer",
		User:         authdto.NewUserResponse(result.User),
	}
}
