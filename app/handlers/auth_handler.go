package handlers

import (
	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Signup(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Logout(c fiber.Ctx) error
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	baseHandler
	authFlow businessflow.AuthFlow
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(),
		authFlow:    authFlow,
	}
}

// Signup handles account registration
func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateStruct(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/auth/signup")
	defer cancel()

	result, err := h.authFlow.Signup(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Email already registered", "EMAIL_ALREADY_EXISTS", nil)
		}

		log.Error().Err(err).Msg("signup failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Signup failed", "SIGNUP_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result)
}

// Login handles authentication
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateStruct(c, &req); !ok {
		return err
	}

	ctx, cancel := h.createRequestContext(c, "/api/v1/auth/login")
	defer cancel()

	result, err := h.authFlow.Login(ctx, &req, h.clientMetadata(c))
	if err != nil {
		// Wrong email and wrong password answer identically.
		if businessflow.IsUserNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials", "INVALID_CREDENTIALS", nil)
		}
		if businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		}

		log.Error().Err(err).Msg("login failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	token, _ := c.Locals("access_token").(string)

	req := dto.LogoutRequest{UserID: userID, Token: token}
	ctx, cancel := h.createRequestContext(c, "/api/v1/auth/logout")
	defer cancel()

	result, err := h.authFlow.Logout(ctx, &req, h.clientMetadata(c))
	if err != nil {
		log.Error().Err(err).Msg("logout failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Logout failed", "LOGOUT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}
