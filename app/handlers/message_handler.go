package handlers

import (
	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// MessageHandlerInterface defines the contract for mail template handlers
type MessageHandlerInterface interface {
	CreateMessage(c fiber.Ctx) error
	GetMessage(c fiber.Ctx) error
	ListMessages(c fiber.Ctx) error
	UpdateMessage(c fiber.Ctx) error
	DeleteMessage(c fiber.Ctx) error
}

// MessageHandler handles mail template HTTP requests
type MessageHandler struct {
	baseHandler
	messageFlow businessflow.MessageFlow
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageFlow businessflow.MessageFlow) *MessageHandler {
	return &MessageHandler{
		baseHandler: newBaseHandler(),
		messageFlow: messageFlow,
	}
}

// CreateMessage handles template creation
func (h *MessageHandler) CreateMessage(c fiber.Ctx) error {
	var req dto.CreateMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateStruct(c, &req); !ok {
		return err
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/messages")
	defer cancel()

	result, err := h.messageFlow.CreateMessage(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsClientNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Client not found", "CLIENT_NOT_FOUND", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("message creation failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Message creation failed", "MESSAGE_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result.Template)
}

// GetMessage handles single template retrieval
func (h *MessageHandler) GetMessage(c fiber.Ctx) error {
	messageUUID := c.Params("uuid")
	if messageUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Message UUID is required", "MISSING_MESSAGE_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.GetMessageRequest{UUID: messageUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/messages/:uuid")
	defer cancel()

	result, err := h.messageFlow.GetMessage(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsMessageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Message not found", "MESSAGE_NOT_FOUND", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("message retrieval failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Message retrieval failed", "MESSAGE_RETRIEVAL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Message retrieved successfully", result)
}

// ListMessages handles template listing
func (h *MessageHandler) ListMessages(c fiber.Ctx) error {
	var req dto.ListMessagesRequest
	if err := c.Bind().Query(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateStruct(c, &req); !ok {
		return err
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/messages")
	defer cancel()

	result, err := h.messageFlow.ListMessages(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("message listing failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Message listing failed", "MESSAGE_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Messages retrieved successfully", result)
}

// UpdateMessage handles template updates
func (h *MessageHandler) UpdateMessage(c fiber.Ctx) error {
	messageUUID := c.Params("uuid")
	if messageUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Message UUID is required", "MISSING_MESSAGE_UUID", nil)
	}

	var req dto.UpdateMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if ok, err := h.validateStruct(c, &req); !ok {
		return err
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}
	req.UUID = messageUUID
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/messages/:uuid")
	defer cancel()

	result, err := h.messageFlow.UpdateMessage(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsMessageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Message not found", "MESSAGE_NOT_FOUND", nil)
		}
		if businessflow.IsMessageAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
		}
		if businessflow.IsClientNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Client not found", "CLIENT_NOT_FOUND", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("message update failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Message update failed", "MESSAGE_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Template)
}

// DeleteMessage handles template deletion
func (h *MessageHandler) DeleteMessage(c fiber.Ctx) error {
	messageUUID := c.Params("uuid")
	if messageUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Message UUID is required", "MISSING_MESSAGE_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.DeleteMessageRequest{UUID: messageUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/messages/:uuid")
	defer cancel()

	result, err := h.messageFlow.DeleteMessage(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsMessageNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Message not found", "MESSAGE_NOT_FOUND", nil)
		}
		if businessflow.IsMessageAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("message deletion failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Message deletion failed", "MESSAGE_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}
