package handlers

import (
	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// MailingHandlerInterface defines the contract for mailing campaign handlers
type MailingHandlerInterface interface {
	CreateMailing(c fiber.Ctx) error
	GetMailing(c fiber.Ctx) error
	ListMailings(c fiber.Ctx) error
	UpdateMailing(c fiber.Ctx) error
	DeleteMailing(c fiber.Ctx) error
	ListDeliveryLogs(c fiber.Ctx) error
}

// MailingHandler handles mailing campaign HTTP requests
type MailingHandler struct {
	baseHandler
	mailingFlow businessflow.MailingFlow
}

// NewMailingHandler creates a new mailing handler
func NewMailingHandler(mailingFlow businessflow.MailingFlow) *MailingHandler {
	return &MailingHandler{
		baseHandler: newBaseHandler(),
		mailingFlow: mailingFlow,
	}
}

// CreateMailing handles campaign creation
func (h *MailingHandler) CreateMailing(c fiber.Ctx) error {
	var req dto.CreateMailingRequest
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

	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings")
	defer cancel()

	result, err := h.mailingFlow.CreateMailing(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "mailing creation failed", "MAILING_CREATION_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result.Mailing)
}

// GetMailing handles single campaign retrieval
func (h *MailingHandler) GetMailing(c fiber.Ctx) error {
	mailingUUID := c.Params("uuid")
	if mailingUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Mailing UUID is required", "MISSING_MAILING_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.GetMailingRequest{UUID: mailingUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings/:uuid")
	defer cancel()

	result, err := h.mailingFlow.GetMailing(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "mailing retrieval failed", "MAILING_RETRIEVAL_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Mailing retrieved successfully", result)
}

// ListMailings handles campaign listing
func (h *MailingHandler) ListMailings(c fiber.Ctx) error {
	var req dto.ListMailingsRequest
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

	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings")
	defer cancel()

	result, err := h.mailingFlow.ListMailings(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "mailing listing failed", "MAILING_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Mailings retrieved successfully", result)
}

// UpdateMailing handles campaign updates
func (h *MailingHandler) UpdateMailing(c fiber.Ctx) error {
	mailingUUID := c.Params("uuid")
	if mailingUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Mailing UUID is required", "MISSING_MAILING_UUID", nil)
	}

	var req dto.UpdateMailingRequest
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
	req.UUID = mailingUUID
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings/:uuid")
	defer cancel()

	result, err := h.mailingFlow.UpdateMailing(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "mailing update failed", "MAILING_UPDATE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Mailing)
}

// DeleteMailing handles campaign deletion
func (h *MailingHandler) DeleteMailing(c fiber.Ctx) error {
	mailingUUID := c.Params("uuid")
	if mailingUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Mailing UUID is required", "MISSING_MAILING_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.DeleteMailingRequest{UUID: mailingUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings/:uuid")
	defer cancel()

	result, err := h.mailingFlow.DeleteMailing(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "mailing deletion failed", "MAILING_DELETE_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ListDeliveryLogs handles delivery attempt listing for one campaign
func (h *MailingHandler) ListDeliveryLogs(c fiber.Ctx) error {
	mailingUUID := c.Params("uuid")
	if mailingUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Mailing UUID is required", "MISSING_MAILING_UUID", nil)
	}

	var req dto.ListDeliveryLogsRequest
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
	req.MailingUUID = mailingUUID
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/mailings/:uuid/logs")
	defer cancel()

	result, err := h.mailingFlow.ListDeliveryLogs(ctx, &req, h.clientMetadata(c))
	if err != nil {
		return h.mapMailingError(c, err, "delivery log listing failed", "DELIVERY_LOG_LIST_FAILED")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Delivery logs retrieved successfully", result)
}

// mapMailingError translates business errors into HTTP responses shared by
// all mailing endpoints.
func (h *MailingHandler) mapMailingError(c fiber.Ctx, err error, logMsg, fallbackCode string) error {
	switch {
	case businessflow.IsMailingNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Mailing not found", "MAILING_NOT_FOUND", nil)
	case businessflow.IsMailingAccessDenied(err):
		return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
	case businessflow.IsMessageNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Message not found", "MESSAGE_NOT_FOUND", nil)
	case businessflow.IsRecipientNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, "Recipient client not found", "RECIPIENT_NOT_FOUND", nil)
	case businessflow.IsInvalidMailingStatus(err) || businessflow.IsInvalidPeriodicity(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
	case businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
	case businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err):
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
	default:
		log.Error().Err(err).Msg(logMsg)
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Request failed", fallbackCode, nil)
	}
}
