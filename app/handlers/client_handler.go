package handlers

import (
	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// ClientHandlerInterface defines the contract for mail recipient handlers
type ClientHandlerInterface interface {
	CreateClient(c fiber.Ctx) error
	GetClient(c fiber.Ctx) error
	ListClients(c fiber.Ctx) error
	UpdateClient(c fiber.Ctx) error
	DeleteClient(c fiber.Ctx) error
	ExportClients(c fiber.Ctx) error
}

// ClientHandler handles mail recipient HTTP requests
type ClientHandler struct {
	baseHandler
	clientFlow businessflow.ClientFlow
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientFlow businessflow.ClientFlow) *ClientHandler {
	return &ClientHandler{
		baseHandler: newBaseHandler(),
		clientFlow:  clientFlow,
	}
}

// CreateClient handles recipient creation
func (h *ClientHandler) CreateClient(c fiber.Ctx) error {
	var req dto.CreateClientRequest
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

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients")
	defer cancel()

	result, err := h.clientFlow.CreateClient(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsClientEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Client email already exists", "CLIENT_EMAIL_ALREADY_EXISTS", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client creation failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client creation failed", "CLIENT_CREATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusCreated, result.Message, result.Client)
}

// GetClient handles single recipient retrieval
func (h *ClientHandler) GetClient(c fiber.Ctx) error {
	clientUUID := c.Params("uuid")
	if clientUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Client UUID is required", "MISSING_CLIENT_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.GetClientRequest{UUID: clientUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/:uuid")
	defer cancel()

	result, err := h.clientFlow.GetClient(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsClientNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Client not found", "CLIENT_NOT_FOUND", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client retrieval failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client retrieval failed", "CLIENT_RETRIEVAL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Client retrieved successfully", result)
}

// ListClients handles recipient listing
func (h *ClientHandler) ListClients(c fiber.Ctx) error {
	var req dto.ListClientsRequest
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

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients")
	defer cancel()

	result, err := h.clientFlow.ListClients(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsInvalidPage(err) || businessflow.IsInvalidPageSize(err) {
			return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client listing failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client listing failed", "CLIENT_LIST_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Clients retrieved successfully", result)
}

// UpdateClient handles recipient updates
func (h *ClientHandler) UpdateClient(c fiber.Ctx) error {
	clientUUID := c.Params("uuid")
	if clientUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Client UUID is required", "MISSING_CLIENT_UUID", nil)
	}

	var req dto.UpdateClientRequest
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
	req.UUID = clientUUID
	req.UserID = userID

	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/:uuid")
	defer cancel()

	result, err := h.clientFlow.UpdateClient(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsClientNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Client not found", "CLIENT_NOT_FOUND", nil)
		}
		if businessflow.IsClientAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
		}
		if businessflow.IsClientEmailAlreadyExists(err) {
			return h.ErrorResponse(c, fiber.StatusConflict, "Client email already exists", "CLIENT_EMAIL_ALREADY_EXISTS", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client update failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client update failed", "CLIENT_UPDATE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result.Client)
}

// DeleteClient handles recipient deletion
func (h *ClientHandler) DeleteClient(c fiber.Ctx) error {
	clientUUID := c.Params("uuid")
	if clientUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Client UUID is required", "MISSING_CLIENT_UUID", nil)
	}

	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.DeleteClientRequest{UUID: clientUUID, UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/:uuid")
	defer cancel()

	result, err := h.clientFlow.DeleteClient(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsClientNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Client not found", "CLIENT_NOT_FOUND", nil)
		}
		if businessflow.IsClientAccessDenied(err) {
			return h.ErrorResponse(c, fiber.StatusForbidden, "Access denied", "ACCESS_DENIED", nil)
		}
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client deletion failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client deletion failed", "CLIENT_DELETE_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, nil)
}

// ExportClients streams the caller's recipients as an XLSX download
func (h *ClientHandler) ExportClients(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "AUTHENTICATION_REQUIRED", nil)
	}

	req := dto.ExportClientsRequest{UserID: userID}
	ctx, cancel := h.createRequestContext(c, "/api/v1/clients/export")
	defer cancel()

	data, err := h.clientFlow.ExportClients(ctx, &req, h.clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) || businessflow.IsAccountInactive(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Account not available", "ACCOUNT_NOT_AVAILABLE", nil)
		}

		log.Error().Err(err).Msg("client export failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Client export failed", "CLIENT_EXPORT_FAILED", nil)
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="clients.xlsx"`)
	return c.Send(data)
}
