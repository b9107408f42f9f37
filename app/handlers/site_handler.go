package handlers

import (
	"github.com/dpetrovsky/mailhub/app/dto"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// SiteHandlerInterface defines the contract for public site handlers
type SiteHandlerInterface interface {
	Home(c fiber.Ctx) error
	Contact(c fiber.Ctx) error
	GetBlogPost(c fiber.Ctx) error
}

// SiteHandler handles public, unauthenticated HTTP requests
type SiteHandler struct {
	baseHandler
	homeFlow    businessflow.HomeFlow
	contactFlow businessflow.ContactFlow
	blogFlow    businessflow.BlogFlow
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(homeFlow businessflow.HomeFlow, contactFlow businessflow.ContactFlow, blogFlow businessflow.BlogFlow) *SiteHandler {
	return &SiteHandler{
		baseHandler: newBaseHandler(),
		homeFlow:    homeFlow,
		contactFlow: contactFlow,
		blogFlow:    blogFlow,
	}
}

// Home serves the landing page aggregation
func (h *SiteHandler) Home(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/home")
	defer cancel()

	result, err := h.homeFlow.GetHome(ctx)
	if err != nil {
		log.Error().Err(err).Msg("home aggregation failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Home aggregation failed", "HOME_AGGREGATION_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Home data retrieved successfully", result)
}

// Contact accepts a contact form submission. The submission is only
// logged, so malformed or partial bodies are acknowledged the same way
// as complete ones.
func (h *SiteHandler) Contact(c fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.Bind().JSON(&req); err != nil {
		log.Warn().Err(err).Msg("contact body did not parse, recording empty submission")
	}

	ctx, cancel := h.createRequestContext(c, "/contact")
	defer cancel()

	result, err := h.contactFlow.SubmitContact(ctx, &req, h.clientMetadata(c))
	if err != nil {
		log.Error().Err(err).Msg("contact submission failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Contact submission failed", "CONTACT_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, result.Message, result)
}

// GetBlogPost serves a single blog post and counts the view
func (h *SiteHandler) GetBlogPost(c fiber.Ctx) error {
	postUUID := c.Params("uuid")
	if postUUID == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Blog post UUID is required", "MISSING_BLOG_UUID", nil)
	}

	req := dto.GetBlogPostRequest{UUID: postUUID}
	ctx, cancel := h.createRequestContext(c, "/blog/:uuid")
	defer cancel()

	result, err := h.blogFlow.GetBlogPost(ctx, &req)
	if err != nil {
		if businessflow.IsBlogPostNotFound(err) {
			return h.ErrorResponse(c, fiber.StatusNotFound, "Blog post not found", "BLOG_POST_NOT_FOUND", nil)
		}

		log.Error().Err(err).Msg("blog post retrieval failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Blog post retrieval failed", "BLOG_RETRIEVAL_FAILED", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Blog post retrieved successfully", result)
}
