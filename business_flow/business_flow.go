package businessflow

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/rs/zerolog/log"
)

// ClientMetadata carries request-scoped information about the caller
// for audit logging purposes.
type ClientMetadata struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent, requestID string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
		RequestID: requestID,
	}
}

// loadUser fetches the acting user and verifies the account is usable.
func loadUser(ctx context.Context, repo repository.UserRepository, userID uint) (*models.User, error) {
	user, err := repo.ByID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("USER_FETCH_FAILED", "Failed to fetch user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !utils.IsTrue(user.IsActive) {
		return nil, ErrAccountInactive
	}

	return user, nil
}

// auditEntry builds an audit log record from request metadata.
func auditEntry(userID *uint, action, description string, success bool, errorMessage *string, metadata *ClientMetadata) *models.AuditLog {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Success:      utils.ToPtr(success),
		ErrorMessage: errorMessage,
		CreatedAt:    utils.UTCNow(),
	}
	if description != "" {
		entry.Description = utils.ToPtr(description)
	}

	if metadata != nil {
		if metadata.IPAddress != "" {
			entry.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.UserAgent != "" {
			entry.UserAgent = utils.ToPtr(metadata.UserAgent)
		}
		if metadata.RequestID != "" {
			entry.RequestID = utils.ToPtr(metadata.RequestID)
		}
	}

	return entry
}

// recordAudit persists an audit entry. Audit failures are logged and
// swallowed so they never fail the underlying operation.
func recordAudit(ctx context.Context, repo repository.AuditLogRepository, entry *models.AuditLog) {
	if err := repo.Save(ctx, entry); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("failed to save audit log")
	}
}

// normalizePagination validates and applies defaults to page/pageSize.
func normalizePagination(page, pageSize int) (limit, offset int, err error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if page < 1 {
		return 0, 0, ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}

	return pageSize, (page - 1) * pageSize, nil
}
