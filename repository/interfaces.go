// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uint) error
}

// ClientRepository defines operations for mail recipients
type ClientRepository interface {
	Repository[models.Client, models.ClientFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Client, error)
	ByEmail(ctx context.Context, email string) (*models.Client, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uint) error
}

// MessageRepository defines operations for mailing templates
type MessageRepository interface {
	Repository[models.Message, models.MessageFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Message, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error)
	Update(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id uint) error
}

// MailingRepository defines operations for mailing campaigns
type MailingRepository interface {
	Repository[models.Mailing, models.MailingFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Mailing, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Mailing, error)
	CountByStatus(ctx context.Context, status models.MailingStatus) (int64, error)
	Update(ctx context.Context, mailing *models.Mailing) error
	ReplaceRecipients(ctx context.Context, mailing *models.Mailing, recipients []*models.Client) error
	Delete(ctx context.Context, id uint) error
}

// DeliveryLogRepository defines operations for delivery logs (append-only)
type DeliveryLogRepository interface {
	Repository[models.DeliveryLog, models.DeliveryLogFilter]
	ListByMailing(ctx context.Context, mailingID uint, limit, offset int) ([]*models.DeliveryLog, error)
}

// BlogPostRepository defines operations for blog posts
type BlogPostRepository interface {
	Repository[models.BlogPost, models.BlogPostFilter]
	ByUUID(ctx context.Context, uuid string) (*models.BlogPost, error)
	// IncrementViews bumps view_count by one as a single atomic update.
	IncrementViews(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]*models.BlogPost, error)
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
	ListFailedActions(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)
}

// GroupRepository defines operations for permission groups
type GroupRepository interface {
	Repository[models.Group, models.GroupFilter]
	ByName(ctx context.Context, name string) (*models.Group, error)
	AddUser(ctx context.Context, groupID, userID uint) error
}
