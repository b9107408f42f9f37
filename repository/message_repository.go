package repository

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepositoryImpl implements the MessageRepository interface
type MessageRepositoryImpl struct {
	*BaseRepository[models.Message, models.MessageFilter]
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Message, models.MessageFilter](db),
	}
}

// ByUUID retrieves a message by UUID
func (r *MessageRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Message, error) {
	parsedUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.MessageFilter{UUID: &parsedUUID}
	messages, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(messages) == 0 {
		return nil, nil
	}

	return messages[0], nil
}

// ListByUser retrieves messages owned by the given user with pagination
func (r *MessageRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Message, error) {
	filter := models.MessageFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Update updates a message
func (r *MessageRepositoryImpl) Update(ctx context.Context, message *models.Message) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	now := utils.UTCNow()
	message.UpdatedAt = &now

	err = db.Save(message).Error
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a message; mailings referencing it cascade via the schema.
func (r *MessageRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, id)
}

// ByFilter retrieves messages based on filter criteria
func (r *MessageRepositoryImpl) ByFilter(ctx context.Context, filter models.MessageFilter, orderBy string, limit, offset int) ([]*models.Message, error) {
	db := r.getDB(ctx)

	var messages []*models.Message
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	query = query.Preload("Client")

	err := query.Find(&messages).Error
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// Count returns the number of messages matching the filter
func (r *MessageRepositoryImpl) Count(ctx context.Context, filter models.MessageFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Message{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any message matching the filter exists
func (r *MessageRepositoryImpl) Exists(ctx context.Context, filter models.MessageFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MessageRepositoryImpl) applyFilter(db *gorm.DB, filter models.MessageFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.ClientID != nil {
		db = db.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Subject != nil {
		db = db.Where("subject ILIKE ?", "%"+*filter.Subject+"%")
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
