package repository

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
	"gorm.io/gorm"
)

// DeliveryLogRepositoryImpl implements the DeliveryLogRepository interface.
// Delivery logs are append-only; there is no update path.
type DeliveryLogRepositoryImpl struct {
	*BaseRepository[models.DeliveryLog, models.DeliveryLogFilter]
}

// NewDeliveryLogRepository creates a new delivery log repository
func NewDeliveryLogRepository(db *gorm.DB) DeliveryLogRepository {
	return &DeliveryLogRepositoryImpl{
		BaseRepository: NewBaseRepository[models.DeliveryLog, models.DeliveryLogFilter](db),
	}
}

// ListByMailing retrieves delivery logs for the given mailing with pagination
func (r *DeliveryLogRepositoryImpl) ListByMailing(ctx context.Context, mailingID uint, limit, offset int) ([]*models.DeliveryLog, error) {
	filter := models.DeliveryLogFilter{MailingID: &mailingID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// ByFilter retrieves delivery logs based on filter criteria
func (r *DeliveryLogRepositoryImpl) ByFilter(ctx context.Context, filter models.DeliveryLogFilter, orderBy string, limit, offset int) ([]*models.DeliveryLog, error) {
	db := r.getDB(ctx)

	var logs []*models.DeliveryLog
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

	err := query.Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

// Count returns the number of delivery logs matching the filter
func (r *DeliveryLogRepositoryImpl) Count(ctx context.Context, filter models.DeliveryLogFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.DeliveryLog{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any delivery log matching the filter exists
func (r *DeliveryLogRepositoryImpl) Exists(ctx context.Context, filter models.DeliveryLogFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *DeliveryLogRepositoryImpl) applyFilter(db *gorm.DB, filter models.DeliveryLogFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.MailingID != nil {
		db = db.Where("mailing_id = ?", *filter.MailingID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.EmailAnswer != nil {
		db = db.Where("email_answer = ?", *filter.EmailAnswer)
	}
	if filter.SentAfter != nil {
		db = db.Where("sent_at >= ?", *filter.SentAfter)
	}
	if filter.SentBefore != nil {
		db = db.Where("sent_at < ?", *filter.SentBefore)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
