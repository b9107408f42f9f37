package repository

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailingRepositoryImpl implements the MailingRepository interface
type MailingRepositoryImpl struct {
	*BaseRepository[models.Mailing, models.MailingFilter]
}

// NewMailingRepository creates a new mailing repository
func NewMailingRepository(db *gorm.DB) MailingRepository {
	return &MailingRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Mailing, models.MailingFilter](db),
	}
}

// ByID retrieves a mailing by ID with recipients and message preloaded
func (r *MailingRepositoryImpl) ByID(ctx context.Context, id uint) (*models.Mailing, error) {
	db := r.getDB(ctx)

	var mailing models.Mailing
	err := db.Preload("Message").
		Preload("Recipients").
		Last(&mailing, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &mailing, nil
}

// ByUUID retrieves a mailing by UUID
func (r *MailingRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Mailing, error) {
	parsedUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.MailingFilter{UUID: &parsedUUID}
	mailings, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(mailings) == 0 {
		return nil, nil
	}

	return mailings[0], nil
}

// ListByUser retrieves mailings owned by the given user with pagination
func (r *MailingRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Mailing, error) {
	filter := models.MailingFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// CountByStatus counts mailings in the given status
func (r *MailingRepositoryImpl) CountByStatus(ctx context.Context, status models.MailingStatus) (int64, error) {
	filter := models.MailingFilter{Status: &status}
	return r.Count(ctx, filter)
}

// Update updates a mailing's own columns; recipients are managed separately
// through ReplaceRecipients.
func (r *MailingRepositoryImpl) Update(ctx context.Context, mailing *models.Mailing) error {
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
	mailing.UpdatedAt = &now

	err = db.Omit("Recipients").Save(mailing).Error
	if err != nil {
		return err
	}

	return nil
}

// ReplaceRecipients swaps the mailing's recipient set for the given clients
func (r *MailingRepositoryImpl) ReplaceRecipients(ctx context.Context, mailing *models.Mailing, recipients []*models.Client) error {
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

	err = db.Model(mailing).Association("Recipients").Replace(recipients)
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a mailing; recipient links and delivery logs referencing it
// cascade via the schema.
func (r *MailingRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, id)
}

// ByFilter retrieves mailings based on filter criteria
func (r *MailingRepositoryImpl) ByFilter(ctx context.Context, filter models.MailingFilter, orderBy string, limit, offset int) ([]*models.Mailing, error) {
	db := r.getDB(ctx)

	var mailings []*models.Mailing
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

	query = query.Preload("Message").
		Preload("Recipients")

	err := query.Find(&mailings).Error
	if err != nil {
		return nil, err
	}

	return mailings, nil
}

// Count returns the number of mailings matching the filter
func (r *MailingRepositoryImpl) Count(ctx context.Context, filter models.MailingFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Mailing{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any mailing matching the filter exists
func (r *MailingRepositoryImpl) Exists(ctx context.Context, filter models.MailingFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *MailingRepositoryImpl) applyFilter(db *gorm.DB, filter models.MailingFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.MessageID != nil {
		db = db.Where("message_id = ?", *filter.MessageID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Periodicity != nil {
		db = db.Where("periodicity = ?", *filter.Periodicity)
	}
	if filter.ScheduledAfter != nil {
		db = db.Where("scheduled_at > ?", *filter.ScheduledAfter)
	}
	if filter.ScheduledBefore != nil {
		db = db.Where("scheduled_at < ?", *filter.ScheduledBefore)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
