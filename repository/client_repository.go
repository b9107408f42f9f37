package repository

import (
	"context"
	"errors"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientRepositoryImpl implements the ClientRepository interface
type ClientRepositoryImpl struct {
	*BaseRepository[models.Client, models.ClientFilter]
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &ClientRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Client, models.ClientFilter](db),
	}
}

// ByUUID retrieves a client by UUID
func (r *ClientRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.Client, error) {
	parsedUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.ClientFilter{UUID: &parsedUUID}
	clients, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(clients) == 0 {
		return nil, nil
	}

	return clients[0], nil
}

// ByEmail retrieves a client by its unique email
func (r *ClientRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.Client, error) {
	db := r.getDB(ctx)

	var client models.Client
	err := db.Where("email = ?", email).Last(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &client, nil
}

// ListByUser retrieves clients owned by the given user with pagination
func (r *ClientRepositoryImpl) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Client, error) {
	filter := models.ClientFilter{UserID: &userID}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// Update updates a client
func (r *ClientRepositoryImpl) Update(ctx context.Context, client *models.Client) error {
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
	client.UpdatedAt = &now

	err = db.Save(client).Error
	if err != nil {
		return err
	}

	return nil
}

// Delete removes a client; messages and recipient links referencing it are
// removed by the schema's cascades.
func (r *ClientRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, id)
}

// ByFilter retrieves clients based on filter criteria
func (r *ClientRepositoryImpl) ByFilter(ctx context.Context, filter models.ClientFilter, orderBy string, limit, offset int) ([]*models.Client, error) {
	db := r.getDB(ctx)

	var clients []*models.Client
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

	err := query.Find(&clients).Error
	if err != nil {
		return nil, err
	}

	return clients, nil
}

// Count returns the number of clients matching the filter
func (r *ClientRepositoryImpl) Count(ctx context.Context, filter models.ClientFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Client{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any client matching the filter exists
func (r *ClientRepositoryImpl) Exists(ctx context.Context, filter models.ClientFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ClientRepositoryImpl) applyFilter(db *gorm.DB, filter models.ClientFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.FirstName != nil {
		db = db.Where("first_name ILIKE ?", "%"+*filter.FirstName+"%")
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
