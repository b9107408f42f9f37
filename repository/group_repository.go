package repository

import (
	"context"
	"errors"

	"github.com/dpetrovsky/mailhub/models"
	"gorm.io/gorm"
)

// GroupRepositoryImpl implements the GroupRepository interface
type GroupRepositoryImpl struct {
	*BaseRepository[models.Group, models.GroupFilter]
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &GroupRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Group, models.GroupFilter](db),
	}
}

// ByName retrieves a group by its unique name
func (r *GroupRepositoryImpl) ByName(ctx context.Context, name string) (*models.Group, error) {
	db := r.getDB(ctx)

	var group models.Group
	err := db.Preload("Permissions").
		Where("name = ?", name).
		Last(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &group, nil
}

// AddUser adds a user to a group
func (r *GroupRepositoryImpl) AddUser(ctx context.Context, groupID, userID uint) error {
	db := r.getDB(ctx)
	return db.Exec(
		"INSERT INTO user_groups (group_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		groupID, userID,
	).Error
}

// ByFilter retrieves groups based on filter criteria
func (r *GroupRepositoryImpl) ByFilter(ctx context.Context, filter models.GroupFilter, orderBy string, limit, offset int) ([]*models.Group, error) {
	db := r.getDB(ctx)

	var groups []*models.Group
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

	query = query.Preload("Permissions")

	err := query.Find(&groups).Error
	if err != nil {
		return nil, err
	}

	return groups, nil
}

// Count returns the number of groups matching the filter
func (r *GroupRepositoryImpl) Count(ctx context.Context, filter models.GroupFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Group{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any group matching the filter exists
func (r *GroupRepositoryImpl) Exists(ctx context.Context, filter models.GroupFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *GroupRepositoryImpl) applyFilter(db *gorm.DB, filter models.GroupFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Name != nil {
		db = db.Where("name = ?", *filter.Name)
	}

	return db
}
