package repository

import (
	"context"
	"errors"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	*BaseRepository[models.User, models.UserFilter]
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{
		BaseRepository: NewBaseRepository[models.User, models.UserFilter](db),
	}
}

// ByID retrieves a user by ID with groups and their permissions preloaded,
// so the ownership policy can evaluate HasPerm without extra queries.
func (r *UserRepositoryImpl) ByID(ctx context.Context, id uint) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Preload("Groups").
		Preload("Groups.Permissions").
		Last(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// ByEmail retrieves a user by email
func (r *UserRepositoryImpl) ByEmail(ctx context.Context, email string) (*models.User, error) {
	db := r.getDB(ctx)

	var user models.User
	err := db.Preload("Groups").
		Preload("Groups.Permissions").
		Where("email = ?", email).
		Last(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// ByUUID retrieves a user by UUID
func (r *UserRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.User, error) {
	parsedUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.UserFilter{UUID: &parsedUUID}
	users, err := r.ByFilter(ctx, filter, "", 1, 0)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, nil
	}

	return users[0], nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepositoryImpl) UpdateLastLogin(ctx context.Context, userID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"last_login_at": utils.UTCNow(),
			"updated_at":    utils.UTCNow(),
		}).Error
}

// ByFilter retrieves users based on filter criteria
func (r *UserRepositoryImpl) ByFilter(ctx context.Context, filter models.UserFilter, orderBy string, limit, offset int) ([]*models.User, error) {
	db := r.getDB(ctx)

	var users []*models.User
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

	query = query.Preload("Groups").
		Preload("Groups.Permissions")

	err := query.Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// Count returns the number of users matching the filter
func (r *UserRepositoryImpl) Count(ctx context.Context, filter models.UserFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.User{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any user matching the filter exists
func (r *UserRepositoryImpl) Exists(ctx context.Context, filter models.UserFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *UserRepositoryImpl) applyFilter(db *gorm.DB, filter models.UserFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.IsStaff != nil {
		db = db.Where("is_staff = ?", *filter.IsStaff)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
