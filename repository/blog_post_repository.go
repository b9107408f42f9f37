package repository

import (
	"context"

	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPostRepositoryImpl implements the BlogPostRepository interface
type BlogPostRepositoryImpl struct {
	*BaseRepository[models.BlogPost, models.BlogPostFilter]
}

// NewBlogPostRepository creates a new blog post repository
func NewBlogPostRepository(db *gorm.DB) BlogPostRepository {
	return &BlogPostRepositoryImpl{
		BaseRepository: NewBaseRepository[models.BlogPost, models.BlogPostFilter](db),
	}
}

// ByUUID retrieves a blog post by UUID
func (r *BlogPostRepositoryImpl) ByUUID(ctx context.Context, uuidStr string) (*models.BlogPost, error) {
	parsedUUID, err := uuid.Parse(uuidStr)
	if err != nil {
		return nil, err
	}

	filter := models.BlogPostFilter{UUID: &parsedUUID}
	posts, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, nil
	}

	return posts[0], nil
}

// IncrementViews bumps view_count by one in a single UPDATE so concurrent
// detail reads of the same post cannot lose counts.
func (r *BlogPostRepositoryImpl) IncrementViews(ctx context.Context, id uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"view_count": gorm.Expr("view_count + 1"),
			"updated_at": utils.UTCNow(),
		}).Error
}

// ListAll retrieves every blog post
func (r *BlogPostRepositoryImpl) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	return r.ByFilter(ctx, models.BlogPostFilter{}, "created_at DESC", 0, 0)
}

// ByFilter retrieves blog posts based on filter criteria
func (r *BlogPostRepositoryImpl) ByFilter(ctx context.Context, filter models.BlogPostFilter, orderBy string, limit, offset int) ([]*models.BlogPost, error) {
	db := r.getDB(ctx)

	var posts []*models.BlogPost
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

	err := query.Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// Count returns the number of blog posts matching the filter
func (r *BlogPostRepositoryImpl) Count(ctx context.Context, filter models.BlogPostFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.BlogPost{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any blog post matching the filter exists
func (r *BlogPostRepositoryImpl) Exists(ctx context.Context, filter models.BlogPostFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *BlogPostRepositoryImpl) applyFilter(db *gorm.DB, filter models.BlogPostFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Title != nil {
		db = db.Where("title ILIKE ?", "%"+*filter.Title+"%")
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
