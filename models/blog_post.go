package models

import (
	"time"

	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is a public article. ViewCount grows by one on every detail
// read, with no deduplication; the increment must be a single atomic
// update so concurrent reads do not lose counts.
type BlogPost struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_blog_posts_uuid" json:"uuid"`

	Title     string `gorm:"size:255;not null" json:"title"`
	Body      string `gorm:"type:text;not null" json:"body"`
	ViewCount int64  `gorm:"not null;default:0" json:"view_count"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_blog_posts_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate is called before creating a new record
func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.UUID == uuid.Nil {
		b.UUID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BlogPostFilter represents filter criteria for blog post queries
type BlogPostFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Title         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
