package models

import (
	"time"

	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a mail recipient owned by exactly one user.
type Client struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_clients_uuid" json:"uuid"`

	UserID uint  `gorm:"not null;index:idx_clients_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	FirstName  string  `gorm:"size:150;not null" json:"first_name"`
	LastName   *string `gorm:"size:150" json:"last_name,omitempty"`
	Patronymic *string `gorm:"size:150" json:"patronymic,omitempty"`
	Email      string  `gorm:"size:255;not null;uniqueIndex:uk_clients_email" json:"email"`
	Comment    *string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_clients_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	Messages []Message `gorm:"foreignKey:ClientID" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// BeforeCreate is called before creating a new record
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (c *Client) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	c.UpdatedAt = &now
	return nil
}

// FullName returns the display name of the client
func (c *Client) FullName() string {
	if c.LastName != nil {
		return c.FirstName + " " + *c.LastName
	}
	return c.FirstName
}

// ClientFilter represents filter criteria for client queries
type ClientFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *uint
	Email         *string
	FirstName     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
