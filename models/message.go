package models

import (
	"time"

	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a mailing template: a subject plus a body, optionally tied to
// one client, owned by one user.
type Message struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_messages_uuid" json:"uuid"`

	UserID uint  `gorm:"not null;index:idx_messages_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	Subject string `gorm:"size:150;not null" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`

	ClientID *uint   `gorm:"index:idx_messages_client_id" json:"client_id,omitempty"`
	Client   *Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"client,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_messages_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// BeforeCreate is called before creating a new record
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (m *Message) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	m.UpdatedAt = &now
	return nil
}

// MessageFilter represents filter criteria for message queries
type MessageFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *uint
	ClientID      *uint
	Subject       *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
