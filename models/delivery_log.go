package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DeliveryStatus represents the status of one delivery attempt
type DeliveryStatus string

const (
	DeliveryStatusStart  DeliveryStatus = "start"
	DeliveryStatusFinish DeliveryStatus = "finish"
)

// String returns the string representation of the status
func (s DeliveryStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s DeliveryStatus) Valid() bool {
	switch s {
	case DeliveryStatusStart, DeliveryStatusFinish:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for DeliveryStatus
func (s *DeliveryStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = DeliveryStatus(v)
	case []byte:
		*s = DeliveryStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DeliveryStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for DeliveryStatus
func (s DeliveryStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid DeliveryStatus: %s", s)
	}
	return string(s), nil
}

// DeliveryLog records one send attempt for a mailing. Rows are written by
// an external delivery process and never updated here; the API only reads
// them and removes them when the referenced mailing is deleted.
type DeliveryLog struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_delivery_logs_uuid" json:"uuid"`

	UserID uint  `gorm:"not null;index:idx_delivery_logs_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	MailingID *uint    `gorm:"index:idx_delivery_logs_mailing_id" json:"mailing_id,omitempty"`
	Mailing   *Mailing `gorm:"foreignKey:MailingID;references:ID;constraint:OnDelete:CASCADE" json:"mailing,omitempty"`

	SentAt      *time.Time     `json:"sent_at,omitempty"`
	Status      DeliveryStatus `gorm:"type:delivery_status;not null;default:'start';index:idx_delivery_logs_status" json:"status"`
	EmailAnswer bool           `gorm:"not null;default:false" json:"email_answer"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_delivery_logs_created_at" json:"created_at"`
}

func (DeliveryLog) TableName() string {
	return "delivery_logs"
}

// BeforeCreate is called before creating a new record
func (l *DeliveryLog) BeforeCreate(tx *gorm.DB) error {
	if l.UUID == uuid.Nil {
		l.UUID = uuid.New()
	}
	if l.Status == "" {
		l.Status = DeliveryStatusStart
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = utils.UTCNow()
	}
	return nil
}

// DeliveryLogFilter represents filter criteria for delivery log queries
type DeliveryLogFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *uint
	MailingID     *uint
	Status        *DeliveryStatus
	EmailAnswer   *bool
	SentAfter     *time.Time
	SentBefore    *time.Time
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
