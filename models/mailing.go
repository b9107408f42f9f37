package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MailingStatus represents the status of a mailing campaign
type MailingStatus string

const (
	MailingStatusCreated MailingStatus = "created"
	MailingStatusStart   MailingStatus = "start"
	MailingStatusFinish  MailingStatus = "finish"
)

// String returns the string representation of the status
func (s MailingStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s MailingStatus) Valid() bool {
	switch s {
	case MailingStatusCreated, MailingStatusStart, MailingStatusFinish:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for MailingStatus
func (s *MailingStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = MailingStatus(v)
	case []byte:
		*s = MailingStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into MailingStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for MailingStatus
func (s MailingStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid MailingStatus: %s", s)
	}
	return string(s), nil
}

// GetStatusDisplayName returns a human-readable status name
func (s MailingStatus) GetStatusDisplayName() string {
	switch s {
	case MailingStatusCreated:
		return "Created"
	case MailingStatusStart:
		return "Started"
	case MailingStatusFinish:
		return "Finished"
	default:
		return "Unknown"
	}
}

// MailingPeriodicity represents the cadence a scheduler would use. Inert
// data: there is no executor behind it.
type MailingPeriodicity string

const (
	MailingPeriodicityOnceADay   MailingPeriodicity = "once_a_day"
	MailingPeriodicityOnceAWeek  MailingPeriodicity = "once_a_week"
	MailingPeriodicityOnceAMonth MailingPeriodicity = "once_a_month"
)

// String returns the string representation of the periodicity
func (p MailingPeriodicity) String() string {
	return string(p)
}

// Valid checks if the periodicity is valid
func (p MailingPeriodicity) Valid() bool {
	switch p {
	case MailingPeriodicityOnceADay, MailingPeriodicityOnceAWeek, MailingPeriodicityOnceAMonth:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for MailingPeriodicity
func (p *MailingPeriodicity) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*p = MailingPeriodicity(v)
	case []byte:
		*p = MailingPeriodicity(string(v))
	default:
		return fmt.Errorf("cannot scan %T into MailingPeriodicity", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for MailingPeriodicity
func (p MailingPeriodicity) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid MailingPeriodicity: %s", p)
	}
	return string(p), nil
}

// Mailing is a campaign: one message sent to a set of clients on a cadence.
// Status transitions are unconstrained; any status may be set at any time.
type Mailing struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_mailings_uuid" json:"uuid"`

	UserID uint  `gorm:"not null;index:idx_mailings_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"user,omitempty"`

	MessageID *uint    `gorm:"index:idx_mailings_message_id" json:"message_id,omitempty"`
	Message   *Message `gorm:"foreignKey:MessageID;references:ID;constraint:OnDelete:CASCADE" json:"message,omitempty"`

	Recipients []Client `gorm:"many2many:mailing_recipients;constraint:OnDelete:CASCADE" json:"recipients,omitempty"`

	Status      MailingStatus      `gorm:"type:mailing_status;not null;default:'start';index:idx_mailings_status" json:"status"`
	Periodicity MailingPeriodicity `gorm:"type:mailing_periodicity;not null;default:'once_a_day'" json:"periodicity"`
	ScheduledAt *time.Time         `gorm:"index:idx_mailings_scheduled_at" json:"scheduled_at,omitempty"`

	CreatedAt time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_mailings_created_at" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Relations
	DeliveryLogs []DeliveryLog `gorm:"foreignKey:MailingID" json:"delivery_logs,omitempty"`
}

func (Mailing) TableName() string {
	return "mailings"
}

// BeforeCreate is called before creating a new record
func (m *Mailing) BeforeCreate(tx *gorm.DB) error {
	if m.UUID == uuid.Nil {
		m.UUID = uuid.New()
	}
	if m.Status == "" {
		m.Status = MailingStatusStart
	}
	if m.Periodicity == "" {
		m.Periodicity = MailingPeriodicityOnceADay
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utils.UTCNow()
	}
	return nil
}

// BeforeUpdate is called before updating a record
func (m *Mailing) BeforeUpdate(tx *gorm.DB) error {
	now := utils.UTCNow()
	m.UpdatedAt = &now
	return nil
}

// IsActive reports whether the mailing is in the started state
func (m *Mailing) IsActive() bool {
	return m.Status == MailingStatusStart
}

// MailingFilter represents filter criteria for mailing queries
type MailingFilter struct {
	ID              *uint
	UUID            *uuid.UUID
	UserID          *uint
	MessageID       *uint
	Status          *MailingStatus
	Periodicity     *MailingPeriodicity
	ScheduledAfter  *time.Time
	ScheduledBefore *time.Time
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
}
