package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       *uint           `gorm:"index:idx_audit_user_id" json:"user_id,omitempty"`
	User         *User           `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Action       string          `gorm:"size:100;not null;index:idx_audit_action" json:"action"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_audit_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionSignupCompleted      = "signup_completed"
	AuditActionLoginSuccessful      = "login_successful"
	AuditActionLoginFailed          = "login_failed"
	AuditActionLogout               = "logout"
	AuditActionClientCreated        = "client_created"
	AuditActionClientCreationFailed = "client_creation_failed"
	AuditActionClientUpdated        = "client_updated"
	AuditActionClientDeleted        = "client_deleted"
	AuditActionMessageCreated       = "message_created"
	AuditActionMessageUpdated       = "message_updated"
	AuditActionMessageDeleted       = "message_deleted"
	AuditActionMailingCreated       = "mailing_created"
	AuditActionMailingUpdated       = "mailing_updated"
	AuditActionMailingDeleted       = "mailing_deleted"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	UserID        *uint
	Action        *string
	Success       *bool
	IPAddress     *string
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
