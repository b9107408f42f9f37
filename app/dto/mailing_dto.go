package dto

import "time"

// CreateMailingRequest represents the request to create a mailing campaign
type CreateMailingRequest struct {
	UserID         uint       `json:"-"`
	MessageUUID    *string    `json:"message_uuid,omitempty" validate:"omitempty,uuid4"`
	RecipientUUIDs []string   `json:"recipient_uuids,omitempty" validate:"omitempty,dive,uuid4"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=created start finish"`
	Periodicity    *string    `json:"periodicity,omitempty" validate:"omitempty,oneof=once_a_day once_a_week once_a_month"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
}

// CreateMailingResponse represents the response to create a mailing campaign
type CreateMailingResponse struct {
	Message string          `json:"message"`
	Mailing MailingResponse `json:"mailing"`
}

// GetMailingRequest represents the request to fetch a single campaign
type GetMailingRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// UpdateMailingRequest represents the request to update a mailing campaign
type UpdateMailingRequest struct {
	UUID           string     `json:"-"`
	UserID         uint       `json:"-"`
	MessageUUID    *string    `json:"message_uuid,omitempty" validate:"omitempty,uuid4"`
	RecipientUUIDs []string   `json:"recipient_uuids,omitempty" validate:"omitempty,dive,uuid4"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=created start finish"`
	Periodicity    *string    `json:"periodicity,omitempty" validate:"omitempty,oneof=once_a_day once_a_week once_a_month"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateMailingResponse represents the response to update a mailing campaign
type UpdateMailingResponse struct {
	Message string          `json:"message"`
	Mailing MailingResponse `json:"mailing"`
}

// DeleteMailingRequest represents the request to delete a campaign
type DeleteMailingRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// DeleteMailingResponse represents the response to delete a campaign
type DeleteMailingResponse struct {
	Message string `json:"message"`
}

// ListMailingsRequest represents the request to list campaigns
type ListMailingsRequest struct {
	UserID uint `json:"-"`
	PaginationRequest
}

// ListMailingsResponse represents the response to list campaigns
type ListMailingsResponse struct {
	Mailings   []MailingResponse  `json:"mailings"`
	Pagination PaginationResponse `json:"pagination"`
}

// ListDeliveryLogsRequest represents the request to list delivery attempts of a campaign
type ListDeliveryLogsRequest struct {
	MailingUUID string `json:"-"`
	UserID      uint   `json:"-"`
	PaginationRequest
}

// ListDeliveryLogsResponse represents the response to list delivery attempts
type ListDeliveryLogsResponse struct {
	Logs       []DeliveryLogResponse `json:"logs"`
	Pagination PaginationResponse    `json:"pagination"`
}

// MailingResponse represents a campaign in API responses
type MailingResponse struct {
	UUID        string           `json:"uuid"`
	Status      string           `json:"status"`
	Periodicity string           `json:"periodicity"`
	MessageUUID *string          `json:"message_uuid,omitempty"`
	Recipients  []ClientResponse `json:"recipients,omitempty"`
	ScheduledAt *time.Time       `json:"scheduled_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

// DeliveryLogResponse represents a delivery attempt in API responses
type DeliveryLogResponse struct {
	UUID        string     `json:"uuid"`
	Status      string     `json:"status"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	EmailAnswer bool       `json:"email_answer"`
	CreatedAt   time.Time  `json:"created_at"`
}
