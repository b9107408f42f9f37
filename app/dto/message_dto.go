package dto

import "time"

// CreateMessageRequest represents the request to create a mail template
type CreateMessageRequest struct {
	UserID     uint    `json:"-"`
	Subject    string  `json:"subject" validate:"required,min=1,max=255"`
	Body       string  `json:"body" validate:"required,min=1"`
	ClientUUID *string `json:"client_uuid,omitempty" validate:"omitempty,uuid4"`
}

// CreateMessageResponse represents the response to create a mail template
type CreateMessageResponse struct {
	Message  string          `json:"message"`
	Template MessageResponse `json:"template"`
}

// GetMessageRequest represents the request to fetch a single template
type GetMessageRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// UpdateMessageRequest represents the request to update a mail template
type UpdateMessageRequest struct {
	UUID       string  `json:"-"`
	UserID     uint    `json:"-"`
	Subject    *string `json:"subject,omitempty" validate:"omitempty,min=1,max=255"`
	Body       *string `json:"body,omitempty" validate:"omitempty,min=1"`
	ClientUUID *string `json:"client_uuid,omitempty" validate:"omitempty,uuid4"`
}

// UpdateMessageResponse represents the response to update a mail template
type UpdateMessageResponse struct {
	Message  string          `json:"message"`
	Template MessageResponse `json:"template"`
}

// DeleteMessageRequest represents the request to delete a template
type DeleteMessageRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// DeleteMessageResponse represents the response to delete a template
type DeleteMessageResponse struct {
	Message string `json:"message"`
}

// ListMessagesRequest represents the request to list templates
type ListMessagesRequest struct {
	UserID uint `json:"-"`
	PaginationRequest
}

// ListMessagesResponse represents the response to list templates
type ListMessagesResponse struct {
	Templates  []MessageResponse  `json:"templates"`
	Pagination PaginationResponse `json:"pagination"`
}

// MessageResponse represents a mail template in API responses
type MessageResponse struct {
	UUID       string     `json:"uuid"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	ClientUUID *string    `json:"client_uuid,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
