package dto

import "time"

// CreateClientRequest represents the request to create a new mail recipient
type CreateClientRequest struct {
	UserID     uint    `json:"-"`
	FirstName  string  `json:"first_name" validate:"required,min=1,max=150"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Patronymic *string `json:"patronymic,omitempty" validate:"omitempty,max=150"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// CreateClientResponse represents the response to create a new mail recipient
type CreateClientResponse struct {
	Message string         `json:"message"`
	Client  ClientResponse `json:"client"`
}

// GetClientRequest represents the request to fetch a single recipient
type GetClientRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// UpdateClientRequest represents the request to update an existing recipient
type UpdateClientRequest struct {
	UUID       string  `json:"-"`
	UserID     uint    `json:"-"`
	FirstName  *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=150"`
	LastName   *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Patronymic *string `json:"patronymic,omitempty" validate:"omitempty,max=150"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Comment    *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// UpdateClientResponse represents the response to update an existing recipient
type UpdateClientResponse struct {
	Message string         `json:"message"`
	Client  ClientResponse `json:"client"`
}

// DeleteClientRequest represents the request to delete a recipient
type DeleteClientRequest struct {
	UUID   string `json:"-"`
	UserID uint   `json:"-"`
}

// DeleteClientResponse represents the response to delete a recipient
type DeleteClientResponse struct {
	Message string `json:"message"`
}

// ListClientsRequest represents the request to list recipients
type ListClientsRequest struct {
	UserID uint `json:"-"`
	PaginationRequest
}

// ListClientsResponse represents the response to list recipients
type ListClientsResponse struct {
	Clients    []ClientResponse   `json:"clients"`
	Pagination PaginationResponse `json:"pagination"`
}

// ExportClientsRequest represents the request to export recipients as a spreadsheet
type ExportClientsRequest struct {
	UserID uint `json:"-"`
}

// ClientResponse represents a recipient in API responses
type ClientResponse struct {
	UUID       string     `json:"uuid"`
	FirstName  string     `json:"first_name"`
	LastName   *string    `json:"last_name,omitempty"`
	Patronymic *string    `json:"patronymic,omitempty"`
	Email      string     `json:"email"`
	Comment    *string    `json:"comment,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
