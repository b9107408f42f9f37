// Package dto contains request and response structures for the API layer
package dto

// APIResponse represents the standard API response structure
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty" validate:"omitempty"`
	Error   any    `json:"error,omitempty" validate:"omitempty"`
}

// ErrorDetail represents error details in API responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty" validate:"omitempty"`
}

// PaginationRequest carries common list paging parameters
type PaginationRequest struct {
	Page     int `json:"page" query:"page" validate:"omitempty,min=1"`
	PageSize int `json:"page_size" query:"page_size" validate:"omitempty,min=1,max=100"`
}

// PaginationResponse reports paging metadata alongside list payloads
type PaginationResponse struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
}
