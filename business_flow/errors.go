// Package businessflow contains the core business logic and use cases for the mailing administration workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// User-related errors
	ErrUserNotFound           = errors.New("user not found")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrIncorrectPassword      = errors.New("incorrect password")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrAuthenticationRequired = errors.New("authentication required")

	// Client-related errors
	ErrClientNotFound           = errors.New("client not found")
	ErrClientEmailAlreadyExists = errors.New("client email already exists")
	ErrClientAccessDenied       = errors.New("client access denied")

	// Message-related errors
	ErrMessageNotFound     = errors.New("message not found")
	ErrMessageAccessDenied = errors.New("message access denied")

	// Mailing-related errors
	ErrMailingNotFound      = errors.New("mailing not found")
	ErrMailingAccessDenied  = errors.New("mailing access denied")
	ErrInvalidMailingStatus = errors.New("invalid mailing status")
	ErrInvalidPeriodicity   = errors.New("invalid mailing periodicity")
	ErrRecipientNotFound    = errors.New("recipient client not found")

	// Blog-related errors
	ErrBlogPostNotFound = errors.New("blog post not found")

	// Filter errors
	ErrInvalidPage     = errors.New("page must be at least 1")
	ErrInvalidPageSize = errors.New("page size must be between 1 and 100")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func IsUserNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsAccountInactive(err error) bool {
	return errors.Is(err, ErrAccountInactive)
}

func IsIncorrectPassword(err error) bool {
	return errors.Is(err, ErrIncorrectPassword)
}

func IsEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists)
}

func IsAuthenticationRequired(err error) bool {
	return errors.Is(err, ErrAuthenticationRequired)
}

func IsClientNotFound(err error) bool {
	return errors.Is(err, ErrClientNotFound)
}

func IsClientEmailAlreadyExists(err error) bool {
	return errors.Is(err, ErrClientEmailAlreadyExists)
}

func IsClientAccessDenied(err error) bool {
	return errors.Is(err, ErrClientAccessDenied)
}

func IsMessageNotFound(err error) bool {
	return errors.Is(err, ErrMessageNotFound)
}

func IsMessageAccessDenied(err error) bool {
	return errors.Is(err, ErrMessageAccessDenied)
}

func IsMailingNotFound(err error) bool {
	return errors.Is(err, ErrMailingNotFound)
}

func IsMailingAccessDenied(err error) bool {
	return errors.Is(err, ErrMailingAccessDenied)
}

func IsInvalidMailingStatus(err error) bool {
	return errors.Is(err, ErrInvalidMailingStatus)
}

func IsInvalidPeriodicity(err error) bool {
	return errors.Is(err, ErrInvalidPeriodicity)
}

func IsRecipientNotFound(err error) bool {
	return errors.Is(err, ErrRecipientNotFound)
}

func IsBlogPostNotFound(err error) bool {
	return errors.Is(err, ErrBlogPostNotFound)
}

func IsInvalidPage(err error) bool {
	return errors.Is(err, ErrInvalidPage)
}

func IsInvalidPageSize(err error) bool {
	return errors.Is(err, ErrInvalidPageSize)
}
