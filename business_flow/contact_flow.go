package businessflow

import (
	"context"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/rs/zerolog/log"
)

// ContactFlow handles public contact form submissions
type ContactFlow interface {
	SubmitContact(ctx context.Context, req *dto.ContactRequest, metadata *ClientMetadata) (*dto.ContactResponse, error)
}

// ContactFlowImpl implements the contact flow. Submissions are logged and
// acknowledged but not stored or routed anywhere.
type ContactFlowImpl struct{}

// NewContactFlow creates a new contact flow instance
func NewContactFlow() ContactFlow {
	return &ContactFlowImpl{}
}

func (f *ContactFlowImpl) SubmitContact(ctx context.Context, req *dto.ContactRequest, metadata *ClientMetadata) (*dto.ContactResponse, error) {
	event := log.Info().
		Str("name", req.Name).
		Str("phone", req.Phone).
		Str("message", req.Message)
	if metadata != nil && metadata.RequestID != "" {
		event = event.Str("request_id", metadata.RequestID)
	}
	event.Msg("contact form submitted")

	return &dto.ContactResponse{Message: "Thank you, we will get back to you"}, nil
}
