package businessflow

import (
	"context"
	"fmt"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"gorm.io/gorm"
)

// MessageFlow handles the mail template business logic
type MessageFlow interface {
	CreateMessage(ctx context.Context, req *dto.CreateMessageRequest, metadata *ClientMetadata) (*dto.CreateMessageResponse, error)
	GetMessage(ctx context.Context, req *dto.GetMessageRequest, metadata *ClientMetadata) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, req *dto.ListMessagesRequest, metadata *ClientMetadata) (*dto.ListMessagesResponse, error)
	UpdateMessage(ctx context.Context, req *dto.UpdateMessageRequest, metadata *ClientMetadata) (*dto.UpdateMessageResponse, error)
	DeleteMessage(ctx context.Context, req *dto.DeleteMessageRequest, metadata *ClientMetadata) (*dto.DeleteMessageResponse, error)
}

// MessageFlowImpl implements the mail template business flow
type MessageFlowImpl struct {
	messageRepo repository.MessageRepository
	clientRepo  repository.ClientRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditLogRepository
	db          *gorm.DB
}

// NewMessageFlow creates a new message flow instance
func NewMessageFlow(
	messageRepo repository.MessageRepository,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) MessageFlow {
	return &MessageFlowImpl{
		messageRepo: messageRepo,
		clientRepo:  clientRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		db:          db,
	}
}

func (f *MessageFlowImpl) CreateMessage(ctx context.Context, req *dto.CreateMessageRequest, metadata *ClientMetadata) (*dto.CreateMessageResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		UserID:  user.ID,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if req.ClientUUID != nil {
		client, err := f.resolveClient(ctx, *req.ClientUUID)
		if err != nil {
			return nil, err
		}
		message.ClientID = &client.ID
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.messageRepo.Save(txCtx, message); err != nil {
			return NewBusinessError("MESSAGE_CREATION_FAILED", "Failed to create message", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMessageCreated,
			fmt.Sprintf("Message created: %s", message.Subject), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateMessageResponse{
		Message:  "Message created successfully",
		Template: f.toMessageResponse(ctx, message),
	}, nil
}

func (f *MessageFlowImpl) GetMessage(ctx context.Context, req *dto.GetMessageRequest, metadata *ClientMetadata) (*dto.MessageResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	message, err := f.messageRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LOOKUP_FAILED", "Failed to fetch message", err)
	}
	if message == nil || !CanRetrieve(user, message.UserID) {
		return nil, ErrMessageNotFound
	}

	resp := f.toMessageResponse(ctx, message)
	return &resp, nil
}

func (f *MessageFlowImpl) ListMessages(ctx context.Context, req *dto.ListMessagesRequest, metadata *ClientMetadata) (*dto.ListMessagesResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	limit, offset, err := normalizePagination(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.MessageFilter{}
	if !CanListAll(user) {
		filter.UserID = &user.ID
	}

	messages, err := f.messageRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LIST_FAILED", "Failed to list messages", err)
	}

	total, err := f.messageRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LIST_FAILED", "Failed to count messages", err)
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, f.toMessageResponse(ctx, m))
	}

	return &dto.ListMessagesResponse{
		Templates: items,
		Pagination: dto.PaginationResponse{
			Page:       offset/limit + 1,
			PageSize:   limit,
			TotalItems: total,
		},
	}, nil
}

func (f *MessageFlowImpl) UpdateMessage(ctx context.Context, req *dto.UpdateMessageRequest, metadata *ClientMetadata) (*dto.UpdateMessageResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	message, err := f.messageRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LOOKUP_FAILED", "Failed to fetch message", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if !IsOwner(user, message.UserID) {
		return nil, ErrMessageAccessDenied
	}

	if req.Subject != nil {
		message.Subject = *req.Subject
	}
	if req.Body != nil {
		message.Body = *req.Body
	}
	if req.ClientUUID != nil {
		client, err := f.resolveClient(ctx, *req.ClientUUID)
		if err != nil {
			return nil, err
		}
		message.ClientID = &client.ID
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.messageRepo.Update(txCtx, message); err != nil {
			return NewBusinessError("MESSAGE_UPDATE_FAILED", "Failed to update message", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMessageUpdated,
			fmt.Sprintf("Message updated: %s", message.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdateMessageResponse{
		Message:  "Message updated successfully",
		Template: f.toMessageResponse(ctx, message),
	}, nil
}

func (f *MessageFlowImpl) DeleteMessage(ctx context.Context, req *dto.DeleteMessageRequest, metadata *ClientMetadata) (*dto.DeleteMessageResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	message, err := f.messageRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LOOKUP_FAILED", "Failed to fetch message", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	if !IsOwner(user, message.UserID) {
		return nil, ErrMessageAccessDenied
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.messageRepo.Delete(txCtx, message.ID); err != nil {
			return NewBusinessError("MESSAGE_DELETE_FAILED", "Failed to delete message", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMessageDeleted,
			fmt.Sprintf("Message deleted: %s", message.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.DeleteMessageResponse{Message: "Message deleted successfully"}, nil
}

func (f *MessageFlowImpl) resolveClient(ctx context.Context, clientUUID string) (*models.Client, error) {
	client, err := f.clientRepo.ByUUID(ctx, clientUUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to fetch client", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	return client, nil
}

func (f *MessageFlowImpl) toMessageResponse(ctx context.Context, m *models.Message) dto.MessageResponse {
	resp := dto.MessageResponse{
		UUID:      m.UUID.String(),
		Subject:   m.Subject,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Client != nil {
		uuidStr := m.Client.UUID.String()
		resp.ClientUUID = &uuidStr
	} else if m.ClientID != nil {
		if client, err := f.clientRepo.ByID(ctx, *m.ClientID); err == nil && client != nil {
			uuidStr := client.UUID.String()
			resp.ClientUUID = &uuidStr
		}
	}

	return resp
}
