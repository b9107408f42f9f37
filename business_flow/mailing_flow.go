package businessflow

import (
	"context"
	"fmt"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"gorm.io/gorm"
)

// MailingFlow handles the mailing campaign business logic
type MailingFlow interface {
	CreateMailing(ctx context.Context, req *dto.CreateMailingRequest, metadata *ClientMetadata) (*dto.CreateMailingResponse, error)
	GetMailing(ctx context.Context, req *dto.GetMailingRequest, metadata *ClientMetadata) (*dto.MailingResponse, error)
	ListMailings(ctx context.Context, req *dto.ListMailingsRequest, metadata *ClientMetadata) (*dto.ListMailingsResponse, error)
	UpdateMailing(ctx context.Context, req *dto.UpdateMailingRequest, metadata *ClientMetadata) (*dto.UpdateMailingResponse, error)
	DeleteMailing(ctx context.Context, req *dto.DeleteMailingRequest, metadata *ClientMetadata) (*dto.DeleteMailingResponse, error)
	ListDeliveryLogs(ctx context.Context, req *dto.ListDeliveryLogsRequest, metadata *ClientMetadata) (*dto.ListDeliveryLogsResponse, error)
}

// MailingFlowImpl implements the mailing campaign business flow
type MailingFlowImpl struct {
	mailingRepo  repository.MailingRepository
	messageRepo  repository.MessageRepository
	clientRepo   repository.ClientRepository
	deliveryRepo repository.DeliveryLogRepository
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	db           *gorm.DB
}

// NewMailingFlow creates a new mailing flow instance
func NewMailingFlow(
	mailingRepo repository.MailingRepository,
	messageRepo repository.MessageRepository,
	clientRepo repository.ClientRepository,
	deliveryRepo repository.DeliveryLogRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) MailingFlow {
	return &MailingFlowImpl{
		mailingRepo:  mailingRepo,
		messageRepo:  messageRepo,
		clientRepo:   clientRepo,
		deliveryRepo: deliveryRepo,
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		db:           db,
	}
}

func (f *MailingFlowImpl) CreateMailing(ctx context.Context, req *dto.CreateMailingRequest, metadata *ClientMetadata) (*dto.CreateMailingResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	mailing := &models.Mailing{
		UserID:      user.ID,
		ScheduledAt: req.ScheduledAt,
	}

	if req.Status != nil {
		status := models.MailingStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidMailingStatus
		}
		mailing.Status = status
	}
	if req.Periodicity != nil {
		periodicity := models.MailingPeriodicity(*req.Periodicity)
		if !periodicity.Valid() {
			return nil, ErrInvalidPeriodicity
		}
		mailing.Periodicity = periodicity
	}
	if req.MessageUUID != nil {
		message, err := f.resolveMessage(ctx, *req.MessageUUID)
		if err != nil {
			return nil, err
		}
		mailing.MessageID = &message.ID
	}

	recipients, err := f.resolveRecipients(ctx, req.RecipientUUIDs)
	if err != nil {
		return nil, err
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.mailingRepo.Save(txCtx, mailing); err != nil {
			return NewBusinessError("MAILING_CREATION_FAILED", "Failed to create mailing", err)
		}
		if len(recipients) > 0 {
			if err := f.mailingRepo.ReplaceRecipients(txCtx, mailing, recipients); err != nil {
				return NewBusinessError("MAILING_CREATION_FAILED", "Failed to attach recipients", err)
			}
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMailingCreated,
			fmt.Sprintf("Mailing created: %s", mailing.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateMailingResponse{
		Message: "Mailing created successfully",
		Mailing: f.toMailingResponse(ctx, mailing),
	}, nil
}

func (f *MailingFlowImpl) GetMailing(ctx context.Context, req *dto.GetMailingRequest, metadata *ClientMetadata) (*dto.MailingResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	mailing, err := f.mailingRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MAILING_LOOKUP_FAILED", "Failed to fetch mailing", err)
	}
	if mailing == nil || !CanRetrieve(user, mailing.UserID) {
		return nil, ErrMailingNotFound
	}

	resp := f.toMailingResponse(ctx, mailing)
	return &resp, nil
}

func (f *MailingFlowImpl) ListMailings(ctx context.Context, req *dto.ListMailingsRequest, metadata *ClientMetadata) (*dto.ListMailingsResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	limit, offset, err := normalizePagination(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.MailingFilter{}
	if !CanListAll(user) {
		filter.UserID = &user.ID
	}

	mailings, err := f.mailingRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("MAILING_LIST_FAILED", "Failed to list mailings", err)
	}

	total, err := f.mailingRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("MAILING_LIST_FAILED", "Failed to count mailings", err)
	}

	items := make([]dto.MailingResponse, 0, len(mailings))
	for _, m := range mailings {
		items = append(items, f.toMailingResponse(ctx, m))
	}

	return &dto.ListMailingsResponse{
		Mailings: items,
		Pagination: dto.PaginationResponse{
			Page:       offset/limit + 1,
			PageSize:   limit,
			TotalItems: total,
		},
	}, nil
}

func (f *MailingFlowImpl) UpdateMailing(ctx context.Context, req *dto.UpdateMailingRequest, metadata *ClientMetadata) (*dto.UpdateMailingResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	mailing, err := f.mailingRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MAILING_LOOKUP_FAILED", "Failed to fetch mailing", err)
	}
	if mailing == nil {
		return nil, ErrMailingNotFound
	}
	if !IsOwner(user, mailing.UserID) {
		return nil, ErrMailingAccessDenied
	}

	if req.Status != nil {
		status := models.MailingStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrInvalidMailingStatus
		}
		mailing.Status = status
	}
	if req.Periodicity != nil {
		periodicity := models.MailingPeriodicity(*req.Periodicity)
		if !periodicity.Valid() {
			return nil, ErrInvalidPeriodicity
		}
		mailing.Periodicity = periodicity
	}
	if req.ScheduledAt != nil {
		mailing.ScheduledAt = req.ScheduledAt
	}
	if req.MessageUUID != nil {
		message, err := f.resolveMessage(ctx, *req.MessageUUID)
		if err != nil {
			return nil, err
		}
		mailing.MessageID = &message.ID
		mailing.Message = nil
	}

	var recipients []*models.Client
	if req.RecipientUUIDs != nil {
		recipients, err = f.resolveRecipients(ctx, req.RecipientUUIDs)
		if err != nil {
			return nil, err
		}
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.mailingRepo.Update(txCtx, mailing); err != nil {
			return NewBusinessError("MAILING_UPDATE_FAILED", "Failed to update mailing", err)
		}
		if req.RecipientUUIDs != nil {
			if err := f.mailingRepo.ReplaceRecipients(txCtx, mailing, recipients); err != nil {
				return NewBusinessError("MAILING_UPDATE_FAILED", "Failed to replace recipients", err)
			}
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMailingUpdated,
			fmt.Sprintf("Mailing updated: %s", mailing.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdateMailingResponse{
		Message: "Mailing updated successfully",
		Mailing: f.toMailingResponse(ctx, mailing),
	}, nil
}

func (f *MailingFlowImpl) DeleteMailing(ctx context.Context, req *dto.DeleteMailingRequest, metadata *ClientMetadata) (*dto.DeleteMailingResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	mailing, err := f.mailingRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("MAILING_LOOKUP_FAILED", "Failed to fetch mailing", err)
	}
	if mailing == nil {
		return nil, ErrMailingNotFound
	}
	if !IsOwner(user, mailing.UserID) {
		return nil, ErrMailingAccessDenied
	}

	// Delivery logs and recipient links go with the mailing via FK cascade.
	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.mailingRepo.Delete(txCtx, mailing.ID); err != nil {
			return NewBusinessError("MAILING_DELETE_FAILED", "Failed to delete mailing", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionMailingDeleted,
			fmt.Sprintf("Mailing deleted: %s", mailing.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.DeleteMailingResponse{Message: "Mailing deleted successfully"}, nil
}

func (f *MailingFlowImpl) ListDeliveryLogs(ctx context.Context, req *dto.ListDeliveryLogsRequest, metadata *ClientMetadata) (*dto.ListDeliveryLogsResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	mailing, err := f.mailingRepo.ByUUID(ctx, req.MailingUUID)
	if err != nil {
		return nil, NewBusinessError("MAILING_LOOKUP_FAILED", "Failed to fetch mailing", err)
	}
	if mailing == nil || !CanRetrieve(user, mailing.UserID) {
		return nil, ErrMailingNotFound
	}

	limit, offset, err := normalizePagination(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	logs, err := f.deliveryRepo.ListByMailing(ctx, mailing.ID, limit, offset)
	if err != nil {
		return nil, NewBusinessError("DELIVERY_LOG_LIST_FAILED", "Failed to list delivery logs", err)
	}

	total, err := f.deliveryRepo.Count(ctx, models.DeliveryLogFilter{MailingID: &mailing.ID})
	if err != nil {
		return nil, NewBusinessError("DELIVERY_LOG_LIST_FAILED", "Failed to count delivery logs", err)
	}

	items := make([]dto.DeliveryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.DeliveryLogResponse{
			UUID:        l.UUID.String(),
			Status:      l.Status.String(),
			SentAt:      l.SentAt,
			EmailAnswer: l.EmailAnswer,
			CreatedAt:   l.CreatedAt,
		})
	}

	return &dto.ListDeliveryLogsResponse{
		Logs: items,
		Pagination: dto.PaginationResponse{
			Page:       offset/limit + 1,
			PageSize:   limit,
			TotalItems: total,
		},
	}, nil
}

func (f *MailingFlowImpl) resolveMessage(ctx context.Context, messageUUID string) (*models.Message, error) {
	message, err := f.messageRepo.ByUUID(ctx, messageUUID)
	if err != nil {
		return nil, NewBusinessError("MESSAGE_LOOKUP_FAILED", "Failed to fetch message", err)
	}
	if message == nil {
		return nil, ErrMessageNotFound
	}
	return message, nil
}

func (f *MailingFlowImpl) resolveRecipients(ctx context.Context, uuids []string) ([]*models.Client, error) {
	recipients := make([]*models.Client, 0, len(uuids))
	for _, u := range uuids {
		client, err := f.clientRepo.ByUUID(ctx, u)
		if err != nil {
			return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to fetch recipient", err)
		}
		if client == nil {
			return nil, ErrRecipientNotFound
		}
		recipients = append(recipients, client)
	}
	return recipients, nil
}

func (f *MailingFlowImpl) toMailingResponse(ctx context.Context, m *models.Mailing) dto.MailingResponse {
	resp := dto.MailingResponse{
		UUID:        m.UUID.String(),
		Status:      m.Status.String(),
		Periodicity: m.Periodicity.String(),
		ScheduledAt: m.ScheduledAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.Message != nil {
		uuidStr := m.Message.UUID.String()
		resp.MessageUUID = &uuidStr
	} else if m.MessageID != nil {
		if message, err := f.messageRepo.ByID(ctx, *m.MessageID); err == nil && message != nil {
			uuidStr := message.UUID.String()
			resp.MessageUUID = &uuidStr
		}
	}

	for i := range m.Recipients {
		resp.Recipients = append(resp.Recipients, toClientResponse(&m.Recipients[i]))
	}

	return resp
}
