package businessflow

import (
	"context"
	"fmt"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ClientFlow handles the mail recipient business logic
type ClientFlow interface {
	CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.CreateClientResponse, error)
	GetClient(ctx context.Context, req *dto.GetClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, req *dto.ListClientsRequest, metadata *ClientMetadata) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, req *dto.UpdateClientRequest, metadata *ClientMetadata) (*dto.UpdateClientResponse, error)
	DeleteClient(ctx context.Context, req *dto.DeleteClientRequest, metadata *ClientMetadata) (*dto.DeleteClientResponse, error)
	ExportClients(ctx context.Context, req *dto.ExportClientsRequest, metadata *ClientMetadata) ([]byte, error)
}

// ClientFlowImpl implements the mail recipient business flow
type ClientFlowImpl struct {
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
	auditRepo  repository.AuditLogRepository
	db         *gorm.DB
}

// NewClientFlow creates a new client flow instance
func NewClientFlow(
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) ClientFlow {
	return &ClientFlowImpl{
		clientRepo: clientRepo,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		db:         db,
	}
}

func (f *ClientFlowImpl) CreateClient(ctx context.Context, req *dto.CreateClientRequest, metadata *ClientMetadata) (*dto.CreateClientResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	existing, err := f.clientRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to check client email", err)
	}
	if existing != nil {
		recordAudit(ctx, f.auditRepo, auditEntry(&user.ID, models.AuditActionClientCreationFailed,
			fmt.Sprintf("Duplicate client email: %s", req.Email), false,
			utils.ToPtr(ErrClientEmailAlreadyExists.Error()), metadata))
		return nil, ErrClientEmailAlreadyExists
	}

	client := &models.Client{
		UserID:     user.ID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Email:      req.Email,
		Comment:    req.Comment,
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clientRepo.Save(txCtx, client); err != nil {
			return NewBusinessError("CLIENT_CREATION_FAILED", "Failed to create client", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionClientCreated,
			fmt.Sprintf("Client created: %s", client.Email), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateClientResponse{
		Message: "Client created successfully",
		Client:  toClientResponse(client),
	}, nil
}

func (f *ClientFlowImpl) GetClient(ctx context.Context, req *dto.GetClientRequest, metadata *ClientMetadata) (*dto.ClientResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	client, err := f.clientRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to fetch client", err)
	}
	// Denied reads surface as not found so record existence never leaks.
	if client == nil || !CanRetrieve(user, client.UserID) {
		return nil, ErrClientNotFound
	}

	resp := toClientResponse(client)
	return &resp, nil
}

func (f *ClientFlowImpl) ListClients(ctx context.Context, req *dto.ListClientsRequest, metadata *ClientMetadata) (*dto.ListClientsResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	limit, offset, err := normalizePagination(req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	filter := models.ClientFilter{}
	if !CanListAll(user) {
		filter.UserID = &user.ID
	}

	clients, err := f.clientRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LIST_FAILED", "Failed to list clients", err)
	}

	total, err := f.clientRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LIST_FAILED", "Failed to count clients", err)
	}

	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, toClientResponse(c))
	}

	return &dto.ListClientsResponse{
		Clients: items,
		Pagination: dto.PaginationResponse{
			Page:       offset/limit + 1,
			PageSize:   limit,
			TotalItems: total,
		},
	}, nil
}

func (f *ClientFlowImpl) UpdateClient(ctx context.Context, req *dto.UpdateClientRequest, metadata *ClientMetadata) (*dto.UpdateClientResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	client, err := f.clientRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to fetch client", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	// Writes require ownership. Staff status is not enough here.
	if !IsOwner(user, client.UserID) {
		return nil, ErrClientAccessDenied
	}

	if req.Email != nil && *req.Email != client.Email {
		existing, err := f.clientRepo.ByEmail(ctx, *req.Email)
		if err != nil {
			return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to check client email", err)
		}
		if existing != nil {
			return nil, ErrClientEmailAlreadyExists
		}
		client.Email = *req.Email
	}
	if req.FirstName != nil {
		client.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		client.LastName = req.LastName
	}
	if req.Patronymic != nil {
		client.Patronymic = req.Patronymic
	}
	if req.Comment != nil {
		client.Comment = req.Comment
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clientRepo.Update(txCtx, client); err != nil {
			return NewBusinessError("CLIENT_UPDATE_FAILED", "Failed to update client", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionClientUpdated,
			fmt.Sprintf("Client updated: %s", client.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UpdateClientResponse{
		Message: "Client updated successfully",
		Client:  toClientResponse(client),
	}, nil
}

func (f *ClientFlowImpl) DeleteClient(ctx context.Context, req *dto.DeleteClientRequest, metadata *ClientMetadata) (*dto.DeleteClientResponse, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	client, err := f.clientRepo.ByUUID(ctx, req.UUID)
	if err != nil {
		return nil, NewBusinessError("CLIENT_LOOKUP_FAILED", "Failed to fetch client", err)
	}
	if client == nil {
		return nil, ErrClientNotFound
	}
	if !IsOwner(user, client.UserID) {
		return nil, ErrClientAccessDenied
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.clientRepo.Delete(txCtx, client.ID); err != nil {
			return NewBusinessError("CLIENT_DELETE_FAILED", "Failed to delete client", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionClientDeleted,
			fmt.Sprintf("Client deleted: %s", client.UUID), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.DeleteClientResponse{Message: "Client deleted successfully"}, nil
}

// ExportClients renders the caller's visible recipients as an XLSX workbook.
func (f *ClientFlowImpl) ExportClients(ctx context.Context, req *dto.ExportClientsRequest, metadata *ClientMetadata) ([]byte, error) {
	user, err := loadUser(ctx, f.userRepo, req.UserID)
	if err != nil {
		return nil, err
	}

	filter := models.ClientFilter{}
	if !CanListAll(user) {
		filter.UserID = &user.ID
	}

	clients, err := f.clientRepo.ByFilter(ctx, filter, "created_at ASC", 0, 0)
	if err != nil {
		return nil, NewBusinessError("CLIENT_EXPORT_FAILED", "Failed to list clients for export", err)
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := "Clients"
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, NewBusinessError("CLIENT_EXPORT_FAILED", "Failed to build workbook", err)
	}

	headers := []string{"Email", "First Name", "Last Name", "Patronymic", "Comment", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, NewBusinessError("CLIENT_EXPORT_FAILED", "Failed to build workbook", err)
		}
	}

	for row, c := range clients {
		values := []any{
			c.Email,
			c.FirstName,
			derefOrEmpty(c.LastName),
			derefOrEmpty(c.Patronymic),
			derefOrEmpty(c.Comment),
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, NewBusinessError("CLIENT_EXPORT_FAILED", "Failed to build workbook", err)
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("CLIENT_EXPORT_FAILED", "Failed to serialize workbook", err)
	}

	return buf.Bytes(), nil
}

func toClientResponse(c *models.Client) dto.ClientResponse {
	return dto.ClientResponse{
		UUID:       c.UUID.String(),
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Patronymic: c.Patronymic,
		Email:      c.Email,
		Comment:    c.Comment,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
