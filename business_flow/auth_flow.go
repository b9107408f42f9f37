package businessflow

import (
	"context"
	"fmt"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/app/services"
	"github.com/dpetrovsky/mailhub/models"
	"github.com/dpetrovsky/mailhub/repository"
	"github.com/dpetrovsky/mailhub/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles registration, login and logout
type AuthFlow interface {
	Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error)
}

// AuthFlowImpl implements the authentication business flow
type AuthFlowImpl struct {
	userRepo     repository.UserRepository
	auditRepo    repository.AuditLogRepository
	tokenService services.TokenService
	db           *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:     userRepo,
		auditRepo:    auditRepo,
		tokenService: tokenService,
		db:           db,
	}
}

func (f *AuthFlowImpl) Signup(ctx context.Context, req *dto.SignupRequest, metadata *ClientMetadata) (*dto.SignupResponse, error) {
	existing, err := f.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to check email", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewBusinessError("PASSWORD_HASH_FAILED", "Failed to hash password", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsStaff:      utils.ToPtr(false),
		IsActive:     utils.ToPtr(true),
		CreatedAt:    utils.UTCNow(),
		UpdatedAt:    utils.UTCNow(),
	}

	err = repository.WithTransaction(ctx, f.db, func(txCtx context.Context) error {
		if err := f.userRepo.Save(txCtx, user); err != nil {
			return NewBusinessError("SIGNUP_FAILED", "Failed to create user", err)
		}
		recordAudit(txCtx, f.auditRepo, auditEntry(&user.ID, models.AuditActionSignupCompleted,
			fmt.Sprintf("User registered: %s", user.Email), true, nil, metadata))
		return nil
	})
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := f.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	return &dto.SignupResponse{
		Message:      "Account created successfully",
		User:         toUserInfo(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (f *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	user, err := f.userRepo.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, NewBusinessError("USER_LOOKUP_FAILED", "Failed to fetch user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !utils.IsTrue(user.IsActive) {
		return nil, ErrAccountInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		recordAudit(ctx, f.auditRepo, auditEntry(&user.ID, models.AuditActionLoginFailed,
			"Incorrect password", false, utils.ToPtr(ErrIncorrectPassword.Error()), metadata))
		return nil, ErrIncorrectPassword
	}

	if err := f.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, NewBusinessError("LOGIN_FAILED", "Failed to record login", err)
	}

	accessToken, refreshToken, err := f.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	recordAudit(ctx, f.auditRepo, auditEntry(&user.ID, models.AuditActionLoginSuccessful,
		fmt.Sprintf("Login: %s", user.Email), true, nil, metadata))

	return &dto.LoginResponse{
		Message:      "Login successful",
		User:         toUserInfo(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (f *AuthFlowImpl) Logout(ctx context.Context, req *dto.LogoutRequest, metadata *ClientMetadata) (*dto.LogoutResponse, error) {
	if err := f.tokenService.RevokeToken(ctx, req.Token); err != nil {
		return nil, NewBusinessError("LOGOUT_FAILED", "Failed to revoke token", err)
	}

	recordAudit(ctx, f.auditRepo, auditEntry(&req.UserID, models.AuditActionLogout,
		"Logout", true, nil, metadata))

	return &dto.LogoutResponse{Message: "Logged out successfully"}, nil
}

func toUserInfo(u *models.User) dto.UserInfo {
	info := dto.UserInfo{
		UUID:      u.UUID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   utils.IsTrue(u.IsStaff),
	}
	return info
}
