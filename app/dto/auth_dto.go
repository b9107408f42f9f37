package dto

// SignupRequest represents the request to register a new account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"required,min=1,max=150"`
	LastName  string `json:"last_name" validate:"omitempty,max=150"`
}

// SignupResponse represents the response after successful registration
type SignupResponse struct {
	Message      string   `json:"message"`
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// LoginRequest represents the request to authenticate
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Message      string   `json:"message"`
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
}

// LogoutRequest represents the request to revoke the current session
type LogoutRequest struct {
	UserID uint   `json:"-"`
	Token  string `json:"-"`
}

// LogoutResponse represents the response after logout
type LogoutResponse struct {
	Message string `json:"message"`
}

// UserInfo represents user data exposed through the API
type UserInfo struct {
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	IsStaff   bool   `json:"is_staff"`
}
