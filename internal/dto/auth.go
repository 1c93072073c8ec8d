package dto

// RegisterRequest defines the data needed to register a local user.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued access token; the refresh token travels in
// an HTTP-only cookie.
type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"` // Always "Bearer"
	ExpiresIn   int64        `json:"expiresIn"` // Seconds until access token expiry
	User        UserResponse `json:"user"`
}
