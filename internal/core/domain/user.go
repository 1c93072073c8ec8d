package domain

import "time"

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// GoogleUserInfo is the subset of the Google userinfo payload the app consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// User represents a registered user of the application.
type User struct {
	UserID           string       `json:"userID"` // Primary Key (UUID)
	Name             string       `json:"name"`
	Email            string       `json:"email"` // Unique, used for login
	PasswordHash     string       `json:"-"`     // bcrypt hash; empty for OAuth-only accounts
	AuthProvider     AuthProvider `json:"authProvider"`
	ProviderUserID   string       `json:"-"` // Subject ID at the external provider
	RefreshTokenHash *string      `json:"-"` // Hash of the currently valid refresh token
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete marker
}
