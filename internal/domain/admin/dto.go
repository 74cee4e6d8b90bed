package admin

import "time"

// LoginRequest represents admin login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// LoginResponse represents successful login data
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     AdminInfo `json:"admin"`
}

// SessionResponse is the refreshed view of a still-valid session.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Admin     AdminInfo `json:"admin"`
}

// VerifyRequest confirms the pending code for the signed-in admin.
type VerifyRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// ResendResponse acknowledges a freshly issued code.
type ResendResponse struct {
	Sent bool `json:"sent"`
	// VerificationCode is only populated in development.
	VerificationCode string `json:"verification_code,omitempty"`
}

type VerifyResponse struct {
	Verified bool `json:"verified"`
}

// UpdateProfileRequest changes display fields and, optionally, the password.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	CompanyName  *string `json:"company_name"`
	ProfileImage *string `json:"profile_image"`
	Password     string  `json:"password" binding:"omitempty,max=72"`
}

type UpdateProfileResponse struct {
	Admin          AdminInfo `json:"admin"`
	ReAuthRequired bool      `json:"re_auth_required"`
}

// CreateAdminRequest represents the request for creating a new admin
type CreateAdminRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,max=72"`
	Name      string `json:"name"`
	MasterKey string `json:"master_key,omitempty"`
}

type CreateAdminResponse struct {
	Admin AdminInfo `json:"admin"`
	// VerificationCode is only populated in development.
	VerificationCode string `json:"verification_code,omitempty"`
}

// SettingsResponse is the settings page payload.
type SettingsResponse struct {
	Profile AdminInfo   `json:"profile"`
	Admins  []AdminInfo `json:"admins"`
}
