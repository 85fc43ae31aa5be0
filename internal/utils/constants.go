package utils

import "time"

const (
	AppName = "FleetAdmin"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	PasswordMinLength = 8
	PasswordMaxLength = 128
	BearerPrefix      = "Bearer "

	// File Upload
	MaxImageSize        = 5 * 1024 * 1024 // 5MB
	DefaultProfileImage = "default.png"
	ProfileImageMaxSide = 512

	// Cache
	CacheTTLEntity    = 15 * time.Minute
	CacheTTLDashboard = 1 * time.Minute

	// Response Status
	StatusSuccess = "success"
	StatusError   = "error"
)

// Cache key prefixes
const (
	CacheBusPrefix       = "bus:"
	CacheRoutePrefix     = "route:"
	CacheTerminalPrefix  = "terminal:"
	CacheDashboardPrefix = "dashboard:"
	CacheOTPPrefix       = "otp:"
	CacheOTPVerified     = "otp_verified:"
)

// Context keys set by middleware
const (
	ContextUserID    = "user_id"
	ContextUserRole  = "user_role"
	ContextUserEmail = "user_email"
	ContextRequestID = "request_id"
)

var AllowedImageTypes = []string{".jpg", ".jpeg", ".png", ".gif"}

// Error messages
const (
	ErrInvalidID          = "Invalid ID format"
	ErrInvalidRequestBody = "Invalid request body"
	ErrUnauthorized       = "Unauthorized access"
	ErrForbidden          = "Access forbidden"
	ErrInvalidCredentials = "Invalid email or password"
	ErrInternalServer     = "Internal server error"
	ErrValidationFailed   = "Validation failed"
	ErrFileTooLarge       = "File size too large"
	ErrInvalidFileType    = "Invalid file type"
)
