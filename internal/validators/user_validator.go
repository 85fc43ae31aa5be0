package validators

import (
	"strings"

	"fleetadmin/internal/utils"
)

type SignupRequest struct {
	FirstName  string `json:"f_name" validate:"required,min=1,max=50"`
	LastName   string `json:"l_name" validate:"required,min=1,max=50"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"omitempty,phone_number"`
	Password   string `json:"password" validate:"required,max=128,strong_password"`
	FirebaseID string `json:"firebase_id" validate:"omitempty,max=128"`
}

// CreateUserRequest is used by super admins to provision staff accounts.
type CreateUserRequest struct {
	SignupRequest
	Role   string `json:"role" validate:"required,user_role"`
	Status string `json:"status" validate:"omitempty,user_status"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"f_name" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"l_name" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,phone_number"`
	Password  *string `json:"password" validate:"omitempty,max=128,strong_password"`
	Role      *string `json:"role" validate:"omitempty,user_role"`
	Status    *string `json:"status" validate:"omitempty,user_status"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func ValidateSignup(req *SignupRequest) error {
	normalizeSignup(req)
	return Validate(req)
}

func ValidateCreateUser(req *CreateUserRequest) error {
	normalizeSignup(&req.SignupRequest)
	return Validate(req)
}

func ValidateUpdateUser(req *UpdateUserRequest) error {
	trimPtr(req.FirstName)
	trimPtr(req.LastName)
	trimPtr(req.Phone)
	if req.Email != nil {
		*req.Email = utils.NormalizeEmail(*req.Email)
	}
	return Validate(req)
}

func ValidateLogin(req *LoginRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	return Validate(req)
}

func normalizeSignup(req *SignupRequest) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = utils.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
}

// OTP purposes
const (
	PurposeResetPassword = "reset_password"
	PurposeChangeEmail   = "change_email"
	PurposeVerify        = "verify"
)

type SendOTPRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,phone_number"`
	Purpose string `json:"purpose" validate:"required,oneof=reset_password change_email verify"`
}

// Target is the address the code is bound to.
func (r *SendOTPRequest) Target() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Phone
}

type VerifyOTPRequest struct {
	Target  string `json:"target" validate:"required,max=254"`
	Purpose string `json:"purpose" validate:"required,oneof=reset_password change_email verify"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,max=128,strong_password"`
}

func ValidateSendOTP(req *SendOTPRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Email == "" && req.Phone == "" {
		return utils.NewBadRequestError("email or phone is required")
	}
	return Validate(req)
}

func ValidateVerifyOTP(req *VerifyOTPRequest) error {
	req.Target = NormalizeTarget(req.Target)
	req.Code = strings.TrimSpace(req.Code)
	return Validate(req)
}

func ValidateResetPassword(req *ResetPasswordRequest) error {
	req.Email = utils.NormalizeEmail(req.Email)
	return Validate(req)
}

// NormalizeTarget lowercases email targets and trims phone targets.
func NormalizeTarget(target string) string {
	if strings.Contains(target, "@") {
		return utils.NormalizeEmail(target)
	}
	return strings.TrimSpace(target)
}

type ChangeEmailRequest struct {
	UID      string `json:"uid" validate:"required,max=128"`
	NewEmail string `json:"newEmail" validate:"required,email"`
}

type VerifyTokenRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

func ValidateChangeEmail(req *ChangeEmailRequest) error {
	req.UID = strings.TrimSpace(req.UID)
	req.NewEmail = utils.NormalizeEmail(req.NewEmail)
	return Validate(req)
}
