package services

import (
	"context"
	"errors"
	"net/http"

	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/identity"
	"fleetadmin/pkg/logger"
)

const (
	msgIdentityAccountNotFound = "User account not found"
	msgIdentityEmailInUse      = "This email is already in use by another account"
	msgIdentityInvalidEmail    = "Invalid email format"
	msgIdentityInvalidToken    = "Invalid or expired ID token"
)

type IdentityService interface {
	ListUsers(ctx context.Context) ([]identity.Document, error)
	GetUser(ctx context.Context, id string) (identity.Document, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) (identity.Document, error)
	DeleteUser(ctx context.Context, id string) error
	VerifyToken(ctx context.Context, req *validators.VerifyTokenRequest) (*identity.Token, error)
	ChangeEmail(ctx context.Context, req *validators.ChangeEmailRequest) error
}

type identityService struct {
	provider identity.Provider
	otp      OTPService
	logger   *logger.Logger
}

func NewIdentityService(provider identity.Provider, otp OTPService, log *logger.Logger) IdentityService {
	if provider == nil {
		provider = identity.Disabled{}
	}
	return &identityService{provider: provider, otp: otp, logger: log}
}

// identityErr maps provider failures onto HTTP errors.
func identityErr(err error) error {
	switch {
	case errors.Is(err, identity.ErrNotConfigured):
		return utils.NewAppError(http.StatusServiceUnavailable, identity.ErrNotConfigured.Error())
	case errors.Is(err, identity.ErrUserNotFound):
		return utils.NewNotFoundError(msgIdentityAccountNotFound)
	case errors.Is(err, identity.ErrEmailExists):
		return utils.NewConflictError(msgIdentityEmailInUse)
	case errors.Is(err, identity.ErrInvalidEmail):
		return utils.NewBadRequestError(msgIdentityInvalidEmail)
	case errors.Is(err, identity.ErrInvalidToken):
		return utils.NewUnauthorizedError(msgIdentityInvalidToken)
	default:
		return utils.WrapInternal(err)
	}
}

func (s *identityService) ListUsers(ctx context.Context) ([]identity.Document, error) {
	users, err := s.provider.ListUsers(ctx)
	if err != nil {
		return nil, identityErr(err)
	}
	if users == nil {
		users = []identity.Document{}
	}
	return users, nil
}

func (s *identityService) GetUser(ctx context.Context, id string) (identity.Document, error) {
	user, err := s.provider.GetUser(ctx, id)
	if err != nil {
		return nil, identityErr(err)
	}
	return user, nil
}

func (s *identityService) UpdateUser(ctx context.Context, id string, data map[string]interface{}) (identity.Document, error) {
	if len(data) == 0 {
		return nil, utils.NewBadRequestError("No fields to update")
	}
	user, err := s.provider.UpdateUser(ctx, id, data)
	if err != nil {
		return nil, identityErr(err)
	}

	s.logger.WithContext(ctx).WithField("firebase_user", id).Info("Firebase user updated")
	return user, nil
}

func (s *identityService) DeleteUser(ctx context.Context, id string) error {
	if err := s.provider.DeleteUser(ctx, id); err != nil {
		return identityErr(err)
	}

	s.logger.WithContext(ctx).WithField("firebase_user", id).Info("Firebase user deleted")
	return nil
}

func (s *identityService) VerifyToken(ctx context.Context, req *validators.VerifyTokenRequest) (*identity.Token, error) {
	token, err := s.provider.VerifyIDToken(ctx, req.IDToken)
	if err != nil {
		return nil, identityErr(err)
	}
	return token, nil
}

// ChangeEmail requires a fresh change_email OTP verification for the new
// address. The verification is consumed only after the provider accepts it.
func (s *identityService) ChangeEmail(ctx context.Context, req *validators.ChangeEmailRequest) error {
	if _, disabled := s.provider.(identity.Disabled); disabled {
		return identityErr(identity.ErrNotConfigured)
	}
	if err := s.otp.CheckVerification(ctx, validators.PurposeChangeEmail, req.NewEmail); err != nil {
		return err
	}

	if err := s.provider.UpdateEmail(ctx, req.UID, req.NewEmail); err != nil {
		return identityErr(err)
	}

	s.otp.ClearVerification(ctx, validators.PurposeChangeEmail, req.NewEmail)
	s.logger.WithContext(ctx).WithField("firebase_user", req.UID).Info("Firebase user email changed")
	return nil
}
