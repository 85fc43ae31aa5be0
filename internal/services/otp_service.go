package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fleetadmin/internal/repositories/interfaces"
	"fleetadmin/internal/utils"
	"fleetadmin/internal/validators"
	"fleetadmin/pkg/cache"
	"fleetadmin/pkg/email"
	"fleetadmin/pkg/logger"
	"fleetadmin/pkg/sms"
)

const (
	msgOTPUnavailable     = "OTP service is not available."
	msgOTPInvalid         = "Invalid or expired verification code."
	msgOTPTooManyAttempts = "Too many attempts. Please request a new code."
	msgOTPNotVerified     = "Verification required. Please verify the OTP first."
	msgEmailUnavailable   = "Email delivery is not configured."
	msgSMSUnavailable     = "SMS delivery is not configured."
)

type OTPConfig struct {
	Length         int
	Expiry         time.Duration
	MaxAttempts    int
	VerifiedWindow time.Duration
}

type OTPSendResult struct {
	Target    string `json:"target"`
	Purpose   string `json:"purpose"`
	Channel   string `json:"channel"`
	ExpiresIn int64  `json:"expires_in"`
}

type OTPStatus struct {
	Available   bool   `json:"available"`
	Email       bool   `json:"email"`
	SMS         bool   `json:"sms"`
	SMSProvider string `json:"sms_provider,omitempty"`
}

type OTPService interface {
	SendOTP(ctx context.Context, req *validators.SendOTPRequest) (*OTPSendResult, error)
	VerifyOTP(ctx context.Context, req *validators.VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req *validators.ResetPasswordRequest) error
	// CheckVerification succeeds when target verified a code for purpose
	// within the verified window.
	CheckVerification(ctx context.Context, purpose, target string) error
	ClearVerification(ctx context.Context, purpose, target string)
	Status() *OTPStatus
}

type otpRecord struct {
	CodeHash  string    `json:"code_hash"`
	CreatedAt time.Time `json:"created_at"`
}

type otpVerification struct {
	VerifiedAt time.Time `json:"verified_at"`
}

type otpService struct {
	cache    CacheService
	userRepo interfaces.UserRepository
	mailer   email.Sender
	sms      sms.SMSProvider
	config   OTPConfig
	logger   *logger.Logger
	now      func() time.Time
}

// NewOTPService wires code storage and delivery. cache, mailer and smsProvider
// may each be nil; the matching operations then report that they are not
// configured.
func NewOTPService(
	cacheService CacheService,
	userRepo interfaces.UserRepository,
	mailer email.Sender,
	smsProvider sms.SMSProvider,
	config OTPConfig,
	log *logger.Logger,
) OTPService {
	return &otpService{
		cache:    cacheService,
		userRepo: userRepo,
		mailer:   mailer,
		sms:      smsProvider,
		config:   config,
		logger:   log,
		now:      time.Now,
	}
}

func codeKey(purpose, target string) string {
	return fmt.Sprintf("%s%s:%s", utils.CacheOTPPrefix, purpose, target)
}

func attemptsKey(purpose, target string) string {
	return fmt.Sprintf("%sattempts:%s:%s", utils.CacheOTPPrefix, purpose, target)
}

func verifiedKey(purpose, target string) string {
	return fmt.Sprintf("%s%s:%s", utils.CacheOTPVerified, purpose, target)
}

func (s *otpService) SendOTP(ctx context.Context, req *validators.SendOTPRequest) (*OTPSendResult, error) {
	if s.cache == nil {
		return nil, utils.NewAppError(http.StatusServiceUnavailable, msgOTPUnavailable)
	}

	target := req.Target()
	channel := "email"
	if req.Email == "" {
		channel = "sms"
	}
	switch {
	case channel == "email" && s.mailer == nil:
		return nil, utils.NewAppError(http.StatusServiceUnavailable, msgEmailUnavailable)
	case channel == "sms" && s.sms == nil:
		return nil, utils.NewAppError(http.StatusServiceUnavailable, msgSMSUnavailable)
	}

	if req.Purpose == validators.PurposeResetPassword {
		if channel != "email" {
			return nil, utils.NewBadRequestError("Password reset codes are sent by email")
		}
		if _, err := s.userRepo.GetByEmail(ctx, target); err != nil {
			return nil, lookupErr(err, msgUserNotFound)
		}
	}

	code, err := utils.GenerateNumericCode(s.config.Length)
	if err != nil {
		return nil, utils.WrapInternal(err)
	}

	record := otpRecord{CodeHash: utils.HashData(code), CreatedAt: s.now().UTC()}
	if err := s.cache.Set(ctx, codeKey(req.Purpose, target), record, s.config.Expiry); err != nil {
		return nil, utils.WrapInternal(fmt.Errorf("failed to store otp: %w", err))
	}
	if err := s.cache.Delete(ctx, attemptsKey(req.Purpose, target), verifiedKey(req.Purpose, target)); err != nil {
		s.logger.WithError(err).Warn("Failed to reset otp state")
	}

	if err := s.deliver(ctx, channel, target, code); err != nil {
		_ = s.cache.Delete(ctx, codeKey(req.Purpose, target))
		return nil, utils.WrapInternal(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"purpose": req.Purpose,
		"channel": channel,
	}).Info("OTP sent")

	return &OTPSendResult{
		Target:    target,
		Purpose:   req.Purpose,
		Channel:   channel,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
	}, nil
}

func (s *otpService) deliver(ctx context.Context, channel, target, code string) error {
	minutes := int(s.config.Expiry.Minutes())
	text := fmt.Sprintf("Your %s verification code is %s. It expires in %d minutes.", utils.AppName, code, minutes)

	if channel == "email" {
		return s.mailer.Send(ctx, &email.Message{
			To:      target,
			Subject: fmt.Sprintf("%s verification code", utils.AppName),
			Body:    text,
		})
	}

	_, err := s.sms.SendSMS(ctx, &sms.SMSRequest{To: target, Message: text, Type: "transactional"})
	return err
}

// VerifyOTP compares the code in constant time. Every call counts against the
// attempt limit; exceeding it discards the code.
func (s *otpService) VerifyOTP(ctx context.Context, req *validators.VerifyOTPRequest) error {
	if s.cache == nil {
		return utils.NewAppError(http.StatusServiceUnavailable, msgOTPUnavailable)
	}

	key := codeKey(req.Purpose, req.Target)
	var record otpRecord
	if err := s.cache.Get(ctx, key, &record); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return utils.NewBadRequestError(msgOTPInvalid)
		}
		return utils.WrapInternal(err)
	}

	counter := attemptsKey(req.Purpose, req.Target)
	attempts, err := s.cache.Increment(ctx, counter)
	if err != nil {
		return utils.WrapInternal(err)
	}
	if attempts == 1 {
		ttl, err := s.cache.GetTTL(ctx, key)
		if err != nil || ttl <= 0 {
			ttl = s.config.Expiry
		}
		if err := s.cache.SetExpire(ctx, counter, ttl); err != nil {
			s.logger.WithError(err).Warn("Failed to expire otp attempt counter")
		}
	}
	if attempts > int64(s.config.MaxAttempts) {
		_ = s.cache.Delete(ctx, key, counter)
		return utils.NewAppError(http.StatusTooManyRequests, msgOTPTooManyAttempts)
	}

	if subtle.ConstantTimeCompare([]byte(record.CodeHash), []byte(utils.HashData(req.Code))) != 1 {
		return utils.NewBadRequestError(msgOTPInvalid)
	}

	if err := s.cache.Delete(ctx, key, counter); err != nil {
		s.logger.WithError(err).Warn("Failed to clear used otp")
	}
	marker := otpVerification{VerifiedAt: s.now().UTC()}
	if err := s.cache.Set(ctx, verifiedKey(req.Purpose, req.Target), marker, s.config.VerifiedWindow); err != nil {
		return utils.WrapInternal(err)
	}
	return nil
}

func (s *otpService) CheckVerification(ctx context.Context, purpose, target string) error {
	if s.cache == nil {
		return utils.NewAppError(http.StatusServiceUnavailable, msgOTPUnavailable)
	}

	var marker otpVerification
	if err := s.cache.Get(ctx, verifiedKey(purpose, target), &marker); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return utils.NewForbiddenError(msgOTPNotVerified)
		}
		return utils.WrapInternal(err)
	}
	if s.now().Sub(marker.VerifiedAt) > s.config.VerifiedWindow {
		return utils.NewForbiddenError(msgOTPNotVerified)
	}
	return nil
}

func (s *otpService) ClearVerification(ctx context.Context, purpose, target string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, verifiedKey(purpose, target)); err != nil {
		s.logger.WithError(err).Warn("Failed to consume otp verification")
	}
}

func (s *otpService) ResetPassword(ctx context.Context, req *validators.ResetPasswordRequest) error {
	if err := s.CheckVerification(ctx, validators.PurposeResetPassword, req.Email); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return lookupErr(err, msgUserNotFound)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return utils.WrapInternal(err)
	}
	if _, err := s.userRepo.Update(ctx, user.ID, map[string]interface{}{"password": hash}); err != nil {
		return lookupErr(err, msgUserNotFound)
	}

	s.ClearVerification(ctx, validators.PurposeResetPassword, req.Email)
	s.logger.WithUserID(user.ID).Info("Password reset")
	return nil
}

func (s *otpService) Status() *OTPStatus {
	status := &OTPStatus{
		Available: s.cache != nil,
		Email:     s.mailer != nil,
		SMS:       s.sms != nil,
	}
	if s.sms != nil {
		status.SMSProvider = s.sms.Name()
	}
	return status
}
