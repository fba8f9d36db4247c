package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/sritek/hospital-ops-sub000/domain"
)

// OtpConfig carries the code shape and budget limits
type OtpConfig struct {
	Length      int
	TTL         time.Duration
	MaxAttempts int
}

// OtpServiceImpl implements domain.OtpService
type OtpServiceImpl struct {
	otpRepo         domain.OtpRepository
	notificationSvc domain.NotificationService
	logger          *zap.Logger
	config          OtpConfig
}

// NewOtpService creates a new OTP service
func NewOtpService(
	otpRepo domain.OtpRepository,
	notificationSvc domain.NotificationService,
	logger *zap.Logger,
	config OtpConfig,
) domain.OtpService {
	return &OtpServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		logger:          logger,
		config:          config,
	}
}

// Request implements domain.OtpService. Storing the code and delivering
// it are deliberately decoupled: once persisted, a failed SMS is logged
// and the call still succeeds, since the code can be resent.
func (s *OtpServiceImpl) Request(ctx context.Context, phone string, purpose domain.OtpPurpose) error {
	if !purpose.Valid() {
		return domain.NewValidationError().Add("purpose", "unknown otp purpose").ErrOrNil()
	}

	ok, retryAfter, err := s.otpRepo.ThrottleSend(ctx, phone, purpose)
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: retry in %ds", domain.ErrOtpThrottled, int(retryAfter.Seconds()))
	}

	code, err := s.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate otp code: %w", err)
	}

	now := time.Now().UTC()
	otp := &domain.OtpCode{
		Phone:     phone,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: now.Add(s.config.TTL),
		CreatedAt: now,
	}
	if err := s.otpRepo.Store(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.TTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		s.logger.Warn("otp delivery failed",
			zap.String("phone", domain.MaskPhone(phone)),
			zap.String("purpose", string(purpose)),
			zap.Error(err),
		)
	}

	return nil
}

// Verify implements domain.OtpService. The attempt counter moves on
// every call before the code is compared, so guesses spend the budget
// whether or not they match.
func (s *OtpServiceImpl) Verify(ctx context.Context, phone string, purpose domain.OtpPurpose, code string) error {
	if !purpose.Valid() {
		return domain.NewValidationError().Add("purpose", "unknown otp purpose").ErrOrNil()
	}

	attempts, err := s.otpRepo.IncrementAttempts(ctx, phone, purpose)
	if err != nil {
		return fmt.Errorf("failed to increment attempts: %w", err)
	}
	if attempts > s.config.MaxAttempts {
		if err := s.otpRepo.Delete(ctx, phone, purpose); err != nil {
			s.logger.Warn("failed to discard exhausted otp", zap.Error(err))
		}
		return domain.ErrOtpExhausted
	}

	otp, err := s.otpRepo.Find(ctx, phone, purpose)
	if err != nil {
		if errors.Is(err, domain.ErrOtpNotFound) {
			return domain.ErrOtpNotFound
		}
		return fmt.Errorf("failed to load otp: %w", err)
	}

	if otp.IsExpired(time.Now()) {
		if err := s.otpRepo.Delete(ctx, phone, purpose); err != nil {
			s.logger.Warn("failed to discard expired otp", zap.Error(err))
		}
		return domain.ErrOtpExpired
	}

	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(code)) != 1 {
		return domain.ErrOtpInvalid
	}

	// Consume: a code verifies exactly once.
	if err := s.otpRepo.Delete(ctx, phone, purpose); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	return nil
}

// generateCode draws each digit from crypto/rand
func (s *OtpServiceImpl) generateCode() (string, error) {
	digits := make([]byte, s.config.Length)
	for i := 0; i < s.config.Length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + num.Int64())
	}
	return string(digits), nil
}
