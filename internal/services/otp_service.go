package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"

	"warrantyportal/internal/repositories"
)

var (
	ErrResendThrottled = errors.New("resend throttled")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeInvalid     = errors.New("code invalid")
	ErrCodeNotVerified = errors.New("code not verified")
	ErrCodeUsed        = errors.New("code already used")
)

const (
	maxResendsPerWindow = 3
	resendWindow        = 10 * time.Minute
	maxVerifyAttempts   = 5
	defaultOTPTTL       = 5 * time.Minute
)

// OTPService owns the passcode lifecycle: issue, verify, consume.
// Codes are stored bcrypt-hashed, live for CodeTTL, allow at most
// maxVerifyAttempts wrong guesses and are single-use.
type OTPService struct {
	Repo    repositories.OTPRepository
	CodeTTL time.Duration // 0 means defaultOTPTTL
}

func NewOTPService(repo repositories.OTPRepository) *OTPService {
	return &OTPService{Repo: repo, CodeTTL: defaultOTPTTL}
}

func (s *OTPService) generateCode() (string, error) {
	const digits = "0123456789"
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("otp generate: %w", err)
		}
		code[i] = digits[n.Int64()]
	}
	return string(code), nil
}

// Issue creates and stores a new code for email and returns the plain code
// for delivery. Each call makes a fresh code; the previous one stops being
// the latest and can no longer be verified.
func (s *OTPService) Issue(email string) (string, error) {
	since := time.Now().Add(-resendWindow)
	cnt, err := s.Repo.CountRecentSends(email, since)
	if err != nil {
		return "", err
	}
	if cnt >= maxResendsPerWindow {
		return "", ErrResendThrottled
	}

	code, err := s.generateCode()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt generate: %w", err)
	}

	ttl := s.CodeTTL
	if ttl <= 0 {
		ttl = defaultOTPTTL
	}
	sentAt := time.Now()
	if _, err := s.Repo.Create(email, string(hash), sentAt, sentAt.Add(ttl)); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks code against the latest issue for email and marks it
// confirmed on success. Wrong guesses burn attempts; the code expires
// outright once the budget is spent.
func (s *OTPService) Verify(email, code string) error {
	c, err := s.Repo.GetLatestByEmail(email)
	if err != nil {
		return err
	}
	if c == nil || c.Used() {
		return ErrCodeInvalid
	}
	if time.Now().After(c.ExpiresAt) {
		return ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.CodeHash), []byte(code)); err != nil {
		attempts, incErr := s.Repo.IncrementAttempts(c.ID)
		if incErr != nil {
			return incErr
		}
		if attempts >= maxVerifyAttempts {
			_ = s.Repo.ExpireNow(c.ID)
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	return s.Repo.MarkConfirmed(c.ID)
}

// Consume re-validates the latest code end to end (confirmed, unexpired,
// unused, hash match) and marks it used. A password reset must not ride a
// stale verification, so nothing from Verify is trusted here.
func (s *OTPService) Consume(email, code string) error {
	c, err := s.Repo.GetLatestByEmail(email)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCodeInvalid
	}
	if c.Used() {
		return ErrCodeUsed
	}
	if time.Now().After(c.ExpiresAt) {
		return ErrCodeExpired
	}
	if !c.Confirmed() {
		return ErrCodeNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.CodeHash), []byte(code)); err != nil {
		return ErrCodeInvalid
	}
	return s.Repo.MarkUsed(c.ID)
}
