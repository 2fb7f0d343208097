package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"warrantyportal/internal/repositories"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)

type PasswordResetService interface {
	RequestOTP(email string) error
	CheckOTP(email, code string) error
	ResetPassword(email, code, newPassword string) error
}

type passwordResetService struct {
	userRepo repositories.UserRepository
	otp      *OTPService
	emails   EmailService
	auth     AuthService
}

func NewPasswordResetService(userRepo repositories.UserRepository, otp *OTPService, emails EmailService, auth AuthService) PasswordResetService {
	return &passwordResetService{
		userRepo: userRepo,
		otp:      otp,
		emails:   emails,
		auth:     auth,
	}
}

// RequestOTP issues a fresh code and mails it. An unknown email still
// answers success so the endpoint does not leak account existence.
func (s *passwordResetService) RequestOTP(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrEmailRequired
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil || user == nil {
		log.Printf("[otp][request] %q: user not found or error: %v", email, err)
		return nil
	}

	code, err := s.otp.Issue(email)
	if err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendOTPEmail(user.Email, code); err != nil {
			log.Printf("[otp][request] failed to send email to %s: %v", user.Email, err)
			return fmt.Errorf("send otp email: %w", err)
		}
	}
	log.Printf("[otp][request] code issued for %s", email)
	return nil
}

func (s *passwordResetService) CheckOTP(email, code string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	code = strings.TrimSpace(code)
	if email == "" {
		return ErrEmailRequired
	}
	if code == "" {
		return ErrCodeInvalid
	}
	if err := s.otp.Verify(email, code); err != nil {
		log.Printf("[otp][check] %s: %v", email, err)
		return err
	}
	log.Printf("[otp][check] OK %s", email)
	return nil
}

// ResetPassword consumes the verified code and replaces the credential.
// Length is re-checked here: the client gates the control, but the server
// does not trust client-side preconditions.
func (s *passwordResetService) ResetPassword(email, code, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrEmailRequired
	}
	if len(newPassword) < 8 {
		return ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		// no account, so no code could have been issued either
		return ErrCodeInvalid
	}

	if err := s.otp.Consume(email, code); err != nil {
		log.Printf("[otp][reset] consume failed for %s: %v", email, err)
		return err
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(user.ID, hash); err != nil {
		return err
	}
	log.Printf("[otp][reset] password updated for userID=%d", user.ID)
	return nil
}
