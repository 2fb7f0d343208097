package services

import (
	"strings"
	"time"

	"warrantyportal/internal/models"
)

// fakeOTPRepo keeps issued codes in memory, newest last.
type fakeOTPRepo struct {
	codes  []*models.OTPCode
	nextID int64
}

func (r *fakeOTPRepo) Create(email, codeHash string, sentAt, expiresAt time.Time) (int64, error) {
	r.nextID++
	r.codes = append(r.codes, &models.OTPCode{
		ID:        r.nextID,
		Email:     email,
		CodeHash:  codeHash,
		SentAt:    sentAt,
		ExpiresAt: expiresAt,
	})
	return r.nextID, nil
}

func (r *fakeOTPRepo) GetLatestByEmail(email string) (*models.OTPCode, error) {
	for i := len(r.codes) - 1; i >= 0; i-- {
		if strings.EqualFold(r.codes[i].Email, email) {
			return r.codes[i], nil
		}
	}
	return nil, nil
}

func (r *fakeOTPRepo) CountRecentSends(email string, since time.Time) (int, error) {
	n := 0
	for _, c := range r.codes {
		if strings.EqualFold(c.Email, email) && !c.SentAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOTPRepo) IncrementAttempts(id int64) (int, error) {
	c := r.byID(id)
	c.Attempts++
	return c.Attempts, nil
}

func (r *fakeOTPRepo) MarkConfirmed(id int64) error {
	now := time.Now()
	r.byID(id).ConfirmedAt = &now
	return nil
}

func (r *fakeOTPRepo) MarkUsed(id int64) error {
	now := time.Now()
	r.byID(id).UsedAt = &now
	return nil
}

func (r *fakeOTPRepo) ExpireNow(id int64) error {
	r.byID(id).ExpiresAt = time.Now()
	return nil
}

func (r *fakeOTPRepo) byID(id int64) *models.OTPCode {
	for _, c := range r.codes {
		if c.ID == id {
			return c
		}
	}
	panic("fakeOTPRepo: unknown id")
}

type fakeUserRepo struct {
	users  []*models.User
	nextID int
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdatePassword(userID int, passwordHash string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

type fakeWarrantyRepo struct {
	records []*models.Warranty
	nextID  int
}

func (r *fakeWarrantyRepo) Create(w *models.Warranty) (int64, error) {
	for _, existing := range r.records {
		if existing.SerialNumber == w.SerialNumber {
			return 0, ErrDuplicateSerial
		}
	}
	r.nextID++
	w.ID = r.nextID
	w.CreatedAt = time.Now()
	cp := *w
	r.records = append(r.records, &cp)
	return int64(w.ID), nil
}

func (r *fakeWarrantyRepo) GetBySerialNumber(serial string) (*models.Warranty, error) {
	for _, w := range r.records {
		if w.SerialNumber == serial {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarrantyRepo) List(limit, offset int) ([]*models.Warranty, error) {
	return r.records, nil
}

// fakeEmailService records outgoing mail instead of dialing SMTP.
type fakeEmailService struct {
	otpTo    []string
	otpCodes []string
}

func (s *fakeEmailService) SendOTPEmail(email, code string) error {
	s.otpTo = append(s.otpTo, email)
	s.otpCodes = append(s.otpCodes, code)
	return nil
}

func (s *fakeEmailService) SendRegistrationEmail(email, serialNumber, productName string) error {
	return nil
}
