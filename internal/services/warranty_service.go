package services

import (
	"errors"
	"log"
	"strings"

	"warrantyportal/internal/models"
	"warrantyportal/internal/repositories"
)

var (
	ErrMissingFields   = errors.New("missing required fields")
	ErrDuplicateSerial = repositories.ErrDuplicateSerial
	ErrInvalidPeriod   = errors.New("expiry date must not precede purchase date")
)

type WarrantyService struct {
	Repo     repositories.WarrantyRepository
	Notifier *TelegramNotifier // optional ops-channel ping, may be nil
}

func NewWarrantyService(repo repositories.WarrantyRepository, notifier *TelegramNotifier) *WarrantyService {
	return &WarrantyService{Repo: repo, Notifier: notifier}
}

// Register validates and stores a new warranty. Quantity defaults to 1,
// status is always ACTIVE on creation regardless of what the caller sent.
// The pre-check lookup gives the friendly duplicate message; the unique
// index on serial_number catches the race between concurrent submissions.
func (s *WarrantyService) Register(w *models.Warranty) error {
	w.SerialNumber = strings.TrimSpace(w.SerialNumber)
	if w.SerialNumber == "" || strings.TrimSpace(w.ProductName) == "" ||
		w.PurchaseDate.IsZero() || w.ExpiryDate.IsZero() {
		return ErrMissingFields
	}
	if w.ExpiryDate.Before(w.PurchaseDate) {
		return ErrInvalidPeriod
	}
	if w.Quantity < 1 {
		w.Quantity = 1
	}
	w.Status = models.WarrantyStatusActive

	existing, err := s.Repo.GetBySerialNumber(w.SerialNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateSerial
	}

	if _, err := s.Repo.Create(w); err != nil {
		return err
	}
	log.Printf("[warranty][register] id=%d serial=%s product=%q", w.ID, w.SerialNumber, w.ProductName)

	if s.Notifier != nil {
		if err := s.Notifier.NotifyRegistration(w); err != nil {
			log.Printf("[warranty][register] ops notify failed: %v", err)
		}
	}
	return nil
}

// CheckBySerial is a point lookup. A missing record comes back as (nil, nil),
// never as an error.
func (s *WarrantyService) CheckBySerial(serial string) (*models.Warranty, error) {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil, ErrMissingFields
	}
	return s.Repo.GetBySerialNumber(serial)
}

func (s *WarrantyService) List(limit, offset int) ([]*models.Warranty, error) {
	return s.Repo.List(limit, offset)
}
