package services

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warrantyportal/internal/models"
)

func newWarranty(serial string) *models.Warranty {
	purchase := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Warranty{
		SerialNumber: serial,
		ProductName:  "SG350-28P",
		CustomerName: gofakeit.Name(),
		CompanyName:  gofakeit.Company(),
		PurchaseDate: purchase,
		ExpiryDate:   purchase.AddDate(1, 0, 0),
	}
}

func TestRegisterDefaults(t *testing.T) {
	repo := &fakeWarrantyRepo{}
	svc := NewWarrantyService(repo, nil)

	w := newWarranty("SN2")
	w.Quantity = 0
	w.Status = "whatever the caller sent"

	require.NoError(t, svc.Register(w))
	assert.Equal(t, 1, w.Quantity, "quantity defaults to 1")
	assert.Equal(t, models.WarrantyStatusActive, w.Status, "status is forced to ACTIVE on creation")

	stored, _ := repo.GetBySerialNumber("SN2")
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Quantity)
	assert.Equal(t, models.WarrantyStatusActive, stored.Status)
}

func TestRegisterMissingFields(t *testing.T) {
	repo := &fakeWarrantyRepo{}
	svc := NewWarrantyService(repo, nil)

	cases := []func(w *models.Warranty){
		func(w *models.Warranty) { w.SerialNumber = "  " },
		func(w *models.Warranty) { w.ProductName = "" },
		func(w *models.Warranty) { w.PurchaseDate = time.Time{} },
		func(w *models.Warranty) { w.ExpiryDate = time.Time{} },
	}
	for i, mutate := range cases {
		w := newWarranty("SN-missing")
		mutate(w)
		assert.ErrorIs(t, svc.Register(w), ErrMissingFields, "case %d", i)
	}
	assert.Empty(t, repo.records)
}

func TestRegisterDuplicateSerial(t *testing.T) {
	repo := &fakeWarrantyRepo{}
	svc := NewWarrantyService(repo, nil)

	first := newWarranty("SN1")
	require.NoError(t, svc.Register(first))

	second := newWarranty("SN1")
	second.ProductName = "different product"
	assert.ErrorIs(t, svc.Register(second), ErrDuplicateSerial)

	// the existing record is untouched
	stored, _ := repo.GetBySerialNumber("SN1")
	assert.Equal(t, first.ProductName, stored.ProductName)
	assert.Len(t, repo.records, 1)
}

func TestRegisterExpiryBeforePurchase(t *testing.T) {
	repo := &fakeWarrantyRepo{}
	svc := NewWarrantyService(repo, nil)

	w := newWarranty("SN3")
	w.ExpiryDate = w.PurchaseDate.AddDate(0, 0, -1)
	assert.ErrorIs(t, svc.Register(w), ErrInvalidPeriod)
}

func TestCheckBySerial(t *testing.T) {
	repo := &fakeWarrantyRepo{}
	svc := NewWarrantyService(repo, nil)

	require.NoError(t, svc.Register(newWarranty("SN1")))

	found, err := svc.CheckBySerial("SN1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "SN1", found.SerialNumber)

	// a miss is a nil record, not an error
	missing, err := svc.CheckBySerial("NOPE")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = svc.CheckBySerial("  ")
	assert.ErrorIs(t, err, ErrMissingFields)
}
