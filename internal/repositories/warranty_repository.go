package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"warrantyportal/internal/models"
)

// ErrDuplicateSerial is returned when an insert trips the unique index on
// serial_number. The constraint is the authoritative duplicate signal; the
// service-level pre-check only exists for a friendlier fast path.
var ErrDuplicateSerial = errors.New("warranty for this serial number already exists")

type WarrantyRepository interface {
	Create(w *models.Warranty) (int64, error)
	GetBySerialNumber(serial string) (*models.Warranty, error)
	List(limit, offset int) ([]*models.Warranty, error)
}

type warrantyRepository struct {
	DB *sql.DB
}

func NewWarrantyRepository(db *sql.DB) WarrantyRepository {
	return &warrantyRepository{DB: db}
}

const warrantyColumns = `
                id, serial_number, product_name, customer_name, company_name,
                mobile_number, address, city, state, zip_code,
                product_category, model_number, quantity,
                purchase_date, expiry_date, purchase_channel, reseller_name,
                proof_of_purchase_url, registered_by, status, created_at`

func (r *warrantyRepository) Create(w *models.Warranty) (int64, error) {
	const q = `
                INSERT INTO warranties (
                        serial_number, product_name, customer_name, company_name,
                        mobile_number, address, city, state, zip_code,
                        product_category, model_number, quantity,
                        purchase_date, expiry_date, purchase_channel, reseller_name,
                        proof_of_purchase_url, registered_by, status
                )
                VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
                RETURNING id, created_at
        `
	err := r.DB.QueryRow(q,
		w.SerialNumber, w.ProductName, w.CustomerName, w.CompanyName,
		w.MobileNumber, w.Address, w.City, w.State, w.ZipCode,
		w.ProductCategory, w.ModelNumber, w.Quantity,
		w.PurchaseDate, w.ExpiryDate, w.PurchaseChannel, w.ResellerName,
		w.ProofOfPurchaseURL, w.RegisteredBy, w.Status,
	).Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, ErrDuplicateSerial
		}
		return 0, fmt.Errorf("create warranty: %w", err)
	}
	return int64(w.ID), nil
}

func (r *warrantyRepository) GetBySerialNumber(serial string) (*models.Warranty, error) {
	q := `SELECT` + warrantyColumns + `
                FROM warranties
                WHERE serial_number = $1`
	var w models.Warranty
	if err := r.DB.QueryRow(q, serial).Scan(
		&w.ID, &w.SerialNumber, &w.ProductName, &w.CustomerName, &w.CompanyName,
		&w.MobileNumber, &w.Address, &w.City, &w.State, &w.ZipCode,
		&w.ProductCategory, &w.ModelNumber, &w.Quantity,
		&w.PurchaseDate, &w.ExpiryDate, &w.PurchaseChannel, &w.ResellerName,
		&w.ProofOfPurchaseURL, &w.RegisteredBy, &w.Status, &w.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get warranty: %w", err)
	}
	return &w, nil
}

func (r *warrantyRepository) List(limit, offset int) ([]*models.Warranty, error) {
	q := `SELECT` + warrantyColumns + `
                FROM warranties
                ORDER BY created_at DESC
                LIMIT $1 OFFSET $2`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", err)
	}
	defer rows.Close()

	var res []*models.Warranty
	for rows.Next() {
		var w models.Warranty
		if err := rows.Scan(
			&w.ID, &w.SerialNumber, &w.ProductName, &w.CustomerName, &w.CompanyName,
			&w.MobileNumber, &w.Address, &w.City, &w.State, &w.ZipCode,
			&w.ProductCategory, &w.ModelNumber, &w.Quantity,
			&w.PurchaseDate, &w.ExpiryDate, &w.PurchaseChannel, &w.ResellerName,
			&w.ProofOfPurchaseURL, &w.RegisteredBy, &w.Status, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, &w)
	}
	return res, rows.Err()
}
