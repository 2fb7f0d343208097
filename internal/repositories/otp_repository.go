package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"warrantyportal/internal/models"
)

type OTPRepository interface {
	Create(email, codeHash string, sentAt, expiresAt time.Time) (int64, error)
	GetLatestByEmail(email string) (*models.OTPCode, error)
	CountRecentSends(email string, since time.Time) (int, error)
	IncrementAttempts(id int64) (int, error)
	MarkConfirmed(id int64) error
	MarkUsed(id int64) error
	ExpireNow(id int64) error
}

type otpRepository struct {
	DB *sql.DB
}

func NewOTPRepository(db *sql.DB) OTPRepository {
	return &otpRepository{DB: db}
}

// Create inserts a fresh code row. Every send is a new row; GetLatestByEmail
// decides which one currently counts.
func (r *otpRepository) Create(email, codeHash string, sentAt, expiresAt time.Time) (int64, error) {
	const q = `
                INSERT INTO otp_codes (email, code_hash, sent_at, expires_at, attempts)
                VALUES ($1, $2, $3, $4, 0)
                RETURNING id
        `
	var id int64
	if err := r.DB.QueryRow(q, email, codeHash, sentAt, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("otp create: %w", err)
	}
	return id, nil
}

func (r *otpRepository) GetLatestByEmail(email string) (*models.OTPCode, error) {
	const q = `
                SELECT id, email, code_hash, sent_at, expires_at, attempts, confirmed_at, used_at
                FROM otp_codes
                WHERE LOWER(email) = LOWER($1)
                ORDER BY sent_at DESC
                LIMIT 1
        `
	var c models.OTPCode
	var confirmedAt, usedAt sql.NullTime
	if err := r.DB.QueryRow(q, email).Scan(
		&c.ID, &c.Email, &c.CodeHash, &c.SentAt, &c.ExpiresAt, &c.Attempts, &confirmedAt, &usedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp latest: %w", err)
	}
	if confirmedAt.Valid {
		c.ConfirmedAt = &confirmedAt.Time
	}
	if usedAt.Valid {
		c.UsedAt = &usedAt.Time
	}
	return &c, nil
}

// CountRecentSends backs the resend throttle window.
func (r *otpRepository) CountRecentSends(email string, since time.Time) (int, error) {
	const q = `
                SELECT COUNT(*)
                FROM otp_codes
                WHERE LOWER(email) = LOWER($1) AND sent_at >= $2
        `
	var n int
	if err := r.DB.QueryRow(q, email, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("otp count recent: %w", err)
	}
	return n, nil
}

func (r *otpRepository) IncrementAttempts(id int64) (int, error) {
	const q = `
                UPDATE otp_codes
                SET attempts = attempts + 1
                WHERE id = $1
                RETURNING attempts
        `
	var attempts int
	if err := r.DB.QueryRow(q, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("otp increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *otpRepository) MarkConfirmed(id int64) error {
	_, err := r.DB.Exec(`UPDATE otp_codes SET confirmed_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *otpRepository) MarkUsed(id int64) error {
	_, err := r.DB.Exec(`UPDATE otp_codes SET used_at = NOW() WHERE id = $1`, id)
	return err
}

// ExpireNow burns a code immediately, used once the attempt budget is spent.
func (r *otpRepository) ExpireNow(id int64) error {
	_, err := r.DB.Exec(`UPDATE otp_codes SET expires_at = NOW() WHERE id = $1`, id)
	return err
}
