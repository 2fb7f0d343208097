package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"warrantyportal/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdatePassword(userID int, passwordHash string) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
                INSERT INTO users (email, customer_name, password_hash)
                VALUES ($1, $2, $3)
                RETURNING id, created_at
        `
	if err := r.DB.QueryRow(q, user.Email, user.CustomerName, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(id int) (*models.User, error) {
	const q = `
                SELECT id, email, customer_name, password_hash, created_at
                FROM users
                WHERE id = $1
        `
	return r.scanOne(r.DB.QueryRow(q, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	const q = `
                SELECT id, email, customer_name, password_hash, created_at
                FROM users
                WHERE LOWER(email) = LOWER($1)
        `
	return r.scanOne(r.DB.QueryRow(q, email))
}

func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	const q = `
                UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2
        `
	if _, err := r.DB.Exec(q, passwordHash, userID); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var created time.Time
	if err := row.Scan(&u.ID, &u.Email, &u.CustomerName, &u.PasswordHash, &created); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.CreatedAt = created
	return u, nil
}
