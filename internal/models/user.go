package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	CustomerName string    `json:"customerName"`
	PasswordHash string    `json:"-"` // never serialized
	CreatedAt    time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
