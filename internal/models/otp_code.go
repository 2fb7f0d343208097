package models

import "time"

// OTPCode is one issued passcode. Every send creates a new row; only the
// bcrypt hash of the code is stored. ConfirmedAt is set by a successful
// verification, UsedAt by the password reset that finally consumes the code.
type OTPCode struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	CodeHash    string     `json:"-"`
	SentAt      time.Time  `json:"sent_at"`
	ExpiresAt   time.Time  `json:"expires_at"`
	Attempts    int        `json:"attempts"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

func (c *OTPCode) Confirmed() bool { return c != nil && c.ConfirmedAt != nil }
func (c *OTPCode) Used() bool      { return c != nil && c.UsedAt != nil }
