package model

import "time"

// ResetTokenEntity holds one password-reset token row. Only the SHA-256 hash
// of the raw secret is stored; the raw value leaves the system exactly once,
// inside the reset link emailed to the account owner.
type ResetTokenEntity struct {
	ID        uint64    `db:"id" json:"id"`
	AccountID uint64    `db:"account_id" json:"account_id"`
	TokenHash string    `db:"token_hash" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
