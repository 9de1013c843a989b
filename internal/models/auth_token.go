package models

import "time"

// AuthToken records an issued JWT by its jti claim so revocation survives a
// Redis flush. Logout sets RevokedAt; expired rows are prunable by jobs.
type AuthToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	JTI       string     `gorm:"column:jti;uniqueIndex;not null" json:"jti"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Revoked reports whether the token has been explicitly revoked.
func (t *AuthToken) Revoked() bool {
	return t.RevokedAt != nil
}
