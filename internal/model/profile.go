package model

import "time"

// Profile is the per-user record all authorization decisions hang off.
// ID is shared with the credential row owned by the identity gateway.
// Nickname stays NULL for profiles auto-provisioned before the user
// picked one; the unique index permits multiple NULLs.
type Profile struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Email     *string   `gorm:"size:128;index" json:"email"`
	Nickname  *string   `gorm:"size:64;uniqueIndex" json:"nickname"`
	Type      *string   `gorm:"size:32" json:"type,omitempty"`
	IsAdmin   bool      `gorm:"not null;default:false" json:"is_admin"`
	Banned    bool      `gorm:"not null;default:false" json:"banned"`
	CreatedAt time.Time `json:"created_at"`
}
