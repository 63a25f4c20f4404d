package model

import "time"

// Credential is the identity gateway's auth record. It shares its ID
// with the matching Profile row; the profile itself may not exist yet
// (provisioning is lazy).
type Credential struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
