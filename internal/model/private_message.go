package model

import "time"

// PrivateMessage is a direct message between two profiles.
// SenderID and RecipientID reference Profile.ID.
type PrivateMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    string    `gorm:"size:64;not null;index" json:"sender_id"`
	RecipientID string    `gorm:"size:64;not null;index" json:"recipient_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}
