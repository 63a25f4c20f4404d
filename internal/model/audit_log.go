package model

import "time"

// AuditLog records a moderation action. Rows are written asynchronously
// by the audit worker, never on the admin request path.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   string    `gorm:"size:64;not null;index" json:"actor_id"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	SubjectID string    `gorm:"size:64;not null" json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
}
