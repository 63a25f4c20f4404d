package repository

import (
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.PrivateMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

// ListForUser returns messages the user sent or received, newest first.
func (r *MessageRepository) ListForUser(userID string, limit int) ([]model.PrivateMessage, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	var messages []model.PrivateMessage
	err := r.db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list inbox failed: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) ListNewestFirst(limit int) ([]model.PrivateMessage, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	var messages []model.PrivateMessage
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.PrivateMessage{}, id).Error; err != nil {
		return fmt.Errorf("delete message failed: %w", err)
	}
	return nil
}
