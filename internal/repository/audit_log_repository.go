package repository

import (
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/model"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(entry *model.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("create audit log failed: %w", err)
	}
	return nil
}

func (r *AuditLogRepository) ListNewestFirst(limit int) ([]model.AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	var entries []model.AuditLog
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list audit logs failed: %w", err)
	}
	return entries, nil
}
