package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/model"
)

type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Create(credential *model.Credential) error {
	if err := r.db.Create(credential).Error; err != nil {
		return fmt.Errorf("create credential failed: %w", err)
	}
	return nil
}

func (r *CredentialRepository) GetByEmail(email string) (*model.Credential, error) {
	var credential model.Credential
	if err := r.db.Where("email = ?", email).First(&credential).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query credential by email failed: %w", err)
	}
	return &credential, nil
}

func (r *CredentialRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Credential{}).Error; err != nil {
		return fmt.Errorf("delete credential failed: %w", err)
	}
	return nil
}
