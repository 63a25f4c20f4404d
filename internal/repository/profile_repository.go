package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"community-board/internal/model"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(profile *model.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return fmt.Errorf("create profile failed: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByID(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile by id failed: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByNickname(nickname string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.Where("nickname = ?", nickname).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile by nickname failed: %w", err)
	}
	return &profile, nil
}

// NicknamesByIDs resolves a set of profile ids to nicknames in a single
// query. IDs with no profile or a NULL nickname are absent from the map;
// callers pick their own fallback label.
func (r *ProfileRepository) NicknamesByIDs(ids []string) (map[string]string, error) {
	result := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var profiles []model.Profile
	if err := r.db.Select("id", "nickname").Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("resolve nicknames failed: %w", err)
	}
	for _, p := range profiles {
		if p.Nickname != nil && *p.Nickname != "" {
			result[p.ID] = *p.Nickname
		}
	}
	return result, nil
}

// SearchByNickname performs a case-insensitive substring match.
func (r *ProfileRepository) SearchByNickname(query string, limit int) ([]model.Profile, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var profiles []model.Profile
	if err := r.db.Where("LOWER(nickname) LIKE ?", pattern).Limit(limit).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("search profiles failed: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) ListNewestFirst(limit int) ([]model.Profile, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	var profiles []model.Profile
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) UpdateBanned(id string, banned bool) error {
	if err := r.db.Model(&model.Profile{}).Where("id = ?", id).Update("banned", banned).Error; err != nil {
		return fmt.Errorf("update banned flag failed: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Profile{}).Error; err != nil {
		return fmt.Errorf("delete profile failed: %w", err)
	}
	return nil
}
