package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cottageplayer/internal/models"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

func (r *MediaRepo) Create(ctx context.Context, m *models.Media) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ByFilename returns (nil, nil) when no row matches.
func (r *MediaRepo) ByFilename(ctx context.Context, filename string) (*models.Media, error) {
	var m models.Media
	err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepo) ByID(ctx context.Context, id uint) (*models.Media, error) {
	var m models.Media
	err := r.db.WithContext(ctx).First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepo) List(ctx context.Context) ([]models.Media, error) {
	var media []models.Media
	if err := r.db.WithContext(ctx).Order("id").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (r *MediaRepo) Save(ctx context.Context, m *models.Media) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes the record and every playlist membership row that
// references it, in one transaction. The removed record is returned so the
// caller can clean up backing files. Returns gorm.ErrRecordNotFound when
// the filename is unknown.
func (r *MediaRepo) Delete(ctx context.Context, filename string) (*models.Media, error) {
	var m models.Media
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("filename = ?", filename).First(&m).Error; err != nil {
			return err
		}
		if err := tx.Where("media_id = ?", m.ID).
			Delete(&models.PlaylistItem{}).Error; err != nil {
			return fmt.Errorf("cascade playlist items: %w", err)
		}
		return tx.Delete(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}
