package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cottageplayer/internal/models"
)

type PlaylistRepo struct {
	db *gorm.DB
}

func NewPlaylistRepo(db *gorm.DB) *PlaylistRepo {
	return &PlaylistRepo{db: db}
}

func (r *PlaylistRepo) Create(ctx context.Context, p *models.Playlist) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// ByID returns the playlist with items resolved to their media records,
// ordered by position ascending. (nil, nil) when no row matches.
func (r *PlaylistRepo) ByID(ctx context.Context, id uint) (*models.Playlist, error) {
	var p models.Playlist
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadItems(ctx, []*models.Playlist{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaylistRepo) List(ctx context.Context) ([]models.Playlist, error) {
	var playlists []models.Playlist
	if err := r.db.WithContext(ctx).Order("id").Find(&playlists).Error; err != nil {
		return nil, err
	}
	refs := make([]*models.Playlist, len(playlists))
	for i := range playlists {
		refs[i] = &playlists[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return playlists, nil
}

// loadItems attaches ordered membership rows and their media in two batch
// queries, one per table.
func (r *PlaylistRepo) loadItems(ctx context.Context, playlists []*models.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}

	var items []models.PlaylistItem
	err := r.db.WithContext(ctx).
		Where("playlist_id IN ?", ids).
		Order("playlist_id, position").
		Find(&items).Error
	if err != nil {
		return err
	}

	mediaIDs := make([]uint, 0, len(items))
	for _, it := range items {
		mediaIDs = append(mediaIDs, it.MediaID)
	}
	mediaByID := map[uint]*models.Media{}
	if len(mediaIDs) > 0 {
		var media []models.Media
		if err := r.db.WithContext(ctx).Where("id IN ?", mediaIDs).Find(&media).Error; err != nil {
			return err
		}
		for i := range media {
			mediaByID[media[i].ID] = &media[i]
		}
	}

	byPlaylist := map[uint][]models.PlaylistItem{}
	for _, it := range items {
		it.Media = mediaByID[it.MediaID]
		byPlaylist[it.PlaylistID] = append(byPlaylist[it.PlaylistID], it)
	}
	for _, p := range playlists {
		p.Items = byPlaylist[p.ID]
	}
	return nil
}

func (r *PlaylistRepo) Save(ctx context.Context, p *models.Playlist) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes the playlist and cascades its membership rows in one
// transaction.
func (r *PlaylistRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Playlist
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", id).
			Delete(&models.PlaylistItem{}).Error; err != nil {
			return fmt.Errorf("cascade playlist items: %w", err)
		}
		return tx.Delete(&p).Error
	})
}

// SetItems atomically replaces the playlist's membership with mediaIDs,
// positions numbered densely from 0. A duplicate id in the input violates
// the composite primary key and rolls the whole replace back; callers
// de-duplicate upstream.
func (r *PlaylistRepo) SetItems(ctx context.Context, id uint, mediaIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Playlist
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", id).
			Delete(&models.PlaylistItem{}).Error; err != nil {
			return err
		}
		for position, mediaID := range mediaIDs {
			item := models.PlaylistItem{PlaylistID: id, MediaID: mediaID, Position: position}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AddItem inserts one membership row. When position is nil the item is
// appended at the current item count; existing rows are never renumbered.
func (r *PlaylistRepo) AddItem(ctx context.Context, playlistID, mediaID uint, position *int) (*models.PlaylistItem, error) {
	var item models.PlaylistItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Playlist
		if err := tx.First(&p, playlistID).Error; err != nil {
			return fmt.Errorf("playlist: %w", err)
		}
		var m models.Media
		if err := tx.First(&m, mediaID).Error; err != nil {
			return fmt.Errorf("media: %w", err)
		}
		pos := 0
		if position != nil {
			pos = *position
		} else {
			var count int64
			if err := tx.Model(&models.PlaylistItem{}).
				Where("playlist_id = ?", playlistID).
				Count(&count).Error; err != nil {
				return err
			}
			pos = int(count)
		}
		item = models.PlaylistItem{PlaylistID: playlistID, MediaID: mediaID, Position: pos}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one membership row without renumbering the rest.
func (r *PlaylistRepo) RemoveItem(ctx context.Context, playlistID, mediaID uint) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND media_id = ?", playlistID, mediaID).
		Delete(&models.PlaylistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
