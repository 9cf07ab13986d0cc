package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"cottageplayer/internal/models"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/utils"
)

// PlaylistService owns playlists and their ordered media membership.
type PlaylistService struct {
	playlists *repository.PlaylistRepo
}

func NewPlaylistService(playlists *repository.PlaylistRepo) *PlaylistService {
	return &PlaylistService{playlists: playlists}
}

// Create trims the name; an empty name after trimming is allowed at this
// layer, validation is a caller concern.
func (s *PlaylistService) Create(ctx context.Context, name, description string, ownerID *uint) (*models.Playlist, error) {
	p := &models.Playlist{
		Name:        strings.TrimSpace(name),
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) Get(ctx context.Context, id uint) (*models.Playlist, error) {
	p, err := s.playlists.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("playlist %d: %w", id, utils.ErrNotFound)
	}
	return p, nil
}

func (s *PlaylistService) List(ctx context.Context) ([]models.Playlist, error) {
	return s.playlists.List(ctx)
}

func (s *PlaylistService) Update(ctx context.Context, id uint, name, description *string) (*models.Playlist, error) {
	p, err := s.playlists.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("playlist %d: %w", id, utils.ErrNotFound)
	}
	if name != nil {
		p.Name = strings.TrimSpace(*name)
	}
	if description != nil {
		p.Description = *description
	}
	if err := s.playlists.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) Delete(ctx context.Context, id uint) error {
	err := s.playlists.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("playlist %d: %w", id, utils.ErrNotFound)
	}
	return err
}

// SetItems replaces the whole membership atomically. Duplicate ids in the
// input surface as ErrDuplicateItem with nothing applied.
func (s *PlaylistService) SetItems(ctx context.Context, id uint, mediaIDs []uint) (*models.Playlist, error) {
	err := s.playlists.SetItems(ctx, id, mediaIDs)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("playlist %d: %w", id, utils.ErrNotFound)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: media ids must be unique", utils.ErrDuplicateItem)
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *PlaylistService) AddItem(ctx context.Context, playlistID, mediaID uint, position *int) (*models.PlaylistItem, error) {
	item, err := s.playlists.AddItem(ctx, playlistID, mediaID, position)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", notFoundSubject(err), utils.ErrNotFound)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: media %d already in playlist %d", utils.ErrDuplicateItem, mediaID, playlistID)
		}
		return nil, err
	}
	return item, nil
}

func (s *PlaylistService) RemoveItem(ctx context.Context, playlistID, mediaID uint) error {
	err := s.playlists.RemoveItem(ctx, playlistID, mediaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("playlist item (%d, %d): %w", playlistID, mediaID, utils.ErrNotFound)
	}
	return err
}

func notFoundSubject(err error) string {
	if strings.HasPrefix(err.Error(), "media") {
		return "media"
	}
	return "playlist"
}

// CanMutatePlaylist: a playlist without an owner is mutable by any
// authenticated identity; an owned one only by its owner or an admin.
func CanMutatePlaylist(userID uint, role models.Role, p *models.Playlist) bool {
	if p.OwnerID == nil {
		return true
	}
	if role == models.RoleAdmin {
		return true
	}
	return *p.OwnerID == userID
}
