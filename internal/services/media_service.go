package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"cottageplayer/internal/models"
	"cottageplayer/internal/repository"
	"cottageplayer/internal/storage"
	"cottageplayer/internal/utils"
)

// MediaService orchestrates uploads: byte storage, thumbnail generation and
// the persisted record. Record and file lifecycles stay in sync here.
type MediaService struct {
	media *repository.MediaRepo
	store *storage.DiskStore
	log   *zap.SugaredLogger
}

func NewMediaService(media *repository.MediaRepo, store *storage.DiskStore, log *zap.SugaredLogger) *MediaService {
	return &MediaService{media: media, store: store, log: log}
}

type UploadInput struct {
	Filename        string
	MimeType        string
	Data            []byte
	Title           string
	Description     string
	Tags            []string
	PlaylistTags    []string
	DurationSeconds *float64
	OwnerID         *uint
}

type UpdateInput struct {
	Title           *string
	Description     *string
	Tags            *[]string
	PlaylistTags    *[]string
	DurationSeconds *float64
}

func (s *MediaService) Upload(ctx context.Context, in UploadInput) (*models.Media, error) {
	if !utils.AllowedMIME(in.MimeType) {
		return nil, fmt.Errorf("%w: %s", utils.ErrUnsupportedType, in.MimeType)
	}

	stored, err := s.store.Save(in.Filename, in.Data)
	if err != nil {
		return nil, err
	}
	thumbName := s.store.WriteThumbnail(stored, in.MimeType, in.Data)

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	playlistTags := in.PlaylistTags
	if playlistTags == nil {
		playlistTags = []string{}
	}

	m := &models.Media{
		Filename:         stored,
		OriginalFilename: in.Filename,
		MediaType:        models.MediaTypeFromMIME(in.MimeType),
		MimeType:         in.MimeType,
		URL:              "/media/" + stored,
		Title:            in.Title,
		Description:      in.Description,
		Tags:             tags,
		PlaylistTags:     playlistTags,
		DurationSeconds:  in.DurationSeconds,
		OwnerID:          in.OwnerID,
	}
	if thumbName != "" {
		m.ThumbnailURL = "/media/" + thumbName
	}

	if err := s.media.Create(ctx, m); err != nil {
		if derr := s.store.Delete(stored); derr != nil {
			s.log.Warnw("orphaned upload cleanup failed", "file", stored, "error", derr)
		}
		return nil, err
	}
	s.log.Infow("media uploaded", "filename", stored, "type", m.MediaType)
	return m, nil
}

func (s *MediaService) ByFilename(ctx context.Context, filename string) (*models.Media, error) {
	return s.media.ByFilename(ctx, filename)
}

func (s *MediaService) List(ctx context.Context) ([]models.Media, error) {
	return s.media.List(ctx)
}

// Update applies only the fields that were provided.
func (s *MediaService) Update(ctx context.Context, filename string, in UpdateInput) (*models.Media, error) {
	m, err := s.media.ByFilename(ctx, filename)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("media %q: %w", filename, utils.ErrNotFound)
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.Tags != nil {
		m.Tags = *in.Tags
	}
	if in.PlaylistTags != nil {
		m.PlaylistTags = *in.PlaylistTags
	}
	if in.DurationSeconds != nil {
		m.DurationSeconds = in.DurationSeconds
	}
	if err := s.media.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the record with its membership rows, then the backing file
// and thumbnail.
func (s *MediaService) Delete(ctx context.Context, filename string) error {
	m, err := s.media.Delete(ctx, filename)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("media %q: %w", filename, utils.ErrNotFound)
		}
		return err
	}
	if err := s.store.Delete(m.Filename); err != nil && !errors.Is(err, utils.ErrNotFound) {
		s.log.Warnw("media file removal failed", "file", m.Filename, "error", err)
	}
	s.log.Infow("media deleted", "filename", filename)
	return nil
}

// CanMutateMedia is the capability check for media mutation: uploader and
// admin roles may always mutate, and the record's owner may mutate their
// own upload regardless of role.
func CanMutateMedia(userID uint, role models.Role, m *models.Media) bool {
	if role == models.RoleAdmin || role == models.RoleUploader {
		return true
	}
	return m.OwnerID != nil && *m.OwnerID == userID
}
