package services

import (
	"strings"
	"time"

	"cottageplayer/internal/config"
	"cottageplayer/internal/models"
)

// MediaView is the presentation shape of a media record.
type MediaView struct {
	ID               uint     `json:"id"`
	Filename         string   `json:"filename"`
	URL              string   `json:"url"`
	MediaType        string   `json:"media_type"`
	Thumbnail        string   `json:"thumbnail,omitempty"`
	Title            string   `json:"title,omitempty"`
	Description      string   `json:"description,omitempty"`
	Tags             []string `json:"tags"`
	PlaylistTags     []string `json:"playlist_tags"`
	DurationSeconds  *float64 `json:"duration_seconds,omitempty"`
	OriginalFilename string   `json:"original_filename,omitempty"`
	UploadedAt       string   `json:"uploaded_at,omitempty"`
}

// Filters narrow a library view. Categories combine with AND, values
// within one category with OR; all comparisons are case-insensitive.
type Filters struct {
	Types        []string
	Tags         []string
	PlaylistTags []string
}

// LibraryService assembles filtered view models for presentation.
type LibraryService struct {
	cfg config.LibraryConf
}

func NewLibraryService(cfg config.LibraryConf) *LibraryService {
	return &LibraryService{cfg: cfg}
}

func (s *LibraryService) BuildView(records []models.Media, f Filters) []MediaView {
	views := make([]MediaView, 0, len(records))
	for _, record := range records {
		if !matches(record, f) {
			continue
		}
		views = append(views, viewOf(record))
	}
	return views
}

// CategoryFilters resolves a landing-page category to its pre-selected
// filters. The category's option name is looked up case-insensitively
// against the configured playlist options first, then the tag options.
func (s *LibraryService) CategoryFilters(path string) (Filters, bool) {
	for _, cat := range s.cfg.Categories {
		if !strings.EqualFold(cat.Path, path) {
			continue
		}
		f := Filters{Types: cat.Types}
		if cat.Option != "" {
			if match, ok := lookupOption(s.cfg.PlaylistOptions, cat.Option); ok {
				f.PlaylistTags = []string{match}
			} else if match, ok := lookupOption(s.cfg.TagOptions, cat.Option); ok {
				f.Tags = []string{match}
			}
		}
		return f, true
	}
	return Filters{}, false
}

func lookupOption(options []string, name string) (string, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt, name) {
			return opt, true
		}
	}
	return "", false
}

func matches(m models.Media, f Filters) bool {
	if len(f.Types) > 0 && !anyPrefix(m.MimeType, f.Types) {
		return false
	}
	if len(f.Tags) > 0 && !anyEqualFold(m.Tags, f.Tags) {
		return false
	}
	if len(f.PlaylistTags) > 0 && !anyEqualFold(m.PlaylistTags, f.PlaylistTags) {
		return false
	}
	return true
}

func anyPrefix(mime string, prefixes []string) bool {
	lower := strings.ToLower(mime)
	for _, prefix := range prefixes {
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

func anyEqualFold(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func viewOf(m models.Media) MediaView {
	v := MediaView{
		ID:               m.ID,
		Filename:         m.Filename,
		URL:              m.URL,
		MediaType:        m.MimeType,
		Thumbnail:        m.ThumbnailURL,
		Title:            m.Title,
		Description:      m.Description,
		Tags:             m.Tags,
		PlaylistTags:     m.PlaylistTags,
		DurationSeconds:  m.DurationSeconds,
		OriginalFilename: m.OriginalFilename,
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.PlaylistTags == nil {
		v.PlaylistTags = []string{}
	}
	if !m.CreatedAt.IsZero() {
		v.UploadedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	return v
}
